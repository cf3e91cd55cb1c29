package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"gizindir-panel/internal/models"
	"gizindir-panel/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockImageUsers struct {
	mock.Mock
}

func (m *mockImageUsers) Get(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockImageUsers) SetProfileImage(ctx context.Context, id int64, url string) error {
	return m.Called(ctx, id, url).Error(0)
}

type mockPresigner struct {
	mock.Mock
}

func (m *mockPresigner) PresignProfileImage(ctx context.Context, userID int64, contentType string) (*services.UploadResponse, error) {
	args := m.Called(ctx, userID, contentType)
	upload, _ := args.Get(0).(*services.UploadResponse)
	return upload, args.Error(1)
}

func imageRouter(users ProfileImageUsers, media Presigner) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/users/{id}/profile-image", NewProfileImageHandler(users, media).Upload)
	return r
}

func TestProfileImageUpload(t *testing.T) {
	users := &mockImageUsers{}
	media := &mockPresigner{}
	upload := &services.UploadResponse{UploadURL: "https://s3/put", ImageURL: "https://cdn/p.png", ExpiresIn: 300}

	users.On("Get", mock.Anything, int64(3)).Return(&models.User{ID: 3}, nil)
	media.On("PresignProfileImage", mock.Anything, int64(3), "image/png").Return(upload, nil)
	users.On("SetProfileImage", mock.Anything, int64(3), "https://cdn/p.png").Return(nil)

	rec, out := do(t, imageRouter(users, media), http.MethodPost, "/api/users/3/profile-image", `{"content_type":"image/png"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://s3/put", out["upload_url"])
	assert.Equal(t, "https://cdn/p.png", out["image_url"])
	users.AssertExpectations(t)
	media.AssertExpectations(t)
}

func TestProfileImageUploadFailures(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		rec, out := do(t, imageRouter(&mockImageUsers{}, nil), http.MethodPost, "/api/users/3/profile-image", `{}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Profil resmi yükleme yapılandırılmamış", out["error"])
	})

	t.Run("bad id", func(t *testing.T) {
		rec, out := do(t, imageRouter(&mockImageUsers{}, &mockPresigner{}), http.MethodPost, "/api/users/x/profile-image", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Geçersiz kullanıcı ID", out["error"])
	})

	t.Run("unknown user", func(t *testing.T) {
		users := &mockImageUsers{}
		users.On("Get", mock.Anything, int64(9)).Return(nil, notFound(9))

		rec, out := do(t, imageRouter(users, &mockPresigner{}), http.MethodPost, "/api/users/9/profile-image", `{}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Kullanıcı bulunamadı", out["error"])
	})

	t.Run("unsupported content type", func(t *testing.T) {
		users := &mockImageUsers{}
		media := &mockPresigner{}
		users.On("Get", mock.Anything, int64(3)).Return(&models.User{ID: 3}, nil)
		media.On("PresignProfileImage", mock.Anything, int64(3), "image/gif").
			Return(nil, &services.ValidationError{Fields: []services.FieldError{{Field: "content_type", Rule: "oneof"}}})

		rec, _ := do(t, imageRouter(users, media), http.MethodPost, "/api/users/3/profile-image", `{"content_type":"image/gif"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		users.AssertNotCalled(t, "SetProfileImage", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("presign error", func(t *testing.T) {
		users := &mockImageUsers{}
		media := &mockPresigner{}
		users.On("Get", mock.Anything, int64(3)).Return(&models.User{ID: 3}, nil)
		media.On("PresignProfileImage", mock.Anything, int64(3), "").Return(nil, errors.New("no credentials"))

		rec, out := do(t, imageRouter(users, media), http.MethodPost, "/api/users/3/profile-image", `{}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Profil resmi yükleme adresi oluşturulamadı", out["error"])
	})
}
