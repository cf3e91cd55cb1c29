package handlers

import (
	"context"
	"errors"
	"net/http"

	"gizindir-panel/internal/models"
	"gizindir-panel/internal/repository"
	"gizindir-panel/internal/services"

	"github.com/rs/zerolog/log"
)

const (
	uploadsDisabled = "Profil resmi yükleme yapılandırılmamış"
	uploadFailed    = "Profil resmi yükleme adresi oluşturulamadı"
)

// ProfileImageUsers is the user surface needed for profile image uploads
type ProfileImageUsers interface {
	Get(ctx context.Context, id int64) (*models.User, error)
	SetProfileImage(ctx context.Context, id int64, url string) error
}

// Presigner issues pre-signed upload URLs
type Presigner interface {
	PresignProfileImage(ctx context.Context, userID int64, contentType string) (*services.UploadResponse, error)
}

// UploadRequest is the body of POST /api/users/{id}/profile-image
type UploadRequest struct {
	ContentType string `json:"content_type"`
}

// ProfileImageHandler hands out profile image upload URLs
type ProfileImageHandler struct {
	users ProfileImageUsers
	media Presigner
}

// NewProfileImageHandler creates a new profile image handler. A nil media
// service disables uploads.
func NewProfileImageHandler(users ProfileImageUsers, media Presigner) *ProfileImageHandler {
	return &ProfileImageHandler{users: users, media: media}
}

// Upload handles POST /api/users/{id}/profile-image
func (h *ProfileImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	msgs := UserEntity.Messages

	id, ok := parseID(r)
	if !ok {
		respondError(w, msgs.InvalidID, http.StatusBadRequest)
		return
	}

	if h.media == nil {
		respondError(w, uploadsDisabled, http.StatusNotFound)
		return
	}

	var req UploadRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondInvalid(w, msgs.InvalidBody, err)
		return
	}

	ctx := r.Context()
	if _, err := h.users.Get(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, msgs.NotFound, http.StatusNotFound)
			return
		}
		log.Error().Err(err).Int64("id", id).Msg("Failed to get user for upload")
		respondError(w, msgs.GetFailed, http.StatusInternalServerError)
		return
	}

	upload, err := h.media.PresignProfileImage(ctx, id, req.ContentType)
	if err != nil {
		if services.IsValidationError(err) {
			respondInvalid(w, msgs.InvalidBody, err)
			return
		}
		log.Error().Err(err).Int64("id", id).Msg("Failed to presign profile image upload")
		respondError(w, uploadFailed, http.StatusInternalServerError)
		return
	}

	if err := h.users.SetProfileImage(ctx, id, upload.ImageURL); err != nil {
		log.Error().Err(err).Int64("id", id).Msg("Failed to store profile image url")
		respondError(w, msgs.UpdateFailed, http.StatusInternalServerError)
		return
	}

	log.Info().Int64("id", id).Str("image_url", upload.ImageURL).Msg("Profile image upload issued")
	respondJSON(w, http.StatusOK, upload)
}
