package cmd

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"gizindir-panel/internal/handlers"
	"gizindir-panel/internal/models"

	"github.com/stretchr/testify/assert"
)

// testRoutes wires handlers without services; only requests rejected before
// reaching a service may be sent through it
func testRoutes() routes {
	return routes{
		users:        handlers.NewCRUDHandler[models.User, models.CreateUserInput, models.UpdateUserInput](handlers.UserEntity, nil),
		matches:      handlers.NewCRUDHandler[models.Match, models.CreateMatchInput, models.NoUpdate](handlers.MatchEntity, nil),
		messages:     handlers.NewCRUDHandler[models.Message, models.CreateMessageInput, models.UpdateMessageInput](handlers.MessageEntity, nil),
		sessions:     handlers.NewCRUDHandler[models.Session, models.CreateSessionInput, models.NoUpdate](handlers.SessionEntity, nil),
		interactions: handlers.NewCRUDHandler[models.Interaction, models.CreateInteractionInput, models.UpdateInteractionInput](handlers.InteractionEntity, nil),
		dashboard:    handlers.NewDashboardHandler(nil),
		websocket:    handlers.NewWebSocketHandler(nil),
		images:       handlers.NewProfileImageHandler(nil, nil),
	}
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouterMethods(t *testing.T) {
	r := newRouter([]string{"*"}, testRoutes())

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodPut, "/api/matches/1", http.StatusMethodNotAllowed},
		{http.MethodPut, "/api/sessions/1", http.StatusMethodNotAllowed},
		{http.MethodPut, "/api/users/abc", http.StatusBadRequest},
		{http.MethodPut, "/api/messages/abc", http.StatusBadRequest},
		{http.MethodPut, "/api/interactions/abc", http.StatusBadRequest},
		{http.MethodDelete, "/api/matches/0", http.StatusBadRequest},
		{http.MethodGet, "/api/sessions/x", http.StatusBadRequest},
		{http.MethodPost, "/api/users/1/profile-image", http.StatusNotFound},
		{http.MethodGet, "/api/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := serve(r, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRouterCORS(t *testing.T) {
	r := newRouter([]string{"https://admin.gizindir.com"}, testRoutes())

	req := httptest.NewRequest(http.MethodOptions, "/api/users", nil)
	req.Header.Set("Origin", "https://admin.gizindir.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)

	rec := serve(r, req)
	assert.Equal(t, "https://admin.gizindir.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPut)

	req = httptest.NewRequest(http.MethodOptions, "/api/users", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	rec = serve(r, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestConfigPathFromEnv(t *testing.T) {
	t.Setenv("PANEL_CONFIG", "")
	assert.Equal(t, "config.yaml", configPathFromEnv())

	t.Setenv("PANEL_CONFIG", "/etc/gizindir/panel.yaml")
	assert.Equal(t, "/etc/gizindir/panel.yaml", configPathFromEnv())
}
