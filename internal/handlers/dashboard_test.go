package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gizindir-panel/internal/models"
	"gizindir-panel/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCounts struct {
	mock.Mock
}

func (m *mockCounts) Counts(ctx context.Context) (*models.Counts, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).(*models.Counts)
	return counts, args.Error(1)
}

func TestDashboardCounts(t *testing.T) {
	counts := &mockCounts{}
	counts.On("Counts", mock.Anything).Return(&models.Counts{Users: 12, Matches: 3, Messages: 40, Sessions: 7, Interactions: 90}, nil)

	r := chi.NewRouter()
	r.Get("/api/dashboard", NewDashboardHandler(counts).GetCounts)

	rec, _ := do(t, r, http.MethodGet, "/api/dashboard", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"users":12,"matches":3,"messages":40,"sessions":7,"interactions":90}`, rec.Body.String())
}

func TestDashboardCountsFailure(t *testing.T) {
	counts := &mockCounts{}
	counts.On("Counts", mock.Anything).Return(nil, errors.New("failed to count sessions"))

	r := chi.NewRouter()
	r.Get("/api/dashboard", NewDashboardHandler(counts).GetCounts)

	rec, out := do(t, r, http.MethodGet, "/api/dashboard", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, map[string]any{"error": "Panel verileri getirilirken bir hata oluştu"}, out)
}

func TestDashboardWebSocket(t *testing.T) {
	calls := 0
	hub := services.NewWSHub(func(ctx context.Context) (*models.Counts, error) {
		calls++
		return &models.Counts{Users: int64(calls)}, nil
	})

	srv := httptest.NewServer(http.HandlerFunc(NewWebSocketHandler(hub).HandleWebSocket))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() services.Event {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		var evt services.Event
		require.NoError(t, json.Unmarshal(data, &evt))
		return evt
	}

	initial := read()
	assert.Equal(t, "counts", initial.Type)
	assert.Equal(t, int64(1), initial.Counts.Users)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"refresh"}`)))
	refreshed := read()
	assert.Equal(t, int64(2), refreshed.Counts.Users)
}
