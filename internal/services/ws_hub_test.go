package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"gizindir-panel/internal/models"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newHubServer upgrades every request and registers it with hub
func newHubServer(t *testing.T, hub *WSHub) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		id := hub.Register(conn)
		defer hub.Unregister(id)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var evt Event
	require.NoError(t, json.Unmarshal(data, &evt))
	return evt
}

func TestWSHubPublishesChangeThenCounts(t *testing.T) {
	counts := &models.Counts{Users: 3, Matches: 1}
	hub := NewWSHub(func(ctx context.Context) (*models.Counts, error) { return counts, nil })
	conn := dial(t, newHubServer(t, hub))

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	hub.Publish(Event{Type: "entity_changed", Entity: EntityUsers, Action: ActionCreated, ID: 9})

	first := readEvent(t, conn)
	assert.Equal(t, Event{Type: "entity_changed", Entity: EntityUsers, Action: ActionCreated, ID: 9}, first)

	second := readEvent(t, conn)
	assert.Equal(t, "counts", second.Type)
	assert.Equal(t, counts, second.Counts)
}

func TestWSHubUnregistersClosedClients(t *testing.T) {
	hub := NewWSHub(func(ctx context.Context) (*models.Counts, error) { return &models.Counts{}, nil })
	conn := dial(t, newHubServer(t, hub))

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)
	conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)

	assert.Error(t, hub.Send("missing", Event{Type: "counts"}))
}

func TestWSHubPublishWithoutClients(t *testing.T) {
	called := false
	hub := NewWSHub(func(ctx context.Context) (*models.Counts, error) {
		called = true
		return &models.Counts{}, nil
	})

	hub.Publish(Event{Type: "entity_changed"})
	assert.False(t, called)
}

func TestWSHubLastCountsReflectLatestChange(t *testing.T) {
	var calls atomic.Int32
	hub := NewWSHub(func(ctx context.Context) (*models.Counts, error) {
		if calls.Add(1) == 1 {
			time.Sleep(300 * time.Millisecond)
			return &models.Counts{Users: 1}, nil
		}
		return &models.Counts{Users: 2}, nil
	})
	conn := dial(t, newHubServer(t, hub))

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	hub.Publish(Event{Type: "entity_changed", Entity: EntityUsers, Action: ActionCreated, ID: 1})
	time.Sleep(20 * time.Millisecond)
	hub.Publish(Event{Type: "entity_changed", Entity: EntityUsers, Action: ActionCreated, ID: 2})

	var changed []int64
	var last *models.Counts
	for last == nil || len(changed) < 2 {
		evt := readEvent(t, conn)
		switch evt.Type {
		case "entity_changed":
			changed = append(changed, evt.ID)
			last = nil
		case "counts":
			last = evt.Counts
		}
	}

	// nothing may follow the latest snapshot
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(500*time.Millisecond)))
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		var evt Event
		require.NoError(t, json.Unmarshal(data, &evt))
		if evt.Type == "counts" {
			last = evt.Counts
		}
	}

	assert.Equal(t, []int64{1, 2}, changed)
	assert.Equal(t, int64(2), last.Users)
	assert.Equal(t, int32(2), calls.Load())
}
