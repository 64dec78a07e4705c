package ws_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golgrax/bayanihan-alerts/internal/adapter/ws"
	"github.com/golgrax/bayanihan-alerts/internal/domain"
	"github.com/golgrax/bayanihan-alerts/internal/observability"
)

func newTestHub(t *testing.T) (*ws.Hub, *httptest.Server) {
	t.Helper()
	hub := ws.NewHub(slog.Default(), observability.NewMetricsForTesting())
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleStream))
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *ws.Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return hub.ClientCount() == n
	}, 2*time.Second, 10*time.Millisecond)
}

func TestBroadcastReachesAllClients(t *testing.T) {
	hub, srv := newTestHub(t)

	first := dial(t, srv)
	second := dial(t, srv)
	waitForClients(t, hub, 2)

	result := domain.FeedResult{
		Title: "PAGASA Public Alerts",
		Entries: []domain.AlertSummary{
			{ID: "urn:alert:1", Severity: domain.SeveritySevere, Region: "Region 4-A"},
		},
	}
	hub.Broadcast(result)

	for _, conn := range []*websocket.Conn{first, second} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, payload, err := conn.ReadMessage()
		require.NoError(t, err)

		var got domain.FeedResult
		require.NoError(t, json.Unmarshal(payload, &got))
		assert.Equal(t, "PAGASA Public Alerts", got.Title)
		require.Len(t, got.Entries, 1)
		assert.Equal(t, "Region 4-A", got.Entries[0].Region)
	}
}

func TestDisconnectedClientIsRemoved(t *testing.T) {
	hub, srv := newTestHub(t)

	conn := dial(t, srv)
	waitForClients(t, hub, 1)

	require.NoError(t, conn.Close())
	waitForClients(t, hub, 0)
}

func TestBroadcastWithNoClients(t *testing.T) {
	hub, _ := newTestHub(t)

	// Must not panic or block.
	hub.Broadcast(domain.FeedResult{Title: "empty room"})
	assert.Equal(t, 0, hub.ClientCount())
}

func TestCloseDisconnectsClients(t *testing.T) {
	hub, srv := newTestHub(t)

	conn := dial(t, srv)
	waitForClients(t, hub, 1)

	hub.Close()
	assert.Equal(t, 0, hub.ClientCount())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}
