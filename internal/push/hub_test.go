package push

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/shenikar/road_hazard_system/internal/metrics"
	"github.com/shenikar/road_hazard_system/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) (*Hub, string) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	hub := NewHub(logger, metrics.New())

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/hubs/alerts", hub.ServeWS)
	srv := httptest.NewServer(router)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/hubs/alerts"
}

func dial(t *testing.T, url string) *websocket.Conn {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	require.Eventually(t, func() bool { return hub.ClientCount() == n }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_BroadcastReachesAllSubscribers(t *testing.T) {
	hub, url := newTestHub(t)
	first := dial(t, url)
	second := dial(t, url)
	waitForClients(t, hub, 2)

	event := models.HazardEvent{ID: uuid.New(), EventType: models.EventTypeAccident, Status: models.EventStatusActive}
	require.NoError(t, hub.Broadcast(models.Notification{Type: models.NotificationEventCreated, Event: event}))

	for _, conn := range []*websocket.Conn{first, second} {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var got models.Notification
		require.NoError(t, conn.ReadJSON(&got))
		assert.Equal(t, models.NotificationEventCreated, got.Type)
		assert.Equal(t, event.ID, got.Event.ID)
	}
}

func TestHub_DisconnectUnregisters(t *testing.T) {
	hub, url := newTestHub(t)
	conn := dial(t, url)
	waitForClients(t, hub, 1)

	require.NoError(t, conn.Close())
	waitForClients(t, hub, 0)
}

func TestLocalPublisher_PublishesToHub(t *testing.T) {
	hub, url := newTestHub(t)
	conn := dial(t, url)
	waitForClients(t, hub, 1)

	pub := NewLocalPublisher(hub)
	event := models.HazardEvent{ID: uuid.New(), EventType: models.EventTypePothole}
	require.NoError(t, pub.Publish(context.Background(), models.Notification{Type: models.NotificationEventUpdated, Event: event}))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got models.Notification
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, models.NotificationEventUpdated, got.Type)
	assert.Equal(t, event.ID, got.Event.ID)
}

func TestRelay_RelaysValidPayloadOnly(t *testing.T) {
	hub, url := newTestHub(t)
	conn := dial(t, url)
	waitForClients(t, hub, 1)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	relay := NewRelay(nil, hub, logger)

	relay.relay("not json")
	id := uuid.New()
	relay.relay(`{"type":"EventUpdated","event":{"id":"` + id.String() + `","eventType":"POLICE"}}`)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got models.Notification
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, id, got.Event.ID)
	assert.Equal(t, models.EventTypePolice, got.Event.EventType)
}
