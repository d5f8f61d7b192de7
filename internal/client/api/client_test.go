package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/road_hazard_system/internal/cipher"
	"github.com/shenikar/road_hazard_system/internal/config"
	"github.com/shenikar/road_hazard_system/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "integration-secret"

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return logger
}

// newEncryptedServer поднимает gin с cipher.Middleware, как на сервере
func newEncryptedServer(t *testing.T, register func(r *gin.Engine)) *httptest.Server {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(cipher.Middleware(cipher.New(testSecret), true, newTestLogger()))
	register(router)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(serverURL string) *Client {
	return NewClient(&config.ClientConfig{
		ServerURL:        serverURL,
		APIKey:           "client-key",
		EncryptionKey:    testSecret,
		EnableEncryption: true,
		RequestTimeout:   2 * time.Second,
	}, newTestLogger())
}

func TestSubmitReport_EncryptedRoundTrip(t *testing.T) {
	reportID := uuid.New()
	srv := newEncryptedServer(t, func(r *gin.Engine) {
		r.POST("/api/v1/reports", func(c *gin.Context) {
			assert.Equal(t, "client-key", c.GetHeader("X-API-Key"))

			var report models.Report
			require.NoError(t, c.ShouldBindJSON(&report))
			assert.Equal(t, "pothole here", report.RawText)
			assert.Equal(t, 55.75, report.Latitude)

			c.JSON(http.StatusOK, gin.H{"message": "Report received", "reportId": reportID})
		})
	})

	client := newTestClient(srv.URL)
	id, err := client.SubmitReport(context.Background(), models.Report{
		RawText: "pothole here", Latitude: 55.75, Longitude: 37.61, Timestamp: time.Now(),
	})

	require.NoError(t, err)
	assert.Equal(t, reportID, id)
}

func TestSubmitReport_BodyIsEnvelopedOnTheWire(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		assert.Equal(t, byte('"'), raw[0])
		assert.NotContains(t, string(raw), "rawText")
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.SubmitReport(context.Background(), models.Report{RawText: "crash"})

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
}

func TestListEvents(t *testing.T) {
	srv := newEncryptedServer(t, func(r *gin.Engine) {
		r.GET("/api/v1/events", func(c *gin.Context) {
			c.JSON(http.StatusOK, []models.HazardEvent{
				{ID: uuid.New(), EventType: models.EventTypePolice, Status: models.EventStatusActive},
				{ID: uuid.New(), EventType: models.EventTypeTraffic, Status: models.EventStatusActive},
			})
		})
	})

	events, err := newTestClient(srv.URL).ListEvents(context.Background())

	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, models.EventTypePolice, events[0].EventType)
}

func TestReconfirm(t *testing.T) {
	eventID := uuid.New()
	srv := newEncryptedServer(t, func(r *gin.Engine) {
		r.POST("/api/v1/events/:id/reconfirm", func(c *gin.Context) {
			assert.Equal(t, eventID.String(), c.Param("id"))
			var body reconfirmRequest
			require.NoError(t, c.ShouldBindJSON(&body))
			require.NotNil(t, body.DistanceMeters)
			assert.Equal(t, 120.0, *body.DistanceMeters)
			c.Status(http.StatusAccepted)
		})
	})

	err := newTestClient(srv.URL).Reconfirm(context.Background(), eventID, 120)
	require.NoError(t, err)
}

func TestReconfirm_NotFound(t *testing.T) {
	srv := newEncryptedServer(t, func(r *gin.Engine) {
		r.POST("/api/v1/events/:id/reconfirm", func(c *gin.Context) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		})
	})

	err := newTestClient(srv.URL).Reconfirm(context.Background(), uuid.New(), 10)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "event not found")
}

func TestPushURL(t *testing.T) {
	assert.Equal(t, "ws://localhost:8080/hubs/alerts", newTestClient("http://localhost:8080/").PushURL())
	assert.Equal(t, "wss://api.example.com/hubs/alerts", newTestClient("https://api.example.com").PushURL())
}
