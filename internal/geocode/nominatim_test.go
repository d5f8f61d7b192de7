package geocode

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return logger
}

func TestReverseGeocode_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "55.75", r.URL.Query().Get("lat"))
		assert.Equal(t, "37.61", r.URL.Query().Get("lon"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"display_name":"Tverskaya Street, Moscow, Russia","address":{"road":"Tverskaya Street"}}`))
	}))
	defer srv.Close()

	client := NewNominatimClient(srv.URL+"/", time.Second, 100, newTestLogger())

	address, err := client.ReverseGeocode(context.Background(), 55.75, 37.61)
	require.NoError(t, err)
	assert.Equal(t, "Tverskaya Street, Moscow, Russia", address)
}

func TestReverseGeocode_UnableToGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"Unable to geocode"}`))
	}))
	defer srv.Close()

	client := NewNominatimClient(srv.URL, time.Second, 100, newTestLogger())

	address, err := client.ReverseGeocode(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Empty(t, address)
}

func TestReverseGeocode_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewNominatimClient(srv.URL, time.Second, 100, newTestLogger())

	_, err := client.ReverseGeocode(context.Background(), 1, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestReverseGeocode_RateLimitedReturnsImmediately(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"display_name":"Somewhere"}`))
	}))
	defer srv.Close()

	// 1 запрос в секунду: второй вызов не ждет токен
	client := NewNominatimClient(srv.URL, time.Second, 1, newTestLogger())

	_, err := client.ReverseGeocode(context.Background(), 1, 1)
	require.NoError(t, err)

	start := time.Now()
	_, err = client.ReverseGeocode(context.Background(), 1, 1)
	require.ErrorIs(t, err, ErrRateLimited)
	assert.Less(t, time.Since(start), 100*time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}
