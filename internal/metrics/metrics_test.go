package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestGinMiddleware_CountsRequests(t *testing.T) {
	m := New()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(m.GinMiddleware())
	router.GET("/api/v1/events", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/events", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET", "/api/v1/events", "200")))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "road_hazard_http_requests_total")
}

func TestNew_IndependentRegistries(t *testing.T) {
	a := New()
	b := New()
	a.Reconfirmations.Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.Reconfirmations))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Reconfirmations))
}
