package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(m *Metrics) *gin.Engine {
	r := gin.New()
	r.Use(m.Middleware("/metrics"))
	r.GET("/diets/:id", func(c *gin.Context) { c.Status(http.StatusTeapot) })
	r.GET("/metrics", gin.WrapH(m.Handler()))
	return r
}

func do(r http.Handler, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestMiddleware_UsesRouteTemplate(t *testing.T) {
	m := New()
	r := newEngine(m)

	do(r, http.MethodGet, "/diets/1")
	do(r, http.MethodGet, "/diets/2")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/diets/:id", "418")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.inFlight))
}

func TestMiddleware_Unmatched(t *testing.T) {
	m := New()
	r := newEngine(m)

	do(r, http.MethodGet, "/nope")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "unmatched", "404")))
}

func TestHandler_ExposesCollectorsAndSkipsItself(t *testing.T) {
	m := New()
	r := newEngine(m)

	do(r, http.MethodGet, "/diets/1")
	w := do(r, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "dailydiet_http_requests_total")
	assert.Contains(t, body, "dailydiet_http_request_duration_seconds")
	assert.Contains(t, body, "dailydiet_http_inflight_requests")
	assert.False(t, strings.Contains(body, `path="/metrics"`))
}
