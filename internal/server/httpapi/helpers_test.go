package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/dailydiet/internal/common"
	"github.com/dmitrijs2005/dailydiet/internal/logging"
	"github.com/dmitrijs2005/dailydiet/internal/server/config"
	"github.com/dmitrijs2005/dailydiet/internal/server/metrics"
	"github.com/dmitrijs2005/dailydiet/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/dailydiet/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.EndpointAddrHTTP = "127.0.0.1:0"
	cfg.ShutdownTimeout = time.Second
	return cfg
}

func newTestServer(t *testing.T, m repomanager.RepositoryManager, store Pinger) *Server {
	t.Helper()
	if m == nil {
		m = repomanager.NewInMemoryRepositoryManager()
	}
	us := services.NewUserService(nil, m)
	us.SetPasswordCost(bcrypt.MinCost)
	ds := services.NewDietService(nil, m)

	s, err := NewServer(testConfig(), logging.Nop(), us, ds, store, metrics.New())
	require.NoError(t, err)
	return s
}

// client is a browser stand-in holding at most one session cookie.
type client struct {
	t       *testing.T
	h       http.Handler
	session string
}

func newClient(t *testing.T, h http.Handler) *client {
	return &client{t: t, h: h}
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(c.t, err)
		r = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, r)
	if r != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: common.SessionCookieName, Value: c.session})
	}

	w := httptest.NewRecorder()
	c.h.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		if ck.Name == common.SessionCookieName {
			c.session = ck.Value
		}
	}
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type dietJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	DateHour    string `json:"date_hour"`
	IsOnDiet    bool   `json:"is_on_diet"`
	CreatedAt   string `json:"created_at"`
}

type dietsResponse struct {
	Diets []dietJSON `json:"diets"`
}

type statusResponse struct {
	TotalOnDiet []dietJSON `json:"totalOnDiet"`
}

type errorResponse struct {
	Error string `json:"error"`
}

var errPing = errors.New("connection refused")

func failingPinger() Pinger {
	return PingFunc(func(context.Context) error { return errPing })
}

func newRecorder() *httptest.ResponseRecorder {
	return httptest.NewRecorder()
}
