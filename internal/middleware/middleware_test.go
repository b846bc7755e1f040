package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/galeri/internal/ctxkeys"
	"github.com/templui/galeri/internal/model"
)

func ok(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func TestRateLimit(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute)
	t.Cleanup(limiter.Stop)
	limited := RateLimit(limiter)(ok)

	call := func(ip string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		r.Header.Set("X-Forwarded-For", ip+", 10.0.0.1")
		rec := httptest.NewRecorder()
		limited(rec, r)
		return rec
	}

	assert.Equal(t, http.StatusNoContent, call("1.1.1.1").Code)
	assert.Equal(t, http.StatusNoContent, call("1.1.1.1").Code)

	rec := call("1.1.1.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusNoContent, call("2.2.2.2").Code, "limits are per client")
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	limiter.Stop()
	assert.NotPanics(t, limiter.Stop)

	select {
	case <-limiter.stop:
	default:
		t.Fatal("stop channel still open")
	}
}

func TestGetClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.7:5555"
	assert.Equal(t, "192.0.2.7", getClientIP(r))

	r.Header.Set("X-Real-IP", " 198.51.100.2 ")
	assert.Equal(t, "198.51.100.2", getClientIP(r))
}

func TestRequireAuth(t *testing.T) {
	protected := RequireAuth(ok)

	rec := httptest.NewRecorder()
	protected(rec, httptest.NewRequest(http.MethodPost, "/albums", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth/login", rec.Header().Get("Location"))

	r := httptest.NewRequest(http.MethodPost, "/albums", nil)
	r.Header.Set("Accept", "application/json")
	rec = httptest.NewRecorder()
	protected(rec, r)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	r = httptest.NewRequest(http.MethodPost, "/albums", nil)
	r.Header.Set("HX-Request", "true")
	rec = httptest.NewRecorder()
	protected(rec, r)
	assert.Equal(t, "/auth/login", rec.Header().Get("HX-Redirect"))

	r = httptest.NewRequest(http.MethodPost, "/albums", nil)
	r = r.WithContext(ctxkeys.WithUser(r.Context(), &model.User{ID: 1}))
	rec = httptest.NewRecorder()
	protected(rec, r)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireGuest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	r = r.WithContext(ctxkeys.WithUser(r.Context(), &model.User{ID: 1}))
	rec := httptest.NewRecorder()

	RequireGuest(ok)(rec, r)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestMaxBodySize(t *testing.T) {
	var readErr error
	h := MaxBodySize(4)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("1234")))
	require.NoError(t, readErr)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("12345")))
	var tooLarge *http.MaxBytesError
	assert.True(t, errors.As(readErr, &tooLarge))
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(ok), mark("first"), mark("second"), mark("third"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestRequestLogging_UsesRoutePattern(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	mux := http.NewServeMux()
	mux.HandleFunc("GET /albums/{album}", ok)
	mux.HandleFunc("GET /storage/{path...}", ok)
	h := RequestLogging(mux)(mux)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/albums/some-token", nil))

	var line struct {
		Route  string `json:"route"`
		Status int    `json:"status"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "GET /albums/{album}", line.Route)
	assert.Equal(t, http.StatusNoContent, line.Status)

	buf.Reset()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/storage/albums/1/a.jpg", nil))
	assert.Zero(t, buf.Len(), "blob downloads are not logged")
}
