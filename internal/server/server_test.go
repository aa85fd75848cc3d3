package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/logging"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/testutil"
)

func newTestApp(t *testing.T, d detector.Detector, st *store.Store) *app.App {
	t.Helper()

	cfg := capture.DefaultConfig()
	cfg.FetchTimeout = 200 * time.Millisecond

	a, err := app.New(app.Config{
		Model:    testutil.Model(t),
		Detector: d,
		Source:   capture.NewSource(cfg, nil),
		Store:    st,
		Logger:   logging.Discard(),
	})
	require.NoError(t, err)
	return a
}

func serve(s http.Handler, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	s := New(Config{Logger: logging.Discard()})

	t.Run("returns 200 with JSON response", func(t *testing.T) {
		rec := serve(s, http.MethodGet, "/api/health")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var response map[string]interface{}
		require.NoError(t, jsoniter.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, "ok", response["status"])
		assert.Contains(t, response, "uptime")
	})

	t.Run("only allows GET method", func(t *testing.T) {
		for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch} {
			rec := serve(s, method, "/api/health")
			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, "method %s", method)
		}
	})
}

func TestServer_NotFound(t *testing.T) {
	s := New(Config{Logger: logging.Discard()})

	assert.Equal(t, http.StatusNotFound, serve(s, http.MethodGet, "/api/nonexistent").Code)
}

func TestServer_RoutesWithoutApp(t *testing.T) {
	s := New(Config{Logger: logging.Discard()})

	assert.Equal(t, http.StatusNotFound, serve(s, http.MethodPost, "/predict").Code)
	assert.Equal(t, http.StatusNotFound, serve(s, http.MethodGet, "/api/labels").Code)
	assert.Equal(t, http.StatusNotFound, serve(s, http.MethodGet, "/ws").Code)
}

func TestServer_HistoryRequiresStore(t *testing.T) {
	s := New(Config{App: newTestApp(t, detector.NewMockDetector(), nil), Logger: logging.Discard()})

	assert.Equal(t, http.StatusNotFound, serve(s, http.MethodGet, "/api/predictions").Code)
	assert.Equal(t, http.StatusOK, serve(s, http.MethodGet, "/api/labels").Code)
}

func TestServer_StaticFiles(t *testing.T) {
	dir := t.TempDir()

	html := "<html><body>Sign here</body></html>"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte(html), 0644))
	js := "const socket = new WebSocket('/ws');"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte(js), 0644))

	s := New(Config{StaticDir: dir, Logger: logging.Discard()})

	t.Run("serves index.html at root path", func(t *testing.T) {
		rec := serve(s, http.MethodGet, "/")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, html, rec.Body.String())
	})

	t.Run("serves static files from configured directory", func(t *testing.T) {
		rec := serve(s, http.MethodGet, "/app.js")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, js, rec.Body.String())
	})

	t.Run("returns 404 for non-existent static files", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, serve(s, http.MethodGet, "/nonexistent.html").Code)
	})

	t.Run("api routes take precedence", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve(s, http.MethodGet, "/api/health").Code)
	})
}

func TestServer_NoStaticDir(t *testing.T) {
	s := New(Config{Logger: logging.Discard()})

	assert.Equal(t, http.StatusNotFound, serve(s, http.MethodGet, "/").Code)
}

func TestServer_CORS(t *testing.T) {
	s := New(Config{Logger: logging.Discard()})

	t.Run("any origin is allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/predict", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "Content-Type")
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		assert.Less(t, rec.Code, 300)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	})
}

func TestServer_Recoverer(t *testing.T) {
	s := New(Config{Logger: logging.Discard()})
	s.router.Get("/panic", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := serve(s, http.MethodGet, "/panic")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
}

func TestNew(t *testing.T) {
	t.Run("creates server with config", func(t *testing.T) {
		s := New(Config{StaticDir: "/some/path"})

		require.NotNil(t, s)
		assert.Equal(t, "/some/path", s.config.StaticDir)
		assert.Equal(t, []string{"*"}, s.config.AllowedOrigins)
	})

	t.Run("server implements http.Handler", func(t *testing.T) {
		var _ http.Handler = New(Config{})
	})

	t.Run("shutdown before start is a no-op", func(t *testing.T) {
		assert.NoError(t, New(Config{}).Shutdown(t.Context()))
	})
}
