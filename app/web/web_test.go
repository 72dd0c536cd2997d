package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/wagetrack/app/store"
)

var testNow = time.Date(2024, 5, 17, 10, 30, 0, 0, time.UTC)

// prepServer makes a server backed by a fresh sqlite store
func prepServer(t *testing.T, cfg Config) (*Server, *store.SQLiteStore) {
	t.Helper()
	st, err := store.NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	cfg.Store = st
	if cfg.Version == "" {
		cfg.Version = "test"
	}
	if cfg.PostLimit == 0 {
		cfg.PostLimit = 1000
	}
	srv, err := New(cfg)
	require.NoError(t, err)
	srv.now = func() time.Time { return testNow }
	return srv, st
}

// withConn runs fn on an acquired store connection
func withConn(t *testing.T, st *store.SQLiteStore, fn func(conn *store.Conn)) {
	t.Helper()
	conn, err := st.Acquire(context.Background())
	require.NoError(t, err)
	defer conn.Close()
	fn(conn)
}

func addWorker(t *testing.T, st *store.SQLiteStore, w store.Worker) int64 {
	t.Helper()
	var id int64
	withConn(t, st, func(conn *store.Conn) {
		var err error
		id, err = conn.AddWorker(context.Background(), w)
		require.NoError(t, err)
	})
	return id
}

func ptr[T any](v T) *T { return &v }

func itoa(v int64) string { return strconv.FormatInt(v, 10) }

func TestNew(t *testing.T) {
	t.Run("requires store", func(t *testing.T) {
		srv, err := New(Config{})
		require.Error(t, err)
		assert.Nil(t, srv)
		assert.Contains(t, err.Error(), "Store is required")
	})

	t.Run("parses all pages", func(t *testing.T) {
		srv, _ := prepServer(t, Config{})
		for _, page := range pages {
			assert.Contains(t, srv.templates, page)
		}
		assert.NotNil(t, srv.postLimiter)
		assert.NotNil(t, srv.csrfProtection)
	})

	t.Run("default post limit", func(t *testing.T) {
		st, err := store.NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "test.db"))
		require.NoError(t, err)
		defer st.Close()
		srv, err := New(Config{Store: st})
		require.NoError(t, err)
		assert.InDelta(t, 10.0, srv.postLimiter.GetMax(), 1e-9)
	})
}

func TestServer_handlerBaseURL(t *testing.T) {
	srv, _ := prepServer(t, Config{BaseURL: "/wages"})
	h := srv.handler()

	t.Run("redirect without trailing slash", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest("GET", "/wages", http.NoBody))
		assert.Equal(t, http.StatusMovedPermanently, w.Code)
		assert.Equal(t, "/wages/", w.Header().Get("Location"))
	})

	t.Run("index under base url", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest("GET", "/wages/", http.NoBody))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `href="/wages/add_worker"`)
		assert.Contains(t, w.Body.String(), `href="/wages/static/style.css"`)
	})

	t.Run("redirect after post keeps base url", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/wages/add_worker", strings.NewReader("name=Zed"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/wages/", w.Header().Get("Location"))
	})

	t.Run("root is not served", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest("GET", "/", http.NoBody))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestServer_routesMisc(t *testing.T) {
	srv, _ := prepServer(t, Config{})
	h := srv.routes()

	t.Run("ping", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest("GET", "/ping", http.NoBody))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "pong", w.Body.String())
	})

	t.Run("static css", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest("GET", "/static/style.css", http.NoBody))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/css")
	})

	t.Run("app info headers", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest("GET", "/add_worker", http.NoBody))
		assert.Equal(t, "wagetrack", w.Header().Get("App-Name"))
		assert.Equal(t, "test", w.Header().Get("App-Version"))
	})

	t.Run("unknown path", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest("GET", "/no/such/page", http.NoBody))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("wrong method", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest("POST", "/report/1", http.NoBody))
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestServer_renderMissingTemplate(t *testing.T) {
	srv, _ := prepServer(t, Config{})
	w := httptest.NewRecorder()
	srv.render(w, "nope.html", srv.newTemplateData("x"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Template not found")
}

func TestTemplateHelpers(t *testing.T) {
	assert.Equal(t, "280.00", money(280))
	assert.Equal(t, "-30.50", money(-30.5))
	assert.Equal(t, "13", num(13))
	assert.Equal(t, "6.5", num(6.5))

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil int", (*int64)(nil), "-"},
		{"int", ptr(int64(30)), "30"},
		{"nil float", (*float64)(nil), "-"},
		{"float", ptr(20.5), "20.5"},
		{"nil string", (*string)(nil), "-"},
		{"empty string", ptr(""), "-"},
		{"string", ptr("alice@x.com"), "alice@x.com"},
		{"unsupported", 42, "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, optional(tt.in))
		})
	}
}
