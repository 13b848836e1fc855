package serve_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/titpetric/stylesc/serve"
)

func TestMiddlewarePassthrough(t *testing.T) {
	mockFS := fstest.MapFS{
		"style.style": &fstest.MapFile{Data: []byte("body { color: red; }")},
	}

	middleware := serve.NewMiddleware("/assets/css", mockFS)

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("next handler"))
	})

	handler := middleware(next)

	req := httptest.NewRequest(http.MethodGet, "/assets/css/style.css", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.True(t, nextCalled)
	require.Equal(t, http.StatusTeapot, w.Code)
	require.Equal(t, "next handler", w.Body.String())
}

func TestMiddlewareCompilesVariables(t *testing.T) {
	mockFS := fstest.MapFS{
		"style.style": &fstest.MapFile{Data: []byte(`
$primary: #0066cc;
body {
  color: $primary;
}
`)},
	}

	middleware := serve.NewMiddleware("/assets/css", mockFS)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	handler := middleware(next)

	req := httptest.NewRequest(http.MethodGet, "/assets/css/style.style", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "text/css; charset=utf-8", w.Header().Get("Content-Type"))
	require.Equal(t, "public, max-age=3600", w.Header().Get("Cache-Control"))
	require.Contains(t, w.Body.String(), "body")
}

func TestMiddlewareNotFound(t *testing.T) {
	mockFS := fstest.MapFS{}

	middleware := serve.NewMiddleware("/assets/css", mockFS)

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	})

	handler := middleware(next)

	req := httptest.NewRequest(http.MethodGet, "/assets/css/missing.style", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.False(t, nextCalled)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestMiddlewareHEADRequestHasNoBody(t *testing.T) {
	mockFS := fstest.MapFS{
		"style.style": &fstest.MapFile{Data: []byte(".a { color: red; }")},
	}

	middleware := serve.NewMiddleware("/assets/css", mockFS)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	handler := middleware(next)

	req := httptest.NewRequest(http.MethodHead, "/assets/css/style.style", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "", w.Body.String())
}

func TestMiddlewareNestedSelectors(t *testing.T) {
	mockFS := fstest.MapFS{
		"nested.style": &fstest.MapFile{Data: []byte(`
.container {
  background: white;
  .header {
    color: blue;
  }
}
`)},
	}

	middleware := serve.NewMiddleware("/css", mockFS)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	handler := middleware(next)

	req := httptest.NewRequest(http.MethodGet, "/css/nested.style", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	css := w.Body.String()
	require.Contains(t, css, ".container")
	require.Contains(t, css, ".container .header")
}
