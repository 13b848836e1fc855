package serve

import (
	"io/fs"
	"net/http"
	"strings"
)

// NewMiddleware builds an http middleware that intercepts GET/HEAD requests
// for sourceExtension files under basePath, compiles them from fileSystem,
// and responds with the resulting CSS; any other request passes through to
// the wrapped handler.
func NewMiddleware(basePath string, fileSystem fs.FS, includePaths ...string) func(http.Handler) http.Handler {
	handler := NewHandler(fileSystem, basePath, includePaths...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}
			if !strings.HasPrefix(r.URL.Path, basePath) {
				next.ServeHTTP(w, r)
				return
			}
			if !strings.HasSuffix(r.URL.Path, sourceExtension) {
				next.ServeHTTP(w, r)
				return
			}
			handler.ServeHTTP(w, r)
		})
	}
}
