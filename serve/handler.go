// Package serve exposes the compiler as an http.Handler/middleware pair,
// adapted from the teacher's handler.go/middleware.go (which compiled
// .less on request via dst.Parser + renderer.Renderer). The compiler
// underneath is now the typed parser/expander/extend/cssize/emitter
// pipeline (via compile.CompileFile) instead of the teacher's line-based
// dst parser, and the matched extension is sourceExtension (".style")
// instead of ".less".
package serve

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/titpetric/stylesc/compile"
)

const sourceExtension = ".style"

// Handler compiles and serves source files found under fileSystem,
// stripping pathPrefix from the request URL before resolving the file.
type Handler struct {
	pathPrefix   string
	fileSystem   fs.FS
	includePaths []string
}

// NewHandler creates a handler serving fileSystem under pathPrefix
// (e.g. "/assets/css"). includePaths are extra @import search roots
// forwarded to compile.Options.IncludePaths.
func NewHandler(fileSystem fs.FS, pathPrefix string, includePaths ...string) http.Handler {
	return &Handler{
		pathPrefix:   pathPrefix,
		fileSystem:   fileSystem,
		includePaths: includePaths,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.pathPrefix != "" && !strings.HasPrefix(r.URL.Path, h.pathPrefix) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	if !strings.HasSuffix(r.URL.Path, sourceExtension) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	stylePath := strings.TrimPrefix(r.URL.Path, h.pathPrefix)
	if h.pathPrefix != "/" {
		stylePath = strings.TrimPrefix(stylePath, "/")
	}

	info, err := fs.Stat(h.fileSystem, stylePath)
	if err != nil || info.IsDir() {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	css, err := compile.CompileFile(h.fileSystem, stylePath, compile.Options{
		IncludePaths: h.includePaths,
	})
	if err != nil {
		http.Error(w, "Compilation Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")

	if r.Method != http.MethodHead {
		w.Write([]byte(css))
	}
}
