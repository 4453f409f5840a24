package http

import (
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/3-lines-studio/sdui/internal/adapters/fs"
	"github.com/3-lines-studio/sdui/internal/core"
)

var contentTypes = map[string]string{
	".css":   "text/css; charset=utf-8",
	".js":    "application/javascript",
	".mjs":   "application/javascript",
	".json":  "application/json",
	".map":   "application/json",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".gif":   "image/gif",
	".svg":   "image/svg+xml",
	".webp":  "image/webp",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".ico":   "image/x-icon",
}

func contentType(name string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// AssetHandler serves the client script, stylesheet and images referenced
// by the screen page from root inside files.
type AssetHandler struct {
	files fs.FileSystem
	root  string
}

func NewAssetHandler(files fs.FileSystem, root string) http.Handler {
	return &AssetHandler{
		files: files,
		root:  root,
	}
}

func (h *AssetHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	name := strings.TrimPrefix(req.URL.Path, "/")
	if name == "" || strings.Contains(name, "..") {
		http.NotFound(w, req)
		return
	}

	full := path.Join(h.root, name)
	if !h.files.FileExists(full) {
		http.NotFound(w, req)
		return
	}

	data, err := h.files.ReadFile(full)
	if err != nil {
		http.NotFound(w, req)
		return
	}

	etag := core.ContentETag(data)
	w.Header().Set("Content-Type", contentType(name))
	w.Header().Set("ETag", etag)
	if req.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	_, _ = w.Write(data)
}
