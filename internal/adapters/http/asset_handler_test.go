package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"

	"github.com/3-lines-studio/sdui/internal/adapters/fs"
)

func TestAssetHandler(t *testing.T) {
	files := fs.NewReadOnlyFileSystem(fstest.MapFS{
		"public/client.js": {Data: []byte(`console.log("hydrate")`)},
		"public/app.css":   {Data: []byte(`body{margin:0}`)},
		"public/raw.bin":   {Data: []byte{1, 2}},
		"secret.json":      {Data: []byte(`{}`)},
	})
	h := NewAssetHandler(files, "public")

	cases := []struct {
		path        string
		status      int
		contentType string
	}{
		{"/client.js", http.StatusOK, "application/javascript"},
		{"/app.css", http.StatusOK, "text/css; charset=utf-8"},
		{"/raw.bin", http.StatusOK, "application/octet-stream"},
		{"/missing.js", http.StatusNotFound, ""},
		{"/../secret.json", http.StatusNotFound, ""},
		{"/", http.StatusNotFound, ""},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.URL.Path = tc.path
			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			if tc.contentType != "" {
				assert.Equal(t, tc.contentType, rec.Header().Get("Content-Type"))
			}
		})
	}

	t.Run("not modified", func(t *testing.T) {
		first := httptest.NewRecorder()
		h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/client.js", nil))

		req := httptest.NewRequest(http.MethodGet, "/client.js", nil)
		req.Header.Set("If-None-Match", first.Header().Get("ETag"))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotModified, rec.Code)
	})
}
