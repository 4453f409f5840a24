package usecase_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3-lines-studio/sdui"
	"github.com/3-lines-studio/sdui/internal/adapters/cli"
	"github.com/3-lines-studio/sdui/internal/adapters/fs"
	"github.com/3-lines-studio/sdui/internal/usecase"
)

const screenJSON = `{
  "version": "1.0",
  "screen": {
    "id": "home",
    "title": "Home",
    "components": [
      {"type": "header", "id": "h1", "title": "Shop"},
      {"type": "button", "id": "b1"}
    ]
  }
}`

func newService(t *testing.T, files fstest.MapFS) (*usecase.RenderService, *bytes.Buffer) {
	t.Helper()
	var log bytes.Buffer
	engine := sdui.New(sdui.WithDefaults())
	return usecase.NewRenderService(engine, fs.NewReadOnlyFileSystem(files), cli.NewWriterOutput(&log)), &log
}

func TestRenderScreenHTMLFromFile(t *testing.T) {
	svc, log := newService(t, fstest.MapFS{"home.json": {Data: []byte(screenJSON)}})

	var stdout bytes.Buffer
	out := svc.RenderScreen(context.Background(), usecase.RenderInput{
		Path:   "home.json",
		Format: usecase.FormatHTML,
		Stdout: &stdout,
	})

	require.NoError(t, out.Error)
	assert.Equal(t, 3, out.Nodes)
	assert.Equal(t, stdout.Len(), out.Bytes)
	assert.Contains(t, stdout.String(), `data-component-type="header"`)
	assert.Contains(t, stdout.String(), `data-type="screen"`)

	// the button record is missing its title
	require.Len(t, out.Issues, 1)
	var schemaErr *sdui.SchemaError
	assert.ErrorAs(t, out.Issues[0], &schemaErr)
	assert.Contains(t, log.String(), "⚠")
}

func TestRenderScreenTreeJSON(t *testing.T) {
	svc, _ := newService(t, fstest.MapFS{"home.json": {Data: []byte(screenJSON)}})

	var stdout bytes.Buffer
	out := svc.RenderScreen(context.Background(), usecase.RenderInput{
		Path:   "home.json",
		Format: usecase.FormatTree,
		Stdout: &stdout,
	})
	require.NoError(t, out.Error)

	var tree map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &tree))
	assert.Equal(t, "screen", tree["type"])
	assert.Len(t, tree["children"], 2)
}

func TestRenderScreenVirtualFromURLToFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(screenJSON))
	}))
	defer srv.Close()

	var log bytes.Buffer
	engine := sdui.New(sdui.WithDefaults())
	svc := usecase.NewRenderService(engine, fs.NewOSFileSystem(), cli.NewWriterOutput(&log))

	dest := filepath.Join(t.TempDir(), "out", "home.vdom.json")
	out := svc.RenderScreen(context.Background(), usecase.RenderInput{
		URL:    srv.URL,
		Format: usecase.FormatVDOM,
		Out:    dest,
	})
	require.NoError(t, out.Error)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)

	var root map[string]any
	require.NoError(t, json.Unmarshal(data, &root))
	assert.Equal(t, "div", root["type"])
	assert.Equal(t, "home", root["key"])
	assert.Contains(t, log.String(), dest)
}

func TestRenderScreenErrors(t *testing.T) {
	svc, _ := newService(t, fstest.MapFS{
		"home.json":  {Data: []byte(screenJSON)},
		"empty.json": {Data: []byte(`{"version":"1.0"}`)},
		"bad.json":   {Data: []byte(`{`)},
	})
	ctx := context.Background()
	var stdout bytes.Buffer

	tests := []struct {
		name  string
		input usecase.RenderInput
		want  string
	}{
		{"no source", usecase.RenderInput{Stdout: &stdout}, "exactly one of path or url"},
		{"both sources", usecase.RenderInput{Path: "home.json", URL: "http://x", Stdout: &stdout}, "exactly one of path or url"},
		{"missing file", usecase.RenderInput{Path: "nope.json", Stdout: &stdout}, "document not found"},
		{"invalid json", usecase.RenderInput{Path: "bad.json", Stdout: &stdout}, "failed to parse"},
		{"unknown format", usecase.RenderInput{Path: "home.json", Format: "pdf", Stdout: &stdout}, `unknown format "pdf"`},
		{"no destination", usecase.RenderInput{Path: "home.json"}, "no output destination"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := svc.RenderScreen(ctx, tt.input)
			require.Error(t, out.Error)
			assert.Contains(t, out.Error.Error(), tt.want)
		})
	}

	t.Run("document without screen", func(t *testing.T) {
		out := svc.RenderScreen(ctx, usecase.RenderInput{Path: "empty.json", Format: usecase.FormatTree, Stdout: &stdout})
		assert.ErrorIs(t, out.Error, sdui.ErrNoScreen)
	})
}

func TestReadOnlyFileSystemRejectsWrites(t *testing.T) {
	svc, _ := newService(t, fstest.MapFS{"home.json": {Data: []byte(screenJSON)}})

	out := svc.RenderScreen(context.Background(), usecase.RenderInput{Path: "home.json", Out: "home.html"})
	assert.ErrorIs(t, out.Error, fs.ErrReadOnly)
}
