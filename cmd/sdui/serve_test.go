package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3-lines-studio/sdui"
	"github.com/3-lines-studio/sdui/internal/config"
)

func newTestServer(t *testing.T, c config.Config) (*httptest.Server, *sdui.Engine) {
	t.Helper()
	metrics := sdui.NewMetrics()
	engine := sdui.New(sdui.WithDefaults(), sdui.WithRecorder(metrics))
	source := newSource(engine, c)
	require.NoError(t, source.load(context.Background()))

	srv := httptest.NewServer(newRouter(engine, metrics, source, c, nil))
	t.Cleanup(srv.Close)
	return srv, engine
}

func TestServeDemoDocument(t *testing.T) {
	srv, engine := newTestServer(t, config.Config{})

	require.NotNil(t, engine.Tree())
	assert.Equal(t, "home", engine.RootNode().Props["id"])

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
}

func TestServeRoutes(t *testing.T) {
	srv, _ := newTestServer(t, config.Config{})

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/tree")
	require.NoError(t, err)
	var tree map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tree))
	resp.Body.Close()
	assert.Equal(t, "screen", tree["type"])

	resp, err = http.Post(srv.URL+"/reload", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	buf := new(bytes.Buffer)
	_, _ = buf.ReadFrom(resp.Body)
	assert.Contains(t, buf.String(), "sdui_nodes_rendered_total")
}

func TestServeFromURLSource(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"version":"1","screen":{"id":"remote","title":"Remote","components":[]}}`))
	}))
	defer upstream.Close()

	_, engine := newTestServer(t, config.Config{Source: upstream.URL, LoadTimeout: time.Second})
	assert.Equal(t, "remote", engine.RootNode().Props["id"])
}

func TestServeMissingFileSource(t *testing.T) {
	engine := sdui.New()
	source := newSource(engine, config.Config{Source: "does-not-exist.json"})
	err := source.load(context.Background())
	assert.ErrorContains(t, err, "failed to read does-not-exist.json")
}

func TestServeAssets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "client.js"), []byte("hydrate()"), 0o644))

	srv, _ := newTestServer(t, config.Config{AssetsDir: dir, ScriptSrc: "/assets/client.js"})

	resp, err := http.Get(srv.URL + "/assets/client.js")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/javascript", resp.Header.Get("Content-Type"))

	page, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer page.Body.Close()
	body := new(bytes.Buffer)
	_, _ = body.ReadFrom(page.Body)
	assert.Contains(t, body.String(), `<script src="/assets/client.js"`)
}
