package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3-lines-studio/sdui/internal/core"
)

func TestLoaderFetch(t *testing.T) {
	t.Run("decodes the document", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			_, _ = w.Write([]byte(`{"version":"2","screen":{"id":"home","title":"Home","components":[]}}`))
		}))
		defer srv.Close()

		doc, err := NewLoader(nil).Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "2", doc.Version)
		assert.Equal(t, "home", doc.Screen.ID)
	})

	t.Run("non-success status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := NewLoader(srv.Client()).Fetch(context.Background(), srv.URL)
		var statusErr *core.StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusServiceUnavailable, statusErr.Code)
		assert.EqualError(t, err, "server responded with status 503")
	})

	t.Run("oversized document", func(t *testing.T) {
		body := `{"screen":{"id":"home","title":"Home","components":[]}}`
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))
		defer srv.Close()

		l := NewLoader(nil)
		l.maxSize = int64(len(body))
		_, err := l.Fetch(context.Background(), srv.URL)
		require.NoError(t, err, "a document of exactly the limit is accepted")

		l.maxSize = int64(len(body) - 1)
		_, err = l.Fetch(context.Background(), srv.URL)
		assert.ErrorIs(t, err, core.ErrDocumentTooLarge)
		assert.ErrorContains(t, err, "document too large")
	})

	t.Run("invalid body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		}))
		defer srv.Close()

		_, err := NewLoader(nil).Fetch(context.Background(), srv.URL)
		assert.ErrorContains(t, err, "invalid screen document")
	})

	t.Run("transport error", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := NewLoader(nil).Fetch(context.Background(), url)
		assert.ErrorContains(t, err, "failed to fetch")
	})

	t.Run("invalid url", func(t *testing.T) {
		_, err := NewLoader(nil).Fetch(context.Background(), "://nope")
		assert.ErrorContains(t, err, "invalid document url")
	})
}
