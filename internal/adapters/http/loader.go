package http

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/3-lines-studio/sdui/internal/core"
)

const maxDocumentSize = 8 << 20

type Loader struct {
	client  *http.Client
	maxSize int64
}

func NewLoader(client *http.Client) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{client: client, maxSize: maxDocumentSize}
}

// Fetch issues a single GET for url and decodes the screen document.
func (l *Loader) Fetch(ctx context.Context, url string) (*core.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid document url %q: %w", url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &core.StatusError{URL: url, Code: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, l.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	if int64(len(data)) > l.maxSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", core.ErrDocumentTooLarge, url, l.maxSize)
	}
	return core.ParseDocument(data)
}
