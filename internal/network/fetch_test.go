// internal/network/fetch_test.go
package network

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestFetcher(t *testing.T, opts FetcherOptions) *FrameFetcher {
	t.Helper()
	cfg := NewDefaultClientConfig()
	cfg.ForceHTTP2 = false
	cfg.Logger = zaptest.NewLogger(t)
	return NewFrameFetcher(NewClient(cfg), opts, zaptest.NewLogger(t))
}

func TestNewDefaultClientConfig(t *testing.T) {
	cfg := NewDefaultClientConfig()
	assert.Equal(t, DefaultResponseHeaderTimeout, cfg.ResponseHeaderTimeout)
	assert.Equal(t, DefaultMaxConnsPerHost, cfg.MaxConnsPerHost)
	assert.Zero(t, cfg.RequestTimeout, "no overall timeout unless configured")
	assert.True(t, cfg.ForceHTTP2)
}

func TestNewHTTPTransport(t *testing.T) {
	t.Run("applies TLS override", func(t *testing.T) {
		cfg := NewDefaultClientConfig()
		cfg.IgnoreTLSErrors = true
		tr := NewHTTPTransport(cfg)
		require.NotNil(t, tr.TLSClientConfig)
		assert.True(t, tr.TLSClientConfig.InsecureSkipVerify)
	})

	t.Run("pins HTTP/1.1 when HTTP/2 is off", func(t *testing.T) {
		cfg := NewDefaultClientConfig()
		cfg.ForceHTTP2 = false
		tr := NewHTTPTransport(cfg)
		assert.Equal(t, []string{"http/1.1"}, tr.TLSClientConfig.NextProtos)
	})
}

func TestFrameFetcherHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/frame.jpg":
			assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
			_, _ = w.Write([]byte("jpeg-bytes"))
		case "/moved.jpg":
			http.Redirect(w, r, "/frame.jpg", http.StatusFound)
		case "/big.jpg":
			_, _ = w.Write(make([]byte, 64))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	fetcher := newTestFetcher(t, FetcherOptions{UserAgent: "test-agent", MaxBytes: 32})
	ctx := context.Background()

	t.Run("returns the body of a 200", func(t *testing.T) {
		body, err := fetcher.Fetch(ctx, server.URL+"/frame.jpg")
		require.NoError(t, err)
		assert.Equal(t, "jpeg-bytes", string(body))
	})

	t.Run("follows redirects", func(t *testing.T) {
		body, err := fetcher.Fetch(ctx, server.URL+"/moved.jpg")
		require.NoError(t, err)
		assert.Equal(t, "jpeg-bytes", string(body))
	})

	t.Run("reports a non-2xx status", func(t *testing.T) {
		_, err := fetcher.Fetch(ctx, server.URL+"/missing.jpg")
		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	})

	t.Run("enforces the size cap", func(t *testing.T) {
		_, err := fetcher.Fetch(ctx, server.URL+"/big.jpg")
		assert.ErrorIs(t, err, ErrImageTooLarge)
	})

	t.Run("honours cancellation", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := fetcher.Fetch(cancelled, server.URL+"/frame.jpg")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestFrameFetcherFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "01.png"), []byte("png-bytes"), 0o600))
	fetcher := newTestFetcher(t, FetcherOptions{BaseDir: dir})
	ctx := context.Background()

	t.Run("reads paths relative to the base directory", func(t *testing.T) {
		body, err := fetcher.Fetch(ctx, "01.png")
		require.NoError(t, err)
		assert.Equal(t, "png-bytes", string(body))
	})

	t.Run("reads file URLs", func(t *testing.T) {
		body, err := fetcher.Fetch(ctx, "file://"+filepath.ToSlash(filepath.Join(dir, "01.png")))
		require.NoError(t, err)
		assert.Equal(t, "png-bytes", string(body))
	})

	t.Run("fails for a missing file", func(t *testing.T) {
		_, err := fetcher.Fetch(ctx, "02.png")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
