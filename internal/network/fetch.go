package network

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// DefaultMaxImageBytes caps a single frame download.
const DefaultMaxImageBytes int64 = 16 << 20

// ErrImageTooLarge is returned when a frame exceeds the size cap.
var ErrImageTooLarge = errors.New("image exceeds size limit")

// StatusError is returned for a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

// FrameFetcher retrieves frame images by locator. http and https locators go
// over the network; file URLs and bare paths are read from disk, relative to
// BaseDir when set. It is safe for concurrent use.
type FrameFetcher struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
	baseDir   string
	logger    *zap.Logger
}

// FetcherOptions configures a FrameFetcher.
type FetcherOptions struct {
	UserAgent string
	MaxBytes  int64
	BaseDir   string
}

// NewFrameFetcher wraps client. A nil client gets the default configuration.
func NewFrameFetcher(client *http.Client, opts FetcherOptions, logger *zap.Logger) *FrameFetcher {
	if client == nil {
		client = NewClient(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxImageBytes
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	return &FrameFetcher{
		client:    client,
		userAgent: opts.UserAgent,
		maxBytes:  opts.MaxBytes,
		baseDir:   opts.BaseDir,
		logger:    logger.Named("fetch"),
	}
}

// Fetch returns the bytes behind locator.
func (f *FrameFetcher) Fetch(ctx context.Context, locator string) ([]byte, error) {
	u, err := url.Parse(locator)
	if err == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return f.fetchHTTP(ctx, locator)
		case "file":
			return f.readFile(ctx, u.Path)
		}
	}
	return f.readFile(ctx, locator)
}

func (f *FrameFetcher) fetchHTTP(ctx context.Context, locator string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "image/avif,image/webp,image/png,image/jpeg,image/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", locator, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, &StatusError{URL: locator, StatusCode: resp.StatusCode}
	}
	if resp.ContentLength > f.maxBytes {
		return nil, fmt.Errorf("GET %s: %w (%d bytes)", locator, ErrImageTooLarge, resp.ContentLength)
	}

	body, err := f.readLimited(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", locator, err)
	}
	f.logger.Debug("Fetched frame",
		zap.String("url", locator),
		zap.String("proto", resp.Proto),
		zap.Int("bytes", len(body)),
	)
	return body, nil
}

func (f *FrameFetcher) readFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.baseDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(f.baseDir, path)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening frame: %w", err)
	}
	defer file.Close()
	return f.readLimited(file)
}

func (f *FrameFetcher) readLimited(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, ErrImageTooLarge
	}
	return body, nil
}
