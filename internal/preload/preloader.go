// File: internal/preload/preloader.go
package preload

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Fetcher retrieves the raw bytes behind an image locator.
type Fetcher interface {
	Fetch(ctx context.Context, locator string) ([]byte, error)
}

// Config tunes how frames are fetched.
type Config struct {
	// Concurrency caps in-flight fetches.
	Concurrency int
	// RateLimit is fetches per second. Zero or less means unlimited.
	RateLimit float64
	// FetchTimeout bounds a single fetch. Zero means no timeout; a frame that
	// never answers then keeps the gate closed.
	FetchTimeout time.Duration
	// DecodeMetadata decodes dimensions and EXIF after a fetch. A frame that
	// fails to decode counts as failed.
	DecodeMetadata bool
}

// SetDefaults fills zero values.
func (c *Config) SetDefaults() {
	if c.Concurrency <= 0 {
		c.Concurrency = 6
	}
}

// Summary describes a finished Run.
type Summary struct {
	Generation string        `json:"generation"`
	Total      int           `json:"total"`
	Loaded     int           `json:"loaded"`
	Failed     int           `json:"failed"`
	Duration   time.Duration `json:"duration"`
}

// Preloader fetches every frame of a sequence once and reports each outcome.
type Preloader struct {
	cfg     Config
	fetcher Fetcher
	logger  *zap.Logger
	limiter *rate.Limiter
}

// New creates a Preloader.
func New(cfg Config, fetcher Fetcher, logger *zap.Logger) *Preloader {
	cfg.SetDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	return &Preloader{
		cfg:     cfg,
		fetcher: fetcher,
		logger:  logger.Named("preload"),
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Run fetches frames and reports one outcome per index to reporter, then
// blocks until every fetch has finished. Failures are logged and reported, never
// returned; there are no retries. Cancelling ctx fails the fetches that have not
// completed yet.
func (p *Preloader) Run(ctx context.Context, generation string, frames []string, reporter Reporter) Summary {
	start := time.Now()
	total := len(frames)
	var loaded, failed, reported atomic.Int64

	var g errgroup.Group
	g.SetLimit(p.cfg.Concurrency)

	for i, locator := range frames {
		g.Go(func() error {
			info, err := p.load(ctx, locator)
			if err != nil {
				failed.Add(1)
				p.logger.Warn("Failed to load frame",
					zap.Int("index", i),
					zap.String("locator", locator),
					zap.Error(err),
				)
			} else {
				loaded.Add(1)
			}

			if reporter != nil && reporter.ReportFrame(generation, i, info, err) {
				n := reported.Add(1)
				p.logger.Debug("Frame resolved",
					zap.Int("index", i),
					zap.String("progress", fmt.Sprintf("%d/%d", n, total)),
				)
			}
			return nil
		})
	}
	_ = g.Wait()

	summary := Summary{
		Generation: generation,
		Total:      total,
		Loaded:     int(loaded.Load()),
		Failed:     int(failed.Load()),
		Duration:   time.Since(start),
	}
	p.logger.Info("All frames resolved",
		zap.String("generation", generation),
		zap.Int("loaded", summary.Loaded),
		zap.Int("failed", summary.Failed),
		zap.Duration("duration", summary.Duration),
	)
	return summary
}

func (p *Preloader) load(ctx context.Context, locator string) (*FrameInfo, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for fetch slot: %w", err)
	}

	fetchCtx := ctx
	if p.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, p.cfg.FetchTimeout)
		defer cancel()
	}

	data, err := p.fetcher.Fetch(fetchCtx, locator)
	if err != nil {
		return nil, err
	}

	if !p.cfg.DecodeMetadata {
		return &FrameInfo{Locator: locator, Bytes: len(data)}, nil
	}
	return DecodeFrameInfo(locator, data)
}
