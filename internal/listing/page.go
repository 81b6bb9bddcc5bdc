// Package listing assembles the vehicle listing page: car details, the photo
// gallery, the 360° view and the event price estimate.
package listing

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/xkilldash9x/spinview/internal/gallery"
	"github.com/xkilldash9x/spinview/internal/preload"
	"github.com/xkilldash9x/spinview/internal/pricing"
	"github.com/xkilldash9x/spinview/internal/viewer"
)

// View selects what the media pane shows.
type View int

const (
	ViewGallery View = iota
	ViewSpin
)

func (v View) String() string {
	if v == ViewSpin {
		return "360° view"
	}
	return "gallery"
}

// Details is the descriptive part of a listing.
type Details struct {
	Model        string
	Year         int
	Mileage      string
	Price        string
	FuelType     string
	Transmission string
	SoldOut      bool
}

// Options configure a Page. Frames serve both the gallery and the 360° view.
type Options struct {
	Details  Details
	Frames   []string
	Hotspots []viewer.Hotspot
	Viewer   viewer.Config
	Pricing  pricing.Config
}

// Page holds the page state. View switching and frame replacement are safe for
// concurrent use; navigating the carousel and moving the estimator sliders
// belong to the UI goroutine.
type Page struct {
	preloader *preload.Preloader
	logger    *zap.Logger
	estimator *pricing.Estimator

	mu       sync.Mutex
	opts     Options
	carousel *gallery.Carousel
	view     View
	spin     *viewer.Viewer
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	onChange func()
}

// New validates the listing and returns a page showing the gallery.
func New(opts Options, preloader *preload.Preloader, logger *zap.Logger) (*Page, error) {
	if preloader == nil {
		return nil, fmt.Errorf("listing: preloader is required")
	}
	if len(opts.Frames) == 0 {
		return nil, fmt.Errorf("listing: %w", viewer.ErrEmptySequence)
	}
	if err := viewer.ValidateHotspots(opts.Hotspots, len(opts.Frames)); err != nil {
		return nil, fmt.Errorf("listing: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Page{
		opts:      opts,
		preloader: preloader,
		logger:    logger.Named("listing"),
		carousel:  gallery.New(opts.Frames, 0),
		estimator: pricing.NewEstimator(opts.Pricing),
	}, nil
}

// OnChange registers fn to run after each preload outcome lands in the viewer.
// It is called from preload goroutines.
func (p *Page) OnChange(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onChange = fn
}

func (p *Page) Details() Details              { return p.opts.Details }
func (p *Page) Estimator() *pricing.Estimator { return p.estimator }

// Carousel returns the photo carousel. SetFrames replaces it.
func (p *Page) Carousel() *gallery.Carousel {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.carousel
}

// View reports which media pane is showing.
func (p *Page) View() View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view
}

// Viewer returns the mounted 360° viewer, or nil in gallery view.
func (p *Page) Viewer() *viewer.Viewer {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.spin
}

// ToggleView flips between the gallery and the 360° view.
func (p *Page) ToggleView(ctx context.Context) error {
	if p.View() == ViewSpin {
		p.ShowGallery()
		return nil
	}
	return p.ShowSpin(ctx)
}

// ShowSpin mounts a fresh viewer and starts preloading its frames in the
// background. It is a no-op if the 360° view is already showing.
func (p *Page) ShowSpin(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.view == ViewSpin {
		return nil
	}

	v, err := viewer.New(p.opts.Viewer, p.opts.Frames, p.opts.Hotspots, p.logger)
	if err != nil {
		return fmt.Errorf("listing: mounting viewer: %w", err)
	}
	p.view = ViewSpin
	p.spin = v
	seq := p.startPreloadLocked(ctx)

	p.logger.Info("Switched to 360° view", zap.String("generation", seq.ID), zap.Int("frames", seq.Len()))
	return nil
}

// SetFrames replaces the listing's frames and hotspots. In the 360° view the
// preload for the old sequence is cancelled, the mounted viewer goes back to
// static on frame 0 and the new frames are preloaded. On error nothing changes.
func (p *Page) SetFrames(ctx context.Context, frames []string, hotspots []viewer.Hotspot) error {
	if len(frames) == 0 {
		return fmt.Errorf("listing: %w", viewer.ErrEmptySequence)
	}
	if err := viewer.ValidateHotspots(hotspots, len(frames)); err != nil {
		return fmt.Errorf("listing: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.view == ViewSpin {
		if err := p.spin.SetFrames(frames, hotspots); err != nil {
			return fmt.Errorf("listing: %w", err)
		}
		p.cancel()
		p.startPreloadLocked(ctx)
	}

	p.opts.Frames = append([]string(nil), frames...)
	p.opts.Hotspots = append([]viewer.Hotspot(nil), hotspots...)
	carousel := gallery.New(p.opts.Frames, 0)
	carousel.OnSelect = p.carousel.OnSelect
	p.carousel = carousel

	p.logger.Info("Frames replaced", zap.Int("frames", len(frames)), zap.Int("hotspots", len(hotspots)))
	return nil
}

// startPreloadLocked runs the preloader for the mounted viewer's current
// sequence under a new cancellable context.
func (p *Page) startPreloadLocked(ctx context.Context) viewer.Sequence {
	seq := p.spin.Sequence()
	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	reporter := &notifyingReporter{target: p.spin, notify: p.notify}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.preloader.Run(runCtx, seq.ID, seq.Frames, reporter)
	}()
	return seq
}

// ShowGallery cancels any preload in flight and unmounts the viewer.
func (p *Page) ShowGallery() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.view == ViewGallery {
		return
	}
	p.cancel()
	p.cancel = nil
	p.spin = nil
	p.view = ViewGallery
	p.logger.Info("Switched to gallery")
}

// Close returns to the gallery and waits for background preloads to stop.
func (p *Page) Close() {
	p.ShowGallery()
	p.wg.Wait()
}

func (p *Page) notify() {
	p.mu.Lock()
	fn := p.onChange
	p.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// notifyingReporter forwards outcomes to the viewer and signals the page.
type notifyingReporter struct {
	target preload.Reporter
	notify func()
}

func (r *notifyingReporter) ReportFrame(generation string, index int, info *preload.FrameInfo, err error) bool {
	counted := r.target.ReportFrame(generation, index, info, err)
	if counted {
		r.notify()
	}
	return counted
}
