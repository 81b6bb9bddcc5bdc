// File: cmd/components.go
package cmd

import (
	"go.uber.org/zap"

	"github.com/xkilldash9x/spinview/internal/config"
	"github.com/xkilldash9x/spinview/internal/listing"
	"github.com/xkilldash9x/spinview/internal/network"
	"github.com/xkilldash9x/spinview/internal/preload"
	"github.com/xkilldash9x/spinview/internal/pricing"
	"github.com/xkilldash9x/spinview/internal/viewer"
)

// newFrameFetcher builds the HTTP/file fetcher from the network and preload sections.
func newFrameFetcher(cfg config.Interface, logger *zap.Logger) *network.FrameFetcher {
	netCfg := cfg.Network()

	clientCfg := network.NewDefaultClientConfig()
	clientCfg.RequestTimeout = netCfg.Timeout
	if netCfg.DialTimeout > 0 {
		clientCfg.DialTimeout = netCfg.DialTimeout
	}
	if netCfg.TLSHandshakeTimeout > 0 {
		clientCfg.TLSHandshakeTimeout = netCfg.TLSHandshakeTimeout
	}
	if netCfg.ResponseHeaderTimeout > 0 {
		clientCfg.ResponseHeaderTimeout = netCfg.ResponseHeaderTimeout
	}
	if netCfg.MaxConnsPerHost > 0 {
		clientCfg.MaxConnsPerHost = netCfg.MaxConnsPerHost
	}
	clientCfg.ForceHTTP2 = netCfg.ForceHTTP2
	clientCfg.IgnoreTLSErrors = netCfg.IgnoreTLSErrors
	if netCfg.UserAgent != "" {
		clientCfg.UserAgent = netCfg.UserAgent
	}
	clientCfg.Logger = logger

	return network.NewFrameFetcher(network.NewClient(clientCfg), network.FetcherOptions{
		UserAgent: clientCfg.UserAgent,
		MaxBytes:  cfg.Preload().MaxImageBytes,
		BaseDir:   cfg.Listing().BaseDir,
	}, logger)
}

func newPreloader(cfg config.Interface, fetcher preload.Fetcher, logger *zap.Logger) *preload.Preloader {
	p := cfg.Preload()
	return preload.New(preload.Config{
		Concurrency:    p.Concurrency,
		RateLimit:      p.RateLimit,
		FetchTimeout:   p.FetchTimeout,
		DecodeMetadata: p.DecodeMetadata,
	}, fetcher, logger)
}

func viewerConfig(cfg config.Interface) viewer.Config {
	v := cfg.Viewer()
	return viewer.Config{
		HotspotTolerance: v.HotspotTolerance,
		Sensitivity:      v.Sensitivity,
		Debug:            v.Debug,
	}
}

func viewerHotspots(in []config.HotspotConfig) []viewer.Hotspot {
	out := make([]viewer.Hotspot, 0, len(in))
	for _, h := range in {
		out = append(out, viewer.Hotspot{
			ID:          h.ID,
			X:           h.X,
			Y:           h.Y,
			Frame:       h.Frame,
			Title:       h.Title,
			Description: h.Description,
		})
	}
	return out
}

func pricingConfig(p config.PricingConfig) pricing.Config {
	return pricing.Config{
		BaseRate:       p.BaseRate,
		CurrencySymbol: p.CurrencySymbol,
		Invites:        pricing.Range{Min: p.Invites.Min, Max: p.Invites.Max, Default: p.Invites.Default},
		Months:         pricing.Range{Min: p.Months.Min, Max: p.Months.Max, Default: p.Months.Default},
	}
}

// newListingPage wires the page with a preloader over fetcher.
func newListingPage(cfg config.Interface, fetcher preload.Fetcher, logger *zap.Logger) (*listing.Page, error) {
	l := cfg.Listing()
	return listing.New(listing.Options{
		Details: listing.Details{
			Model:        l.Model,
			Year:         l.Year,
			Mileage:      l.Mileage,
			Price:        l.Price,
			FuelType:     l.FuelType,
			Transmission: l.Transmission,
			SoldOut:      l.SoldOut,
		},
		Frames:   l.Frames,
		Hotspots: viewerHotspots(l.Hotspots),
		Viewer:   viewerConfig(cfg),
		Pricing:  pricingConfig(cfg.Pricing()),
	}, newPreloader(cfg, fetcher, logger), logger)
}
