// Package pricing computes the event price estimate shown under the listing.
package pricing

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Range is an inclusive slider range with its starting value.
type Range struct {
	Min     int
	Max     int
	Default int
}

// Clamp pins v into the range.
func (r Range) Clamp(v int) int {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Percent is the slider fill for v, in [0, 100].
func (r Range) Percent(v int) float64 {
	if r.Max <= r.Min {
		return 100
	}
	return float64(r.Clamp(v)-r.Min) / float64(r.Max-r.Min) * 100
}

// Config parameterises an Estimator.
type Config struct {
	BaseRate       float64
	CurrencySymbol string
	Invites        Range
	Months         Range
}

// DefaultConfig is 150 per invite per month, 10-500 invites and 1-24 months.
func DefaultConfig() Config {
	return Config{
		BaseRate:       150,
		CurrencySymbol: "₹",
		Invites:        Range{Min: 10, Max: 500, Default: 50},
		Months:         Range{Min: 1, Max: 24, Default: 12},
	}
}

// Estimator holds the two slider positions. It is not safe for concurrent use.
type Estimator struct {
	cfg     Config
	invites int
	months  int
	printer *message.Printer
}

// NewEstimator starts both sliders at their defaults.
func NewEstimator(cfg Config) *Estimator {
	return &Estimator{
		cfg:     cfg,
		invites: cfg.Invites.Clamp(cfg.Invites.Default),
		months:  cfg.Months.Clamp(cfg.Months.Default),
		printer: message.NewPrinter(language.English),
	}
}

func (e *Estimator) Invites() int { return e.invites }
func (e *Estimator) Months() int  { return e.months }

// SetInvites clamps n into the invite range and returns the stored value.
func (e *Estimator) SetInvites(n int) int {
	e.invites = e.cfg.Invites.Clamp(n)
	return e.invites
}

// SetMonths clamps n into the month range and returns the stored value.
func (e *Estimator) SetMonths(n int) int {
	e.months = e.cfg.Months.Clamp(n)
	return e.months
}

// AdjustInvites moves the invite slider by delta.
func (e *Estimator) AdjustInvites(delta int) int { return e.SetInvites(e.invites + delta) }

// AdjustMonths moves the month slider by delta.
func (e *Estimator) AdjustMonths(delta int) int { return e.SetMonths(e.months + delta) }

// InvitesPercent and MonthsPercent are the slider fills.
func (e *Estimator) InvitesPercent() float64 { return e.cfg.Invites.Percent(e.invites) }
func (e *Estimator) MonthsPercent() float64  { return e.cfg.Months.Percent(e.months) }

// Total is invites * months * base rate, rounded to the nearest unit.
func (e *Estimator) Total() int64 {
	return int64(math.Round(float64(e.invites) * float64(e.months) * e.cfg.BaseRate))
}

// FormatTotal renders the total with thousands grouping, e.g. "₹ 90,000".
func (e *Estimator) FormatTotal() string {
	return e.printer.Sprintf("%s %d", e.cfg.CurrencySymbol, e.Total())
}
