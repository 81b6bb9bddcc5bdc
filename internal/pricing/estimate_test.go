package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimator(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		e := NewEstimator(DefaultConfig())
		assert.Equal(t, 50, e.Invites())
		assert.Equal(t, 12, e.Months())
		assert.Equal(t, int64(90000), e.Total())
		assert.Equal(t, "₹ 90,000", e.FormatTotal())
	})

	t.Run("sliders clamp to their ranges", func(t *testing.T) {
		e := NewEstimator(DefaultConfig())
		assert.Equal(t, 10, e.SetInvites(3))
		assert.Equal(t, 500, e.SetInvites(9000))
		assert.Equal(t, 1, e.SetMonths(0))
		assert.Equal(t, 24, e.AdjustMonths(100))
		assert.Equal(t, int64(500*24*150), e.Total())
		assert.Equal(t, "₹ 1,800,000", e.FormatTotal())
	})

	t.Run("slider fill", func(t *testing.T) {
		e := NewEstimator(DefaultConfig())
		e.SetInvites(10)
		e.SetMonths(24)
		assert.InDelta(t, 0, e.InvitesPercent(), 1e-9)
		assert.InDelta(t, 100, e.MonthsPercent(), 1e-9)
		assert.InDelta(t, 100, Range{Min: 5, Max: 5}.Percent(5), 1e-9)
	})

	t.Run("fractional rates round", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.BaseRate = 0.5
		e := NewEstimator(cfg)
		e.SetInvites(11)
		e.SetMonths(1)
		assert.Equal(t, int64(6), e.Total())
	})
}
