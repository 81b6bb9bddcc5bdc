package preload

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker(t *testing.T) {
	t.Run("resolves only after every frame reports", func(t *testing.T) {
		tr := NewTracker("gen-1", 3)
		assert.False(t, tr.Resolved())

		assert.True(t, tr.ReportFrame("gen-1", 1, nil, nil))
		assert.True(t, tr.ReportFrame("gen-1", 0, nil, errors.New("404")))
		assert.False(t, tr.Resolved())

		assert.True(t, tr.ReportFrame("gen-1", 2, &FrameInfo{Width: 320}, nil))
		assert.True(t, tr.Resolved())
		assert.Equal(t, Counts{Total: 3, Loaded: 2, Failed: 1}, tr.Counts())
		assert.Equal(t, 320, tr.Info(2).Width)
	})

	t.Run("resolves for any arrival order and mix of outcomes", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		for trial := 0; trial < 50; trial++ {
			n := 1 + rng.Intn(20)
			tr := NewTracker("g", n)
			order := rng.Perm(n)
			for k, idx := range order {
				assert.False(t, tr.Resolved(), "resolved early after %d of %d", k, n)
				var err error
				if rng.Intn(2) == 0 {
					err = errors.New("failed")
				}
				tr.ReportFrame("g", idx, nil, err)
			}
			assert.True(t, tr.Resolved())
		}
	})

	t.Run("ignores stale generations, repeats and bad indexes", func(t *testing.T) {
		tr := NewTracker("current", 2)
		assert.False(t, tr.ReportFrame("stale", 0, nil, nil))
		assert.False(t, tr.ReportFrame("current", -1, nil, nil))
		assert.False(t, tr.ReportFrame("current", 2, nil, nil))

		assert.True(t, tr.ReportFrame("current", 0, nil, errors.New("x")))
		assert.False(t, tr.ReportFrame("current", 0, nil, nil), "a frame counts once")
		assert.Equal(t, StatusFailed, tr.Status(0))
		assert.Equal(t, StatusPending, tr.Status(1))
		assert.Equal(t, StatusPending, tr.Status(9))
		assert.False(t, tr.Resolved())
	})

	t.Run("an empty tracker is trivially resolved", func(t *testing.T) {
		assert.True(t, NewTracker("g", 0).Resolved())
	})
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "pending", StatusPending.String())
	assert.Equal(t, "loaded", StatusLoaded.String())
	assert.Equal(t, "failed", StatusFailed.String())
}
