package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarousel(t *testing.T) {
	images := []string{"a.jpg", "b.jpg", "c.jpg"}

	t.Run("wraps in both directions", func(t *testing.T) {
		c := New(images, 0)
		assert.Equal(t, 2, c.Prev())
		assert.Equal(t, "c.jpg", c.Current())
		assert.Equal(t, 0, c.Next())
		assert.Equal(t, 1, c.Next())
		assert.Equal(t, "Car view 2", c.Label())
	})

	t.Run("starts at a valid selection", func(t *testing.T) {
		assert.Equal(t, 2, New(images, 2).Index())
		assert.Equal(t, 0, New(images, 7).Index())
		assert.Equal(t, 0, New(images, -1).Index())
	})

	t.Run("select fires the callback", func(t *testing.T) {
		c := New(images, 0)
		var picked []int
		c.OnSelect = func(i int) { picked = append(picked, i) }

		require.NoError(t, c.Select(1))
		assert.Error(t, c.Select(3))
		assert.Equal(t, []int{1}, picked)
		assert.Equal(t, 1, c.Index())
	})

	t.Run("empty carousel is inert", func(t *testing.T) {
		c := New(nil, 0)
		assert.Equal(t, 0, c.Next())
		assert.Equal(t, 0, c.Prev())
		assert.Equal(t, "", c.Current())
		assert.Error(t, c.Select(0))
	})
}
