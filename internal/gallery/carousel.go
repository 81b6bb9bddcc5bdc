// Package gallery implements the static photo carousel shown beside the 360 view.
package gallery

import "fmt"

// Carousel tracks the selected photo in a fixed list. Navigation wraps at both ends.
type Carousel struct {
	images []string
	index  int

	// OnSelect, if set, is called when a thumbnail is picked directly.
	OnSelect func(index int)
}

// New returns a carousel over images starting at selected. An out-of-range
// selection starts at the first photo.
func New(images []string, selected int) *Carousel {
	c := &Carousel{images: append([]string(nil), images...)}
	if selected >= 0 && selected < len(images) {
		c.index = selected
	}
	return c
}

// Len is the number of photos.
func (c *Carousel) Len() int { return len(c.images) }

// Index is the selected photo.
func (c *Carousel) Index() int { return c.index }

// Current returns the selected locator, or "" for an empty carousel.
func (c *Carousel) Current() string {
	if len(c.images) == 0 {
		return ""
	}
	return c.images[c.index]
}

// Images returns a copy of the photo list.
func (c *Carousel) Images() []string {
	return append([]string(nil), c.images...)
}

// Next advances one photo, wrapping from the last to the first.
func (c *Carousel) Next() int {
	if len(c.images) > 0 {
		c.index = (c.index + 1) % len(c.images)
	}
	return c.index
}

// Prev steps back one photo, wrapping from the first to the last.
func (c *Carousel) Prev() int {
	if len(c.images) > 0 {
		c.index = (c.index - 1 + len(c.images)) % len(c.images)
	}
	return c.index
}

// Select jumps to a thumbnail.
func (c *Carousel) Select(index int) error {
	if index < 0 || index >= len(c.images) {
		return fmt.Errorf("gallery: index %d out of range [0, %d)", index, len(c.images))
	}
	c.index = index
	if c.OnSelect != nil {
		c.OnSelect(index)
	}
	return nil
}

// Label is the 1-based position, e.g. "Car view 3".
func (c *Carousel) Label() string {
	return fmt.Sprintf("Car view %d", c.index+1)
}
