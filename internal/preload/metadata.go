package preload

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"strings"

	"github.com/rwcarlsen/goexif/exif"
)

// FrameInfo holds what was learned about a frame image after it was fetched.
type FrameInfo struct {
	Locator     string `json:"locator"`
	Format      string `json:"format"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Bytes       int    `json:"bytes"`
	CameraModel string `json:"camera_model,omitempty"`
}

// DecodeFrameInfo reads the image header to get dimensions without decoding
// pixels. A payload that is not a decodable image is an error, the same way a
// browser fires onerror for a broken image.
func DecodeFrameInfo(locator string, data []byte) (*FrameInfo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image config: %w", err)
	}

	info := &FrameInfo{
		Locator: locator,
		Format:  format,
		Width:   cfg.Width,
		Height:  cfg.Height,
		Bytes:   len(data),
	}

	// EXIF is optional; most web-resized frames have none.
	if format == "jpeg" {
		if x, err := exif.Decode(bytes.NewReader(data)); err == nil {
			if model, err := x.Get(exif.Model); err == nil {
				if s, err := model.StringVal(); err == nil {
					info.CameraModel = strings.TrimSpace(s)
				}
			}
		}
	}
	return info, nil
}
