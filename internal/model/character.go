package model

import (
	"path/filepath"
	"strings"
)

// BaseRenderSize is the unscaled edge length, in logical pixels, of a
// character overlay. The effective window size is BaseRenderSize * Scale.
const BaseRenderSize float32 = 320

// DefaultScale is the render scale applied to newly added characters.
const DefaultScale float32 = 1.0

// FallbackName is used when a display name cannot be derived from a path.
const FallbackName = "Unknown"

// Point is a 2D screen coordinate or size in logical pixels.
type Point struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// Character is one library entry: a playable media file plus its display
// settings. Path is the natural unique key across the library.
type Character struct {
	Name    string  `json:"name"`
	Path    string  `json:"path"`
	Enabled bool    `json:"enabled"`
	Speed   int     `json:"speed"` // frames per second, 0 = media native timing
	Scale   float32 `json:"scale"`

	// Last observed overlay window placement; nil until first persisted.
	WindowPos  *Point `json:"window_pos,omitempty"`
	WindowSize *Point `json:"window_size,omitempty"`
}

// ScaledSize returns the overlay window edge length for this character.
func (c *Character) ScaledSize() float32 {
	scale := c.Scale
	if scale <= 0 {
		scale = DefaultScale
	}
	return BaseRenderSize * scale
}

// DeriveName returns the display name for a media path: the base file name
// without its extension, or FallbackName when nothing usable remains.
func DeriveName(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return FallbackName
	}
	return name
}
