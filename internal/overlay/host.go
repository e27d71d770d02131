// Package overlay reconciles the library's enabled characters against a set
// of live overlay windows. It is written against a narrow windowing host
// contract so the orchestration logic stays independent of the GUI toolkit;
// the production host lives in the ui package, tests use a fake.
package overlay

import "github.com/animatux/animatux/internal/model"

// Options configures a new overlay surface.
type Options struct {
	// Key is the stable surface identity; recreating a surface with the
	// same key after destroying it must be indistinguishable from reuse.
	Key string

	// Title labels the surface for window managers and debugging.
	Title string

	// Size is the initial surface size in logical pixels.
	Size model.Point

	// Position seeds the surface placement. When nil the host centers the
	// surface on the primary display.
	Position *model.Point
}

// Events are the callbacks a surface delivers back to the orchestrator.
type Events struct {
	// OnClosed fires when the user closes the surface directly.
	OnClosed func()

	// OnToggleSettings fires on the settings gesture (escape) while the
	// surface is focused.
	OnToggleSettings func()

	// OnToggleMain fires on the bring-main-window-forward gesture.
	OnToggleMain func()
}

// Controls describes the live-edit settings panel shown on a surface.
type Controls struct {
	Speed          int
	Scale          float32
	OnSpeedChanged func(speed int)
	OnScaleChanged func(scale float32)
}

// Surface is one borderless, always-on-top overlay window.
type Surface interface {
	// SetMedia points the surface at a media file played at fps frames per
	// second; fps 0 means the media's native timing.
	SetMedia(path string, fps int)

	// SetSize resizes the surface.
	SetSize(size model.Point)

	// Move repositions the surface's top-left corner.
	Move(pos model.Point)

	// Position reports the current on-screen top-left corner. ok is false
	// when the host cannot observe placement.
	Position() (pos model.Point, ok bool)

	// ShowSettings renders the live-edit panel on the surface.
	ShowSettings(controls Controls)

	// HideSettings removes the live-edit panel.
	HideSettings()

	// Show makes the surface visible.
	Show()

	// Close destroys the surface without firing OnClosed.
	Close()
}

// Host creates overlay surfaces.
type Host interface {
	CreateOverlay(opts Options, events Events) Surface
}
