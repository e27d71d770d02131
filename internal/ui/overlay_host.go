package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/animatux/animatux/internal/model"
	"github.com/animatux/animatux/internal/overlay"
)

// Overlay slider ranges
const (
	SpeedSliderMax  = 240
	ScaleSliderMin  = 0.1
	ScaleSliderMax  = 5.0
	ScaleSliderStep = 0.1
)

// FyneHost implements overlay.Host on top of the Fyne desktop driver.
// Overlay windows are created as splash windows (borderless, centered by
// default). Fyne cannot observe where the window manager places a window,
// so Position reports the last commanded placement only.
type FyneHost struct {
	app fyne.App
}

// NewFyneHost creates the production overlay host.
func NewFyneHost(app fyne.App) *FyneHost {
	return &FyneHost{app: app}
}

// CreateOverlay opens a borderless overlay surface.
func (h *FyneHost) CreateOverlay(opts overlay.Options, events overlay.Events) overlay.Surface {
	var window fyne.Window
	if drv, ok := h.app.Driver().(desktop.Driver); ok {
		window = drv.CreateSplashWindow()
	} else {
		// Mobile or test driver: fall back to a plain window.
		window = h.app.NewWindow(opts.Title)
	}
	window.SetTitle(opts.Title)
	window.Resize(fyne.NewSize(opts.Size.X, opts.Size.Y))

	s := &fyneSurface{window: window, events: events}

	if opts.Position != nil {
		s.pos = *opts.Position
		s.hasPos = true
	} else {
		window.CenterOnScreen()
	}

	// Direct close by the user feeds the disable transition.
	window.SetCloseIntercept(func() {
		s.stopPlayer()
		window.Close()
		if events.OnClosed != nil {
			events.OnClosed()
		}
	})

	window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyEscape:
			if events.OnToggleSettings != nil {
				events.OnToggleSettings()
			}
		case fyne.KeyM:
			if events.OnToggleMain != nil {
				events.OnToggleMain()
			}
		}
	})

	s.rebuild()
	return s
}

// fyneSurface is one overlay window plus its optional settings panel.
type fyneSurface struct {
	window fyne.Window
	events overlay.Events

	mediaPath string
	image     *canvas.Image
	player    *framePlayer
	panel     fyne.CanvasObject

	pos    model.Point
	hasPos bool
}

func (s *fyneSurface) SetMedia(path string, fps int) {
	s.stopPlayer()
	s.mediaPath = path

	// Animated media is frame-stepped by a player honoring the fps
	// override; anything without an in-process decoder renders static.
	if anim, err := loadAnimation(path); err == nil && len(anim.frames) > 1 {
		s.image = canvas.NewImageFromImage(anim.frames[0])
		s.image.FillMode = canvas.ImageFillContain
		s.player = newFramePlayer(anim, s.image, fps)
	} else {
		s.image = canvas.NewImageFromFile(path)
		s.image.FillMode = canvas.ImageFillContain
	}
	s.rebuild()
}

func (s *fyneSurface) stopPlayer() {
	if s.player != nil {
		s.player.Stop()
		s.player = nil
	}
}

func (s *fyneSurface) SetSize(size model.Point) {
	s.window.Resize(fyne.NewSize(size.X, size.Y))
}

func (s *fyneSurface) Move(pos model.Point) {
	// Fyne offers no window move API; remember the request so Position
	// stays consistent for the orchestrator.
	s.pos = pos
	s.hasPos = true
}

func (s *fyneSurface) Position() (model.Point, bool) {
	return s.pos, s.hasPos
}

func (s *fyneSurface) ShowSettings(controls overlay.Controls) {
	speedLabel := widget.NewLabel(fmt.Sprintf("Framerate: %d (0 for default)", controls.Speed))
	speedSlider := widget.NewSlider(0, SpeedSliderMax)
	speedSlider.Step = 1
	speedSlider.Value = float64(controls.Speed)
	speedSlider.OnChanged = func(v float64) {
		speedLabel.SetText(fmt.Sprintf("Framerate: %d (0 for default)", int(v)))
		if controls.OnSpeedChanged != nil {
			controls.OnSpeedChanged(int(v))
		}
	}

	scaleLabel := widget.NewLabel(fmt.Sprintf("Scale: %.1f", controls.Scale))
	scaleSlider := widget.NewSlider(ScaleSliderMin, ScaleSliderMax)
	scaleSlider.Step = ScaleSliderStep
	scaleSlider.Value = float64(controls.Scale)
	scaleSlider.OnChanged = func(v float64) {
		scaleLabel.SetText(fmt.Sprintf("Scale: %.1f", v))
		if controls.OnScaleChanged != nil {
			controls.OnScaleChanged(float32(v))
		}
	}

	s.panel = container.NewVBox(speedLabel, speedSlider, scaleLabel, scaleSlider)
	s.rebuild()
}

func (s *fyneSurface) HideSettings() {
	s.panel = nil
	s.rebuild()
}

func (s *fyneSurface) Show() {
	s.window.Show()
}

func (s *fyneSurface) Close() {
	s.stopPlayer()
	// Neutralize the intercept so a programmatic close does not fire
	// OnClosed back into the orchestrator.
	s.window.SetCloseIntercept(nil)
	s.window.Close()
}

// rebuild recomposes the window content from the image and the panel.
func (s *fyneSurface) rebuild() {
	if s.image == nil {
		s.window.SetContent(container.NewStack())
		return
	}
	if s.panel == nil {
		s.window.SetContent(s.image)
		return
	}
	s.window.SetContent(container.NewBorder(s.panel, nil, nil, nil, s.image))
}

var _ overlay.Host = (*FyneHost)(nil)
