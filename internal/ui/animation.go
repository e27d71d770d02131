package ui

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

// defaultFrameDelay stands in for GIF frames that carry no delay.
const defaultFrameDelay = 100 * time.Millisecond

// animation is a decoded frame sequence with native per-frame delays.
// Frames are pre-composed, so each one is a complete image.
type animation struct {
	frames []image.Image
	delays []time.Duration
}

// loadAnimation decodes the media at path into an animation. Only GIF can
// be decoded in-process; other formats return an error and render static.
func loadAnimation(path string) (*animation, error) {
	if strings.ToLower(filepath.Ext(path)) != ".gif" {
		return nil, fmt.Errorf("no frame decoder for %s", filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := gif.DecodeAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode GIF %s: %w", path, err)
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("no frames in %s", path)
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		bounds = g.Image[0].Bounds()
	}

	// Frames are drawn over the accumulated canvas; partial frames end up
	// composed onto what came before.
	anim := &animation{}
	acc := image.NewRGBA(bounds)
	for i, src := range g.Image {
		draw.Draw(acc, src.Bounds(), src, src.Bounds().Min, draw.Over)

		frame := image.NewRGBA(bounds)
		copy(frame.Pix, acc.Pix)
		anim.frames = append(anim.frames, frame)

		delay := defaultFrameDelay
		if i < len(g.Delay) && g.Delay[i] > 0 {
			delay = time.Duration(g.Delay[i]) * 10 * time.Millisecond
		}
		anim.delays = append(anim.delays, delay)
	}
	return anim, nil
}

// frameDelay returns how long frame i stays on screen. A positive fps
// override replaces the media's native timing.
func (a *animation) frameDelay(i, fps int) time.Duration {
	if fps > 0 {
		return time.Second / time.Duration(fps)
	}
	return a.delays[i]
}

// framePlayer steps an animation onto a canvas image from its own
// goroutine, marshalling each refresh through fyne.Do.
type framePlayer struct {
	anim *animation
	img  *canvas.Image
	fps  int
	stop chan struct{}
}

func newFramePlayer(anim *animation, img *canvas.Image, fps int) *framePlayer {
	p := &framePlayer{
		anim: anim,
		img:  img,
		fps:  fps,
		stop: make(chan struct{}),
	}
	go p.loop()
	return p
}

func (p *framePlayer) loop() {
	i := 0
	for {
		select {
		case <-p.stop:
			return
		case <-time.After(p.anim.frameDelay(i, p.fps)):
		}

		i = (i + 1) % len(p.anim.frames)
		frame := p.anim.frames[i]
		fyne.Do(func() {
			p.img.Image = frame
			canvas.Refresh(p.img)
		})
	}
}

// Stop halts playback. Must be called exactly once.
func (p *framePlayer) Stop() {
	close(p.stop)
}
