package ui

import (
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// writeTestGIF encodes a two-frame 4x4 GIF with the given per-frame delays
// in hundredths of a second.
func writeTestGIF(t *testing.T, delays []int) string {
	t.Helper()

	palette := color.Palette{color.Transparent, color.White}
	var frames []*image.Paletted
	for i := range delays {
		frame := image.NewPaletted(image.Rect(0, 0, 4, 4), palette)
		frame.SetColorIndex(i, i, 1)
		frames = append(frames, frame)
	}

	path := filepath.Join(t.TempDir(), "anim.gif")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, gif.EncodeAll(f, &gif.GIF{Image: frames, Delay: delays}))
	return path
}

func TestLoadAnimation_DecodesGIFFrames(t *testing.T) {
	path := writeTestGIF(t, []int{5, 20})

	anim, err := loadAnimation(path)
	require.NoError(t, err)
	require.Len(t, anim.frames, 2)
	require.Equal(t, image.Rect(0, 0, 4, 4), anim.frames[0].Bounds())
	require.Equal(t, []time.Duration{50 * time.Millisecond, 200 * time.Millisecond}, anim.delays)

	// Frames compose over their predecessors, so the second frame carries
	// both lit pixels.
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	require.Equal(t, white, anim.frames[1].At(0, 0))
	require.Equal(t, white, anim.frames[1].At(1, 1))
}

func TestLoadAnimation_ZeroDelayGetsDefault(t *testing.T) {
	path := writeTestGIF(t, []int{0, 0})

	anim, err := loadAnimation(path)
	require.NoError(t, err)
	require.Equal(t, defaultFrameDelay, anim.delays[0])
	require.Equal(t, defaultFrameDelay, anim.delays[1])
}

func TestLoadAnimation_RejectsNonGIF(t *testing.T) {
	_, err := loadAnimation("/media/fox.webp")
	require.Error(t, err)

	_, err = loadAnimation("/media/fox.png")
	require.Error(t, err)
}

func TestFrameDelay_FPSOverride(t *testing.T) {
	anim := &animation{
		delays: []time.Duration{50 * time.Millisecond, 200 * time.Millisecond},
	}

	// Native timing when no override is set.
	require.Equal(t, 50*time.Millisecond, anim.frameDelay(0, 0))
	require.Equal(t, 200*time.Millisecond, anim.frameDelay(1, 0))

	// A positive fps replaces the native delays uniformly.
	require.Equal(t, 25*time.Millisecond, anim.frameDelay(0, 40))
	require.Equal(t, 25*time.Millisecond, anim.frameDelay(1, 40))
}
