package warpcam

import (
	"bytes"
	"image"
	"image/color"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"
)

func TestToRGBA(t *testing.T) {
	rgba := TestPattern(6, 4)
	assert.Same(t, rgba, ToRGBA(rgba), "compact rgba is returned as is")

	sub := rgba.SubImage(image.Rect(2, 1, 5, 4)).(*image.RGBA)
	got := ToRGBA(sub)
	require.Equal(t, image.Rect(0, 0, 3, 3), got.Bounds())
	assert.Equal(t, rgba.RGBAAt(2, 1), got.RGBAAt(0, 0))
	assert.Equal(t, rgba.RGBAAt(4, 3), got.RGBAAt(2, 2))

	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	gray.SetGray(1, 1, color.Gray{Y: 77})
	assert.Equal(t, color.RGBA{77, 77, 77, 255}, ToRGBA(gray).RGBAAt(1, 1))

	assert.Nil(t, ToRGBA(nil))
}

func TestFlipVertical(t *testing.T) {
	src := testImage(5, 3, 40)
	flipped := FlipVertical(src)
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			assert.Equal(t, src.RGBAAt(x, 2-y), flipped.RGBAAt(x, y))
		}
	}
	assert.Equal(t, src.Pix, FlipVertical(flipped).Pix, "flip is an involution")
}

func TestIsEmptyFrame(t *testing.T) {
	assert.True(t, IsEmptyFrame(nil))
	assert.True(t, IsEmptyFrame(&image.RGBA{}))
	assert.True(t, IsEmptyFrame(image.NewRGBA(image.Rect(0, 0, 0, 5))))
	assert.False(t, IsEmptyFrame(image.NewRGBA(image.Rect(0, 0, 1, 1))))
}

func TestScaleNearest(t *testing.T) {
	src := testImage(2, 2, 41)
	up := ScaleNearest(src, 4, 4)
	assert.Equal(t, src.RGBAAt(0, 0), up.RGBAAt(1, 1))
	assert.Equal(t, src.RGBAAt(1, 0), up.RGBAAt(3, 0))
	assert.Equal(t, src.RGBAAt(1, 1), up.RGBAAt(2, 3))
}

func TestTestPatternLayout(t *testing.T) {
	p := TestPattern(64, 48)
	assert.Equal(t, image.Rect(0, 0, 64, 48), p.Bounds())

	white := color.RGBA(colornames.White)
	assert.Equal(t, white, p.RGBAAt(0, 0))
	assert.Equal(t, white, p.RGBAAt(63, 47))

	// Cells are 6px; each sample point sits on an even checker cell.
	assert.Equal(t, color.RGBA(colornames.Crimson), p.RGBAAt(7, 7))
	assert.Equal(t, color.RGBA(colornames.Seagreen), p.RGBAAt(43, 7))
	assert.Equal(t, color.RGBA(colornames.Royalblue), p.RGBAAt(7, 31))
	assert.Equal(t, color.RGBA(colornames.Gold), p.RGBAAt(43, 31))

	c := colornames.Crimson
	assert.Equal(t, color.RGBA{c.R / 2, c.G / 2, c.B / 2, c.A}, p.RGBAAt(13, 7), "odd cell is darkened")

	for i := 3; i < len(p.Pix); i += 4 {
		if p.Pix[i] != 255 {
			t.Fatal("pattern must be opaque")
		}
	}
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewLogger(&buf, slog.LevelWarn))
	t.Cleanup(func() { SetLogger(nil) })

	Logger().Info("hidden")
	Logger().Warn("shown", "k", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "k=1")

	SetLogger(nil)
	assert.NotPanics(t, func() { Logger().Error("discarded") })
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLogLevel(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLogLevel("trace")
	assert.Error(t, err)
}
