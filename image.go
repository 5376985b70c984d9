package warpcam

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/transform"
	"golang.org/x/image/draw"
)

// Background is the value of destination pixels with no source sample.
var Background = color.RGBA{}

// ToRGBA converts img to a compact *image.RGBA whose bounds start at the
// origin. An *image.RGBA already in that form is returned as is.
func ToRGBA(img image.Image) *image.RGBA {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) && rgba.Stride == 4*b.Dx() {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// FlipVertical returns a copy of img mirrored top to bottom. Texture sinks
// expect bottom-up rows, so every frame is flipped once before upload.
func FlipVertical(img *image.RGBA) *image.RGBA {
	return transform.FlipV(img)
}

// IsEmptyFrame reports whether img carries no pixels.
func IsEmptyFrame(img *image.RGBA) bool {
	return img == nil || img.Bounds().Empty() || len(img.Pix) == 0
}

// ScaleNearest resizes img to w x h with nearest-neighbour sampling.
func ScaleNearest(img image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
