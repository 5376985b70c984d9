package warpcam

import (
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/transform"
)

// Filter parameters shared by the CPU filters and their shader counterparts.
const (
	// PixelateFactor is the downscale factor of the pixelate filter.
	PixelateFactor = 10
	// EdgeRadius is the kernel radius of the edge detector (3x3 kernel).
	EdgeRadius = 1
	// MedianRadius is the neighbourhood radius of the median blur (15x15).
	MedianRadius = 7

	posterizeStep   = 64 // 4 levels per channel
	stylizeLumaCut  = 90
	stylizeRedMin   = 100
	stylizeOtherMax = 50
)

// Grayscale weights for red, green and blue.
const (
	lumaR = 0.3
	lumaG = 0.6
	lumaB = 0.1
)

// ApplyFilter returns a filtered copy of img. img is not modified.
//
// The renderer never calls it with FilterPixelate: pixelate always runs as a
// GPU pass (see [Renderer.SelectAndRender]). The CPU version is kept for
// direct use and comparison.
func ApplyFilter(kind FilterKind, img *image.RGBA) (*image.RGBA, error) {
	if IsEmptyFrame(img) {
		return nil, ErrEmptyFrame
	}
	switch kind {
	case FilterNone:
		return clone.AsRGBA(img), nil
	case FilterGrayscale:
		return effect.GrayscaleWithWeights(img, lumaR, lumaG, lumaB), nil
	case FilterPixelate:
		return pixelate(img, PixelateFactor), nil
	case FilterEdgeDetect:
		return effect.EdgeDetection(img, EdgeRadius), nil
	case FilterStylize:
		return adjust.Apply(img, stylizePixel), nil
	case FilterMedianBlur:
		return effect.Median(img, MedianRadius), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownFilter, kind)
}

// pixelate shrinks img by factor and scales it back with nearest-neighbour
// sampling.
func pixelate(img *image.RGBA, factor int) *image.RGBA {
	b := img.Bounds()
	w, h := max(b.Dx()/factor, 1), max(b.Dy()/factor, 1)
	small := transform.Resize(img, w, h, transform.NearestNeighbor)
	return transform.Resize(small, b.Dx(), b.Dy(), transform.NearestNeighbor)
}

// stylizePixel posterizes to 4 levels, keeps strongly red pixels pure red and
// thresholds everything else to black or white.
func stylizePixel(c color.RGBA) color.RGBA {
	r := c.R / posterizeStep * posterizeStep
	g := c.G / posterizeStep * posterizeStep
	b := c.B / posterizeStep * posterizeStep
	if r > stylizeRedMin && g < stylizeOtherMax && b < stylizeOtherMax {
		return color.RGBA{R: 255, A: c.A}
	}
	if luma(r, g, b) > stylizeLumaCut {
		return color.RGBA{R: 255, G: 255, B: 255, A: c.A}
	}
	return color.RGBA{A: c.A}
}

func luma(r, g, b uint8) float64 {
	return lumaR*float64(r) + lumaG*float64(g) + lumaB*float64(b)
}
