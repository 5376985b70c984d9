package warpcam

import (
	"image"
	"image/color"

	"golang.org/x/image/colornames"
)

var patternColors = [4]color.RGBA{
	colornames.Crimson,
	colornames.Seagreen,
	colornames.Royalblue,
	colornames.Gold,
}

// TestPattern returns a w x h frame with a coloured quadrant layout, a
// checkerboard overlay and a white border, so orientation and warps are easy
// to see.
func TestPattern(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	cell := max(min(w, h)/8, 1)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			q := 0
			if x >= w/2 {
				q++
			}
			if y >= h/2 {
				q += 2
			}
			c := patternColors[q]
			if (x/cell+y/cell)%2 == 1 {
				c.R, c.G, c.B = c.R/2, c.G/2, c.B/2
			}
			if x < 2 || y < 2 || x >= w-2 || y >= h-2 {
				c = colornames.White
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
