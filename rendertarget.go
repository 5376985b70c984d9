package warpcam

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// renderTarget is an offscreen image whose size changes rarely. Resizing
// deallocates the old image before the new one is created.
type renderTarget struct {
	image *ebiten.Image
	w, h  int
}

// ensure makes the target exactly w x h (minimum 1x1) and reports whether it
// was reallocated.
func (rt *renderTarget) ensure(w, h int) bool {
	w, h = max(w, 1), max(h, 1)
	if rt.image != nil && rt.w == w && rt.h == h {
		return false
	}
	rt.dispose()
	rt.image = ebiten.NewImageWithOptions(image.Rect(0, 0, w, h), &ebiten.NewImageOptions{Unmanaged: true})
	rt.w, rt.h = w, h
	return true
}

func (rt *renderTarget) dispose() {
	if rt.image != nil {
		rt.image.Deallocate()
		rt.image = nil
	}
	rt.w, rt.h = 0, 0
}

// lowResSize returns the pixelate target size for an output of w x h.
func lowResSize(w, h int) (int, int) {
	return max(w/PixelateFactor, 1), max(h/PixelateFactor, 1)
}
