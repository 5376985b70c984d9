package warpcam

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ControlKeys is a bit set of control keys pressed this frame (press edges).
type ControlKeys uint16

const (
	KeyExit ControlKeys = 1 << iota
	KeyFilterNext
	KeyFilterPrev
	KeyModeGPU
	KeyModeCPU
	KeyPreset1
	KeyPreset2
	KeyPreset3
	KeyPreset4
	KeyScreenshot
	KeyHUD
)

// Has reports whether every key in k2 is set in k.
func (k ControlKeys) Has(k2 ControlKeys) bool {
	return k&k2 == k2 && k2 != 0
}

var keyBindings = []struct {
	keys []ebiten.Key
	ctrl ControlKeys
}{
	{[]ebiten.Key{ebiten.KeyEscape, ebiten.KeyQ}, KeyExit},
	{[]ebiten.Key{ebiten.KeyArrowRight}, KeyFilterNext},
	{[]ebiten.Key{ebiten.KeyArrowLeft}, KeyFilterPrev},
	{[]ebiten.Key{ebiten.KeyArrowUp}, KeyModeGPU},
	{[]ebiten.Key{ebiten.KeyArrowDown}, KeyModeCPU},
	{[]ebiten.Key{ebiten.Key1, ebiten.KeyNumpad1}, KeyPreset1},
	{[]ebiten.Key{ebiten.Key2, ebiten.KeyNumpad2}, KeyPreset2},
	{[]ebiten.Key{ebiten.Key3, ebiten.KeyNumpad3}, KeyPreset3},
	{[]ebiten.Key{ebiten.Key4, ebiten.KeyNumpad4}, KeyPreset4},
	{[]ebiten.Key{ebiten.KeyP}, KeyScreenshot},
	{[]ebiten.Key{ebiten.KeyH}, KeyHUD},
}

// InputSnapshot is one frame of polled input.
type InputSnapshot struct {
	Cursor      Vec2
	Left        bool    // left button held
	Right       bool    // right button held
	ScrollTicks float64 // vertical wheel ticks this frame, positive zooms in
	Reset       bool    // reset pressed this frame
	Keys        ControlKeys
}

// ReadInput polls Ebitengine for the current frame's input. Cursor
// coordinates are in screen (layout) pixels.
func ReadInput() InputSnapshot {
	cx, cy := ebiten.CursorPosition()
	_, wy := ebiten.Wheel()
	in := InputSnapshot{
		Cursor:      Vec2{X: float64(cx), Y: float64(cy)},
		Left:        ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Right:       ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
		ScrollTicks: wy,
		Reset:       inpututil.IsKeyJustPressed(ebiten.KeySpace),
	}
	for _, b := range keyBindings {
		for _, k := range b.keys {
			if inpututil.IsKeyJustPressed(k) {
				in.Keys |= b.ctrl
				break
			}
		}
	}
	return in
}
