package warpcam

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	hudHoldSeconds = 2.0
	hudFadeSeconds = 1.0

	// Debug font cell size.
	hudCharW = 6
	hudLineH = 16
	hudPad   = 4
)

// hud is the status overlay. It appears fully opaque when its text changes,
// holds, then fades out. A pinned hud never fades.
type hud struct {
	enabled bool
	pinned  bool
	text    string
	alpha   float32
	fade    *gween.Sequence
	panel   *ebiten.Image
	dirty   bool
}

func newHUD(enabled bool) *hud {
	return &hud{enabled: enabled}
}

// show replaces the text and restarts the fade.
func (h *hud) show(text string) {
	h.refresh(text)
	h.alpha = 1
	if h.pinned {
		h.fade = nil
		return
	}
	h.fade = gween.NewSequence(
		gween.New(1, 1, hudHoldSeconds, ease.Linear),
		gween.New(1, 0, hudFadeSeconds, ease.InQuad),
	)
}

// refresh replaces the text without touching the fade.
func (h *hud) refresh(text string) {
	if text != h.text {
		h.text = text
		h.dirty = true
	}
}

// pin enables the overlay and keeps it fully opaque.
func (h *hud) pin() {
	h.enabled = true
	h.pinned = true
	h.alpha = 1
	h.fade = nil
}

// update advances the fade by dt seconds.
func (h *hud) update(dt float32) {
	if h.fade == nil {
		return
	}
	v, _, done := h.fade.Update(dt)
	h.alpha = v
	if done {
		h.fade = nil
		h.alpha = 0
	}
}

func (h *hud) visible() bool {
	return h.enabled && h.alpha > 0 && h.text != ""
}

func (h *hud) draw(screen *ebiten.Image) {
	if !h.visible() {
		return
	}
	if h.dirty || h.panel == nil {
		h.redraw()
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(hudPad, hudPad)
	op.ColorScale.ScaleAlpha(h.alpha)
	screen.DrawImage(h.panel, op)
}

func (h *hud) redraw() {
	lines := strings.Split(h.text, "\n")
	cols := 0
	for _, l := range lines {
		cols = max(cols, len(l))
	}
	w := cols*hudCharW + 2*hudPad
	ht := len(lines)*hudLineH + 2*hudPad
	if h.panel != nil {
		h.panel.Deallocate()
	}
	h.panel = ebiten.NewImage(w, ht)
	h.panel.Fill(color.RGBA{0, 0, 0, 160})
	ebitenutil.DebugPrintAt(h.panel, h.text, hudPad, hudPad)
	h.dirty = false
}

func (h *hud) dispose() {
	if h.panel != nil {
		h.panel.Deallocate()
		h.panel = nil
	}
}
