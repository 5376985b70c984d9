package warpcam

import (
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// Presenter is the display side of the render path: it owns the frame
// texture and knows how to draw it.
type Presenter interface {
	// Upload replaces the frame texture. Frames arrive bottom-up (already
	// flipped vertically once).
	Upload(frame *image.RGBA) error
	// SetPass sets how the uploaded texture is drawn until the next call.
	SetPass(p Pass)
}

// Pass describes how the uploaded texture becomes the displayed image.
type Pass struct {
	Mode RenderMode
	// Filter is applied by the shader. Always FilterNone for CPU passes,
	// whose pixels are already filtered.
	Filter FilterKind
	// Model is the forward transform embedded as a 4x4 model matrix.
	// Identity for CPU passes, whose pixels are already warped.
	Model mgl32.Mat4
	// MultiPass renders through a low-resolution offscreen target before
	// the final full-resolution draw (pixelate).
	MultiPass bool
}

// Transform returns the 2D transform carried by p.Model.
func (p Pass) Transform() Transform {
	return TransformFromModel(p.Model)
}

// Renderer routes each frame down the CPU or the GPU path.
type Renderer struct {
	presenter Presenter
	raster    Rasterizer
	pass      Pass
	rendered  bool
}

// NewRenderer returns a Renderer drawing through p. workers is passed to the
// CPU rasterizer.
func NewRenderer(p Presenter, workers int) *Renderer {
	return &Renderer{
		presenter: p,
		raster:    Rasterizer{Workers: workers},
		pass:      Pass{Mode: ModeCPU, Model: mgl32.Ident4()},
	}
}

// SelectAndRender processes one frame.
//
// In ModeCPU the frame is filtered with ApplyFilter, warped by the
// Rasterizer unless t is the identity, flipped and uploaded; the pass draws
// it untransformed. In ModeGPU the raw frame is flipped and uploaded and the
// pass carries t as a model matrix together with kind, for the shader to
// apply.
//
// FilterPixelate always takes the GPU route with a multi-pass draw, whatever
// the mode.
//
// An empty frame returns ErrEmptyFrame, uploads nothing and leaves the
// previous pass in place.
func (r *Renderer) SelectAndRender(mode RenderMode, frame *image.RGBA, t Transform, kind FilterKind) (Pass, error) {
	if IsEmptyFrame(frame) {
		return r.pass, ErrEmptyFrame
	}
	if !kind.Valid() {
		return r.pass, fmt.Errorf("%w: %d", ErrUnknownFilter, kind)
	}
	if kind == FilterPixelate {
		mode = ModeGPU
	}

	var pass Pass
	switch mode {
	case ModeCPU:
		filtered, err := ApplyFilter(kind, frame)
		if err != nil {
			return r.pass, err
		}
		if !t.IsIdentity() {
			filtered = r.raster.Warp(filtered, t)
		}
		if err := r.presenter.Upload(FlipVertical(filtered)); err != nil {
			return r.pass, fmt.Errorf("upload cpu frame: %w", err)
		}
		pass = Pass{Mode: ModeCPU, Filter: FilterNone, Model: mgl32.Ident4()}
	case ModeGPU:
		if err := r.presenter.Upload(FlipVertical(frame)); err != nil {
			return r.pass, fmt.Errorf("upload gpu frame: %w", err)
		}
		pass = Pass{
			Mode:      ModeGPU,
			Filter:    kind,
			Model:     t.ModelMatrix(),
			MultiPass: kind == FilterPixelate,
		}
	default:
		return r.pass, fmt.Errorf("warpcam: unknown render mode %d", mode)
	}

	r.presenter.SetPass(pass)
	r.pass = pass
	r.rendered = true
	return pass, nil
}

// LastPass returns the most recent pass and whether any frame has been
// rendered.
func (r *Renderer) LastPass() (Pass, bool) {
	return r.pass, r.rendered
}

// SetWorkers changes the CPU rasterizer's worker count.
func (r *Renderer) SetWorkers(n int) {
	r.raster.Workers = n
}
