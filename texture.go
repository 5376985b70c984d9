package warpcam

import (
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// videoTexture is the Ebitengine Presenter. It holds the uploaded frame
// (bottom-up rows), a frame-sized target the GPU pass warps into and the
// low-resolution target used by multi-pass pixelation.
type videoTexture struct {
	frame   renderTarget
	scratch renderTarget
	lowRes  renderTarget
	shaders shaderSet

	outW, outH int
	pass       Pass
	uploaded   bool
}

func newVideoTexture(outW, outH int) *videoTexture {
	v := &videoTexture{pass: Pass{Mode: ModeCPU, Model: mgl32.Ident4()}}
	v.Resize(outW, outH)
	return v
}

// Upload implements Presenter.
func (v *videoTexture) Upload(frame *image.RGBA) error {
	if IsEmptyFrame(frame) {
		return ErrEmptyFrame
	}
	frame = ToRGBA(frame)
	b := frame.Bounds()
	v.frame.ensure(b.Dx(), b.Dy())
	v.scratch.ensure(b.Dx(), b.Dy())
	if v.frame.image == nil {
		return fmt.Errorf("%w: frame texture %dx%d", ErrResource, b.Dx(), b.Dy())
	}
	v.frame.image.WritePixels(frame.Pix)
	v.uploaded = true
	return nil
}

// SetPass implements Presenter.
func (v *videoTexture) SetPass(p Pass) {
	v.pass = p
}

// Resize recreates the output-dependent targets for an outW x outH screen.
// The old low-resolution target is released before the new one exists.
func (v *videoTexture) Resize(outW, outH int) {
	v.outW, v.outH = max(outW, 1), max(outH, 1)
	v.lowRes.dispose()
	v.lowRes.ensure(lowResSize(v.outW, v.outH))
}

// Draw presents the last uploaded frame with the current pass.
func (v *videoTexture) Draw(screen *ebiten.Image) error {
	if !v.uploaded {
		return nil
	}
	if v.pass.Mode == ModeCPU && !v.pass.MultiPass {
		screen.DrawImage(v.frame.image, &ebiten.DrawImageOptions{GeoM: v.presentGeoM(screen, true)})
		return nil
	}

	shader, err := v.shaders.get(v.pass.Filter)
	if err != nil {
		return err
	}
	fw, fh := v.frame.w, v.frame.h
	v.scratch.image.Clear()
	op := &ebiten.DrawRectShaderOptions{GeoM: frameGeoM(v.pass.Model, fh)}
	op.Images[0] = v.frame.image
	v.scratch.image.DrawRectShader(fw, fh, shader, op)

	if !v.pass.MultiPass {
		screen.DrawImage(v.scratch.image, &ebiten.DrawImageOptions{GeoM: v.presentGeoM(screen, false)})
		return nil
	}

	// Nearest downscale into the low-resolution target, then nearest upscale
	// to the screen.
	low := v.lowRes.image
	v.lowRes.image.Clear()
	var down ebiten.GeoM
	down.Scale(float64(v.lowRes.w)/float64(fw), float64(v.lowRes.h)/float64(fh))
	low.DrawImage(v.scratch.image, &ebiten.DrawImageOptions{GeoM: down, Filter: ebiten.FilterNearest})

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	var up ebiten.GeoM
	up.Scale(float64(sw)/float64(v.lowRes.w), float64(sh)/float64(v.lowRes.h))
	screen.DrawImage(low, &ebiten.DrawImageOptions{GeoM: up, Filter: ebiten.FilterNearest})
	return nil
}

// presentGeoM scales the frame to the screen, undoing the bottom-up upload
// when flip is set.
func (v *videoTexture) presentGeoM(screen *ebiten.Image, flip bool) ebiten.GeoM {
	var g ebiten.GeoM
	if flip {
		g.Scale(1, -1)
		g.Translate(0, float64(v.frame.h))
	}
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	g.Scale(float64(sw)/float64(v.frame.w), float64(sh)/float64(v.frame.h))
	return g
}

// frameGeoM maps the bottom-up texture of height h to image space and then
// through the model transform.
func frameGeoM(model mgl32.Mat4, h int) ebiten.GeoM {
	var g ebiten.GeoM
	g.Scale(1, -1)
	g.Translate(0, float64(h))
	g.Concat(geoMFromModel(model))
	return g
}

// geoMFromModel extracts the 2x3 affine part of a model matrix.
func geoMFromModel(m mgl32.Mat4) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, float64(m.At(0, 0)))
	g.SetElement(0, 1, float64(m.At(0, 1)))
	g.SetElement(0, 2, float64(m.At(0, 3)))
	g.SetElement(1, 0, float64(m.At(1, 0)))
	g.SetElement(1, 1, float64(m.At(1, 1)))
	g.SetElement(1, 2, float64(m.At(1, 3)))
	return g
}

// dispose releases every GPU resource.
func (v *videoTexture) dispose() {
	v.frame.dispose()
	v.scratch.dispose()
	v.lowRes.dispose()
	v.shaders.dispose()
	v.uploaded = false
}
