package warpcam

import (
	"errors"
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// --- renderTarget ---

func TestRenderTargetEnsure(t *testing.T) {
	var rt renderTarget
	if !rt.ensure(10, 5) {
		t.Fatal("first ensure should allocate")
	}
	if b := rt.image.Bounds(); b.Dx() != 10 || b.Dy() != 5 {
		t.Errorf("bounds = %v, want 10x5", b)
	}
	img := rt.image
	if rt.ensure(10, 5) {
		t.Error("same size should not reallocate")
	}
	if rt.image != img {
		t.Error("same size should keep the image")
	}
	if !rt.ensure(20, 5) {
		t.Error("new size should reallocate")
	}
	rt.dispose()
	if rt.image != nil || rt.w != 0 || rt.h != 0 {
		t.Errorf("dispose left %+v", rt)
	}
}

func TestRenderTargetMinimumSize(t *testing.T) {
	var rt renderTarget
	defer rt.dispose()
	rt.ensure(0, -3)
	if rt.w != 1 || rt.h != 1 {
		t.Errorf("size = %dx%d, want 1x1", rt.w, rt.h)
	}
}

// --- videoTexture ---

func TestVideoTextureResize(t *testing.T) {
	v := newVideoTexture(640, 480)
	defer v.dispose()
	if v.lowRes.w != 64 || v.lowRes.h != 48 {
		t.Errorf("low-res = %dx%d, want 64x48", v.lowRes.w, v.lowRes.h)
	}
	v.Resize(1920, 1080)
	if v.lowRes.w != 192 || v.lowRes.h != 108 {
		t.Errorf("low-res = %dx%d, want 192x108", v.lowRes.w, v.lowRes.h)
	}
	if v.outW != 1920 || v.outH != 1080 {
		t.Errorf("output = %dx%d", v.outW, v.outH)
	}
}

func TestVideoTextureRejectsEmptyFrame(t *testing.T) {
	v := newVideoTexture(64, 48)
	defer v.dispose()
	if err := v.Upload(image.NewRGBA(image.Rectangle{})); !errors.Is(err, ErrEmptyFrame) {
		t.Errorf("Upload(empty) = %v, want ErrEmptyFrame", err)
	}
	if v.uploaded {
		t.Error("empty frame marked as uploaded")
	}
	if err := v.Draw(nil); err != nil {
		t.Errorf("Draw before upload = %v", err)
	}
}

func TestVideoTextureSetPass(t *testing.T) {
	v := newVideoTexture(64, 48)
	defer v.dispose()
	if v.pass.Mode != ModeCPU || v.pass.Model != mgl32.Ident4() {
		t.Errorf("initial pass = %+v", v.pass)
	}
	p := Pass{Mode: ModeGPU, Filter: FilterPixelate, Model: Translation(3, 4).ModelMatrix(), MultiPass: true}
	v.SetPass(p)
	if v.pass != p {
		t.Errorf("pass = %+v, want %+v", v.pass, p)
	}
}

func TestShaderSourcesCoverEveryFilter(t *testing.T) {
	for k := FilterKind(0); k < filterKindCount; k++ {
		if shaderSources[k] == "" {
			t.Errorf("no shader source for %s", k)
		}
	}
	var s shaderSet
	if _, err := s.get(FilterKind(99)); !errors.Is(err, ErrUnknownFilter) {
		t.Errorf("get(99) = %v, want ErrUnknownFilter", err)
	}
}
