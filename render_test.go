package warpcam

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingPresenter keeps every upload and pass for inspection.
type recordingPresenter struct {
	uploads   []*image.RGBA
	passes    []Pass
	uploadErr error
	resizes   [][2]int
	draws     int
}

func (p *recordingPresenter) Upload(frame *image.RGBA) error {
	if p.uploadErr != nil {
		return p.uploadErr
	}
	p.uploads = append(p.uploads, frame)
	return nil
}

func (p *recordingPresenter) SetPass(pass Pass) { p.passes = append(p.passes, pass) }

func (p *recordingPresenter) Draw(*ebiten.Image) error { p.draws++; return nil }

func (p *recordingPresenter) Resize(w, h int) { p.resizes = append(p.resizes, [2]int{w, h}) }

func (p *recordingPresenter) dispose() {}

func (p *recordingPresenter) lastUpload() *image.RGBA {
	if len(p.uploads) == 0 {
		return nil
	}
	return p.uploads[len(p.uploads)-1]
}

func TestSelectAndRenderCPUIdentity(t *testing.T) {
	p := &recordingPresenter{}
	r := NewRenderer(p, 1)
	frame := testImage(16, 12, 30)

	pass, err := r.SelectAndRender(ModeCPU, frame, Identity(), FilterGrayscale)
	require.NoError(t, err)

	want, _ := ApplyFilter(FilterGrayscale, frame)
	assert.Equal(t, FlipVertical(want).Pix, p.lastUpload().Pix)
	assert.Equal(t, Pass{Mode: ModeCPU, Filter: FilterNone, Model: mgl32.Ident4()}, pass)
	assert.Equal(t, []Pass{pass}, p.passes)
}

func TestSelectAndRenderCPUWarps(t *testing.T) {
	p := &recordingPresenter{}
	r := NewRenderer(p, 3)
	frame := testImage(32, 20, 31)
	fwd, _ := ComposeTransform(InteractionState{Rotation: 45, Scale: 1.5, TranslationX: 3}, Vec2{16, 10})

	pass, err := r.SelectAndRender(ModeCPU, frame, fwd, FilterEdgeDetect)
	require.NoError(t, err)

	filtered, _ := ApplyFilter(FilterEdgeDetect, frame)
	assert.Equal(t, FlipVertical(Warp(filtered, fwd)).Pix, p.lastUpload().Pix)
	assert.True(t, pass.Transform().IsIdentity(), "cpu pixels are already warped")
	assert.Equal(t, FilterNone, pass.Filter)
}

func TestSelectAndRenderGPUUploadsRawFrame(t *testing.T) {
	p := &recordingPresenter{}
	r := NewRenderer(p, 1)
	frame := testImage(16, 12, 32)
	fwd, _ := ComposeTransform(InteractionState{Rotation: 10, Scale: 2}, Vec2{8, 6})

	pass, err := r.SelectAndRender(ModeGPU, frame, fwd, FilterStylize)
	require.NoError(t, err)

	assert.Equal(t, FlipVertical(frame).Pix, p.lastUpload().Pix, "raw frame, flipped once")
	assert.Equal(t, ModeGPU, pass.Mode)
	assert.Equal(t, FilterStylize, pass.Filter)
	assert.False(t, pass.MultiPass)
	assert.Equal(t, fwd.ModelMatrix(), pass.Model)
}

func TestSelectAndRenderPixelateAlwaysGPU(t *testing.T) {
	for _, mode := range []RenderMode{ModeCPU, ModeGPU} {
		p := &recordingPresenter{}
		r := NewRenderer(p, 1)
		frame := testImage(20, 20, 33)
		fwd := Translation(4, 0)

		pass, err := r.SelectAndRender(mode, frame, fwd, FilterPixelate)
		require.NoError(t, err)
		assert.Equal(t, ModeGPU, pass.Mode, "requested %s", mode)
		assert.True(t, pass.MultiPass)
		assert.Equal(t, FilterPixelate, pass.Filter)
		assert.Equal(t, FlipVertical(frame).Pix, p.lastUpload().Pix)
	}
}

func TestSelectAndRenderEmptyFrameKeepsPreviousPass(t *testing.T) {
	p := &recordingPresenter{}
	r := NewRenderer(p, 1)
	frame := testImage(8, 8, 34)
	first, err := r.SelectAndRender(ModeGPU, frame, Translation(2, 2), FilterNone)
	require.NoError(t, err)

	for _, empty := range []*image.RGBA{nil, image.NewRGBA(image.Rectangle{})} {
		pass, err := r.SelectAndRender(ModeCPU, empty, Identity(), FilterGrayscale)
		assert.True(t, errors.Is(err, ErrEmptyFrame))
		assert.Equal(t, first, pass)
	}
	assert.Len(t, p.uploads, 1)
	assert.Len(t, p.passes, 1)
	last, ok := r.LastPass()
	assert.True(t, ok)
	assert.Equal(t, first, last)
}

func TestSelectAndRenderErrors(t *testing.T) {
	p := &recordingPresenter{}
	r := NewRenderer(p, 1)
	_, err := r.SelectAndRender(ModeCPU, testImage(4, 4, 35), Identity(), FilterKind(42))
	assert.True(t, errors.Is(err, ErrUnknownFilter))

	p.uploadErr = ErrResource
	_, err = r.SelectAndRender(ModeGPU, testImage(4, 4, 35), Identity(), FilterNone)
	assert.True(t, errors.Is(err, ErrResource))
	_, ok := r.LastPass()
	assert.False(t, ok)
	assert.Empty(t, p.passes)
}

func TestModeSwitchIsPerFrame(t *testing.T) {
	p := &recordingPresenter{}
	r := NewRenderer(p, 1)
	frame := testImage(8, 8, 36)
	modes := []RenderMode{ModeCPU, ModeGPU, ModeGPU, ModeCPU}
	for _, m := range modes {
		pass, err := r.SelectAndRender(m, frame, Translation(1, 1), FilterGrayscale)
		require.NoError(t, err)
		assert.Equal(t, m, pass.Mode)
	}
}

// gradientImage is a smooth image: neighbouring texels differ by about one
// level per channel.
func gradientImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 255 / w), uint8(y * 255 / h), 128, 255})
		}
	}
	return img
}

// emulateGPUGrayscale reproduces the GPU draw of a grayscale pass into a
// frame-sized target: the quad is mapped by frameGeoM, pixel centres inside
// the quad sample the texel under their inverse-mapped position and the
// grayscale shader weights the texel.
func emulateGPUGrayscale(uploaded *image.RGBA, pass Pass) *image.RGBA {
	b := uploaded.Bounds()
	w, h := b.Dx(), b.Dy()
	g := frameGeoM(pass.Model, h)
	g.Invert()
	out := image.NewRGBA(b)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			qx, qy := g.Apply(float64(x)+0.5, float64(y)+0.5)
			if qx < 0 || qy < 0 || qx >= float64(w) || qy >= float64(h) {
				continue
			}
			c := uploaded.RGBAAt(int(math.Floor(qx)), int(math.Floor(qy)))
			l := uint8(lumaR*float64(c.R) + lumaG*float64(c.G) + lumaB*float64(c.B) + 0.5)
			out.SetRGBA(x, y, color.RGBA{l, l, l, c.A})
		}
	}
	return out
}

func TestCPUAndGPUPathsAreEquivalent(t *testing.T) {
	const w, h = 256, 192
	frame := gradientImage(w, h)
	state := InteractionState{Rotation: 30, Scale: 1.25, TranslationX: 6, TranslationY: -4}
	fwd, ok := ComposeTransform(state, FramePivot(w, h, state))
	require.True(t, ok)

	cpu := &recordingPresenter{}
	_, err := NewRenderer(cpu, 1).SelectAndRender(ModeCPU, frame, fwd, FilterGrayscale)
	require.NoError(t, err)
	cpuShown := FlipVertical(cpu.lastUpload())

	gpu := &recordingPresenter{}
	gpuPass, err := NewRenderer(gpu, 1).SelectAndRender(ModeGPU, frame, fwd, FilterGrayscale)
	require.NoError(t, err)
	gpuShown := emulateGPUGrayscale(gpu.lastUpload(), gpuPass)

	var coverage, maxDiff int
	var sumDiff float64
	both := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a, b := cpuShown.RGBAAt(x, y), gpuShown.RGBAAt(x, y)
			if (a == Background) != (b == Background) {
				coverage++
				continue
			}
			if a == Background {
				continue
			}
			d := int(a.R) - int(b.R)
			if d < 0 {
				d = -d
			}
			maxDiff = max(maxDiff, d)
			sumDiff += float64(d)
			both++
		}
	}
	require.Positive(t, both)
	assert.Less(t, float64(coverage)/float64(w*h), 0.02, "quad edge coverage differs by sampling only")
	assert.LessOrEqual(t, maxDiff, 4, "interior differs by at most one texel")
	assert.Less(t, sumDiff/float64(both), 1.5)
}

func TestCPUAndGPUAgreeExactlyOnIntegerTranslation(t *testing.T) {
	const w, h = 40, 30
	frame := testImage(w, h, 37)
	fwd := Translation(7, -3)

	cpu := &recordingPresenter{}
	_, err := NewRenderer(cpu, 1).SelectAndRender(ModeCPU, frame, fwd, FilterGrayscale)
	require.NoError(t, err)

	gpu := &recordingPresenter{}
	pass, err := NewRenderer(gpu, 1).SelectAndRender(ModeGPU, frame, fwd, FilterGrayscale)
	require.NoError(t, err)

	assert.Equal(t, FlipVertical(cpu.lastUpload()).Pix, emulateGPUGrayscale(gpu.lastUpload(), pass).Pix)
}

func TestFrameGeoMUndoesUploadFlip(t *testing.T) {
	g := frameGeoM(Identity().ModelMatrix(), 10)
	x, y := g.Apply(3, 0)
	assertPoint(t, "top of texture", x, y, 3, 10, epsilon)
	x, y = g.Apply(3, 10)
	assertPoint(t, "bottom of texture", x, y, 3, 0, epsilon)
}

func TestGeoMFromModel(t *testing.T) {
	m := Transform{0, -2, 150, 2, 0, -30, 0, 0, 1}
	g := geoMFromModel(m.ModelMatrix())
	x, y := g.Apply(60, 50)
	assertPoint(t, "geom", x, y, 50, 90, 1e-4)
}

func TestLowResSize(t *testing.T) {
	w, h := lowResSize(640, 480)
	assert.Equal(t, 64, w)
	assert.Equal(t, 48, h)
	w, h = lowResSize(5, 5)
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, h)
}
