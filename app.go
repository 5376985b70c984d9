package warpcam

import (
	"errors"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	Graphics      ebiten.GraphicsLibrary
	VSync         bool
	Resizable     bool
	// ShowFPS enables the status overlay and keeps it on screen.
	ShowFPS bool
}

// framePresenter is a Presenter that can also draw itself to the screen.
type framePresenter interface {
	Presenter
	Draw(screen *ebiten.Image) error
	Resize(outW, outH int)
	dispose()
}

// App owns all per-run state: the interaction state, the render path, the
// frame source and the controls. It implements ebiten.Game.
type App struct {
	cfg      Config
	src      Source
	state    InteractionState
	renderer *Renderer
	video    framePresenter

	mode   RenderMode
	filter FilterKind
	preset int

	frameW, frameH int
	outW, outH     int
	transform      Transform

	stats  *FrameStats
	hud    *hud
	inject inputQueue
	runner *TestRunner

	screenshots []string

	poll     func() InputSnapshot
	now      func() time.Time
	lastTick time.Time
	drawTime time.Duration
	drawErr  error
	window   bool

	frames  int
	skipped int
}

// NewApp builds an App from cfg reading frames from src.
func NewApp(cfg Config, src Source) (*App, error) {
	return newApp(cfg, src, nil)
}

func newApp(cfg Config, src Source, p framePresenter) (*App, error) {
	if src == nil {
		return nil, errors.New("warpcam: nil frame source")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mode, _ := ParseRenderMode(cfg.Mode)
	filter, _ := ParseFilterKind(cfg.Filter)

	a := &App{
		cfg:       cfg,
		src:       src,
		state:     NewInteractionState(),
		mode:      mode,
		filter:    filter,
		preset:    cfg.Resolution,
		transform: Identity(),
		stats:     NewFrameStats(cfg.StatsInterval),
		hud:       newHUD(cfg.HUD),
		poll:      ReadInput,
		now:       timestamp,
	}
	a.outW, a.outH = OutputSize(a.preset, 0, 0)
	if p == nil {
		p = newVideoTexture(a.outW, a.outH)
	}
	a.video = p
	a.renderer = NewRenderer(p, cfg.Workers)
	if cfg.ShowFPS {
		a.hud.pin()
	}
	a.stats.Reset(a.mode, a.filter)
	a.hud.show(a.status())
	return a, nil
}

// Update implements ebiten.Game. Each frame it reads input, applies the
// controls, advances the interaction state, then composes and renders the
// next captured frame.
func (a *App) Update() error {
	if err := a.drawErr; err != nil {
		return err
	}
	start := a.now()
	dt := time.Duration(0)
	if !a.lastTick.IsZero() {
		dt = start.Sub(a.lastTick)
	}
	a.lastTick = start

	if a.runner != nil {
		a.runner.step(a)
	}
	in, ok := a.inject.pop()
	if !ok {
		in = a.poll()
	}
	if a.applyControls(in.Keys) {
		return ebiten.Termination
	}
	// Input is applied even when the frame turns out to be empty; the state
	// carries over and the last transform stays on screen.
	in.Cursor = a.screenToFrame(in.Cursor)
	a.state.Apply(in)
	a.hud.update(float32(dt.Seconds()))

	frame, err := a.src.NextFrame()
	if err != nil {
		return fmt.Errorf("next frame: %w", err)
	}
	if IsEmptyFrame(frame) {
		a.skipped++
		Logger().Debug("empty frame skipped", "skipped", a.skipped)
		return nil
	}
	if b := frame.Bounds(); b.Dx() != a.frameW || b.Dy() != a.frameH {
		a.frameW, a.frameH = b.Dx(), b.Dy()
		a.SetResolution(a.preset)
	}

	pivot := FramePivot(a.frameW, a.frameH, a.state)
	a.transform, _ = ComposeTransform(a.state, pivot)
	if _, err := a.renderer.SelectAndRender(a.mode, frame, a.transform, a.filter); err != nil {
		if errors.Is(err, ErrEmptyFrame) {
			a.skipped++
			return nil
		}
		return err
	}
	a.frames++
	if a.stats.Record(a.now().Sub(start) + a.drawTime) {
		a.hud.refresh(a.status())
	}
	return nil
}

// Draw implements ebiten.Game.
func (a *App) Draw(screen *ebiten.Image) {
	start := a.now()
	if err := a.video.Draw(screen); err != nil {
		a.drawErr = err
		return
	}
	a.hud.draw(screen)
	a.flushScreenshots(screen)
	a.drawTime = a.now().Sub(start)
}

// Layout implements ebiten.Game. The logical screen is the output
// resolution.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.outW, a.outH
}

// SetResolution selects preset p (0-3) and resizes the window and offscreen
// targets before the next frame.
func (a *App) SetResolution(p int) {
	a.preset = min(max(p, 0), len(ResolutionPresets)-1)
	a.outW, a.outH = OutputSize(a.preset, a.frameW, a.frameH)
	a.video.Resize(a.outW, a.outH)
	if a.window {
		ebiten.SetWindowSize(a.outW, a.outH)
	}
	Logger().Info("output resolution", "width", a.outW, "height", a.outH)
}

// screenToFrame converts screen (layout) coordinates into frame pixels.
func (a *App) screenToFrame(p Vec2) Vec2 {
	if a.frameW == 0 || a.frameH == 0 || a.outW == 0 || a.outH == 0 {
		return p
	}
	return Vec2{
		X: p.X * float64(a.frameW) / float64(a.outW),
		Y: p.Y * float64(a.frameH) / float64(a.outH),
	}
}

func (a *App) status() string {
	var b strings.Builder
	fmt.Fprintf(&b, "mode: %s\nfilter: %s", a.mode, a.filter)
	if a.filter == FilterPixelate && a.mode == ModeCPU {
		b.WriteString(" (gpu)")
	}
	if a.stats.Frames() > 0 {
		fmt.Fprintf(&b, "\nfps: %.1f", a.stats.FPS())
	}
	return b.String()
}

// Mode returns the current render mode.
func (a *App) Mode() RenderMode { return a.mode }

// Filter returns the current filter.
func (a *App) Filter() FilterKind { return a.filter }

// State returns a copy of the interaction state.
func (a *App) State() InteractionState { return a.state }

// Transform returns the transform composed for the last rendered frame.
func (a *App) Transform() Transform { return a.transform }

// OutputSize returns the current output resolution.
func (a *App) OutputSize() (int, int) { return a.outW, a.outH }

// FrameSize returns the size of the last non-empty frame.
func (a *App) FrameSize() image.Point { return image.Pt(a.frameW, a.frameH) }

// Stats returns the frame statistics.
func (a *App) Stats() *FrameStats { return a.stats }

// Frames returns the number of frames rendered and skipped.
func (a *App) Frames() (rendered, skipped int) { return a.frames, a.skipped }

// RunConfig returns window settings derived from the app's Config.
func (a *App) RunConfig() RunConfig {
	gl, _ := parseGraphicsLibrary(a.cfg.Graphics)
	return RunConfig{
		Title:     a.cfg.Title,
		Width:     a.outW,
		Height:    a.outH,
		Graphics:  gl,
		VSync:     a.cfg.VSync,
		Resizable: a.cfg.Resizable,
		ShowFPS:   a.cfg.ShowFPS,
	}
}

// Run opens a window and drives app until the user quits or a fatal error
// occurs. Shaders are compiled before the loop starts.
func Run(app *App, cfg RunConfig) error {
	if v, ok := app.video.(*videoTexture); ok {
		if err := v.shaders.compileAll(); err != nil {
			return err
		}
	}
	defer app.video.dispose()
	defer app.hud.dispose()

	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		w, h = app.OutputSize()
	}
	ebiten.SetWindowSize(w, h)
	ebiten.SetVsyncEnabled(cfg.VSync)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.ShowFPS {
		app.hud.pin()
	}
	app.window = true

	err := ebiten.RunGameWithOptions(app, &ebiten.RunGameOptions{GraphicsLibrary: cfg.Graphics})
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func parseGraphicsLibrary(s string) (ebiten.GraphicsLibrary, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ebiten.GraphicsLibraryAuto, nil
	case "opengl", "gl":
		return ebiten.GraphicsLibraryOpenGL, nil
	case "directx", "dx":
		return ebiten.GraphicsLibraryDirectX, nil
	case "metal":
		return ebiten.GraphicsLibraryMetal, nil
	}
	return ebiten.GraphicsLibraryAuto, fmt.Errorf("warpcam: unknown graphics library %q", s)
}
