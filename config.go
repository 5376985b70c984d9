package warpcam

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ResolutionPresets are the selectable output heights in pixels, picked with
// keys 1-4. Output width follows the frame aspect ratio.
var ResolutionPresets = [4]int{480, 720, 1080, 1600}

// Config holds application settings. Zero fields are filled from
// DefaultConfig by LoadConfig and ParseConfig.
type Config struct {
	Title string `toml:"title"`
	// Resolution is the index into ResolutionPresets.
	Resolution int    `toml:"resolution"`
	Mode       string `toml:"mode"`
	Filter     string `toml:"filter"`
	// Workers is the number of CPU warp row bands.
	Workers       int    `toml:"workers"`
	LogLevel      string `toml:"log_level"`
	ScreenshotDir string `toml:"screenshot_dir"`
	// Graphics selects the backend: auto, opengl, directx or metal.
	Graphics  string `toml:"graphics"`
	VSync     bool   `toml:"vsync"`
	Resizable bool   `toml:"resizable"`
	// StatsInterval is the number of frames between FPS log lines.
	StatsInterval int `toml:"stats_interval"`
	// HUD shows the on-screen status overlay.
	HUD bool `toml:"hud"`
	// ShowFPS keeps the overlay on screen instead of fading it out.
	ShowFPS bool `toml:"show_fps"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Title:         "warpcam",
		Resolution:    0,
		Mode:          "cpu",
		Filter:        "none",
		Workers:       1,
		LogLevel:      "info",
		ScreenshotDir: "screenshots",
		Graphics:      "auto",
		VSync:         true,
		Resizable:     false,
		StatsInterval: 60,
		HUD:           true,
	}
}

// LoadConfig reads a TOML config file. Keys missing from the file keep their
// default values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes TOML data over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return Config{}, fmt.Errorf("parse toml at %d:%d: %w", row, col, err)
		}
		return Config{}, fmt.Errorf("parse toml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	var errs []error
	if c.Resolution < 0 || c.Resolution >= len(ResolutionPresets) {
		errs = append(errs, fmt.Errorf("resolution %d out of range [0,%d)", c.Resolution, len(ResolutionPresets)))
	}
	if _, err := ParseRenderMode(c.Mode); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseFilterKind(c.Filter); err != nil {
		errs = append(errs, err)
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be >= 1, got %d", c.Workers))
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if _, err := parseGraphicsLibrary(c.Graphics); err != nil {
		errs = append(errs, err)
	}
	if c.StatsInterval < 1 {
		errs = append(errs, fmt.Errorf("stats_interval must be >= 1, got %d", c.StatsInterval))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// OutputSize returns the output size for preset index p and a frame of
// frameW x frameH: the preset height and the width that keeps the frame
// aspect ratio.
func OutputSize(p, frameW, frameH int) (int, int) {
	p = min(max(p, 0), len(ResolutionPresets)-1)
	h := ResolutionPresets[p]
	if frameW <= 0 || frameH <= 0 {
		return h * 4 / 3, h
	}
	return max(h*frameW/frameH, 1), h
}
