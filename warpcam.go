package warpcam

import (
	"fmt"
	"strings"
)

// Vec2 is a 2D point or vector in pixel coordinates.
type Vec2 struct {
	X, Y float64
}

// RenderMode selects which path warps and filters the current frame.
type RenderMode uint8

const (
	// ModeCPU filters and warps pixels on the CPU before upload.
	ModeCPU RenderMode = iota
	// ModeGPU uploads the raw frame and warps and filters it in a shader.
	ModeGPU
)

func (m RenderMode) String() string {
	switch m {
	case ModeCPU:
		return "cpu"
	case ModeGPU:
		return "gpu"
	default:
		return fmt.Sprintf("RenderMode(%d)", m)
	}
}

// Toggle returns the other render mode.
func (m RenderMode) Toggle() RenderMode {
	if m == ModeCPU {
		return ModeGPU
	}
	return ModeCPU
}

// ParseRenderMode parses "cpu" or "gpu" (case-insensitive).
func ParseRenderMode(s string) (RenderMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cpu", "":
		return ModeCPU, nil
	case "gpu":
		return ModeGPU, nil
	}
	return ModeCPU, fmt.Errorf("warpcam: unknown render mode %q", s)
}

// FilterKind is the closed set of image filters both render paths implement.
type FilterKind uint8

const (
	FilterNone FilterKind = iota
	FilterGrayscale
	FilterPixelate
	FilterEdgeDetect
	FilterStylize
	FilterMedianBlur

	filterKindCount
)

var filterNames = [filterKindCount]string{
	FilterNone:       "none",
	FilterGrayscale:  "grayscale",
	FilterPixelate:   "pixelate",
	FilterEdgeDetect: "edge",
	FilterStylize:    "stylize",
	FilterMedianBlur: "median",
}

func (k FilterKind) String() string {
	if k.Valid() {
		return filterNames[k]
	}
	return fmt.Sprintf("FilterKind(%d)", k)
}

// Valid reports whether k is one of the declared filter kinds.
func (k FilterKind) Valid() bool {
	return k < filterKindCount
}

// Next returns the following filter kind, wrapping around.
func (k FilterKind) Next() FilterKind {
	return (k + 1) % filterKindCount
}

// Prev returns the preceding filter kind, wrapping around.
func (k FilterKind) Prev() FilterKind {
	return (k + filterKindCount - 1) % filterKindCount
}

// ParseFilterKind parses a filter name as printed by [FilterKind.String].
// "sincity" is accepted as an alias for stylize.
func ParseFilterKind(s string) (FilterKind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return FilterNone, nil
	}
	if name == "sincity" {
		return FilterStylize, nil
	}
	for k, n := range filterNames {
		if n == name {
			return FilterKind(k), nil
		}
	}
	return FilterNone, fmt.Errorf("%w: %q", ErrUnknownFilter, s)
}
