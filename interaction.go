package warpcam

import "math"

const (
	// ScrollZoomBase is the scale factor applied per scroll tick.
	ScrollZoomBase = 1.1
	// MinScale is the floor for the accumulated scale.
	MinScale = 0.1
	// MaxScale is the ceiling for the accumulated scale.
	MaxScale = 1000.0
)

// pointerState tracks one mouse button between press and release.
type pointerState struct {
	down   bool
	origin Vec2 // cursor position at press (rebased on reset)
}

// InteractionState is the accumulated pan/rotate/zoom driven by user input.
// It is owned by a single frame loop and is not safe for concurrent use.
type InteractionState struct {
	Rotation     float64 // degrees, never negative via drag input
	TranslationX float64 // pixels
	TranslationY float64 // pixels
	Scale        float64 // > 0

	left   pointerState
	right  pointerState
	scroll float64 // ticks not yet consumed
}

// NewInteractionState returns the identity state.
func NewInteractionState() InteractionState {
	return InteractionState{Scale: 1}
}

// Reset returns rotation, translation and scale to identity. A drag that is
// in progress continues from cursor as its new origin.
func (s *InteractionState) Reset(cursor Vec2) {
	s.Rotation = 0
	s.TranslationX = 0
	s.TranslationY = 0
	s.Scale = 1
	if s.left.down {
		s.left.origin = cursor
	}
	if s.right.down {
		s.right.origin = cursor
	}
}

// AddScroll accumulates scroll ticks to be consumed by the next Apply.
func (s *InteractionState) AddScroll(ticks float64) {
	s.scroll += ticks
}

// Dragging reports whether either drag button is held.
func (s *InteractionState) Dragging() bool {
	return s.left.down || s.right.down
}

// Apply advances the state by one frame of input, in order: reset, left
// drag (pan), right drag (rotate), scroll (zoom).
//
// A left drag sets the translation to the cursor offset from where the button
// went down; each new press starts a new baseline. A right drag sets the
// rotation to the distance the cursor has moved from its press position,
// regardless of direction. Scroll multiplies the scale by 1.1 per tick,
// clamped to [MinScale, MaxScale]; pending ticks are consumed.
func (s *InteractionState) Apply(in InputSnapshot) {
	if s.Scale == 0 {
		s.Scale = 1
	}
	if in.Reset {
		s.Reset(in.Cursor)
	}

	if in.Left {
		if !s.left.down {
			s.left = pointerState{down: true, origin: in.Cursor}
		}
		s.TranslationX = in.Cursor.X - s.left.origin.X
		s.TranslationY = in.Cursor.Y - s.left.origin.Y
	} else {
		s.left.down = false
	}

	if in.Right {
		if !s.right.down {
			s.right = pointerState{down: true, origin: in.Cursor}
		}
		s.Rotation = math.Hypot(in.Cursor.X-s.right.origin.X, in.Cursor.Y-s.right.origin.Y)
	} else {
		s.right.down = false
	}

	ticks := s.scroll + in.ScrollTicks
	s.scroll = 0
	if ticks != 0 {
		s.Scale *= math.Pow(ScrollZoomBase, ticks)
		switch {
		case math.IsNaN(s.Scale) || s.Scale < MinScale:
			s.Scale = MinScale
		case s.Scale > MaxScale:
			s.Scale = MaxScale
		}
	}
}
