package warpcam

import "math"

// Thresholds below which an elementary transform is skipped when composing.
const (
	RotationEpsilon    = 0.1    // degrees
	TranslationEpsilon = 0.1    // pixels
	ScaleEpsilon       = 0.0001 // |s - 1|

	// MinComposeScale replaces a non-positive scale so the composed
	// transform stays invertible.
	MinComposeScale = 1e-4
)

// ComposeTransform builds the frame transform for state about pivot:
//
//	ScaleAbout(s, pivot) * RotationAbout(θ, pivot) * Translation(tx, ty)
//
// With uniform scale this equals T(pivot) * R(θ) * S(s) * T(-pivot) * T(tx, ty),
// so the absolute translation is applied first, then rotation and scale about
// the pivot. Elementary transforms within the epsilons of the identity are
// skipped; ok reports whether anything was composed.
//
// The pivot is normally [FramePivot], which already includes the translation,
// so panning moves both the image and the centre of rotation.
func ComposeTransform(state InteractionState, pivot Vec2) (t Transform, ok bool) {
	t = Identity()

	s := state.Scale
	if s <= 0 || math.IsNaN(s) {
		s = MinComposeScale
	}
	if math.Abs(s-1) > ScaleEpsilon {
		t = t.Mul(ScaleAbout(s, s, pivot))
		ok = true
	}
	if math.Abs(state.Rotation) > RotationEpsilon {
		t = t.Mul(RotationAbout(state.Rotation, pivot))
		ok = true
	}
	if math.Abs(state.TranslationX) > TranslationEpsilon || math.Abs(state.TranslationY) > TranslationEpsilon {
		t = t.Mul(Translation(state.TranslationX, state.TranslationY))
		ok = true
	}
	return t, ok
}

// FramePivot returns the centre of a w x h frame offset by the accumulated
// translation in state.
func FramePivot(w, h int, state InteractionState) Vec2 {
	return Vec2{
		X: float64(w)/2 + state.TranslationX,
		Y: float64(h)/2 + state.TranslationY,
	}
}
