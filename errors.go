package warpcam

import "errors"

var (
	// ErrEmptyFrame is returned when a capture source yields a frame with no
	// pixels. Callers skip the frame and keep presenting the previous one.
	ErrEmptyFrame = errors.New("warpcam: empty frame")

	// ErrSingularTransform is returned by [Transform.Invert] when the matrix
	// has no usable inverse.
	ErrSingularTransform = errors.New("warpcam: singular transform")

	// ErrUnknownFilter is returned for a FilterKind outside the declared set.
	ErrUnknownFilter = errors.New("warpcam: unknown filter")

	// ErrSizeMismatch is returned when a destination buffer does not match the
	// source bounds.
	ErrSizeMismatch = errors.New("warpcam: image size mismatch")

	// ErrResource wraps failures creating textures, shaders, render targets or
	// capture devices. These are fatal for the run.
	ErrResource = errors.New("warpcam: resource creation failed")
)
