package warpcam

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/mat"
)

// Transform is a 3x3 homogeneous 2D transform stored row-major:
//
//	| m[0] m[1] m[2] |
//	| m[3] m[4] m[5] |
//	| m[6] m[7] m[8] |
//
// Points are column vectors, so A.Mul(B) applies B first. The last row is
// [0 0 1] for every constructor here; it is not enforced.
type Transform [9]float64

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// Translation returns a transform that shifts points by (dx, dy).
func Translation(dx, dy float64) Transform {
	return Transform{1, 0, dx, 0, 1, dy, 0, 0, 1}
}

// RotationAbout returns a rotation by deg degrees about pivot. In image
// coordinates (y down) a positive angle turns clockwise on screen.
func RotationAbout(deg float64, pivot Vec2) Transform {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return Transform{
		cos, -sin, pivot.X - cos*pivot.X + sin*pivot.Y,
		sin, cos, pivot.Y - sin*pivot.X - cos*pivot.Y,
		0, 0, 1,
	}
}

// ScaleAbout returns a scale by (sx, sy) about pivot.
func ScaleAbout(sx, sy float64, pivot Vec2) Transform {
	return Transform{
		sx, 0, pivot.X - sx*pivot.X,
		0, sy, pivot.Y - sy*pivot.Y,
		0, 0, 1,
	}
}

// Mul returns t * o.
func (t Transform) Mul(o Transform) Transform {
	var r Transform
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			r[row*3+col] = t[row*3]*o[col] + t[row*3+1]*o[3+col] + t[row*3+2]*o[6+col]
		}
	}
	return r
}

// Apply maps (x, y) through t, dividing by the homogeneous coordinate.
func (t Transform) Apply(x, y float64) (float64, float64) {
	px := t[0]*x + t[1]*y + t[2]
	py := t[3]*x + t[4]*y + t[5]
	w := t[6]*x + t[7]*y + t[8]
	if w != 1 && w != 0 {
		px /= w
		py /= w
	}
	return px, py
}

// Det returns the determinant of t.
func (t Transform) Det() float64 {
	return t[0]*(t[4]*t[8]-t[5]*t[7]) -
		t[1]*(t[3]*t[8]-t[5]*t[6]) +
		t[2]*(t[3]*t[7]-t[4]*t[6])
}

// Invert returns the inverse of t. It returns ErrSingularTransform when t is
// singular or too badly conditioned to invert.
func (t Transform) Invert() (Transform, error) {
	if det := t.Det(); math.Abs(det) < 1e-12 || math.IsNaN(det) {
		return Identity(), fmt.Errorf("%w: determinant %g", ErrSingularTransform, det)
	}
	var inv mat.Dense
	if err := inv.Inverse(mat.NewDense(3, 3, t[:])); err != nil {
		return Identity(), fmt.Errorf("%w: %v", ErrSingularTransform, err)
	}
	var r Transform
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			r[row*3+col] = inv.At(row, col)
		}
	}
	return r, nil
}

// IsIdentity reports whether t is the identity within 1e-9.
func (t Transform) IsIdentity() bool {
	id := Identity()
	for i := range t {
		if math.Abs(t[i]-id[i]) > 1e-9 {
			return false
		}
	}
	return true
}

// ModelMatrix embeds t into the xy-plane of a 4x4 model matrix (column-major,
// as consumed by shaders). z passes through unchanged.
func (t Transform) ModelMatrix() mgl32.Mat4 {
	m := mgl32.Ident4()
	m.Set(0, 0, float32(t[0]))
	m.Set(0, 1, float32(t[1]))
	m.Set(0, 3, float32(t[2]))
	m.Set(1, 0, float32(t[3]))
	m.Set(1, 1, float32(t[4]))
	m.Set(1, 3, float32(t[5]))
	m.Set(3, 0, float32(t[6]))
	m.Set(3, 1, float32(t[7]))
	m.Set(3, 3, float32(t[8]))
	return m
}

// TransformFromModel extracts the 2D transform embedded by [Transform.ModelMatrix].
func TransformFromModel(m mgl32.Mat4) Transform {
	return Transform{
		float64(m.At(0, 0)), float64(m.At(0, 1)), float64(m.At(0, 3)),
		float64(m.At(1, 0)), float64(m.At(1, 1)), float64(m.At(1, 3)),
		float64(m.At(3, 0)), float64(m.At(3, 1)), float64(m.At(3, 3)),
	}
}

func (t Transform) String() string {
	return fmt.Sprintf("[%.4g %.4g %.4g; %.4g %.4g %.4g; %.4g %.4g %.4g]",
		t[0], t[1], t[2], t[3], t[4], t[5], t[6], t[7], t[8])
}
