package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Float is the set of floating point types the scalar helpers operate on.
type Float interface {
	~float32 | ~float64
}

// Clamp limits v to the closed range [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound (inclusive)
//   - hi: upper bound (inclusive)
//
// Returns:
//   - T: v limited to [lo, hi]
func Clamp[T Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp moves from a toward b by fraction t of the remaining distance.
// t = 0 returns a, t = 1 returns b.
//
// Parameters:
//   - a: start value
//   - b: end value
//   - t: interpolation fraction
//
// Returns:
//   - T: the interpolated value
func Lerp[T Float](a, b, t T) T {
	return a + (b-a)*t
}

// Abs returns the absolute value of v.
func Abs[T Float](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

// Finite32 returns v, or 0 if v is NaN or infinite.
//
// Parameters:
//   - v: the value to sanitize
//
// Returns:
//   - float32: v when finite, otherwise 0
func Finite32(v float32) float32 {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return v
}

// WrapIndex maps any integer into [0, n) using modular arithmetic that also handles negatives.
// Returns 0 when n <= 0.
//
// Parameters:
//   - i: the index to wrap
//   - n: the length of the indexed sequence
//
// Returns:
//   - int: the wrapped index
func WrapIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// ModelMatrix builds a model matrix from a translation, a tilt (rotation about X), a yaw
// (rotation about Y) and a uniform scale. Rotation order is X * Y: the object spins about its
// own vertical axis first and the spun object is then tilted toward the viewer.
//
// Parameters:
//   - pos: translation in world space
//   - tilt: rotation about the X axis in radians
//   - yaw: rotation about the Y axis in radians
//   - scale: uniform scale factor
//
// Returns:
//   - mgl32.Mat4: the combined model matrix
func ModelMatrix(pos mgl32.Vec3, tilt, yaw, scale float32) mgl32.Mat4 {
	t := mgl32.Translate3D(pos.X(), pos.Y(), pos.Z())
	r := mgl32.HomogRotate3DX(tilt).Mul4(mgl32.HomogRotate3DY(yaw))
	s := mgl32.Scale3D(scale, scale, scale)
	return t.Mul4(r).Mul4(s)
}
