// Package geom defines the plain geometric value types passed between the
// profile builder, the geometry kernel, and the drawing layer. All types
// here are dumb data; anything with actual modeling behavior lives behind
// the kernel interface.
package geom

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Point3 is a point in 3D space.
type Point3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Pt is shorthand for constructing a Point3.
func Pt(x, y, z float64) Point3 {
	return Point3{X: x, Y: y, Z: z}
}

// Vec returns the point as an mgl64 vector.
func (p Point3) Vec() mgl64.Vec3 {
	return mgl64.Vec3{p.X, p.Y, p.Z}
}

// Sub returns the vector from q to p.
func (p Point3) Sub(q Point3) mgl64.Vec3 {
	return p.Vec().Sub(q.Vec())
}

// Finite reports whether all coordinates are finite reals.
func (p Point3) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0) &&
		!math.IsNaN(p.Z) && !math.IsInf(p.Z, 0)
}

func (p Point3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
}

// Direction is an unnormalized 3-vector giving a revolution axis. The axis
// always passes through the origin. A zero Direction is invalid.
type Direction struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Dir is shorthand for constructing a Direction.
func Dir(x, y, z float64) Direction {
	return Direction{X: x, Y: y, Z: z}
}

// IsZero reports whether the direction has no magnitude.
func (d Direction) IsZero() bool {
	return d.X == 0 && d.Y == 0 && d.Z == 0
}

// Unit returns the normalized direction. It errors on a zero or non-finite
// vector rather than returning NaNs.
func (d Direction) Unit() (mgl64.Vec3, error) {
	v := mgl64.Vec3{d.X, d.Y, d.Z}
	n := v.Len()
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return mgl64.Vec3{}, fmt.Errorf("direction %v is not a usable axis", d)
	}
	return v.Mul(1 / n), nil
}

func (d Direction) String() string {
	return fmt.Sprintf("[%g, %g, %g]", d.X, d.Y, d.Z)
}
