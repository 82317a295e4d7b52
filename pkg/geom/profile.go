package geom

import (
	"encoding/json"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// planarTol is the distance tolerance used by IsPlanar.
const planarTol = 1e-9

// Profile is an ordered, closed loop of points describing a cross-section
// to be revolved. The first and last point are identical. A Profile is
// immutable once constructed; the zero Profile is empty and invalid.
type Profile struct {
	pts []Point3
}

// NewProfile validates and constructs a Profile from an ordered point loop.
// The loop must contain at least three distinct points, be explicitly
// closed (first == last), contain only finite coordinates, and span a
// plane (an all-collinear loop has no interior). Geometric problems
// beyond that (self-intersection, non-planarity) are left for the
// geometry kernel to reject.
func NewProfile(pts []Point3) (Profile, error) {
	if len(pts) < 4 {
		return Profile{}, fmt.Errorf("profile needs at least 3 distinct points plus the closing point, got %d", len(pts))
	}
	for i, p := range pts {
		if !p.Finite() {
			return Profile{}, fmt.Errorf("profile point %d is not finite: %v", i, p)
		}
	}
	if pts[0] != pts[len(pts)-1] {
		return Profile{}, fmt.Errorf("profile is not closed: first point %v != last point %v", pts[0], pts[len(pts)-1])
	}
	distinct := make(map[Point3]struct{}, len(pts)-1)
	for _, p := range pts[:len(pts)-1] {
		distinct[p] = struct{}{}
	}
	if len(distinct) < 3 {
		return Profile{}, fmt.Errorf("profile needs at least 3 distinct points, got %d", len(distinct))
	}
	own := make([]Point3, len(pts))
	copy(own, pts)
	p := Profile{pts: own}
	if _, err := p.Normal(); err != nil {
		return Profile{}, fmt.Errorf("profile is degenerate: %w", err)
	}
	return p, nil
}

// MustProfile is NewProfile that panics on error. For fixed literal loops.
func MustProfile(pts []Point3) Profile {
	p, err := NewProfile(pts)
	if err != nil {
		panic(err)
	}
	return p
}

// RectProfile builds a closed rectangular cross-section in the X-Y plane at
// Z=0. The rectangle spans offsetFromAxis..offsetFromAxis+width in X and
// -height/2..height/2 in Y, wound counter-clockwise starting at the inner
// bottom corner. Only structural closure is guaranteed; a degenerate or
// inverted rectangle is the kernel's to reject.
func RectProfile(offsetFromAxis, width, height float64) Profile {
	h := height / 2
	return Profile{pts: []Point3{
		{X: offsetFromAxis, Y: -h},
		{X: offsetFromAxis + width, Y: -h},
		{X: offsetFromAxis + width, Y: h},
		{X: offsetFromAxis, Y: h},
		{X: offsetFromAxis, Y: -h},
	}}
}

// Points returns a copy of the point loop, closing point included.
func (p Profile) Points() []Point3 {
	out := make([]Point3, len(p.pts))
	copy(out, p.pts)
	return out
}

// Len returns the number of points in the loop, closing point included.
func (p Profile) Len() int {
	return len(p.pts)
}

// IsZero reports whether the profile is the empty zero value.
func (p Profile) IsZero() bool {
	return len(p.pts) == 0
}

// Normal returns a unit normal of the profile plane, derived from the
// first non-degenerate point triple. Errors when all triples are collinear.
func (p Profile) Normal() (mgl64.Vec3, error) {
	if len(p.pts) < 3 {
		return mgl64.Vec3{}, fmt.Errorf("profile has no plane: %d points", len(p.pts))
	}
	for i := 2; i < len(p.pts); i++ {
		a := p.pts[i-1].Sub(p.pts[0])
		b := p.pts[i].Sub(p.pts[0])
		n := a.Cross(b)
		if n.Len() > planarTol {
			return n.Normalize(), nil
		}
	}
	return mgl64.Vec3{}, fmt.Errorf("profile points are collinear, no plane defined")
}

// IsPlanar reports whether every point lies in the plane spanned by the
// loop, within tolerance. A loop with no defined plane is not planar.
func (p Profile) IsPlanar() bool {
	n, err := p.Normal()
	if err != nil {
		return false
	}
	origin := p.pts[0].Vec()
	for _, pt := range p.pts {
		if d := pt.Vec().Sub(origin).Dot(n); d > planarTol || d < -planarTol {
			return false
		}
	}
	return true
}

// MinDistanceToAxis returns the smallest distance from any profile point to
// the axis through the origin along dir. Used to warn about profiles that
// touch or cross their revolution axis.
func (p Profile) MinDistanceToAxis(dir Direction) (float64, error) {
	u, err := dir.Unit()
	if err != nil {
		return 0, err
	}
	min := -1.0
	for _, pt := range p.pts {
		v := pt.Vec()
		d := v.Sub(u.Mul(v.Dot(u))).Len()
		if min < 0 || d < min {
			min = d
		}
	}
	return min, nil
}

// MarshalJSON emits the profile as a plain point array.
func (p Profile) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.pts)
}
