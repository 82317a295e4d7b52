// Package kernel defines the abstract geometry kernel interface.
// Implementations (sdfx, spatial) provide wire, face, and solid-of-
// revolution construction behind this interface. The handles it returns
// are opaque: callers pass them between successive kernel calls and to the
// drawing layer, never inspecting their internals.
package kernel

import (
	"context"
	"math"

	"github.com/latheworks/lathe/pkg/geom"
)

// Wire is an opaque handle to a connected point path held by the kernel.
// A wire built from a closed point loop is closed. Immutable.
type Wire interface {
	// Points returns the ordered points the wire was built from.
	Points() []geom.Point3
	// Closed reports whether the wire forms a closed loop.
	Closed() bool
}

// Face is an opaque handle to a surface patch bounded by a wire.
type Face interface {
	// BoundingBox returns the 2D bounds of the face in its own plane.
	BoundingBox() (min, max [2]float64)
}

// Solid is an opaque handle to a geometry kernel solid.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface. All construction calls
// block until the kernel finishes and honor ctx cancellation. Failures
// (open wires, non-planar faces, degenerate revolutions) surface as errors
// from the failing call; the kernel never recovers on the caller's behalf.
type Kernel interface {
	// CreateWireFromPoints connects an ordered point sequence into a wire.
	CreateWireFromPoints(ctx context.Context, pts []geom.Point3) (Wire, error)

	// CreateFaceFromWire fills a closed wire into a face. With planar set,
	// the wire must lie in a single plane.
	CreateFaceFromWire(ctx context.Context, w Wire, planar bool) (Face, error)

	// Revolve sweeps a face around the axis through the origin along dir by
	// angleDeg degrees. Angles are taken modulo 360, with a nonzero
	// multiple of 360 meaning a full revolution; an angle of exactly 0 is
	// rejected as degenerate.
	Revolve(ctx context.Context, f Face, dir geom.Direction, angleDeg float64) (Solid, error)

	// ToMesh converts a solid to a triangle mesh for display.
	ToMesh(s Solid) (*Mesh, error)
}

// NormalizeAngle maps a revolution angle in degrees onto (0, 360]: theta
// and theta+360k describe the same sweep, and a nonzero multiple of 360
// means a full revolution. Zero input stays zero so callers can reject it
// explicitly as degenerate.
func NormalizeAngle(angleDeg float64) float64 {
	if angleDeg == 0 {
		return 0
	}
	a := math.Mod(angleDeg, 360)
	if a < 0 {
		a += 360
	}
	if a == 0 {
		return 360
	}
	return a
}
