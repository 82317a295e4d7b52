// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"context"
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/latheworks/lathe/pkg/geom"
	"github.com/latheworks/lathe/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// defaultMeshCells controls marching cubes tessellation resolution.
const defaultMeshCells = 200

// planeTol is the tolerance for the Z=0 profile plane check.
const planeTol = 1e-9

// sdfxWire holds the validated point path of a wire. The SDF form is only
// materialized when the wire is filled into a face.
type sdfxWire struct {
	pts []geom.Point3
}

// Points returns a copy of the wire's ordered points.
func (w *sdfxWire) Points() []geom.Point3 {
	out := make([]geom.Point3, len(w.pts))
	copy(out, w.pts)
	return out
}

// Closed reports whether the wire's first and last points coincide.
func (w *sdfxWire) Closed() bool {
	return len(w.pts) >= 2 && w.pts[0] == w.pts[len(w.pts)-1]
}

// sdfxFace wraps an sdf.SDF2 to implement kernel.Face.
type sdfxFace struct {
	s sdf.SDF2
}

// BoundingBox returns the 2D bounds of the face.
func (f *sdfxFace) BoundingBox() (min, max [2]float64) {
	bb := f.s.BoundingBox()
	min = [2]float64{bb.Min.X, bb.Min.Y}
	max = [2]float64{bb.Max.X, bb.Max.Y}
	return min, max
}

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct{}

// New returns a new SdfxKernel.
func New() *SdfxKernel {
	return &SdfxKernel{}
}

// CreateWireFromPoints connects an ordered point sequence into a wire.
// The points are validated for finiteness; closure is recorded, not
// required, since open wires are legal until a face is requested.
func (k *SdfxKernel) CreateWireFromPoints(ctx context.Context, pts []geom.Point3) (kernel.Wire, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(pts) < 2 {
		return nil, fmt.Errorf("sdfx: wire needs at least 2 points, got %d", len(pts))
	}
	for i, p := range pts {
		if !p.Finite() {
			return nil, fmt.Errorf("sdfx: wire point %d is not finite: %v", i, p)
		}
	}
	own := make([]geom.Point3, len(pts))
	copy(own, pts)
	return &sdfxWire{pts: own}, nil
}

// CreateFaceFromWire fills a closed planar wire into an SDF2 face.
// This backend requires the wire to lie in the Z=0 plane, which is the
// plane profiles are defined in; faces in other planes are rejected.
func (k *SdfxKernel) CreateFaceFromWire(ctx context.Context, w kernel.Wire, planar bool) (kernel.Face, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sw, ok := w.(*sdfxWire)
	if !ok {
		return nil, fmt.Errorf("sdfx: wire %T was not created by this kernel", w)
	}
	if !sw.Closed() {
		return nil, fmt.Errorf("sdfx: wire is not closed, cannot build a face")
	}
	if planar {
		for i, p := range sw.pts {
			if math.Abs(p.Z) > planeTol {
				return nil, fmt.Errorf("sdfx: wire point %d is outside the Z=0 plane: %v", i, p)
			}
		}
	}

	// Drop the closing point; Polygon2D closes the loop itself.
	verts := make([]v2.Vec, 0, len(sw.pts)-1)
	for _, p := range sw.pts[:len(sw.pts)-1] {
		verts = append(verts, v2.Vec{X: p.X, Y: p.Y})
	}
	s2, err := sdf.Polygon2D(verts)
	if err != nil {
		return nil, fmt.Errorf("sdfx: Polygon2D: %w", err)
	}
	return &sdfxFace{s: s2}, nil
}

// Revolve sweeps a face around the axis through the origin along dir.
// The face's Y coordinate runs along the axis and its X coordinate is the
// radial distance; the solid is revolved about Z and then reoriented onto
// the requested direction.
func (k *SdfxKernel) Revolve(ctx context.Context, f kernel.Face, dir geom.Direction, angleDeg float64) (kernel.Solid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sf, ok := f.(*sdfxFace)
	if !ok {
		return nil, fmt.Errorf("sdfx: face %T was not created by this kernel", f)
	}
	u, err := dir.Unit()
	if err != nil {
		return nil, fmt.Errorf("sdfx: %w", err)
	}
	a := kernel.NormalizeAngle(angleDeg)
	if a == 0 {
		return nil, fmt.Errorf("sdfx: revolution angle 0 is degenerate")
	}

	var s3 sdf.SDF3
	if a == 360 {
		s3, err = sdf.Revolve3D(sf.s)
	} else {
		s3, err = sdf.RevolveTheta3D(sf.s, a*math.Pi/180)
	}
	if err != nil {
		return nil, fmt.Errorf("sdfx: revolve: %w", err)
	}

	// Revolve3D spins about Z. Rotate Z onto the requested axis.
	if m, rotated := rotateZOnto(u.X(), u.Y(), u.Z()); rotated {
		s3 = sdf.Transform3D(s3, m)
	}
	return &sdfxSolid{s: s3}, nil
}

// rotateZOnto builds the rotation taking the +Z axis onto the unit vector
// (x, y, z). The bool is false when no rotation is needed.
func rotateZOnto(x, y, z float64) (sdf.M44, bool) {
	if z > 1-1e-12 {
		return sdf.M44{}, false
	}
	polar := math.Acos(math.Max(-1, math.Min(1, z)))
	azimuth := math.Atan2(y, x)
	return sdf.RotateZ(azimuth).Mul(sdf.RotateY(polar)), true
}

// ToMesh converts a solid to a triangle mesh using marching cubes.
func (k *SdfxKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	ss, ok := s.(*sdfxSolid)
	if !ok {
		return nil, fmt.Errorf("sdfx: solid %T was not created by this kernel", s)
	}

	renderer := render.NewMarchingCubesUniform(defaultMeshCells)
	triangles := render.ToTriangles(ss.s, renderer)

	numVerts := len(triangles) * 3
	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}

// evaluate is a test hook: signed distance of a point from the solid's
// surface, negative inside.
func evaluate(s kernel.Solid, x, y, z float64) float64 {
	return s.(*sdfxSolid).s.Evaluate(v3.Vec{X: x, Y: y, Z: z})
}
