// Package spatial implements the kernel.Kernel interface using the
// github.com/soypat/sdf library (gonum r3 vectors). It is a pure Go
// alternative backend with the same contract as the sdfx kernel; the
// library panics on invalid geometry, so every construction call runs
// behind a recover wrapper that converts panics to errors.
package spatial

import (
	"context"
	"fmt"
	"math"
	"runtime/debug"

	sdf "github.com/soypat/sdf"
	form2 "github.com/soypat/sdf/form2/must2"
	"github.com/soypat/sdf/render"

	"github.com/latheworks/lathe/pkg/geom"
	"github.com/latheworks/lathe/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SpatialKernel)(nil)

// defaultMeshCells controls octree tessellation resolution.
const defaultMeshCells = 150

// planeTol is the tolerance for the Z=0 profile plane check.
const planeTol = 1e-9

// shapeErr wraps a panic from the sdf library into an error.
type shapeErr struct {
	panicObj interface{}
	stack    string
}

func (s *shapeErr) Error() string {
	return fmt.Sprintf("%v", s.panicObj)
}

// catch converts a panic raised by fn into a returned error.
func catch(fn func()) (err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{panicObj: a, stack: string(debug.Stack())}
		}
	}()
	fn()
	return nil
}

// spatialWire holds the validated point path of a wire.
type spatialWire struct {
	pts []geom.Point3
}

// Points returns a copy of the wire's ordered points.
func (w *spatialWire) Points() []geom.Point3 {
	out := make([]geom.Point3, len(w.pts))
	copy(out, w.pts)
	return out
}

// Closed reports whether the wire's first and last points coincide.
func (w *spatialWire) Closed() bool {
	return len(w.pts) >= 2 && w.pts[0] == w.pts[len(w.pts)-1]
}

// spatialFace wraps an sdf.SDF2 to implement kernel.Face.
type spatialFace struct {
	s sdf.SDF2
}

// BoundingBox returns the 2D bounds of the face.
func (f *spatialFace) BoundingBox() (min, max [2]float64) {
	bb := f.s.Bounds()
	min = [2]float64{bb.Min.X, bb.Min.Y}
	max = [2]float64{bb.Max.X, bb.Max.Y}
	return min, max
}

// spatialSolid wraps an sdf.SDF3 to implement kernel.Solid.
type spatialSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *spatialSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.Bounds()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// SpatialKernel implements kernel.Kernel using soypat/sdf.
type SpatialKernel struct{}

// New returns a new SpatialKernel.
func New() *SpatialKernel {
	return &SpatialKernel{}
}

// CreateWireFromPoints connects an ordered point sequence into a wire.
func (k *SpatialKernel) CreateWireFromPoints(ctx context.Context, pts []geom.Point3) (kernel.Wire, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(pts) < 2 {
		return nil, fmt.Errorf("spatial: wire needs at least 2 points, got %d", len(pts))
	}
	for i, p := range pts {
		if !p.Finite() {
			return nil, fmt.Errorf("spatial: wire point %d is not finite: %v", i, p)
		}
	}
	own := make([]geom.Point3, len(pts))
	copy(own, pts)
	return &spatialWire{pts: own}, nil
}

// CreateFaceFromWire fills a closed planar wire into an SDF2 face.
// Like the sdfx backend, the wire must lie in the Z=0 profile plane.
func (k *SpatialKernel) CreateFaceFromWire(ctx context.Context, w kernel.Wire, planar bool) (kernel.Face, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sw, ok := w.(*spatialWire)
	if !ok {
		return nil, fmt.Errorf("spatial: wire %T was not created by this kernel", w)
	}
	if !sw.Closed() {
		return nil, fmt.Errorf("spatial: wire is not closed, cannot build a face")
	}
	if planar {
		for i, p := range sw.pts {
			if math.Abs(p.Z) > planeTol {
				return nil, fmt.Errorf("spatial: wire point %d is outside the Z=0 plane: %v", i, p)
			}
		}
	}

	var s2 sdf.SDF2
	err := catch(func() {
		b := form2.NewPolygon()
		// Drop the closing point; the polygon closes itself.
		for _, p := range sw.pts[:len(sw.pts)-1] {
			b.Add(p.X, p.Y)
		}
		s2 = form2.Polygon(b.Vertices())
	})
	if err != nil {
		return nil, fmt.Errorf("spatial: polygon: %w", err)
	}
	return &spatialFace{s: s2}, nil
}

// Revolve sweeps a face around the axis through the origin along dir.
// The revolution happens about Z and the solid is then reoriented onto
// the requested direction.
func (k *SpatialKernel) Revolve(ctx context.Context, f kernel.Face, dir geom.Direction, angleDeg float64) (kernel.Solid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sf, ok := f.(*spatialFace)
	if !ok {
		return nil, fmt.Errorf("spatial: face %T was not created by this kernel", f)
	}
	u, err := dir.Unit()
	if err != nil {
		return nil, fmt.Errorf("spatial: %w", err)
	}
	a := kernel.NormalizeAngle(angleDeg)
	if a == 0 {
		return nil, fmt.Errorf("spatial: revolution angle 0 is degenerate")
	}

	var s3 sdf.SDF3
	err = catch(func() {
		s3 = sdf.Revolve3D(sf.s, a*math.Pi/180)
		if z := u.Z(); z <= 1-1e-12 {
			polar := math.Acos(math.Max(-1, math.Min(1, z)))
			azimuth := math.Atan2(u.Y(), u.X())
			s3 = sdf.Transform3D(s3, sdf.RotateZ(azimuth).Mul(sdf.RotateY(polar)))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("spatial: revolve: %w", err)
	}
	return &spatialSolid{s: s3}, nil
}

// ToMesh converts a solid to a triangle mesh using the octree renderer.
func (k *SpatialKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	ss, ok := s.(*spatialSolid)
	if !ok {
		return nil, fmt.Errorf("spatial: solid %T was not created by this kernel", s)
	}

	triangles, err := render.RenderAll(render.NewOctreeRenderer(ss.s, defaultMeshCells))
	if err != nil {
		return nil, fmt.Errorf("spatial: render: %w", err)
	}

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
