// Package render walks a scene and produces drawables using a geometry
// kernel and a drawer. It owns the fixed wire -> face -> solid revolution
// sequence; the geometry itself and the actual rendering are delegated to
// the kernel and drawer collaborators.
package render

import (
	"context"

	"github.com/latheworks/lathe/pkg/geom"
	"github.com/latheworks/lathe/pkg/kernel"
	"github.com/latheworks/lathe/pkg/scene"
)

// Handle is whatever a drawer returns for a completed draw call. Callers
// hold it without inspecting it.
type Handle interface{}

// Entity is one heterogeneous drawable: a kernel wire, a bare polyline, or
// a kernel solid. The set is closed.
type Entity interface {
	entity()
}

// WireEntity draws a kernel wire as a line loop.
type WireEntity struct {
	Name string
	Wire kernel.Wire
}

func (WireEntity) entity() {}

// PolylineEntity draws a plain point sequence, used for axis indicators.
type PolylineEntity struct {
	Name   string
	Points []geom.Point3
}

func (PolylineEntity) entity() {}

// SolidEntity draws a kernel solid as a shaded mesh.
type SolidEntity struct {
	Name  string
	Solid kernel.Solid
}

func (SolidEntity) entity() {}

// Drawer issues one rendering request per entity. Draw calls are
// independent of each other; their order only matters for transparency
// compositing, which is the renderer's business.
type Drawer interface {
	Draw(ctx context.Context, e Entity, style scene.DrawStyle) (Handle, error)
}
