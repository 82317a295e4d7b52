package render

import (
	"context"
	"fmt"

	"github.com/latheworks/lathe/pkg/geom"
	"github.com/latheworks/lathe/pkg/kernel"
	"github.com/latheworks/lathe/pkg/scene"
)

// Drawable is the JSON-serializable draw record sent to the viewer
// frontend: either a line entity with points or a solid with a mesh,
// plus the style it should be displayed with.
type Drawable struct {
	Name   string          `json:"name"`
	Kind   string          `json:"kind"` // "wire", "polyline", or "solid"
	Points []geom.Point3   `json:"points,omitempty"`
	Mesh   *kernel.Mesh    `json:"mesh,omitempty"`
	Style  scene.DrawStyle `json:"style"`
}

// MeshDrawer is a Drawer that accumulates Drawables for the frontend.
// Solids are tessellated through the kernel; wires and polylines pass
// through as point sequences. Not safe for concurrent use.
type MeshDrawer struct {
	kernel    kernel.Kernel
	drawables []Drawable
}

// NewMeshDrawer returns a MeshDrawer tessellating with k.
func NewMeshDrawer(k kernel.Kernel) *MeshDrawer {
	return &MeshDrawer{kernel: k}
}

// Draw records one drawable. The returned handle is the Drawable itself.
func (d *MeshDrawer) Draw(ctx context.Context, e Entity, style scene.DrawStyle) (Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var dr Drawable
	switch v := e.(type) {
	case WireEntity:
		dr = Drawable{Name: v.Name, Kind: "wire", Points: v.Wire.Points(), Style: style}
	case PolylineEntity:
		dr = Drawable{Name: v.Name, Kind: "polyline", Points: v.Points, Style: style}
	case SolidEntity:
		mesh, err := d.kernel.ToMesh(v.Solid)
		if err != nil {
			return nil, fmt.Errorf("tessellate %q: %w", v.Name, err)
		}
		dr = Drawable{Name: v.Name, Kind: "solid", Mesh: mesh, Style: style}
	default:
		return nil, fmt.Errorf("unknown entity type %T", e)
	}

	d.drawables = append(d.drawables, dr)
	return dr, nil
}

// Drawables returns everything drawn so far, in draw order.
func (d *MeshDrawer) Drawables() []Drawable {
	out := make([]Drawable, len(d.drawables))
	copy(out, d.drawables)
	return out
}
