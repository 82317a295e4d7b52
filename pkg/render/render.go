package render

import (
	"context"
	"fmt"
	"math"

	"github.com/latheworks/lathe/pkg/geom"
	"github.com/latheworks/lathe/pkg/kernel"
	"github.com/latheworks/lathe/pkg/scene"
)

// axisOverhang scales the axis indicator past the solid's extents so it
// reads as an axis rather than a diameter.
const axisOverhang = 1.3

// Render walks the scene in item order and issues draw requests for each
// item's three layers: profile wire, axis indicator, revolved solid. The
// scene is validated first; a blocking validation finding or any failing
// kernel or drawer call aborts the walk and propagates. Render never
// mutates the scene.
func Render(ctx context.Context, s *scene.Scene, k kernel.Kernel, d Drawer) ([]Handle, error) {
	if errs := scene.Validate(s); len(errs) > 0 {
		return nil, fmt.Errorf("render: invalid scene: %w", errs[0])
	}

	var handles []Handle
	for i, item := range s.Items {
		collected, err := renderItem(ctx, item, k, d)
		if err != nil {
			return nil, fmt.Errorf("render: item %d (%q): %w", i, item.Name, err)
		}
		handles = append(handles, collected...)
	}
	return handles, nil
}

// renderItem builds one item's geometry and draws its three layers.
func renderItem(ctx context.Context, item scene.Item, k kernel.Kernel, d Drawer) ([]Handle, error) {
	w, err := k.CreateWireFromPoints(ctx, item.Profile.Points())
	if err != nil {
		return nil, fmt.Errorf("wire construction: %w", err)
	}
	solid, err := revolveWire(ctx, k, w, item.Axis, item.AngleDeg)
	if err != nil {
		return nil, err
	}

	handles := make([]Handle, 0, 3)

	h, err := d.Draw(ctx, WireEntity{Name: item.Name + "/profile", Wire: w}, item.ProfileStyle)
	if err != nil {
		return nil, fmt.Errorf("draw profile: %w", err)
	}
	handles = append(handles, h)

	h, err = d.Draw(ctx, PolylineEntity{Name: item.Name + "/axis", Points: axisIndicator(item.Axis, solid)}, item.AxisStyle)
	if err != nil {
		return nil, fmt.Errorf("draw axis: %w", err)
	}
	handles = append(handles, h)

	h, err = d.Draw(ctx, SolidEntity{Name: item.Name, Solid: solid}, item.SolidStyle)
	if err != nil {
		return nil, fmt.Errorf("draw solid: %w", err)
	}
	handles = append(handles, h)

	return handles, nil
}

// axisIndicator returns a two-point polyline along the revolution axis,
// sized to overhang the solid's bounding box.
func axisIndicator(dir geom.Direction, s kernel.Solid) []geom.Point3 {
	u, err := dir.Unit()
	if err != nil {
		// Validated upstream; an unusable axis here means no indicator.
		return nil
	}
	min, max := s.BoundingBox()
	ext := 1.0
	for i := 0; i < 3; i++ {
		ext = math.Max(ext, math.Max(math.Abs(min[i]), math.Abs(max[i])))
	}
	l := ext * axisOverhang
	a := u.Mul(-l)
	b := u.Mul(l)
	return []geom.Point3{
		geom.Pt(a.X(), a.Y(), a.Z()),
		geom.Pt(b.X(), b.Y(), b.Z()),
	}
}
