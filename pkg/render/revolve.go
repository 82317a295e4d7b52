package render

import (
	"context"
	"fmt"

	"github.com/latheworks/lathe/pkg/geom"
	"github.com/latheworks/lathe/pkg/kernel"
)

// RevolveProfile runs the fixed revolution sequence: connect the profile
// points into a wire, fill the wire into a planar face, sweep the face
// around the axis. Each step completes before the next begins; the first
// failing step aborts the rest and its error propagates to the caller
// without local recovery.
func RevolveProfile(ctx context.Context, k kernel.Kernel, p geom.Profile, dir geom.Direction, angleDeg float64) (kernel.Solid, error) {
	w, err := k.CreateWireFromPoints(ctx, p.Points())
	if err != nil {
		return nil, fmt.Errorf("wire construction: %w", err)
	}
	return revolveWire(ctx, k, w, dir, angleDeg)
}

// revolveWire is the face + revolve tail of the sequence, split out so the
// scene walk can reuse an already constructed wire for display.
func revolveWire(ctx context.Context, k kernel.Kernel, w kernel.Wire, dir geom.Direction, angleDeg float64) (kernel.Solid, error) {
	f, err := k.CreateFaceFromWire(ctx, w, true)
	if err != nil {
		return nil, fmt.Errorf("face construction: %w", err)
	}
	s, err := k.Revolve(ctx, f, dir, angleDeg)
	if err != nil {
		return nil, fmt.Errorf("revolve: %w", err)
	}
	return s, nil
}
