// Package scene defines the evaluated scene model and the validated
// configuration records for the viewer. A Scene is the output of script
// evaluation (or of the Builder); it is never mutated after construction,
// each evaluation produces a new one.
package scene

import (
	"fmt"

	"github.com/latheworks/lathe/pkg/geom"
)

// Camera holds orbit-camera parameters for the viewer.
// Construct with NewCamera and treat as immutable.
type Camera struct {
	Alpha  float64     `json:"alpha"`  // horizontal orbit angle, radians
	Beta   float64     `json:"beta"`   // vertical orbit angle, radians
	Radius float64     `json:"radius"` // distance from target
	Target geom.Point3 `json:"target"`
}

// NewCamera validates c and returns it unchanged.
func NewCamera(c Camera) (Camera, error) {
	if err := c.Validate(); err != nil {
		return Camera{}, err
	}
	return c, nil
}

// Validate checks the camera record.
func (c Camera) Validate() error {
	if c.Radius <= 0 {
		return fmt.Errorf("camera radius %g must be positive", c.Radius)
	}
	if !c.Target.Finite() {
		return fmt.Errorf("camera target %v is not finite", c.Target)
	}
	return nil
}

// DefaultCamera returns the standard three-quarter view.
func DefaultCamera() Camera {
	return Camera{Alpha: 0.8, Beta: 1.1, Radius: 35}
}

// Options is the viewer bootstrap configuration: canvas identity, scene
// size, ground/shadow toggles, and the initial camera. Construct with
// NewOptions and treat as immutable.
type Options struct {
	CanvasID string `json:"canvasId"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Ground   bool   `json:"ground"`
	Shadows  bool   `json:"shadows"`
	Camera   Camera `json:"camera"`
}

// NewOptions validates o and returns it unchanged. This replaces mutable
// field-by-field option objects: every field is fixed and checked here.
func NewOptions(o Options) (Options, error) {
	if err := o.Validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}

// Validate checks the options record.
func (o Options) Validate() error {
	if o.CanvasID == "" {
		return fmt.Errorf("canvas id must not be empty")
	}
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("scene size %dx%d must be positive", o.Width, o.Height)
	}
	return o.Camera.Validate()
}

// DefaultOptions returns the standard viewer configuration.
func DefaultOptions() Options {
	return Options{
		CanvasID: "viewer",
		Width:    1200,
		Height:   800,
		Ground:   true,
		Shadows:  false,
		Camera:   DefaultCamera(),
	}
}

// Item is one revolution in a scene: a profile swept around an axis, with
// an independent style per display layer.
type Item struct {
	Name         string         `json:"name"`
	Profile      geom.Profile   `json:"profile"`
	Axis         geom.Direction `json:"axis"`
	AngleDeg     float64        `json:"angleDeg"`
	ProfileStyle DrawStyle      `json:"profileStyle"`
	AxisStyle    DrawStyle      `json:"axisStyle"`
	SolidStyle   DrawStyle      `json:"solidStyle"`
}

// NewItem assembles a revolution item with the default layer styles.
func NewItem(name string, p geom.Profile, axis geom.Direction, angleDeg float64) Item {
	return Item{
		Name:         name,
		Profile:      p,
		Axis:         axis,
		AngleDeg:     angleDeg,
		ProfileStyle: DefaultProfileStyle(),
		AxisStyle:    DefaultAxisStyle(),
		SolidStyle:   DefaultSolidStyle(),
	}
}

// Scene is an ordered list of revolution items. Order is draw order, which
// only matters for transparency compositing in the viewer.
type Scene struct {
	Items []Item `json:"items"`
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{}
}

// Lookup returns the first item with the given name, or nil.
func (s *Scene) Lookup(name string) *Item {
	for i := range s.Items {
		if s.Items[i].Name == name {
			return &s.Items[i]
		}
	}
	return nil
}

// ItemCount returns the number of items.
func (s *Scene) ItemCount() int {
	return len(s.Items)
}

// Builder accumulates items and produces a validated Scene. It is the
// programmatic alternative to the script engine.
type Builder struct {
	items []Item
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddRevolution appends an item after structural validation. The item's
// styles must already be valid; use NewItem for defaults.
func (b *Builder) AddRevolution(item Item) error {
	if errs := validateItem(len(b.items), item); len(errs) > 0 {
		return errs[0]
	}
	b.items = append(b.items, item)
	return nil
}

// Scene returns the built scene. The builder can keep accumulating; each
// call returns a snapshot.
func (b *Builder) Scene() *Scene {
	items := make([]Item, len(b.items))
	copy(items, b.items)
	return &Scene{Items: items}
}
