package scene

import (
	"testing"

	"github.com/latheworks/lathe/pkg/geom"
)

func TestNewOptions(t *testing.T) {
	opts, err := NewOptions(Options{
		CanvasID: "viewer",
		Width:    800,
		Height:   600,
		Ground:   true,
		Camera:   DefaultCamera(),
	})
	if err != nil {
		t.Fatalf("NewOptions: %v", err)
	}
	if opts.CanvasID != "viewer" || !opts.Ground {
		t.Errorf("options not carried through: %+v", opts)
	}
}

func TestNewOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"empty canvas id", Options{Width: 800, Height: 600, Camera: DefaultCamera()}},
		{"zero width", Options{CanvasID: "v", Height: 600, Camera: DefaultCamera()}},
		{"negative height", Options{CanvasID: "v", Width: 800, Height: -1, Camera: DefaultCamera()}},
		{"bad camera radius", Options{CanvasID: "v", Width: 800, Height: 600, Camera: Camera{Radius: 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewOptions(tt.opts); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestDefaultOptionsAreValid(t *testing.T) {
	if err := DefaultOptions().Validate(); err != nil {
		t.Fatalf("default options invalid: %v", err)
	}
}

func TestBuilderAndLookup(t *testing.T) {
	b := NewBuilder()
	if err := b.AddRevolution(NewItem("ring", geom.RectProfile(5, 5, 3), geom.Dir(0, 1, 0), 360)); err != nil {
		t.Fatalf("AddRevolution: %v", err)
	}

	s := b.Scene()
	if s.ItemCount() != 1 {
		t.Fatalf("expected 1 item, got %d", s.ItemCount())
	}
	if s.Lookup("ring") == nil {
		t.Error("Lookup failed for existing item")
	}
	if s.Lookup("missing") != nil {
		t.Error("Lookup returned an item for a missing name")
	}

	// The snapshot is independent of later additions.
	if err := b.AddRevolution(NewItem("ring2", geom.RectProfile(1, 1, 1), geom.Dir(0, 1, 0), 180)); err != nil {
		t.Fatalf("AddRevolution: %v", err)
	}
	if s.ItemCount() != 1 {
		t.Error("earlier snapshot grew after AddRevolution")
	}
}

func TestBuilderRejectsInvalidItem(t *testing.T) {
	b := NewBuilder()
	err := b.AddRevolution(NewItem("bad", geom.RectProfile(5, 5, 3), geom.Dir(0, 0, 0), 360))
	if err == nil {
		t.Fatal("expected error for zero axis")
	}
	if b.Scene().ItemCount() != 0 {
		t.Error("invalid item was added anyway")
	}
}
