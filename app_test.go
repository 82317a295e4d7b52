package main

import (
	"os"
	"testing"
)

// TestE2ERingExample exercises the full pipeline: script source → engine →
// scene → kernel → styled drawables. This is the same path that the Wails
// Evaluate binding takes, but without the Wails runtime.
func TestE2ERingExample(t *testing.T) {
	app := NewApp()

	source, err := os.ReadFile("examples/ring.lathe")
	if err != nil {
		t.Fatalf("failed to read ring.lathe: %v", err)
	}

	result := app.Evaluate(string(source))

	// No errors expected.
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error (line %d): %s", e.Line, e.Message)
		}
		t.FailNow()
	}

	// Expect 3 drawables: profile wire, axis indicator, solid.
	if len(result.Drawables) != 3 {
		t.Fatalf("expected 3 drawables, got %d", len(result.Drawables))
	}

	expected := []struct {
		name string
		kind string
	}{
		{"ring/profile", "wire"},
		{"ring/axis", "polyline"},
		{"ring", "solid"},
	}
	for i, want := range expected {
		d := result.Drawables[i]
		if d.Name != want.name || d.Kind != want.kind {
			t.Errorf("drawable %d: got %s %q, want %s %q", i, d.Kind, d.Name, want.kind, want.name)
		}
	}

	// The profile and axis layers carry points, the solid carries a mesh.
	if len(result.Drawables[0].Points) == 0 {
		t.Error("profile drawable has no points")
	}
	if len(result.Drawables[1].Points) != 2 {
		t.Errorf("axis drawable has %d points, expected 2", len(result.Drawables[1].Points))
	}
	solid := result.Drawables[2]
	if solid.Mesh == nil || solid.Mesh.IsEmpty() {
		t.Fatal("solid drawable has no mesh")
	}
	if solid.Mesh.VertexCount() == 0 || solid.Mesh.TriangleCount() == 0 {
		t.Error("solid mesh is degenerate")
	}

	// Each layer keeps its own style.
	if result.Drawables[0].Style == result.Drawables[2].Style {
		t.Error("profile and solid layers share a style")
	}
}

// TestE2EGobletExample covers an explicit point-loop profile with a partial
// sweep and a style override on the solid layer.
func TestE2EGobletExample(t *testing.T) {
	app := NewApp()

	source, err := os.ReadFile("examples/goblet.lathe")
	if err != nil {
		t.Fatalf("failed to read goblet.lathe: %v", err)
	}

	result := app.Evaluate(string(source))

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error (line %d): %s", e.Line, e.Message)
		}
		t.FailNow()
	}
	if len(result.Drawables) != 3 {
		t.Fatalf("expected 3 drawables, got %d", len(result.Drawables))
	}

	solid := result.Drawables[2]
	if solid.Name != "goblet" {
		t.Errorf("solid drawable named %q", solid.Name)
	}
	if solid.Style.FaceColor != "#2ECC71" {
		t.Errorf("solid face color = %q, style override lost", solid.Style.FaceColor)
	}
	if solid.Mesh == nil || solid.Mesh.IsEmpty() {
		t.Error("goblet solid has no mesh")
	}
}

// TestE2EEmptySource ensures the pipeline handles empty input gracefully.
func TestE2EEmptySource(t *testing.T) {
	app := NewApp()
	result := app.Evaluate("")

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors for empty source: %v", result.Errors)
	}
	if len(result.Drawables) != 0 {
		t.Errorf("expected 0 drawables for empty source, got %d", len(result.Drawables))
	}
}

// TestE2ESyntaxError ensures eval errors are reported, not fatal errors.
func TestE2ESyntaxError(t *testing.T) {
	app := NewApp()
	result := app.Evaluate("(revolve (profile :offset 5")

	if len(result.Errors) == 0 {
		t.Fatal("expected eval errors for syntax error")
	}
	if len(result.Drawables) != 0 {
		t.Errorf("expected 0 drawables on error, got %d", len(result.Drawables))
	}
}

// TestE2EInlineRevolve ensures a minimal single-expression source renders
// one item's three layers.
func TestE2EInlineRevolve(t *testing.T) {
	app := NewApp()
	source := `(revolve (profile :offset 2 :width 1 :height 1) :axis (vec3 0 0 1) :angle 180 :name "half")`
	result := app.Evaluate(source)

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error: %s", e.Message)
		}
		t.FailNow()
	}
	if len(result.Drawables) != 3 {
		t.Fatalf("expected 3 drawables, got %d", len(result.Drawables))
	}
	if result.Drawables[2].Name != "half" {
		t.Errorf("expected solid name 'half', got %q", result.Drawables[2].Name)
	}
}
