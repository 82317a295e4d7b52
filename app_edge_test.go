package main

import (
	"strings"
	"testing"
)

func TestE2EEmptySourceExtended(t *testing.T) {
	app := NewApp()
	result := app.Evaluate("")

	if len(result.Errors) != 0 {
		t.Errorf("expected 0 errors for empty source, got %d", len(result.Errors))
	}
	if len(result.Drawables) != 0 {
		t.Errorf("expected 0 drawables for empty source, got %d", len(result.Drawables))
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected 0 warnings for empty source, got %d", len(result.Warnings))
	}
	// Ensure slices are non-nil (JSON should serialize as [] not null).
	if result.Drawables == nil {
		t.Error("Drawables should be non-nil empty slice, got nil")
	}
	if result.Errors == nil {
		t.Error("Errors should be non-nil empty slice, got nil")
	}
	if result.Warnings == nil {
		t.Error("Warnings should be non-nil empty slice, got nil")
	}
}

func TestE2ESyntaxErrorWithLineInfo(t *testing.T) {
	app := NewApp()

	// Valid code on line 1, broken code on line 2 so line info is meaningful.
	source := "(+ 1 2)\n(revolve (profile :offset 5"
	result := app.Evaluate(source)

	if len(result.Errors) == 0 {
		t.Fatal("expected at least one eval error for unmatched parens")
	}
	if len(result.Drawables) != 0 {
		t.Errorf("expected 0 drawables on syntax error, got %d", len(result.Drawables))
	}

	e := result.Errors[0]
	if e.Message == "" {
		t.Error("syntax error should have a non-empty message")
	}
	t.Logf("syntax error: line=%d, col=%d, message=%q", e.Line, e.Col, e.Message)
}

func TestE2EZeroAngleIsDegenerate(t *testing.T) {
	app := NewApp()

	source := `(revolve (profile :offset 5 :width 5 :height 3) :angle 0 :name "flat")`
	result := app.Evaluate(source)

	// An angle of 0 passes validation as a warning but the kernel rejects
	// the degenerate revolution.
	if len(result.Warnings) == 0 {
		t.Error("expected a degenerate-angle warning")
	}
	if len(result.Errors) == 0 {
		t.Fatal("expected a render error for angle 0")
	}
	if len(result.Drawables) != 0 {
		t.Errorf("expected 0 drawables, got %d", len(result.Drawables))
	}
}

func TestE2EProfileOnAxisWarns(t *testing.T) {
	app := NewApp()

	// offset 0 puts the inner profile edge exactly on the axis. Still
	// renderable, but flagged.
	source := `(revolve (profile :offset 0 :width 5 :height 3) :name "disc")`
	result := app.Evaluate(source)

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error: %s", e.Message)
		}
		t.FailNow()
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w.Message, "axis") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an axis-touch warning, got: %v", result.Warnings)
	}
	if len(result.Drawables) != 3 {
		t.Errorf("expected 3 drawables despite the warning, got %d", len(result.Drawables))
	}
}

func TestE2EZeroWidthProfile(t *testing.T) {
	app := NewApp()

	source := `(revolve (profile :offset 5 :width 0 :height 3))`
	result := app.Evaluate(source)

	if len(result.Errors) == 0 {
		t.Fatal("expected eval error for zero-width profile")
	}
	if len(result.Drawables) != 0 {
		t.Errorf("expected 0 drawables, got %d", len(result.Drawables))
	}
}

func TestE2EZeroAxisRejected(t *testing.T) {
	app := NewApp()

	source := `(revolve (profile :offset 5 :width 5 :height 3) :axis (vec3 0 0 0))`
	result := app.Evaluate(source)

	if len(result.Errors) == 0 {
		t.Fatal("expected error for zero axis vector")
	}
	if len(result.Drawables) != 0 {
		t.Errorf("expected 0 drawables, got %d", len(result.Drawables))
	}
}

func TestE2ERapidEvaluation(t *testing.T) {
	// Simulates debounce: rapid sequential calls to Evaluate on the same App.
	// The engine holds a mutex, so rapid sequential calls exercise the
	// generation-counter and timeout paths. We verify no panics occur.
	//
	// Note: we call Evaluate sequentially because zygomys has internal
	// global state that is not safe for concurrent sandbox creation.
	app := NewApp()

	sources := []string{
		`(revolve (profile :offset 2 :width 1 :height 1) :name "a")`,
		`(revolve (profile :offset 3 :width 2 :height 1) :angle 90 :name "b")`,
		`(+ 1 2)`,
		``,
		`(revolve (profile :offset 5`,
		`;; just a comment`,
		`(revolve (profile :offset 5 :width 5 :height 3) :name "c")`,
		`(undefined-func 1 2 3)`,
		`(revolve (profile :offset 1 :width 1 :height 4) :axis (vec3 1 0 0) :name "d")`,
	}

	for i, source := range sources {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("iteration %d panicked on source %q: %v", i, source, r)
				}
			}()
			result := app.Evaluate(source)
			_ = result
		}()
	}
}

func TestE2ECommentsOnly(t *testing.T) {
	app := NewApp()

	source := `
;; This is a comment
;; Another comment
; And another
`
	result := app.Evaluate(source)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors for comments-only source: %v", result.Errors)
	}
	if len(result.Drawables) != 0 {
		t.Errorf("expected 0 drawables for comments-only source, got %d", len(result.Drawables))
	}
}

func TestE2EFractionalAngle(t *testing.T) {
	app := NewApp()

	source := `(revolve (profile :offset 3 :width 2 :height 2) :angle 123.5 :name "wedge")`
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
	if result.Drawables[2].Mesh == nil || result.Drawables[2].Mesh.IsEmpty() {
		t.Error("fractional-angle solid should still tessellate")
	}
}

func TestE2EComputedDimensions(t *testing.T) {
	app := NewApp()

	source := `
(def base 4)
(def half (/ base 2))
(revolve (profile :offset half :width base :height 2) :name "computed")
`
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
}

func TestE2ETwoItems(t *testing.T) {
	app := NewApp()

	source := `
(revolve (profile :offset 5 :width 5 :height 3) :name "ring")
(revolve (profile :offset 12 :width 1 :height 8) :axis (vec3 0 0 1) :angle 270 :name "sleeve")
`
	result := app.Evaluate(source)

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error: %s", e.Message)
		}
		t.FailNow()
	}
	// Two items, three layers each, in scene order.
	if len(result.Drawables) != 6 {
		t.Fatalf("expected 6 drawables, got %d", len(result.Drawables))
	}
	if result.Drawables[2].Name != "ring" || result.Drawables[5].Name != "sleeve" {
		t.Errorf("draw order broken: %q, %q", result.Drawables[2].Name, result.Drawables[5].Name)
	}
}
