package main

import (
	"context"
	_ "embed"
	"fmt"
	"log"

	"github.com/latheworks/lathe/pkg/engine"
	"github.com/latheworks/lathe/pkg/kernel"
	"github.com/latheworks/lathe/pkg/kernel/sdfx"
	"github.com/latheworks/lathe/pkg/render"
	"github.com/latheworks/lathe/pkg/scene"
)

//go:embed examples/ring.lathe
var defaultSource string

// App is the Wails backend. It exposes methods to the frontend via bindings.
type App struct {
	ctx    context.Context
	engine *engine.Engine
	kernel kernel.Kernel
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// SceneResult is the full result returned to the frontend: one drawable per
// display layer (profile wire, axis indicator, solid mesh) for every item,
// in draw order, plus errors and advisory warnings.
type SceneResult struct {
	Drawables []render.Drawable `json:"drawables"`
	Errors    []EvalErrorData   `json:"errors"`
	Warnings  []EvalErrorData   `json:"warnings"`
}

// NewApp creates a new App with an engine and the sdfx kernel.
func NewApp() *App {
	return &App{
		engine: engine.NewEngine(),
		kernel: sdfx.New(),
	}
}

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// context returns the Wails context, or Background outside the runtime.
func (a *App) context() context.Context {
	if a.ctx != nil {
		return a.ctx
	}
	return context.Background()
}

// DefaultSource returns the script loaded into a fresh editor.
func (a *App) DefaultSource() string {
	return defaultSource
}

// ViewerOptions returns the viewer bootstrap configuration.
func (a *App) ViewerOptions() scene.Options {
	return scene.DefaultOptions()
}

// Evaluate takes script source and returns drawables + errors.
// This is the primary binding called by the frontend editor.
func (a *App) Evaluate(source string) SceneResult {
	result := SceneResult{
		Drawables: []render.Drawable{},
		Errors:    []EvalErrorData{},
		Warnings:  []EvalErrorData{},
	}

	// Step 1: Evaluate the script source into a scene.
	s, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{
			Line:    0,
			Col:     0,
			Message: err.Error(),
		})
		return result
	}

	// Step 2: Convert eval errors to the frontend format.
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	// Step 3: Validate. Blocking findings stop the pipeline; advisory
	// findings ride along with the result.
	findings := scene.ValidateAll(s)
	for _, w := range findings.Warnings {
		result.Warnings = append(result.Warnings, EvalErrorData{
			Message: fmt.Sprintf("item %q: %s", w.Name, w.Message),
		})
	}
	if len(findings.Errors) > 0 {
		for _, e := range findings.Errors {
			result.Errors = append(result.Errors, EvalErrorData{Message: e.Error()})
		}
		return result
	}

	// Step 4: Build and tessellate every item through the kernel.
	drawer := render.NewMeshDrawer(a.kernel)
	if _, err := render.Render(a.context(), s, a.kernel, drawer); err != nil {
		log.Printf("Render error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{
			Message: "rendering failed: " + err.Error(),
		})
		return result
	}

	result.Drawables = drawer.Drawables()
	return result
}
