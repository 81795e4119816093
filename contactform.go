// Package contactform is the entry point of the contact form module: build
// a controller over the embedded contact form, or run one-shot passes
// through the orchestrator.
package contactform

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-contactform/pkg/controller"
	"github.com/goliatone/go-contactform/pkg/definition"
	"github.com/goliatone/go-contactform/pkg/orchestrator"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/renderers/html"
)

// RenderOptions describes per-request rendering data.
type RenderOptions = render.RenderOptions

// Snapshot is the render state after one transition.
type Snapshot = render.Snapshot

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewController builds the embedded contact form and binds a controller to
// it. The caller owns the controller and must Close it.
func NewController(options ...controller.Option) (*controller.Controller, error) {
	return orchestrator.New().NewController(context.Background(), definition.ContactID, options...)
}

// Submit binds values to a fresh contact form, runs the submit pass and
// renders the outcome with the named renderer ("html", "json" or "text").
func Submit(ctx context.Context, values map[string][]string, rendererName string) (orchestrator.Response, error) {
	return orchestrator.New().Generate(ctx, orchestrator.Request{
		Values:   values,
		Submit:   true,
		Renderer: rendererName,
	})
}

// EmbeddedTemplates exposes the built-in HTML templates so callers can reuse
// or extend them.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

// EmbeddedDefinitions exposes the bundled form definitions.
func EmbeddedDefinitions() fs.FS {
	return definition.EmbeddedFS()
}
