package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/goliatone/go-contactform/pkg/controller"
	"github.com/goliatone/go-contactform/pkg/definition"
	"github.com/goliatone/go-contactform/pkg/dropdown"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/renderers/html"
	"github.com/goliatone/go-contactform/pkg/renderers/jsonapi"
	"github.com/goliatone/go-contactform/pkg/renderers/text"
)

const defaultRendererName = "html"

// ErrUnknownForm is returned when a request names no loaded definition.
var ErrUnknownForm = errors.New("orchestrator: unknown form")

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithDefinitionsFS loads form definitions from fsys instead of the embedded
// contact form.
func WithDefinitionsFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.definitionsFS = fsys
	}
}

// WithStore injects an already loaded definition store.
func WithStore(store *definition.Store) Option {
	return func(o *Orchestrator) {
		o.store = store
	}
}

// WithBuildOptions forwards options to definition.Build, such as option
// sources for dropdowns.
func WithBuildOptions(options ...definition.BuildOption) Option {
	return func(o *Orchestrator) {
		o.buildOptions = append(o.buildOptions, options...)
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithDefaultForm selects the definition used when a request omits FormID.
func WithDefaultForm(id string) Option {
	return func(o *Orchestrator) {
		o.defaultForm = id
	}
}

// WithControllerOptions forwards options to every controller built for a
// request.
func WithControllerOptions(options ...controller.Option) Option {
	return func(o *Orchestrator) {
		o.controllerOptions = append(o.controllerOptions, options...)
	}
}

// WithTransformer registers a Transformer run on every freshly built form.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// Orchestrator builds a fresh form per request, binds the posted values,
// runs the submit pass and renders the outcome.
type Orchestrator struct {
	once          sync.Once
	initialiseErr error

	definitionsFS     fs.FS
	store             *definition.Store
	buildOptions      []definition.BuildOption
	registry          *render.Registry
	defaultRenderer   string
	defaultForm       string
	controllerOptions []controller.Option
	transformer       Transformer
}

// New constructs an Orchestrator. Missing dependencies fall back to the
// embedded contact form and the built-in html, json and text renderers.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		defaultForm:     definition.ContactID,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	return o
}

// Request describes one pass over a form.
type Request struct {
	// FormID selects the definition; empty uses the default form.
	FormID string
	// Values are the posted values keyed by control name.
	Values map[string][]string
	// Submit runs the validation pass. Without it the form is rendered with
	// the bound values and no markings.
	Submit bool
	// Renderer names the renderer to use; empty uses the default.
	Renderer string
	// RenderOptions carries per-request rendering data.
	RenderOptions render.RenderOptions
}

// Response is the outcome of Generate.
type Response struct {
	Snapshot    render.Snapshot
	Body        []byte
	ContentType string
}

// Generate executes the build -> bind -> submit -> render sequence.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Response, error) {
	if ctx == nil {
		return Response{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	if err := o.init(); err != nil {
		return Response{}, err
	}

	renderer, err := o.registry.Get(o.rendererName(req.Renderer))
	if err != nil {
		return Response{}, fmt.Errorf("orchestrator: %w", err)
	}

	// one-shot requests never outlive the handler, so deferred effects are
	// dropped rather than scheduled
	ctrl, err := o.NewController(ctx, req.FormID, controller.WithScheduler(controller.NopScheduler{}))
	if err != nil {
		return Response{}, err
	}
	defer ctrl.Close()

	if len(req.Values) > 0 {
		form := ctrl.Form()
		form.Fill(req.Values)
		dropdown.SyncAll(form)
	}

	snap := ctrl.Snapshot()
	if req.Submit {
		snap, err = ctrl.Dispatch(ctx, controller.Submit{})
		if err != nil {
			return Response{}, fmt.Errorf("orchestrator: submit: %w", err)
		}
	}

	body, err := renderer.Render(ctx, snap, req.RenderOptions)
	if err != nil {
		return Response{}, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return Response{Snapshot: snap, Body: body, ContentType: renderer.ContentType()}, nil
}

// NewController builds a fresh form from the named definition and binds a
// controller to it. Extra options are applied after the configured ones.
func (o *Orchestrator) NewController(ctx context.Context, formID string, extra ...controller.Option) (*controller.Controller, error) {
	if err := o.init(); err != nil {
		return nil, err
	}
	def, err := o.Definition(formID)
	if err != nil {
		return nil, err
	}
	form, plan, err := definition.Build(def, o.buildOptions...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, form); err != nil {
			return nil, fmt.Errorf("orchestrator: transform form: %w", err)
		}
		dropdown.SyncAll(form)
	}

	options := make([]controller.Option, 0, len(o.controllerOptions)+len(extra)+1)
	options = append(options, o.controllerOptions...)
	options = append(options, extra...)
	options = append(options, controller.WithPlan(plan))
	ctrl, err := controller.New(form, options...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return ctrl, nil
}

// Definition returns the effective definition for id; empty uses the default
// form.
func (o *Orchestrator) Definition(id string) (definition.Definition, error) {
	if err := o.init(); err != nil {
		return definition.Definition{}, err
	}
	if id == "" {
		id = o.defaultForm
	}
	def, err := o.store.Definition(id)
	if err != nil {
		if errors.Is(err, definition.ErrNotFound) {
			return definition.Definition{}, fmt.Errorf("%w: %q", ErrUnknownForm, id)
		}
		return definition.Definition{}, fmt.Errorf("orchestrator: %w", err)
	}
	return def.Effective(), nil
}

// FormIDs lists the loaded definitions.
func (o *Orchestrator) FormIDs() ([]string, error) {
	if err := o.init(); err != nil {
		return nil, err
	}
	return o.store.IDs(), nil
}

// Registry exposes the renderer registry.
func (o *Orchestrator) Registry() (*render.Registry, error) {
	if err := o.init(); err != nil {
		return nil, err
	}
	return o.registry, nil
}

func (o *Orchestrator) rendererName(name string) string {
	if name != "" {
		return name
	}
	return o.defaultRenderer
}

func (o *Orchestrator) init() error {
	o.once.Do(func() {
		o.initialiseErr = o.applyDefaults()
	})
	return o.initialiseErr
}

func (o *Orchestrator) applyDefaults() error {
	if o.store == nil {
		fsys := o.definitionsFS
		if fsys == nil {
			fsys = definition.EmbeddedFS()
		}
		store, err := definition.LoadFS(fsys)
		if err != nil {
			return fmt.Errorf("orchestrator: load definitions: %w", err)
		}
		if store.Empty() {
			return errors.New("orchestrator: no form definitions found")
		}
		o.store = store
	}
	if o.registry == nil {
		htmlRenderer, err := html.New()
		if err != nil {
			return fmt.Errorf("orchestrator: default renderer: %w", err)
		}
		registry, err := render.NewRegistry(htmlRenderer, jsonapi.New(), text.New())
		if err != nil {
			return fmt.Errorf("orchestrator: %w", err)
		}
		o.registry = registry
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	return nil
}
