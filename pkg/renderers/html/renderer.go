// Package html renders contact form snapshots as server-side markup using
// pongo2 templates. The embedded bundle can be replaced with WithTemplatesFS
// or WithTemplatesDir.
package html

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/render"
)

type Option func(*config)

type config struct {
	templateFS fs.FS
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

type Renderer struct {
	engine *engine
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	eng, err := newEngine(cfg.templateFS)
	if err != nil {
		return nil, fmt.Errorf("html renderer: configure templates: %w", err)
	}
	return &Renderer{engine: eng}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, snap render.Snapshot, options render.RenderOptions) ([]byte, error) {
	if r == nil || r.engine == nil {
		return nil, errors.New("html renderer: template engine is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := FormTemplate
	if options.Fragment {
		path = FeedbackTemplate
	}
	out, err := r.engine.render(path, buildContext(snap, options))
	if err != nil {
		return nil, fmt.Errorf("html renderer: %w", err)
	}
	return out, nil
}

func buildContext(snap render.Snapshot, options render.RenderOptions) pongo2.Context {
	data := pongo2.Context{
		"form_id":       snap.FormID,
		"action":        options.Action,
		"phase":         string(snap.Phase),
		"focus":         snap.Focus,
		"errors":        snap.Errors,
		"errors_header": render.ErrorsListHeader,
		"hidden_fields": hiddenFields(snap, options.Hidden),
		"controls":      controlViews(snap.Controls),
	}
	if snap.ResetAfter > 0 {
		data["reset_after_ms"] = snap.ResetAfter.Milliseconds()
	}
	if snap.Banner != nil {
		data["banner"] = bannerView(*snap.Banner)
	}
	return data
}

func bannerView(b render.Banner) map[string]any {
	view := map[string]any{
		"text": b.Text,
		"role": "alert",
	}
	if b.Kind == render.BannerSuccess {
		view["alert_class"] = "alert-success"
		view["icon"] = "check-circle-fill"
		view["glyph"] = "✓"
		view["role"] = "status"
		return view
	}
	view["alert_class"] = "alert-danger"
	view["icon"] = "exclamation-circle-fill"
	view["glyph"] = "⚠"
	return view
}

func hiddenFields(snap render.Snapshot, extras map[string]string) []map[string]string {
	fields := render.HiddenFields(snap, extras)
	out := make([]map[string]string, 0, len(fields))
	for _, field := range fields {
		out = append(out, map[string]string{"name": field.Name, "value": field.Value})
	}
	return out
}

func controlViews(controls []render.ControlState) []map[string]any {
	out := make([]map[string]any, 0, len(controls))
	for _, c := range controls {
		view := map[string]any{
			"kind":   string(c.Kind),
			"name":   c.Name,
			"class":  c.Class,
			"inline": c.Inline,
		}
		switch {
		case c.Field != nil:
			fieldView(view, c.Field)
		case c.Group != nil:
			groupView(view, c.Group)
		case c.Dropdown != nil:
			dropdownView(view, c.Dropdown)
		}
		out = append(out, view)
	}
	return out
}

func fieldView(view map[string]any, f *model.Field) {
	view["label"] = f.Label
	view["value"] = f.Value
	view["placeholder"] = f.Placeholder
	view["required"] = f.Required
	if f.Kind == model.FieldTextArea {
		view["textarea"] = true
		return
	}
	view["input_type"] = string(f.Kind)
}

func groupView(view map[string]any, g *model.Group) {
	view["label"] = g.Label
	view["input_type"] = string(g.Kind)
	view["grid_class"] = "form-" + string(g.Kind) + "-grid"
	view["pill_class"] = "form-" + string(g.Kind) + "-pill"
	options := make([]map[string]any, 0, len(g.Options))
	for i, opt := range g.Options {
		options = append(options, map[string]any{
			"value":        opt.Value,
			"label":        opt.Label,
			"checked":      opt.Checked,
			"active_class": g.ActiveClass(i),
		})
	}
	view["options"] = options
}

func dropdownView(view map[string]any, d *model.Dropdown) {
	view["label"] = d.Label
	view["placeholder"] = d.PlaceholderText()
	view["expanded"] = d.Expanded()
	view["open"] = d.Open
	label := d.Display.Label
	if label == "" {
		label = d.PlaceholderText()
	}
	view["display_label"] = label
	view["flag"] = d.Display.Flag
	view["flag_url"] = d.Display.FlagURL

	options := make([]map[string]any, 0, len(d.Options))
	for i, opt := range d.Options {
		options = append(options, map[string]any{
			"value":  opt.Value,
			"label":  opt.Label,
			"flag":   opt.Flag,
			"active": i == d.Active,
		})
	}
	view["options"] = options
}
