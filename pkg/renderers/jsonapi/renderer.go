// Package jsonapi renders snapshots as the JSON document served to API
// clients of the contact form endpoint.
package jsonapi

import (
	"context"
	"encoding/json"

	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/submit"
)

// Response is the JSON body written for every submission outcome.
type Response struct {
	FormID       string                   `json:"form_id"`
	Phase        render.Phase             `json:"phase"`
	Valid        bool                     `json:"valid"`
	Summary      string                   `json:"summary,omitempty"`
	Banner       *render.Banner           `json:"banner,omitempty"`
	Errors       []string                 `json:"errors,omitempty"`
	Focus        string                   `json:"focus,omitempty"`
	Fields       map[string]FieldResponse `json:"fields"`
	ResetAfterMS int64                    `json:"reset_after_ms,omitempty"`
	SubmissionID string                   `json:"submission_id,omitempty"`
	Record       *submit.Record           `json:"record,omitempty"`
}

// FieldResponse is the per-control verdict.
type FieldResponse struct {
	Validity string `json:"validity"`
	Message  string `json:"message,omitempty"`
	Class    string `json:"class,omitempty"`
}

type Option func(*Renderer)

// WithIndent pretty prints the document.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// WithRecord includes the submitted record in confirmed responses.
func WithRecord(enabled bool) Option {
	return func(r *Renderer) {
		r.record = enabled
	}
}

type Renderer struct {
	indent string
	record bool
}

var _ render.Renderer = (*Renderer)(nil)

func New(options ...Option) *Renderer {
	r := &Renderer{record: true}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return "json"
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

func (r *Renderer) Render(ctx context.Context, snap render.Snapshot, _ render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resp := Build(snap)
	if !r.record {
		resp.Record = nil
	}
	if r.indent != "" {
		return json.MarshalIndent(resp, "", r.indent)
	}
	return json.Marshal(resp)
}

// Build converts a snapshot into its JSON response.
func Build(snap render.Snapshot) Response {
	resp := Response{
		FormID:       snap.FormID,
		Phase:        snap.Phase,
		Valid:        snap.Valid(),
		Banner:       snap.Banner,
		Errors:       snap.Errors,
		Focus:        snap.Focus,
		Fields:       make(map[string]FieldResponse, len(snap.Controls)),
		ResetAfterMS: snap.ResetAfter.Milliseconds(),
		Record:       snap.Record,
	}
	if snap.Banner != nil && snap.Banner.Kind == render.BannerError {
		resp.Summary = snap.Banner.Text
	}
	if snap.Record != nil {
		resp.SubmissionID = snap.Record.ID
	}
	for _, c := range snap.Controls {
		resp.Fields[c.Name] = FieldResponse{
			Validity: c.Validity.String(),
			Message:  c.Inline,
			Class:    c.Class,
		}
	}
	return resp
}
