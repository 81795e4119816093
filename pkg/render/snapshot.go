package render

import (
	"time"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/submit"
)

// Phase is the controller state a snapshot was taken in.
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseValidating  Phase = "validating"
	PhaseErrorsShown Phase = "errors_shown"
	PhaseSubmitting  Phase = "submitting"
	PhaseConfirmed   Phase = "confirmed"
)

// BannerKind selects the banner styling.
type BannerKind string

const (
	BannerSuccess BannerKind = "success"
	BannerError   BannerKind = "error"
)

// Banner is the message shown next to the submit button.
type Banner struct {
	Kind BannerKind `json:"kind"`
	Text string     `json:"text"`
}

// ControlState is an immutable copy of one control for rendering.
type ControlState struct {
	Name     string            `json:"name"`
	Kind     model.ControlKind `json:"kind"`
	Validity model.Validity    `json:"validity"`
	Class    string            `json:"class,omitempty"`
	Inline   string            `json:"inline,omitempty"`

	Field    *model.Field    `json:"field,omitempty"`
	Group    *model.Group    `json:"group,omitempty"`
	Dropdown *model.Dropdown `json:"dropdown,omitempty"`
}

// Snapshot is everything a renderer needs to draw the form after one
// transition. It shares no memory with the live form.
type Snapshot struct {
	FormID   string         `json:"form_id"`
	Phase    Phase          `json:"phase"`
	Controls []ControlState `json:"controls"`
	Banner   *Banner        `json:"banner,omitempty"`
	Errors   []string       `json:"errors,omitempty"`
	Focus    string         `json:"focus,omitempty"`
	// ResetAfter is set on a confirmed submission: the form returns to its
	// empty state once it elapses.
	ResetAfter time.Duration  `json:"reset_after,omitempty"`
	Record     *submit.Record `json:"-"`
}

// Valid reports whether the snapshot follows a successful pass.
func (s Snapshot) Valid() bool {
	return s.Phase == PhaseConfirmed || (s.Banner != nil && s.Banner.Kind == BannerSuccess)
}

// Control returns the state of the named control.
func (s Snapshot) Control(name string) (ControlState, bool) {
	for _, c := range s.Controls {
		if c.Name == name {
			return c, true
		}
	}
	return ControlState{}, false
}

// CaptureControls copies the controls of form in declaration order.
func CaptureControls(form *model.Form) []ControlState {
	controls := form.Controls()
	out := make([]ControlState, 0, len(controls))
	for _, c := range controls {
		state := ControlState{
			Name:     c.ControlName(),
			Kind:     c.ControlKind(),
			Validity: c.Validity(),
			Class:    model.Presentation(c),
		}
		switch typed := c.(type) {
		case *model.Field:
			field := *typed
			state.Field = &field
			state.Inline = typed.Inline()
		case *model.Group:
			group := *typed
			group.Options = append([]model.Option(nil), typed.Options...)
			state.Group = &group
			state.Inline = typed.Inline()
		case *model.Dropdown:
			dd := *typed
			dd.Options = append([]model.DropdownOption(nil), typed.Options...)
			state.Dropdown = &dd
		}
		out = append(out, state)
	}
	return out
}
