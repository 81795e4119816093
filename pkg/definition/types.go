package definition

import (
	"github.com/goliatone/go-contactform/pkg/validation"
)

// ControlType names the kind of control a definition entry builds.
type ControlType string

const (
	TypeText     ControlType = "text"
	TypeEmail    ControlType = "email"
	TypeTel      ControlType = "tel"
	TypeTextArea ControlType = "textarea"
	TypeCheckbox ControlType = "checkbox"
	TypeRadio    ControlType = "radio"
	TypeDropdown ControlType = "dropdown"
)

// Definition describes one form.
type Definition struct {
	ID       string          `json:"id" yaml:"id"`
	Title    string          `json:"title,omitempty" yaml:"title,omitempty"`
	Action   string          `json:"action,omitempty" yaml:"action,omitempty"`
	Controls []Control       `json:"controls" yaml:"controls"`
	Checks   validation.Plan `json:"checks,omitempty" yaml:"checks,omitempty"`

	// Source is the file the definition was read from.
	Source string `json:"-" yaml:"-"`
}

// Control describes one control in declaration order.
type Control struct {
	Name        string      `json:"name" yaml:"name"`
	Label       string      `json:"label,omitempty" yaml:"label,omitempty"`
	Type        ControlType `json:"type" yaml:"type"`
	Required    bool        `json:"required,omitempty" yaml:"required,omitempty"`
	Placeholder string      `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Options     []Option    `json:"options,omitempty" yaml:"options,omitempty"`
	// OptionsFrom names a registered option source used instead of, or in
	// addition to, the static options of a dropdown.
	OptionsFrom string `json:"options_from,omitempty" yaml:"options_from,omitempty"`
}

// Option is a static group or dropdown option.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
	Flag  string `json:"flag,omitempty" yaml:"flag,omitempty"`
}

// Plan returns the checks of the definition, or the default contact form
// plan when none are declared.
func (d Definition) Plan() validation.Plan {
	if len(d.Checks) == 0 {
		return validation.DefaultPlan()
	}
	return append(validation.Plan(nil), d.Checks...)
}

// Effective returns a copy of d with the plan in use spelled out.
func (d Definition) Effective() Definition {
	out := d
	out.Controls = append([]Control(nil), d.Controls...)
	out.Checks = d.Plan()
	return out
}
