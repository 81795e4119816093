package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateControl is returned when two controls share a name.
	ErrDuplicateControl = errors.New("model: duplicate control name")
	// ErrUnknownControl is returned when a lookup names no bound control.
	ErrUnknownControl = errors.New("model: unknown control")
)

// Form is the bound control tree. Controls keep their declaration order,
// which drives error ordering and the submitted record.
type Form struct {
	ID string

	controls []Control
	byName   map[string]Control
}

// NewForm binds the provided controls in order.
func NewForm(id string, controls ...Control) (*Form, error) {
	f := &Form{
		ID:     strings.TrimSpace(id),
		byName: make(map[string]Control, len(controls)),
	}
	for _, c := range controls {
		if err := f.Bind(c); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Bind appends a control to the form.
func (f *Form) Bind(c Control) error {
	if c == nil {
		return fmt.Errorf("model: control is nil")
	}
	name := strings.TrimSpace(c.ControlName())
	if name == "" {
		return fmt.Errorf("model: control name is required")
	}
	if f.byName == nil {
		f.byName = make(map[string]Control)
	}
	if _, exists := f.byName[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateControl, name)
	}
	if d, ok := c.(*Dropdown); ok && d.Display.Label == "" && d.Value == "" {
		d.Reset()
	}
	f.byName[name] = c
	f.controls = append(f.controls, c)
	return nil
}

// Controls returns the bound controls in declaration order.
func (f *Form) Controls() []Control {
	if f == nil {
		return nil
	}
	return append([]Control(nil), f.controls...)
}

// Order returns control names in declaration order.
func (f *Form) Order() []string {
	if f == nil {
		return nil
	}
	out := make([]string, 0, len(f.controls))
	for _, c := range f.controls {
		out = append(out, c.ControlName())
	}
	return out
}

// Lookup returns the control bound under name.
func (f *Form) Lookup(name string) (Control, bool) {
	if f == nil {
		return nil, false
	}
	c, ok := f.byName[name]
	return c, ok
}

// Field returns the named field.
func (f *Form) Field(name string) (*Field, error) {
	c, ok := f.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownControl, name)
	}
	field, ok := c.(*Field)
	if !ok {
		return nil, fmt.Errorf("model: control %q is a %s, not a field", name, c.ControlKind())
	}
	return field, nil
}

// Group returns the named group.
func (f *Form) Group(name string) (*Group, error) {
	c, ok := f.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownControl, name)
	}
	group, ok := c.(*Group)
	if !ok {
		return nil, fmt.Errorf("model: control %q is a %s, not a group", name, c.ControlKind())
	}
	return group, nil
}

// Dropdown returns the named dropdown.
func (f *Form) Dropdown(name string) (*Dropdown, error) {
	c, ok := f.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownControl, name)
	}
	dd, ok := c.(*Dropdown)
	if !ok {
		return nil, fmt.Errorf("model: control %q is a %s, not a dropdown", name, c.ControlKind())
	}
	return dd, nil
}

// Dropdowns returns every bound dropdown in order.
func (f *Form) Dropdowns() []*Dropdown {
	if f == nil {
		return nil
	}
	var out []*Dropdown
	for _, c := range f.controls {
		if d, ok := c.(*Dropdown); ok {
			out = append(out, d)
		}
	}
	return out
}

// ClearMarks returns every control to the unvalidated presentation.
func (f *Form) ClearMarks() {
	if f == nil {
		return
	}
	for _, c := range f.controls {
		c.ClearMark()
	}
}

// Reset empties every control and restores dropdown placeholders. Calling it
// repeatedly leaves the form in the same state.
func (f *Form) Reset() {
	if f == nil {
		return
	}
	for _, c := range f.controls {
		c.Reset()
	}
}

// FirstInvalid returns the first invalid control in declaration order.
func (f *Form) FirstInvalid() (Control, bool) {
	if f == nil {
		return nil, false
	}
	for _, c := range f.controls {
		if c.Validity() == Invalid {
			return c, true
		}
	}
	return nil, false
}

// Fill assigns raw submitted values to the bound controls. Fields take the
// first value, groups take the full set and dropdowns take the first value
// as the hidden backing value. Unknown keys are ignored.
func (f *Form) Fill(values map[string][]string) {
	if f == nil {
		return
	}
	for _, c := range f.controls {
		raw, ok := values[c.ControlName()]
		if !ok {
			continue
		}
		switch typed := c.(type) {
		case *Field:
			if len(raw) > 0 {
				typed.Value = raw[0]
			}
		case *Group:
			typed.SetChecked(raw)
		case *Dropdown:
			if len(raw) > 0 {
				typed.Value = raw[0]
			}
		}
	}
}
