package model

// Field is a single-value input control.
type Field struct {
	Name        string    `json:"name" yaml:"name"`
	Label       string    `json:"label,omitempty" yaml:"label,omitempty"`
	Kind        FieldKind `json:"kind" yaml:"kind"`
	Required    bool      `json:"required" yaml:"required"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Value       string    `json:"value" yaml:"-"`

	validity Validity
	inline   string
}

func (f *Field) ControlName() string      { return f.Name }
func (f *Field) ControlKind() ControlKind { return KindField }
func (f *Field) Validity() Validity       { return f.validity }
func (f *Field) AcceptsText() bool        { return true }

// Inline returns the message rendered below the field, if any.
func (f *Field) Inline() string { return f.inline }

func (f *Field) Mark(v Validity, inline string) {
	f.validity = v
	if v == Invalid {
		f.inline = inline
		return
	}
	f.inline = ""
}

func (f *Field) ClearMark() {
	f.validity = Unvalidated
	f.inline = ""
}

// ClearInvalid drops an invalid marking without re-validating. A valid
// marking is left untouched.
func (f *Field) ClearInvalid() {
	if f.validity == Invalid {
		f.validity = Unvalidated
		f.inline = ""
	}
}

func (f *Field) Values() []string {
	return []string{f.Value}
}

func (f *Field) Reset() {
	f.Value = ""
	f.ClearMark()
}

// Option is a member of a checkbox or radio group.
type Option struct {
	Value   string `json:"value" yaml:"value"`
	Label   string `json:"label" yaml:"label"`
	Checked bool   `json:"checked" yaml:"-"`
}

// Group is a named set of checkbox or radio options validated as a whole.
type Group struct {
	Name    string    `json:"name" yaml:"name"`
	Label   string    `json:"label,omitempty" yaml:"label,omitempty"`
	Kind    GroupKind `json:"kind" yaml:"kind"`
	Options []Option  `json:"options" yaml:"options"`

	validity Validity
	inline   string
}

func (g *Group) ControlName() string      { return g.Name }
func (g *Group) ControlKind() ControlKind { return KindGroup }
func (g *Group) Validity() Validity       { return g.validity }
func (g *Group) AcceptsText() bool        { return false }
func (g *Group) Inline() string           { return g.inline }

func (g *Group) Mark(v Validity, inline string) {
	g.validity = v
	if v == Invalid {
		g.inline = inline
		return
	}
	g.inline = ""
}

func (g *Group) ClearMark() {
	g.validity = Unvalidated
	g.inline = ""
}

// Checked returns the number of checked options.
func (g *Group) Checked() int {
	n := 0
	for _, opt := range g.Options {
		if opt.Checked {
			n++
		}
	}
	return n
}

// Toggle flips a checkbox option or selects a radio option. It reports
// whether value names an option of the group.
func (g *Group) Toggle(value string) bool {
	idx := -1
	for i := range g.Options {
		if g.Options[i].Value == value {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	if g.Kind == GroupRadio {
		for i := range g.Options {
			g.Options[i].Checked = i == idx
		}
		return true
	}
	g.Options[idx].Checked = !g.Options[idx].Checked
	return true
}

// SetChecked replaces the checked set with values. Unknown values are ignored
// and a radio group keeps at most the first known value.
func (g *Group) SetChecked(values []string) {
	want := make(map[string]struct{}, len(values))
	for _, v := range values {
		want[v] = struct{}{}
	}
	picked := false
	for i := range g.Options {
		_, ok := want[g.Options[i].Value]
		if ok && g.Kind == GroupRadio && picked {
			ok = false
		}
		g.Options[i].Checked = ok
		if ok {
			picked = true
		}
	}
}

// ActiveClass returns the pill class for option i.
func (g *Group) ActiveClass(i int) string {
	if i < 0 || i >= len(g.Options) || !g.Options[i].Checked {
		return ""
	}
	return ClassActive
}

func (g *Group) Values() []string {
	var out []string
	for _, opt := range g.Options {
		if opt.Checked {
			out = append(out, opt.Value)
		}
	}
	return out
}

func (g *Group) Reset() {
	for i := range g.Options {
		g.Options[i].Checked = false
	}
	g.ClearMark()
}

// DropdownOption is one entry of a custom dropdown. Flag optionally carries a
// regional indicator pair (a flag emoji) shown next to the label.
type DropdownOption struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
	Flag  string `json:"flag,omitempty" yaml:"flag,omitempty"`
}

// Display is the presentational half of a dropdown selection.
type Display struct {
	Label    string `json:"label"`
	Flag     string `json:"flag,omitempty"`
	FlagURL  string `json:"flag_url,omitempty"`
	Selected bool   `json:"selected"`
}

// Dropdown is a custom single-select control backed by a hidden value.
type Dropdown struct {
	Name        string           `json:"name" yaml:"name"`
	Label       string           `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string           `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Options     []DropdownOption `json:"options" yaml:"options"`

	// Value is the hidden backing value submitted with the form.
	Value   string  `json:"value" yaml:"-"`
	Display Display `json:"display" yaml:"-"`
	Open    bool    `json:"open" yaml:"-"`
	Active  int     `json:"active" yaml:"-"`

	validity Validity
}

func (d *Dropdown) ControlName() string      { return d.Name }
func (d *Dropdown) ControlKind() ControlKind { return KindDropdown }
func (d *Dropdown) Validity() Validity       { return d.validity }
func (d *Dropdown) AcceptsText() bool        { return false }

// Dropdowns have no inline message; only the container class changes.
func (d *Dropdown) Mark(v Validity, _ string) { d.validity = v }
func (d *Dropdown) ClearMark()                { d.validity = Unvalidated }

func (d *Dropdown) Values() []string {
	return []string{d.Value}
}

// PlaceholderText returns the configured placeholder or DefaultPlaceholder.
func (d *Dropdown) PlaceholderText() string {
	if d.Placeholder != "" {
		return d.Placeholder
	}
	return DefaultPlaceholder
}

// Reset clears the hidden value, closes the list and restores the label to
// the placeholder text.
func (d *Dropdown) Reset() {
	d.Value = ""
	d.Open = false
	d.Active = -1
	d.Display = Display{Label: d.PlaceholderText()}
	d.ClearMark()
}

// Expanded is the aria-expanded value of the toggle button.
func (d *Dropdown) Expanded() string {
	if d.Open {
		return "true"
	}
	return "false"
}
