package model

// Validity is the three-state verdict attached to every control.
type Validity int

const (
	Unvalidated Validity = iota
	Valid
	Invalid
)

func (v Validity) String() string {
	switch v {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	default:
		return "unvalidated"
	}
}

// MarshalText lets Validity serialise as its string form in JSON payloads.
func (v Validity) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// ControlKind distinguishes the three families of controls.
type ControlKind string

const (
	KindField    ControlKind = "field"
	KindGroup    ControlKind = "group"
	KindDropdown ControlKind = "dropdown"
)

// FieldKind is the semantic input type of a single-value field.
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldEmail    FieldKind = "email"
	FieldTel      FieldKind = "tel"
	FieldTextArea FieldKind = "textarea"
)

// GroupKind is the selection model of a group.
type GroupKind string

const (
	GroupCheckbox GroupKind = "checkbox"
	GroupRadio    GroupKind = "radio"
)

// Presentation class names applied by renderers.
const (
	ClassFieldValid     = "is-valid"
	ClassFieldInvalid   = "is-invalid"
	ClassGroupValid     = "has-success"
	ClassGroupInvalid   = "has-error"
	ClassActive         = "active"
	ClassOptionActive   = "is-active"
	ClassFieldErrorNode = "field-error-message"
	ClassGroupErrorNode = "group-error-message"
)

// DefaultPlaceholder is shown by dropdowns without a configured placeholder.
const DefaultPlaceholder = "Select"

// Control is the common handle over fields, groups and dropdowns.
type Control interface {
	ControlName() string
	ControlKind() ControlKind
	Validity() Validity
	// Mark records a validity verdict and the inline message to show (empty
	// when the control has no inline message).
	Mark(v Validity, inline string)
	// ClearMark returns the control to the unvalidated presentation.
	ClearMark()
	// AcceptsText reports whether the control takes direct text entry and can
	// therefore receive input focus.
	AcceptsText() bool
	// Values returns the submitted values of the control in document order.
	Values() []string
	// Reset clears the value and the presentation state.
	Reset()
}

// Presentation returns the state class for a control, or "" when unvalidated.
func Presentation(c Control) string {
	if c == nil {
		return ""
	}
	switch c.Validity() {
	case Valid:
		if c.ControlKind() == KindField {
			return ClassFieldValid
		}
		return ClassGroupValid
	case Invalid:
		if c.ControlKind() == KindField {
			return ClassFieldInvalid
		}
		return ClassGroupInvalid
	default:
		return ""
	}
}
