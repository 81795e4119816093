package validation

import (
	"fmt"

	"github.com/goliatone/go-contactform/pkg/model"
)

// Issue is one failing check.
type Issue struct {
	Control string `json:"control"`
	Message string `json:"message"`
	Inline  string `json:"inline,omitempty"`
}

// Mark is the presentation verdict for one control.
type Mark struct {
	Control  string         `json:"control"`
	Validity model.Validity `json:"validity"`
	Inline   string         `json:"inline,omitempty"`
}

// Result is the aggregate of one validation pass.
type Result struct {
	Issues []Issue `json:"errors"`
	Marks  []Mark  `json:"marks"`
	Valid  bool    `json:"valid"`
}

// Messages returns the ordered error list.
func (r Result) Messages() []string {
	if len(r.Issues) == 0 {
		return nil
	}
	out := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		out = append(out, issue.Message)
	}
	return out
}

// FirstInvalid returns the control of the first issue, if any.
func (r Result) FirstInvalid() (string, bool) {
	if len(r.Issues) == 0 {
		return "", false
	}
	return r.Issues[0].Control, true
}

// Apply writes the marks onto the bound controls. Controls named by a mark
// but missing from the form are skipped.
func (r Result) Apply(form *model.Form) {
	for _, mark := range r.Marks {
		if c, ok := form.Lookup(mark.Control); ok {
			c.Mark(mark.Validity, mark.Inline)
		}
	}
}

// Validate runs every check of plan against form and returns the aggregate.
// There is no early exit: each check contributes its mark and, when failing,
// one entry to the error list.
func Validate(form *model.Form, plan Plan) Result {
	result := Result{Valid: true}
	for _, check := range plan {
		control, present := form.Lookup(check.Control)
		verdict := evaluate(check, control, present)

		mark := Mark{Control: check.Control, Validity: model.Valid}
		if !verdict.Valid {
			result.Valid = false
			result.Issues = append(result.Issues, Issue{
				Control: check.Control,
				Message: verdict.Summary,
				Inline:  verdict.Inline,
			})
			mark.Validity = model.Invalid
			mark.Inline = verdict.Inline
		}
		if present {
			result.Marks = append(result.Marks, mark)
		}
	}
	return result
}

func evaluate(check Check, control model.Control, present bool) Verdict {
	msgs := check.Messages
	switch check.Rule {
	case RuleCheckboxGroup, RuleRadioGroup:
		checked := 0
		if group, ok := control.(*model.Group); ok && present {
			checked = group.Checked()
		}
		if check.Rule == RuleRadioGroup {
			return Selected(checked, msgs)
		}
		return AtLeastOne(checked, msgs)
	case RuleDropdown:
		value, ok := firstValue(control, present)
		return HiddenValue(value, ok, msgs)
	}

	value, _ := firstValue(control, present)
	switch check.Rule {
	case RuleMinLength:
		return MinLength(value, check.MinLength, msgs)
	case RuleEmail:
		return Email(value, msgs)
	case RulePhone:
		return Phone(value, msgs)
	default:
		return Required(value, msgs)
	}
}

func firstValue(control model.Control, present bool) (string, bool) {
	if !present || control == nil {
		return "", false
	}
	values := control.Values()
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// CheckBinding verifies that every check names a bound control of a kind the
// rule can evaluate.
func CheckBinding(form *model.Form, plan Plan) error {
	if err := plan.Validate(); err != nil {
		return err
	}
	for _, check := range plan {
		control, ok := form.Lookup(check.Control)
		if !ok {
			return fmt.Errorf("%w: check %q names no bound control", ErrInvalidPlan, check.Control)
		}
		want := model.KindField
		switch check.Rule {
		case RuleCheckboxGroup, RuleRadioGroup:
			want = model.KindGroup
		case RuleDropdown:
			want = model.KindDropdown
		}
		if control.ControlKind() != want {
			return fmt.Errorf("%w: rule %s needs a %s, %q is a %s", ErrInvalidPlan, check.Rule, want, check.Control, control.ControlKind())
		}
	}
	return nil
}

// ValidateOnBlur applies the generic per-kind rule used when a field loses
// focus: required and empty fails, email fields must match the email
// pattern and tel fields must match the phone pattern. Minimum lengths of
// name-like and long text fields are only enforced by a full pass.
func ValidateOnBlur(field *model.Field) model.Validity {
	if field == nil {
		return model.Unvalidated
	}
	value := Trim(field.Value)
	if field.Required && value == "" {
		return model.Invalid
	}
	if value == "" {
		return model.Valid
	}
	switch field.Kind {
	case model.FieldEmail:
		if !MatchesEmail(value) {
			return model.Invalid
		}
	case model.FieldTel:
		if !MatchesPhone(value) {
			return model.Invalid
		}
	}
	return model.Valid
}
