package validation

import (
	"errors"
	"fmt"
	"strings"
)

// RuleKind names a predicate a check applies.
type RuleKind string

const (
	RuleRequired      RuleKind = "required"
	RuleMinLength     RuleKind = "min_length"
	RuleEmail         RuleKind = "email"
	RulePhone         RuleKind = "phone"
	RuleCheckboxGroup RuleKind = "checkbox_group"
	RuleRadioGroup    RuleKind = "radio_group"
	RuleDropdown      RuleKind = "dropdown"
)

// ErrInvalidPlan wraps plan configuration problems.
var ErrInvalidPlan = errors.New("validation: invalid plan")

// Check binds a rule to a control.
type Check struct {
	Control   string   `json:"control" yaml:"control"`
	Rule      RuleKind `json:"rule" yaml:"rule"`
	MinLength int      `json:"min_length,omitempty" yaml:"min_length,omitempty"`
	Messages  Messages `json:"messages" yaml:"messages"`
}

// Plan is the ordered list of checks run on every validation pass. The order
// of the plan is the order of the error list.
type Plan []Check

// Validate reports configuration problems: unknown rule kinds, empty control
// names and min_length rules without a positive bound.
func (p Plan) Validate() error {
	var problems []string
	for i, check := range p {
		if strings.TrimSpace(check.Control) == "" {
			problems = append(problems, fmt.Sprintf("check %d: control is required", i))
		}
		switch check.Rule {
		case RuleRequired, RuleEmail, RulePhone, RuleCheckboxGroup, RuleRadioGroup, RuleDropdown:
		case RuleMinLength:
			if check.MinLength <= 0 {
				problems = append(problems, fmt.Sprintf("check %d (%s): min_length must be positive", i, check.Control))
			}
		default:
			problems = append(problems, fmt.Sprintf("check %d (%s): unknown rule %q", i, check.Control, check.Rule))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidPlan, strings.Join(problems, "; "))
	}
	return nil
}

// Controls returns the control names referenced by the plan in order.
func (p Plan) Controls() []string {
	out := make([]string, 0, len(p))
	for _, check := range p {
		out = append(out, check.Control)
	}
	return out
}

// DefaultPlan returns the eight checks of the contact form.
func DefaultPlan() Plan {
	return Plan{
		{
			Control:   "name",
			Rule:      RuleMinLength,
			MinLength: 2,
			Messages: Messages{
				Required:       "Please enter your name",
				RequiredInline: "Name is required",
				Invalid:        "Please enter a valid name",
				InvalidInline:  "Name must be at least 2 characters",
			},
		},
		{
			Control: "email",
			Rule:    RuleEmail,
			Messages: Messages{
				Required:       "Please enter your email address",
				RequiredInline: "Email is required",
				Invalid:        "Please enter a valid email address",
				InvalidInline:  "Invalid email format",
			},
		},
		{
			Control:  "country_code",
			Rule:     RuleDropdown,
			Messages: Messages{Required: "Please select a country code"},
		},
		{
			Control: "phone",
			Rule:    RulePhone,
			Messages: Messages{
				Required:       "Please enter your phone number",
				RequiredInline: "Phone number is required",
				Invalid:        "Please enter a valid phone number",
				InvalidInline:  "Invalid phone number",
			},
		},
		{
			Control: "services",
			Rule:    RuleCheckboxGroup,
			Messages: Messages{
				Required:       "Please select at least one service",
				RequiredInline: "Please select at least one service",
			},
		},
		{
			Control:   "project",
			Rule:      RuleMinLength,
			MinLength: 10,
			Messages: Messages{
				Required:       "Please tell us about your project",
				RequiredInline: "Project details are required",
				Invalid:        "Please provide more details about your project",
				InvalidInline:  "Please provide at least 10 characters",
			},
		},
		{
			Control: "budget",
			Rule:    RuleRadioGroup,
			Messages: Messages{
				Required:       "Please select your budget range",
				RequiredInline: "Please select your budget range",
			},
		},
		{
			Control:  "source",
			Rule:     RuleDropdown,
			Messages: Messages{Required: "Please tell us how you heard about us"},
		},
	}
}
