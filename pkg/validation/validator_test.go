package validation_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/testsupport"
	"github.com/goliatone/go-contactform/pkg/validation"
)

func TestValidateEmptyFormCollectsEveryErrorInOrder(t *testing.T) {
	form := testsupport.ContactForm(t)

	result := validation.Validate(form, validation.DefaultPlan())
	if result.Valid {
		t.Fatal("expected empty form to be invalid")
	}

	want := []string{
		"Please enter your name",
		"Please enter your email address",
		"Please select a country code",
		"Please enter your phone number",
		"Please select at least one service",
		"Please tell us about your project",
		"Please select your budget range",
		"Please tell us how you heard about us",
	}
	if diff := cmp.Diff(want, result.Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}

	first, ok := result.FirstInvalid()
	if !ok || first != "name" {
		t.Fatalf("expected first invalid control name, got %q", first)
	}
}

func TestValidateMarksAndInlineMessages(t *testing.T) {
	form := testsupport.ContactForm(t)
	testsupport.FillValid(t, form)
	form.Fill(map[string][]string{
		"name":  {"A"},
		"email": {"a@b"},
	})

	result := validation.Validate(form, validation.DefaultPlan())
	result.Apply(form)

	wantIssues := []validation.Issue{
		{Control: "name", Message: "Please enter a valid name", Inline: "Name must be at least 2 characters"},
		{Control: "email", Message: "Please enter a valid email address", Inline: "Invalid email format"},
	}
	if diff := cmp.Diff(wantIssues, result.Issues); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}

	name, _ := form.Field("name")
	if name.Validity() != model.Invalid || name.Inline() != "Name must be at least 2 characters" {
		t.Fatalf("unexpected name state: %s %q", name.Validity(), name.Inline())
	}
	phone, _ := form.Field("phone")
	if phone.Validity() != model.Valid || model.Presentation(phone) != model.ClassFieldValid {
		t.Fatalf("expected phone to be marked valid, got %s", phone.Validity())
	}
	source, _ := form.Dropdown("source")
	if model.Presentation(source) != model.ClassGroupValid {
		t.Fatalf("expected dropdown has-success, got %q", model.Presentation(source))
	}
}

func TestValidateOnlyGroupFailures(t *testing.T) {
	form := testsupport.ContactForm(t)
	values := testsupport.ValidValues()
	delete(values, "services")
	delete(values, "budget")
	form.Fill(values)

	result := validation.Validate(form, validation.DefaultPlan())
	want := []string{"Please select at least one service", "Please select your budget range"}
	if diff := cmp.Diff(want, result.Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	if result.Issues[0].Inline != "Please select at least one service" {
		t.Fatalf("expected group inline message, got %q", result.Issues[0].Inline)
	}
}

func TestValidateFilledFormIsValid(t *testing.T) {
	form := testsupport.ContactForm(t)
	testsupport.FillValid(t, form)

	result := validation.Validate(form, validation.DefaultPlan())
	if !result.Valid || len(result.Issues) != 0 {
		t.Fatalf("expected valid result, got %+v", result.Issues)
	}
	if len(result.Marks) != 8 {
		t.Fatalf("expected eight marks, got %d", len(result.Marks))
	}
}

func TestValidateMissingDropdownIsAbsent(t *testing.T) {
	form, err := model.NewForm("partial", &model.Field{Name: "name", Kind: model.FieldText, Required: true})
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	form.Fill(map[string][]string{"name": {"Ada"}})

	plan := validation.Plan{
		validation.DefaultPlan()[0],
		validation.DefaultPlan()[7],
	}
	result := validation.Validate(form, plan)
	if diff := cmp.Diff([]string{"Please tell us how you heard about us"}, result.Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	if len(result.Marks) != 1 {
		t.Fatalf("expected only the bound control to be marked, got %+v", result.Marks)
	}
}

func TestCheckBinding(t *testing.T) {
	form := testsupport.ContactForm(t)
	if err := validation.CheckBinding(form, validation.DefaultPlan()); err != nil {
		t.Fatalf("default plan should bind: %v", err)
	}

	bad := validation.Plan{{Control: "services", Rule: validation.RuleEmail}}
	if err := validation.CheckBinding(form, bad); !errors.Is(err, validation.ErrInvalidPlan) {
		t.Fatalf("expected ErrInvalidPlan, got %v", err)
	}

	unknown := validation.Plan{{Control: "name", Rule: "regex"}}
	if err := unknown.Validate(); !errors.Is(err, validation.ErrInvalidPlan) {
		t.Fatalf("expected ErrInvalidPlan for unknown rule, got %v", err)
	}
}

func TestValidateOnBlurUsesGenericRules(t *testing.T) {
	cases := []struct {
		field model.Field
		want  model.Validity
	}{
		{model.Field{Kind: model.FieldText, Required: true, Value: " "}, model.Invalid},
		{model.Field{Kind: model.FieldText, Required: true, Value: "A"}, model.Valid},
		{model.Field{Kind: model.FieldEmail, Required: true, Value: "a@b"}, model.Invalid},
		{model.Field{Kind: model.FieldEmail, Required: true, Value: "a@b.c"}, model.Valid},
		{model.Field{Kind: model.FieldTel, Required: true, Value: "12"}, model.Invalid},
		{model.Field{Kind: model.FieldTel, Required: true, Value: "123-4567"}, model.Valid},
		{model.Field{Kind: model.FieldTextArea, Required: true, Value: "short"}, model.Valid},
		{model.Field{Kind: model.FieldEmail, Value: ""}, model.Valid},
	}
	for i, tc := range cases {
		field := tc.field
		if got := validation.ValidateOnBlur(&field); got != tc.want {
			t.Fatalf("case %d: got %s, want %s", i, got, tc.want)
		}
	}
}
