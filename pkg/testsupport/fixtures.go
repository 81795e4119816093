package testsupport

import (
	"testing"

	"github.com/goliatone/go-contactform/pkg/model"
)

// ContactForm builds the contact form control tree in declaration order:
// name, email, country_code, phone, services, project, budget, source.
// Testing helpers fail the test on error to keep table tests concise.
func ContactForm(t testing.TB) *model.Form {
	t.Helper()

	form, err := NewContactForm()
	if err != nil {
		t.Fatalf("testsupport: contact form: %v", err)
	}
	return form
}

// NewContactForm returns the fixture form without requiring testing.TB.
func NewContactForm() (*model.Form, error) {
	return model.NewForm("contactForm",
		&model.Field{Name: "name", Label: "Full name", Kind: model.FieldText, Required: true},
		&model.Field{Name: "email", Label: "Email", Kind: model.FieldEmail, Required: true},
		&model.Dropdown{
			Name:        "country_code",
			Placeholder: "+1",
			Options: []model.DropdownOption{
				{Value: "+1", Label: "+1", Flag: "\U0001F1FA\U0001F1F8"},
				{Value: "+44", Label: "+44", Flag: "\U0001F1EC\U0001F1E7"},
			},
		},
		&model.Field{Name: "phone", Label: "Phone", Kind: model.FieldTel, Required: true},
		&model.Group{
			Name: "services",
			Kind: model.GroupCheckbox,
			Options: []model.Option{
				{Value: "web-design", Label: "Web Design"},
				{Value: "branding", Label: "Branding"},
				{Value: "seo", Label: "SEO"},
			},
		},
		&model.Field{Name: "project", Label: "Project details", Kind: model.FieldTextArea, Required: true},
		&model.Group{
			Name: "budget",
			Kind: model.GroupRadio,
			Options: []model.Option{
				{Value: "under-5k", Label: "Under $5k"},
				{Value: "5k-10k", Label: "$5k - $10k"},
			},
		},
		&model.Dropdown{
			Name:        "source",
			Placeholder: "Select an option",
			Options: []model.DropdownOption{
				{Value: "google", Label: "Google"},
				{Value: "referral", Label: "Referral"},
			},
		},
	)
}

// ValidValues is a submission that passes every check.
func ValidValues() map[string][]string {
	return map[string][]string{
		"name":         {"Ada Lovelace"},
		"email":        {"ada@example.com"},
		"country_code": {"+44"},
		"phone":        {"(020) 7946-0000"},
		"services":     {"web-design"},
		"project":      {"A new marketing site for our studio."},
		"budget":       {"5k-10k"},
		"source":       {"referral"},
	}
}

// FillValid fills form with ValidValues.
func FillValid(t testing.TB, form *model.Form) {
	t.Helper()
	form.Fill(ValidValues())
}
