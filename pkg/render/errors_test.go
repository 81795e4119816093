package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/testsupport"
)

func TestMapErrorPayload_PathStyles(t *testing.T) {
	form := testsupport.ContactForm(t)

	payload := map[string][]string{
		"/body/name":                 {"Name is required"},
		"body.email":                 {"Email invalid"},
		"email":                      {" Email taken ", ""},
		"$.body.services[0]":         {"Unknown service"},
		"request.payload.phone":      {"Phone malformed"},
		"non_field_errors":           {"Form level error"},
		"request/body/unknown-field": {"Should fall back to form errors"},
		"":                           {"Unscoped form error"},
	}

	mapped := render.MapErrorPayload(form, payload)

	wantControls := map[string][]string{
		"name":     {"Name is required"},
		"email":    {"Email invalid", "Email taken"},
		"services": {"Unknown service"},
		"phone":    {"Phone malformed"},
	}
	if diff := cmp.Diff(wantControls, mapped.Controls); diff != "" {
		t.Fatalf("control errors mismatch (-want +got):\n%s", diff)
	}

	wantForm := []string{"Unscoped form error", "Form level error", "Should fall back to form errors"}
	if diff := cmp.Diff(wantForm, mapped.Form); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMapErrorPayload_Empty(t *testing.T) {
	mapped := render.MapErrorPayload(testsupport.ContactForm(t), nil)
	if !mapped.Empty() {
		t.Fatalf("expected empty mapping, got %+v", mapped)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}

	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}
