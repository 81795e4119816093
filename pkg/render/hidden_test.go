package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/testsupport"
)

func TestHiddenFields_DropdownsThenExtras(t *testing.T) {
	form := testsupport.ContactForm(t)
	form.Fill(map[string][]string{"country_code": {"+44"}})
	snap := render.Snapshot{Controls: render.CaptureControls(form)}

	got := render.HiddenFields(snap, map[string]string{
		"_csrf":        "token-1",
		"country_code": "+1",
		" ":            "blank",
	})
	want := []render.HiddenField{
		{Name: "country_code", Value: "+44"},
		{Name: "source"},
		{Name: "_csrf", Value: "token-1"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("hidden fields mismatch (-want +got):\n%s", diff)
	}
}
