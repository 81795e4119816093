package text_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/renderers/text"
	"github.com/goliatone/go-contactform/pkg/submit"
	"github.com/goliatone/go-contactform/pkg/testsupport"
	"github.com/goliatone/go-contactform/pkg/validation"
)

func TestRenderer_InvalidSubmission(t *testing.T) {
	form := testsupport.ContactForm(t)
	form.Fill(map[string][]string{"name": {"Ada"}, "email": {"nope"}})
	result := validation.Validate(form, validation.DefaultPlan())
	result.Apply(form)

	out, err := text.New().Render(testsupport.Context(), render.Snapshot{
		FormID:   "contactForm",
		Phase:    render.PhaseErrorsShown,
		Controls: render.CaptureControls(form),
		Errors:   result.Messages(),
		Banner:   &render.Banner{Kind: render.BannerError, Text: render.Summary(len(result.Issues))},
	}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got := string(out)

	testsupport.MustContain(t, got,
		"contactForm (errors_shown)",
		"⚠ Please fix 7 errors below to submit the form.",
		render.ErrorsListHeader,
		"  1. Please enter a valid email address",
		"CONTROL",
		"invalid",
		"valid",
		"Ada",
	)
	testsupport.MustNotContain(t, got, "\x1b[", "record ")

	if strings.Index(got, render.ErrorsListHeader) > strings.Index(got, "CONTROL") {
		t.Fatalf("expected error list before the control table:\n%s", got)
	}
}

func TestRenderer_ConfirmedSubmission(t *testing.T) {
	form := testsupport.ContactForm(t)
	testsupport.FillValid(t, form)
	rec := submit.FromForm(form)

	out, err := text.New(text.WithoutTable()).Render(testsupport.Context(), render.Snapshot{
		FormID:     "contactForm",
		Phase:      render.PhaseConfirmed,
		Controls:   render.CaptureControls(form),
		Banner:     &render.Banner{Kind: render.BannerSuccess, Text: render.SuccessMessage},
		ResetAfter: 2 * time.Second,
		Record:     &rec,
	}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got := string(out)

	testsupport.MustContain(t, got,
		"✓ "+render.SuccessMessage,
		"record "+rec.ID,
		"services[0]=web-design",
		"form resets in 2s",
	)
	testsupport.MustNotContain(t, got, "CONTROL", render.ErrorsListHeader)
}

func TestRenderer_ColorOutputFallsBackToPlainOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	r := text.New(text.WithColorOutput(&buf))

	out, err := r.Render(testsupport.Context(), render.Snapshot{FormID: "f", Phase: render.PhaseIdle}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := string(out); got != "f (idle)\n" {
		t.Fatalf("unexpected output %q", got)
	}
	if r.ContentType() != "text/plain; charset=utf-8" || r.Name() != "text" {
		t.Fatalf("unexpected renderer metadata %q %q", r.Name(), r.ContentType())
	}
}

func TestRenderer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := text.New().Render(ctx, render.Snapshot{}, render.RenderOptions{}); err == nil {
		t.Fatal("expected cancelled context error")
	}
}
