package contactform_test

import (
	"context"
	"io/fs"
	"testing"

	contactform "github.com/goliatone/go-contactform"
	"github.com/goliatone/go-contactform/pkg/controller"
	"github.com/goliatone/go-contactform/pkg/render"
)

func TestNewControllerBindsContactForm(t *testing.T) {
	clock := controller.NewManualScheduler()
	ctrl, err := contactform.NewController(controller.WithScheduler(clock))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	defer ctrl.Close()

	snap, err := ctrl.Dispatch(context.Background(), controller.Submit{})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if snap.Phase != render.PhaseErrorsShown || len(snap.Errors) != 8 {
		t.Fatalf("expected eight errors on an empty form, got %d (%s)", len(snap.Errors), snap.Phase)
	}
}

func TestSubmitRendersText(t *testing.T) {
	resp, err := contactform.Submit(context.Background(), map[string][]string{"name": {"Ada"}}, "text")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if resp.ContentType != "text/plain; charset=utf-8" || len(resp.Snapshot.Errors) != 7 {
		t.Fatalf("unexpected response %q with %d errors", resp.ContentType, len(resp.Snapshot.Errors))
	}
}

func TestEmbeddedAssets(t *testing.T) {
	if _, err := fs.Stat(contactform.EmbeddedTemplates(), "templates/form.tmpl"); err != nil {
		t.Fatalf("templates: %v", err)
	}
	if _, err := fs.Stat(contactform.EmbeddedDefinitions(), "contact.yaml"); err != nil {
		t.Fatalf("definitions: %v", err)
	}
}
