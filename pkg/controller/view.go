package controller

import (
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/submit"
	"github.com/goliatone/go-contactform/pkg/validation"
)

// View applies snapshots to whatever surface shows the form.
type View interface {
	// Apply draws the state after a transition.
	Apply(snap render.Snapshot)
	// ScrollTo brings the named control into view.
	ScrollTo(control string)
	// Focus moves input focus to the named control.
	Focus(control string)
}

// NopView ignores every call.
type NopView struct{}

func (NopView) Apply(render.Snapshot) {}
func (NopView) ScrollTo(string)       {}
func (NopView) Focus(string)          {}

// Observer is notified of pass outcomes, typically for metrics.
type Observer interface {
	ValidationCompleted(result validation.Result)
	Submitted(rec submit.Record)
	SubmitFailed(err error)
}

// NopObserver ignores every notification.
type NopObserver struct{}

func (NopObserver) ValidationCompleted(validation.Result) {}
func (NopObserver) Submitted(submit.Record)               {}
func (NopObserver) SubmitFailed(error)                    {}
