// Package tui fills a contact form interactively from a terminal. Every
// answer is dispatched to a controller as the equivalent UI action, so the
// terminal session goes through the same transitions as a browser.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/goliatone/go-contactform/pkg/controller"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/renderers/text"
)

// Session prompts for every control of a form and submits it until the pass
// succeeds.
type Session struct {
	ctrl     *controller.Controller
	driver   PromptDriver
	renderer render.Renderer
	logger   *log.Logger

	maxAttempts       int
	controllerOptions []controller.Option

	mu       sync.Mutex
	scrolled string
	focused  string
}

var _ controller.View = (*Session)(nil)

// New builds a session and its controller over form.
func New(form *model.Form, options ...Option) (*Session, error) {
	s := &Session{
		renderer: text.New(),
		logger:   log.New(io.Discard),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	ctrlOptions := append(slices.Clone(s.controllerOptions), controller.WithView(s))
	ctrl, err := controller.New(form, ctrlOptions...)
	if err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}
	s.ctrl = ctrl
	return s, nil
}

// Controller exposes the controller driving the session.
func (s *Session) Controller() *controller.Controller {
	return s.ctrl
}

// Close cancels pending deferred effects of the controller.
func (s *Session) Close() {
	s.ctrl.Close()
}

func (s *Session) Apply(snap render.Snapshot) {
	s.logger.Debug("form state", "phase", snap.Phase, "errors", len(snap.Errors))
}

func (s *Session) ScrollTo(control string) {
	s.mu.Lock()
	s.scrolled = control
	s.mu.Unlock()
}

func (s *Session) Focus(control string) {
	s.mu.Lock()
	s.focused = control
	s.mu.Unlock()
}

// Focused returns the control that last received focus.
func (s *Session) Focused() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.focused
}

// Run prompts for every control, submits, and re-prompts the failing
// controls until the submission is confirmed. It returns the confirmed
// snapshot, whose Record holds the submitted values.
func (s *Session) Run(ctx context.Context) (render.Snapshot, error) {
	pending := s.ctrl.Form().Order()
	for attempt := 1; ; attempt++ {
		for _, name := range pending {
			if err := s.prompt(ctx, name); err != nil {
				return s.ctrl.Snapshot(), err
			}
		}

		ok, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Submit the form?", Default: true})
		if err != nil {
			return s.ctrl.Snapshot(), err
		}
		if !ok {
			return s.ctrl.Snapshot(), ErrAborted
		}

		snap, err := s.ctrl.Dispatch(ctx, controller.Submit{})
		if err != nil {
			return snap, err
		}
		if err := s.show(ctx, snap); err != nil {
			return snap, err
		}
		if snap.Phase == render.PhaseConfirmed {
			return snap, nil
		}
		if s.maxAttempts > 0 && attempt >= s.maxAttempts {
			return snap, ErrTooManyAttempts
		}
		pending = s.retry(snap)
		s.logger.Debug("re-prompting", "attempt", attempt, "controls", pending)
	}
}

// retry lists the invalid controls starting at the scroll target. A failed
// delivery leaves nothing invalid and re-prompts nothing.
func (s *Session) retry(snap render.Snapshot) []string {
	var invalid []string
	for _, c := range snap.Controls {
		if c.Validity == model.Invalid {
			invalid = append(invalid, c.Name)
		}
	}
	s.mu.Lock()
	first := s.scrolled
	s.mu.Unlock()
	if idx := slices.Index(invalid, first); idx > 0 {
		invalid = slices.Concat(invalid[idx:], invalid[:idx])
	}
	return invalid
}

func (s *Session) show(ctx context.Context, snap render.Snapshot) error {
	out, err := s.renderer.Render(ctx, snap, render.RenderOptions{})
	if err != nil {
		return err
	}
	return s.driver.Info(ctx, strings.TrimRight(string(out), "\n"))
}

func (s *Session) prompt(ctx context.Context, name string) error {
	state, ok := s.ctrl.Snapshot().Control(name)
	if !ok {
		return fmt.Errorf("%w: %s", controller.ErrUnknownControl, name)
	}
	switch {
	case state.Field != nil:
		return s.promptField(ctx, state)
	case state.Group != nil:
		return s.promptGroup(ctx, state)
	case state.Dropdown != nil:
		return s.promptDropdown(ctx, state)
	default:
		return fmt.Errorf("%w: %s", controller.ErrUnknownControl, name)
	}
}

func (s *Session) promptField(ctx context.Context, state render.ControlState) error {
	field := state.Field
	message := labelFor(field.Label, field.Name)
	if field.Required {
		message += " *"
	}

	var (
		value string
		err   error
	)
	if field.Kind == model.FieldTextArea {
		value, err = s.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: field.Value, Help: state.Inline})
	} else {
		value, err = s.driver.Input(ctx, InputConfig{Message: message, Default: field.Value, Help: state.Inline})
	}
	if err != nil {
		return err
	}

	if _, err := s.ctrl.Dispatch(ctx, controller.EditField{Name: field.Name, Value: value}); err != nil {
		return err
	}
	_, err = s.ctrl.Dispatch(ctx, controller.BlurField{Name: field.Name})
	return err
}

func (s *Session) promptGroup(ctx context.Context, state render.ControlState) error {
	group := state.Group
	labels := make([]string, len(group.Options))
	var checked []int
	for i, opt := range group.Options {
		labels[i] = labelFor(opt.Label, opt.Value)
		if opt.Checked {
			checked = append(checked, i)
		}
	}
	message := labelFor(group.Label, group.Name)

	if group.Kind == model.GroupRadio {
		def := -1
		if len(checked) > 0 {
			def = checked[0]
		}
		idx, err := s.driver.Select(ctx, SelectConfig{Message: message, Options: labels, DefaultIndex: def, Help: state.Inline})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(group.Options) || group.Options[idx].Checked {
			return nil
		}
		_, err = s.ctrl.Dispatch(ctx, controller.ToggleOption{Group: group.Name, Value: group.Options[idx].Value})
		return err
	}

	picked, err := s.driver.MultiSelect(ctx, SelectConfig{Message: message, Options: labels, Defaults: checked, Help: state.Inline})
	if err != nil {
		return err
	}
	for i, opt := range group.Options {
		if slices.Contains(picked, i) == opt.Checked {
			continue
		}
		if _, err := s.ctrl.Dispatch(ctx, controller.ToggleOption{Group: group.Name, Value: opt.Value}); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) promptDropdown(ctx context.Context, state render.ControlState) error {
	dd := state.Dropdown
	if len(dd.Options) == 0 {
		return errors.New("tui: dropdown " + dd.Name + " has no options")
	}
	labels := make([]string, len(dd.Options))
	def := -1
	for i, opt := range dd.Options {
		labels[i] = strings.TrimSpace(opt.Flag + " " + labelFor(opt.Label, opt.Value))
		if opt.Value == dd.Value && dd.Value != "" {
			def = i
		}
	}
	message := labelFor(dd.Label, dd.Name)
	if dd.Value == "" {
		message += " (" + dd.PlaceholderText() + ")"
	}

	idx, err := s.driver.Select(ctx, SelectConfig{Message: message, Options: labels, DefaultIndex: def, PageSize: 10})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(dd.Options) {
		return nil
	}
	if _, err := s.ctrl.Dispatch(ctx, controller.ToggleDropdown{Name: dd.Name}); err != nil {
		return err
	}
	_, err = s.ctrl.Dispatch(ctx, controller.SelectOption{Dropdown: dd.Name, Value: dd.Options[idx].Value})
	return err
}

func labelFor(label, fallback string) string {
	if strings.TrimSpace(label) != "" {
		return label
	}
	return fallback
}
