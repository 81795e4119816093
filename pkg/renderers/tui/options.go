package tui

import (
	"github.com/charmbracelet/log"

	"github.com/goliatone/go-contactform/pkg/controller"
	"github.com/goliatone/go-contactform/pkg/render"
)

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithRenderer selects the renderer used to print the outcome of each
// submit attempt. Defaults to the plain text renderer.
func WithRenderer(r render.Renderer) Option {
	return func(s *Session) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithMaxAttempts stops the session after n failed submit attempts. Zero
// keeps prompting until the form is valid or the user aborts.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n >= 0 {
			s.maxAttempts = n
		}
	}
}

// WithControllerOptions forwards options to the controller the session
// builds. A view option is ignored; the session is the view.
func WithControllerOptions(options ...controller.Option) Option {
	return func(s *Session) {
		s.controllerOptions = append(s.controllerOptions, options...)
	}
}

// WithLogger sets the logger for session diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}
