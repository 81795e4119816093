package controller

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/goliatone/go-contactform/pkg/submit"
	"github.com/goliatone/go-contactform/pkg/validation"
)

// Default delays of the deferred effects.
const (
	DefaultResetDelay    = 2 * time.Second
	DefaultFocusDelay    = 500 * time.Millisecond
	DefaultBannerTimeout = 5 * time.Second
)

// Option customises a Controller.
type Option func(*Controller)

// WithPlan replaces the default eight-check plan.
func WithPlan(plan validation.Plan) Option {
	return func(c *Controller) {
		if plan != nil {
			c.plan = plan
		}
	}
}

// WithView sets the surface snapshots are applied to.
func WithView(view View) Option {
	return func(c *Controller) {
		if view != nil {
			c.view = view
		}
	}
}

// WithSubmitter sets the collaborator receiving valid records.
func WithSubmitter(submitter submit.Submitter) Option {
	return func(c *Controller) {
		if submitter != nil {
			c.submitter = submitter
		}
	}
}

// WithScheduler sets the scheduler used for deferred effects.
func WithScheduler(scheduler Scheduler) Option {
	return func(c *Controller) {
		if scheduler != nil {
			c.scheduler = scheduler
		}
	}
}

// WithObserver registers an observer of pass outcomes.
func WithObserver(observer Observer) Option {
	return func(c *Controller) {
		if observer != nil {
			c.observer = observer
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithResetDelay sets how long a confirmed submission stays on screen before
// the form is cleared.
func WithResetDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.resetDelay = d
		}
	}
}

// WithFocusDelay sets the pause between scrolling to the first invalid
// control and focusing it.
func WithFocusDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.focusDelay = d
		}
	}
}

// WithBannerTimeout sets how long a banner stays visible.
func WithBannerTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.bannerTimeout = d
		}
	}
}
