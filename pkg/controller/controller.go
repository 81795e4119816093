package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/goliatone/go-contactform/pkg/dropdown"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/submit"
	"github.com/goliatone/go-contactform/pkg/validation"
)

var (
	// ErrUnknownAction is returned for actions the controller does not handle.
	ErrUnknownAction = errors.New("controller: unknown action")
	// ErrUnknownControl is returned when an action names no bound control of
	// the expected kind.
	ErrUnknownControl = errors.New("controller: unknown control")
	// ErrUnknownOption is returned when an action names no option of a group.
	ErrUnknownOption = errors.New("controller: unknown option")
)

// Controller owns a bound form and serialises every transition on it.
type Controller struct {
	mu sync.Mutex

	form      *model.Form
	plan      validation.Plan
	dropdowns *dropdown.Set

	view      View
	submitter submit.Submitter
	scheduler Scheduler
	observer  Observer
	logger    *log.Logger

	resetDelay    time.Duration
	focusDelay    time.Duration
	bannerTimeout time.Duration

	phase      render.Phase
	banner     *render.Banner
	errors     []string
	focus      string
	record     *submit.Record
	resetAfter time.Duration

	// each deferred effect carries the generation it was armed under;
	// callbacks from a superseded timer are ignored
	resetTimer  Timer
	bannerTimer Timer
	focusTimer  Timer
	resetGen    uint64
	bannerGen   uint64
	focusGen    uint64
}

// New binds a controller to form. The plan is checked against the bound
// controls up front so a pass can never reference a control of the wrong kind.
func New(form *model.Form, options ...Option) (*Controller, error) {
	if form == nil {
		return nil, errors.New("controller: form is required")
	}
	c := &Controller{
		form:          form,
		plan:          validation.DefaultPlan(),
		view:          NopView{},
		submitter:     submit.NewLogSubmitter(nil),
		scheduler:     TimerScheduler{},
		observer:      NopObserver{},
		logger:        log.New(io.Discard),
		resetDelay:    DefaultResetDelay,
		focusDelay:    DefaultFocusDelay,
		bannerTimeout: DefaultBannerTimeout,
		phase:         render.PhaseIdle,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if err := validation.CheckBinding(form, c.plan); err != nil {
		return nil, fmt.Errorf("controller: %w", err)
	}
	c.dropdowns = dropdown.NewSet(form)
	return c, nil
}

// Form returns the bound form. Callers must not mutate it while actions are
// being dispatched.
func (c *Controller) Form() *model.Form {
	return c.form
}

// Plan returns the validation plan in use.
func (c *Controller) Plan() validation.Plan {
	return c.plan
}

// Phase returns the current state.
func (c *Controller) Phase() render.Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Snapshot returns the current render state.
func (c *Controller) Snapshot() render.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Dispatch applies action and returns the resulting snapshot, which has also
// been handed to the view.
func (c *Controller) Dispatch(ctx context.Context, action Action) (render.Snapshot, error) {
	if ctx == nil {
		return render.Snapshot{}, errors.New("controller: context is required")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.apply(ctx, action); err != nil {
		return c.snapshot(), err
	}
	snap := c.snapshot()
	if _, focusOnly := action.(focusDue); !focusOnly {
		c.view.Apply(snap)
	}
	c.afterApply(action, snap)
	return snap, nil
}

// Close cancels every pending deferred effect.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	disarm(&c.resetTimer, &c.resetGen)
	disarm(&c.bannerTimer, &c.bannerGen)
	disarm(&c.focusTimer, &c.focusGen)
}

func (c *Controller) apply(ctx context.Context, action Action) error {
	switch a := action.(type) {
	case Submit:
		return c.submit(ctx)
	case BlurField:
		field, err := c.field(a.Name)
		if err != nil {
			return err
		}
		if v := validation.ValidateOnBlur(field); v == model.Invalid {
			field.Mark(v, field.Inline())
		} else {
			field.Mark(v, "")
		}
		return nil
	case EditField:
		field, err := c.field(a.Name)
		if err != nil {
			return err
		}
		field.Value = a.Value
		field.ClearInvalid()
		return nil
	case ToggleOption:
		group, err := c.form.Group(a.Group)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnknownControl, err)
		}
		if !group.Toggle(a.Value) {
			return fmt.Errorf("%w: %q on %s", ErrUnknownOption, a.Value, a.Group)
		}
		return nil
	case ToggleDropdown:
		d, err := c.form.Dropdown(a.Name)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnknownControl, err)
		}
		c.dropdowns.Toggle(d)
		return nil
	case SelectOption:
		d, err := c.form.Dropdown(a.Dropdown)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnknownControl, err)
		}
		if err := dropdown.Select(d, a.Value); err != nil {
			return fmt.Errorf("%w: %v", ErrUnknownOption, err)
		}
		return nil
	case CloseDropdowns:
		c.dropdowns.CloseAll()
		return nil
	case Reset:
		disarm(&c.resetTimer, &c.resetGen)
		c.clearForm()
		return nil
	case DismissBanner:
		c.clearBanner()
		return nil
	case resetDue:
		if a.generation != c.resetGen {
			return nil
		}
		c.resetTimer = nil
		c.clearForm()
		c.logger.Debug("form reset after confirmation")
		return nil
	case bannerDue:
		if a.generation != c.bannerGen {
			return nil
		}
		c.bannerTimer = nil
		c.banner = nil
		return nil
	case focusDue:
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnknownAction, action)
	}
}

// afterApply runs the view side effects that follow a drawn snapshot.
func (c *Controller) afterApply(action Action, snap render.Snapshot) {
	switch a := action.(type) {
	case Submit:
		if snap.Phase != render.PhaseErrorsShown {
			return
		}
		first, ok := c.form.FirstInvalid()
		if !ok {
			return
		}
		name := first.ControlName()
		c.view.ScrollTo(name)
		if !first.AcceptsText() {
			return
		}
		c.arm(&c.focusTimer, &c.focusGen, c.focusDelay, func(gen uint64) Action {
			return focusDue{generation: gen, name: name}
		})
	case focusDue:
		if a.generation == c.focusGen {
			c.focusTimer = nil
			c.view.Focus(a.name)
		}
	}
}

func (c *Controller) submit(ctx context.Context) error {
	// a pending reset would wipe the values this pass is about to judge
	disarm(&c.resetTimer, &c.resetGen)
	disarm(&c.focusTimer, &c.focusGen)

	c.phase = render.PhaseValidating
	c.form.ClearMarks()
	c.errors = nil
	c.focus = ""
	c.record = nil
	c.resetAfter = 0

	result := validation.Validate(c.form, c.plan)
	result.Apply(c.form)
	c.observer.ValidationCompleted(result)

	if !result.Valid {
		c.phase = render.PhaseErrorsShown
		c.errors = result.Messages()
		if first, ok := c.form.FirstInvalid(); ok && first.AcceptsText() {
			c.focus = first.ControlName()
		}
		c.showBanner(render.BannerError, render.Summary(len(result.Issues)))
		c.logger.Debug("validation failed", "errors", len(result.Issues))
		return nil
	}

	c.phase = render.PhaseSubmitting
	rec := submit.FromForm(c.form)
	if err := c.submitter.Submit(ctx, rec); err != nil {
		c.logger.Error("submission failed", "id", rec.ID, "err", err)
		c.observer.SubmitFailed(err)
		c.phase = render.PhaseIdle
		c.showBanner(render.BannerError, render.DeliveryFailure)
		return nil
	}
	c.observer.Submitted(rec)

	c.phase = render.PhaseConfirmed
	c.record = &rec
	c.resetAfter = c.resetDelay
	c.showBanner(render.BannerSuccess, render.SuccessMessage)

	c.arm(&c.resetTimer, &c.resetGen, c.resetDelay, func(gen uint64) Action {
		return resetDue{generation: gen}
	})
	c.logger.Info("submission confirmed", "id", rec.ID)
	return nil
}

func (c *Controller) showBanner(kind render.BannerKind, text string) {
	c.banner = &render.Banner{Kind: kind, Text: text}
	c.arm(&c.bannerTimer, &c.bannerGen, c.bannerTimeout, func(gen uint64) Action {
		return bannerDue{generation: gen}
	})
}

func (c *Controller) clearBanner() {
	disarm(&c.bannerTimer, &c.bannerGen)
	c.banner = nil
}

// arm replaces the timer in slot with a new one dispatching the action built
// by next under a fresh generation.
func (c *Controller) arm(slot *Timer, gen *uint64, d time.Duration, next func(uint64) Action) {
	disarm(slot, gen)
	armed := *gen
	*slot = c.scheduler.AfterFunc(d, func() {
		c.deferred(next(armed))
	})
}

func (c *Controller) clearForm() {
	disarm(&c.focusTimer, &c.focusGen)
	c.form.Reset()
	c.errors = nil
	c.focus = ""
	c.record = nil
	c.resetAfter = 0
	c.phase = render.PhaseIdle
}

func (c *Controller) deferred(action Action) {
	if _, err := c.Dispatch(context.Background(), action); err != nil {
		c.logger.Error("deferred action failed", "action", ActionName(action), "err", err)
	}
}

func (c *Controller) field(name string) (*model.Field, error) {
	field, err := c.form.Field(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownControl, err)
	}
	return field, nil
}

func (c *Controller) snapshot() render.Snapshot {
	snap := render.Snapshot{
		FormID:     c.form.ID,
		Phase:      c.phase,
		Controls:   render.CaptureControls(c.form),
		Focus:      c.focus,
		ResetAfter: c.resetAfter,
	}
	if len(c.errors) > 0 {
		snap.Errors = append([]string(nil), c.errors...)
	}
	if c.banner != nil {
		banner := *c.banner
		snap.Banner = &banner
	}
	if c.record != nil {
		rec := *c.record
		snap.Record = &rec
	}
	return snap
}

// disarm stops the timer in slot and invalidates callbacks that already
// fired and are waiting on the lock.
func disarm(slot *Timer, gen *uint64) {
	if *slot != nil {
		(*slot).Stop()
		*slot = nil
	}
	*gen++
}
