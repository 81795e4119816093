// Package dropdown implements the custom single-select interaction: at most
// one list open at a time, option selection that writes the hidden backing
// value and the visible label, and close-all on outside click or Escape.
package dropdown

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-contactform/pkg/model"
)

// EmojiBaseURL is where flag glyph images are served from.
const EmojiBaseURL = "https://s.w.org/images/core/emoji/16.0.1/svg/"

var (
	// ErrUnknownOption is returned when a selection names no option.
	ErrUnknownOption = errors.New("dropdown: unknown option")
	// ErrNotFlag is returned when a flag glyph is not a two code point sequence.
	ErrNotFlag = errors.New("dropdown: flag must hold two code points")
)

// Set groups the dropdowns of one form so opening one closes the others.
type Set struct {
	dropdowns []*model.Dropdown
}

// NewSet binds the dropdowns of form.
func NewSet(form *model.Form) *Set {
	return &Set{dropdowns: form.Dropdowns()}
}

// Open returns the currently open dropdown, if any.
func (s *Set) Open() (*model.Dropdown, bool) {
	for _, d := range s.dropdowns {
		if d.Open {
			return d, true
		}
	}
	return nil, false
}

// Toggle closes every dropdown, then flips target relative to its state
// before the call.
func (s *Set) Toggle(target *model.Dropdown) {
	if target == nil {
		return
	}
	wasOpen := target.Open
	s.CloseAll()
	target.Open = !wasOpen
}

// CloseAll collapses every dropdown of the set.
func (s *Set) CloseAll() {
	for _, d := range s.dropdowns {
		d.Open = false
	}
}

// Select writes value into the hidden backing field, marks the matching
// option active, updates the visible label and closes the dropdown.
func Select(d *model.Dropdown, value string) error {
	if d == nil {
		return fmt.Errorf("dropdown: dropdown is nil")
	}
	idx := indexOf(d.Options, value)
	if idx < 0 {
		return fmt.Errorf("%w: %q on %s", ErrUnknownOption, value, d.Name)
	}
	opt := d.Options[idx]
	d.Active = idx
	d.Value = opt.Value
	d.Display = DisplayFor(opt)
	d.Open = false
	return nil
}

// Sync rebuilds the display of d from its hidden value, for dropdowns whose
// value was assigned directly (for example from a posted form). An unknown
// value keeps the value but shows the placeholder.
func Sync(d *model.Dropdown) {
	if d == nil {
		return
	}
	idx := indexOf(d.Options, d.Value)
	if d.Value == "" || idx < 0 {
		d.Active = -1
		d.Display = model.Display{Label: d.PlaceholderText()}
		return
	}
	d.Active = idx
	d.Display = DisplayFor(d.Options[idx])
}

// SyncAll applies Sync to every dropdown of form.
func SyncAll(form *model.Form) {
	for _, d := range form.Dropdowns() {
		Sync(d)
	}
}

// DisplayFor builds the visible label of an option. Options carrying a flag
// glyph get an image reference composed from the glyph's code points; a
// glyph that is not a regional indicator pair falls back to the plain label.
func DisplayFor(opt model.DropdownOption) model.Display {
	display := model.Display{Label: opt.Label, Selected: true}
	if opt.Flag == "" {
		return display
	}
	url, err := FlagImageURL(opt.Flag)
	if err != nil {
		return display
	}
	display.Flag = opt.Flag
	display.FlagURL = url
	return display
}

// FlagImageURL composes the emoji image URL of a flag glyph from its first
// two code points, e.g. U+1F1FA U+1F1F8 -> .../1f1fa-1f1f8.svg.
func FlagImageURL(flag string) (string, error) {
	runes := []rune(strings.TrimSpace(flag))
	if len(runes) < 2 {
		return "", fmt.Errorf("%w: %q", ErrNotFlag, flag)
	}
	return fmt.Sprintf("%s%x-%x.svg", EmojiBaseURL, runes[0], runes[1]), nil
}

// AriaSelected returns the aria-selected value for option i of d.
func AriaSelected(d *model.Dropdown, i int) string {
	if d != nil && d.Active == i && d.Value != "" {
		return "true"
	}
	return ""
}

func indexOf(options []model.DropdownOption, value string) int {
	for i, opt := range options {
		if opt.Value == value {
			return i
		}
	}
	return -1
}
