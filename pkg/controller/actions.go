package controller

// Action is a named user interaction dispatched to the controller.
type Action interface {
	actionName() string
}

// Submit runs a full validation pass and, when valid, hands the record to the
// submitter.
type Submit struct{}

// BlurField re-checks a single field with the generic per-kind rule.
type BlurField struct {
	Name string
}

// EditField replaces the value of a field and drops its invalid marking.
type EditField struct {
	Name  string
	Value string
}

// ToggleOption flips a checkbox option or selects a radio option.
type ToggleOption struct {
	Group string
	Value string
}

// ToggleDropdown opens the named dropdown (closing the others) or closes it
// when already open.
type ToggleDropdown struct {
	Name string
}

// SelectOption picks an option of a dropdown.
type SelectOption struct {
	Dropdown string
	Value    string
}

// CloseDropdowns collapses every dropdown (outside click or Escape).
type CloseDropdowns struct{}

// Reset clears values and markings immediately.
type Reset struct{}

// DismissBanner removes the banner.
type DismissBanner struct{}

func (Submit) actionName() string         { return "submit" }
func (BlurField) actionName() string      { return "blur_field" }
func (EditField) actionName() string      { return "edit_field" }
func (ToggleOption) actionName() string   { return "toggle_option" }
func (ToggleDropdown) actionName() string { return "toggle_dropdown" }
func (SelectOption) actionName() string   { return "select_option" }
func (CloseDropdowns) actionName() string { return "close_dropdowns" }
func (Reset) actionName() string          { return "reset" }
func (DismissBanner) actionName() string  { return "dismiss_banner" }

// ActionName returns the log name of an action.
func ActionName(a Action) string {
	if a == nil {
		return ""
	}
	return a.actionName()
}

// timer driven actions; generation guards against stale callbacks firing
// after the timer they belong to was superseded.
type resetDue struct{ generation uint64 }
type bannerDue struct{ generation uint64 }
type focusDue struct {
	generation uint64
	name       string
}

func (resetDue) actionName() string  { return "reset_due" }
func (bannerDue) actionName() string { return "banner_due" }
func (focusDue) actionName() string  { return "focus_due" }
