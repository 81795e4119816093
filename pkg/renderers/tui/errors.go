package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C) or declined
	// to submit.
	ErrAborted = errors.New("tui: aborted")
	// ErrTooManyAttempts is returned when the form is still invalid after the
	// configured number of submit attempts.
	ErrTooManyAttempts = errors.New("tui: too many attempts")
)
