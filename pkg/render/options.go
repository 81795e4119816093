package render

// RenderOptions describe per-request data renderers can use without touching
// the snapshot.
type RenderOptions struct {
	// Action is the form action URL; renderers default to the current page.
	Action string
	// Hidden carries extra hidden inputs (CSRF tokens and the like) keyed by
	// input name.
	Hidden map[string]string
	// Fragment asks renderers that support it to emit only the feedback
	// chrome (banner and error list) instead of the full form.
	Fragment bool
}
