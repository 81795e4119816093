// Package controller maps named user actions (submit, blur, edit, option
// toggles and dropdown interaction) to state transitions over a bound
// model.Form. Every transition produces a render.Snapshot handed to a View;
// deferred effects (focus after scroll, banner expiry, the post-submit reset)
// run through a Scheduler so tests can drive them deterministically.
package controller
