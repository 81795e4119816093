// Package model defines the bound control tree of a contact form: single-value
// fields, checkbox/radio groups and custom dropdowns backed by a hidden value.
// Controls are bound once when a form is built from its definition and passed
// around as handles, so validation and rendering never re-query a live page.
// Every control carries a three-state validity and the inline message shown
// next to it; the presentation class names mirror the markup layer
// (`is-valid`, `is-invalid`, `has-error`, `has-success`, `active`).
package model
