// Package definition loads form definitions (controls, options and the
// validation plan) from JSON or YAML files and builds bound model.Form values
// from them. The embedded "contact" definition describes the default contact
// form.
package definition
