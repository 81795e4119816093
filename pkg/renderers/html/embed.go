package html

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// Template paths inside TemplatesFS.
const (
	FormTemplate     = "templates/form.tmpl"
	FeedbackTemplate = "templates/feedback.tmpl"
)

// TemplatesFS exposes the embedded template bundle so callers can copy and
// customise it.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
