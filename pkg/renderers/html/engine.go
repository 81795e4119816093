package html

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
)

var (
	filtersOnce      sync.Once
	markupPolicy     *bluemonday.Policy
	markupPolicyOnce sync.Once
)

// engine is a pongo2 template set over an fs.FS with a per-path cache.
type engine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
}

func newEngine(files fs.FS) (*engine, error) {
	if files == nil {
		return nil, errors.New("html: template filesystem is required")
	}
	registerFilters()
	return &engine{
		set:       pongo2.NewSet("contactform", pongo2.NewFSLoader(files)),
		templates: make(map[string]*pongo2.Template),
	}, nil
}

func (e *engine) render(path string, data pongo2.Context) ([]byte, error) {
	tmpl, err := e.template(path)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(data, &buf); err != nil {
		return nil, fmt.Errorf("html: execute template %q: %w", path, err)
	}
	return buf.Bytes(), nil
}

func (e *engine) template(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[path]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("html: load template %q: %w", path, err)
	}
	e.templates[path] = tmpl
	return tmpl, nil
}

func registerFilters() {
	filtersOnce.Do(func() {
		if !pongo2.FilterExists("sanitize") {
			_ = pongo2.RegisterFilter("sanitize", filterSanitize)
		}
	})
}

// filterSanitize lets labels and messages from form definitions carry a
// small set of inline markup while stripping everything else.
func filterSanitize(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsSafeValue(SanitizeMarkup(in.String())), nil
}

// SanitizeMarkup keeps inline formatting and links and drops any other
// markup from s.
func SanitizeMarkup(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(inlinePolicy().Sanitize(trimmed))
}

func inlinePolicy() *bluemonday.Policy {
	markupPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("strong", "em", "b", "i", "br", "span")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowElements("a")
		policy.RequireNoFollowOnLinks(true)
		policy.AllowStandardURLs()
		policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("span", "i")
		markupPolicy = policy
	})
	return markupPolicy
}
