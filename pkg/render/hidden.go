package render

import (
	"sort"
	"strings"
)

// HiddenField is a hidden input emitted with the form.
type HiddenField struct {
	Name  string
	Value string
}

// HiddenFields lists the backing input of every dropdown in snap, in
// declaration order, followed by extras sorted by name. An extra never
// shadows a dropdown input.
func HiddenFields(snap Snapshot, extras map[string]string) []HiddenField {
	var out []HiddenField
	seen := make(map[string]struct{})
	for _, c := range snap.Controls {
		if c.Dropdown == nil {
			continue
		}
		seen[c.Name] = struct{}{}
		out = append(out, HiddenField{Name: c.Name, Value: c.Dropdown.Value})
	}
	for _, field := range SortedHiddenFields(extras) {
		if _, clash := seen[field.Name]; clash {
			continue
		}
		out = append(out, field)
	}
	return out
}

// SortedHiddenFields sorts extra hidden fields for deterministic rendering.
// Blank names are dropped.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		if strings.TrimSpace(name) != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{Name: strings.TrimSpace(name), Value: fields[name]})
	}
	return result
}
