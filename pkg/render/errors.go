package render

import (
	"sort"
	"strings"

	"github.com/goliatone/go-contactform/pkg/model"
)

// ErrorMapping splits an error payload into control-level and form-level
// messages. Control keys are the bound control names.
type ErrorMapping struct {
	Controls map[string][]string
	Form     []string
}

// Empty reports whether the mapping carries no message at all.
func (m ErrorMapping) Empty() bool {
	return len(m.Controls) == 0 && len(m.Form) == 0
}

// MergeFormErrors concatenates and normalises form-level messages, trimming
// whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload maps a remote error payload onto the controls of form.
// Keys may be plain names ("email"), JSON pointers ("/body/email"), dotted
// paths ("data.email") or bracketed names ("services[]"). Unknown keys are
// kept as form-level messages so nothing is lost.
func MapErrorPayload(form *model.Form, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Controls: make(map[string][]string)}
	if len(payload) == 0 {
		mapping.Controls = nil
		return mapping
	}

	// iterate in declaration order so form-level leftovers are stable
	keys := sortedKeys(payload)
	handled := make(map[string]struct{}, len(payload))
	for _, name := range form.Order() {
		for _, rawKey := range keys {
			if _, done := handled[rawKey]; done {
				continue
			}
			if resolveControl(rawKey, form) != name {
				continue
			}
			handled[rawKey] = struct{}{}
			if normalized := normalizeMessages(payload[rawKey]); len(normalized) > 0 {
				mapping.Controls[name] = append(mapping.Controls[name], normalized...)
			}
		}
	}
	for _, rawKey := range keys {
		if _, done := handled[rawKey]; done {
			continue
		}
		mapping.Form = append(mapping.Form, payload[rawKey]...)
	}

	if len(mapping.Controls) == 0 {
		mapping.Controls = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func resolveControl(raw string, form *model.Form) string {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) {
		return ""
	}
	segments := dropWrapperSegments(parsePathSegments(trimmed))
	for i := len(segments) - 1; i >= 0; i-- {
		if _, ok := form.Lookup(segments[i]); ok {
			return segments[i]
		}
	}
	return ""
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	clean = strings.TrimPrefix(clean, "#/")
	clean = strings.TrimPrefix(clean, "$.")
	clean = strings.TrimLeft(clean, "#/.$")

	replacer := strings.NewReplacer("[]", "", "[", ".", "]", "")
	clean = strings.Trim(replacer.Replace(clean), "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	out := segments
	for len(out) > 0 {
		switch strings.ToLower(out[0]) {
		case "body", "request", "payload", "data", "attributes":
			out = out[1:]
			continue
		}
		break
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}

func sortedKeys(payload map[string][]string) []string {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
