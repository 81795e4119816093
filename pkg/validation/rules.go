package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf16"
)

// ws is the broad whitespace class used by trimming and by the patterns:
// ASCII whitespace, vertical tab, Unicode space separators, BOM and the
// line/paragraph separators.
const ws = `\s\x0B\p{Zs}\x{FEFF}\x{2028}\x{2029}`

var (
	emailPattern = regexp.MustCompile(`^[^` + ws + `@]+@[^` + ws + `@]+\.[^` + ws + `@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9` + ws + `\-()]+$`)
)

// PhoneMinLength is the shortest accepted phone number.
const PhoneMinLength = 6

// Verdict is the outcome of one predicate. Summary feeds the ordered error
// list and Inline is shown next to the control (empty for dropdowns).
type Verdict struct {
	Valid   bool
	Summary string
	Inline  string
}

// Messages carries the texts a rule reports for its two failure modes.
type Messages struct {
	Required       string `json:"required,omitempty" yaml:"required,omitempty"`
	RequiredInline string `json:"required_inline,omitempty" yaml:"required_inline,omitempty"`
	Invalid        string `json:"invalid,omitempty" yaml:"invalid,omitempty"`
	InvalidInline  string `json:"invalid_inline,omitempty" yaml:"invalid_inline,omitempty"`
}

func pass() Verdict { return Verdict{Valid: true} }

func (m Messages) required() Verdict {
	return Verdict{Summary: m.Required, Inline: m.RequiredInline}
}

func (m Messages) invalid() Verdict {
	return Verdict{Summary: m.Invalid, Inline: m.InvalidInline}
}

// Trim strips leading and trailing whitespace using the broad class.
func Trim(value string) string {
	return strings.TrimFunc(value, isSpace)
}

// isSpace matches the ws class. U+0085 (NEL) is not whitespace here.
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\uFEFF', '\u2028', '\u2029':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

// Length counts UTF-16 code units, so a character outside the BMP counts
// twice.
func Length(value string) int {
	return len(utf16.Encode([]rune(value)))
}

// MatchesEmail reports whether value has the loose local@domain.tld shape.
func MatchesEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// MatchesPhone reports whether value only holds digits, whitespace, hyphens
// and parentheses and is at least PhoneMinLength long.
func MatchesPhone(value string) bool {
	return phonePattern.MatchString(value) && Length(value) >= PhoneMinLength
}

// Required fails when the trimmed value is empty.
func Required(value string, msgs Messages) Verdict {
	if Trim(value) == "" {
		return msgs.required()
	}
	return pass()
}

// MinLength fails when the trimmed value is empty or shorter than min.
// Name-like fields use min 2 and long text fields use min 10.
func MinLength(value string, min int, msgs Messages) Verdict {
	trimmed := Trim(value)
	if trimmed == "" {
		return msgs.required()
	}
	if Length(trimmed) < min {
		return msgs.invalid()
	}
	return pass()
}

// Email fails when empty or when the trimmed value does not match the
// email pattern.
func Email(value string, msgs Messages) Verdict {
	trimmed := Trim(value)
	if trimmed == "" {
		return msgs.required()
	}
	if !MatchesEmail(trimmed) {
		return msgs.invalid()
	}
	return pass()
}

// Phone fails when empty, when the trimmed value contains characters outside
// digits, whitespace, hyphens and parentheses, or when it is too short.
func Phone(value string, msgs Messages) Verdict {
	trimmed := Trim(value)
	if trimmed == "" {
		return msgs.required()
	}
	if !MatchesPhone(trimmed) {
		return msgs.invalid()
	}
	return pass()
}

// AtLeastOne fails when no member of a checkbox group is checked.
func AtLeastOne(checked int, msgs Messages) Verdict {
	if checked == 0 {
		return msgs.required()
	}
	return pass()
}

// Selected fails when no member of a radio group is selected. Multiple
// selection is prevented by the control type and not checked here.
func Selected(selected int, msgs Messages) Verdict {
	if selected == 0 {
		return msgs.required()
	}
	return pass()
}

// HiddenValue fails when a dropdown's backing value is absent or empty. The
// value is not trimmed.
func HiddenValue(value string, present bool, msgs Messages) Verdict {
	if !present || value == "" {
		return msgs.required()
	}
	return pass()
}
