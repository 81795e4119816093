package validation_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/validation"
)

var msgs = validation.Messages{
	Required:       "required",
	RequiredInline: "required inline",
	Invalid:        "invalid",
	InvalidInline:  "invalid inline",
}

func TestRequiredRulesRejectBlankValues(t *testing.T) {
	blanks := []string{"", "   ", "\t\n", "\u00a0\u3000"}
	rules := map[string]func(string) validation.Verdict{
		"required": func(v string) validation.Verdict { return validation.Required(v, msgs) },
		"name":     func(v string) validation.Verdict { return validation.MinLength(v, 2, msgs) },
		"email":    func(v string) validation.Verdict { return validation.Email(v, msgs) },
		"phone":    func(v string) validation.Verdict { return validation.Phone(v, msgs) },
		"project":  func(v string) validation.Verdict { return validation.MinLength(v, 10, msgs) },
	}

	want := validation.Verdict{Summary: "required", Inline: "required inline"}
	for name, rule := range rules {
		for _, blank := range blanks {
			if diff := cmp.Diff(want, rule(blank)); diff != "" {
				t.Fatalf("%s(%q) mismatch (-want +got):\n%s", name, blank, diff)
			}
		}
	}
}

func TestEmail(t *testing.T) {
	cases := map[string]bool{
		"a@b.c":           true,
		"  a@b.c  ":       true,
		"ada@example.com": true,
		"a.b@c.d.e":       true,
		"a@b":             false,
		"a b@c.d":         false,
		"a@b@c.d":         false,
		"a@.c":            false,
		"a@b.":            false,
		"@b.c":            false,
		"a@b\u00a0x.c":    false,
	}
	for input, valid := range cases {
		got := validation.Email(input, msgs)
		if got.Valid != valid {
			t.Fatalf("Email(%q) valid=%v, want %v", input, got.Valid, valid)
		}
		if !valid && strings.TrimSpace(input) != "" && got.Summary != "invalid" {
			t.Fatalf("Email(%q) summary=%q, want invalid message", input, got.Summary)
		}
	}
}

func TestPhone(t *testing.T) {
	cases := map[string]bool{
		"123-4567":        true,
		"(020) 7946-0000": true,
		"123456":          true,
		"12345":           false,
		"12":              false,
		"abc-1234":        false,
		"+44 20 7946":     false,
		"  123456  ":      true,
		"123456\u0085":    false,
		"\u0085123456":    false,
	}
	for input, valid := range cases {
		if got := validation.Phone(input, msgs); got.Valid != valid {
			t.Fatalf("Phone(%q) valid=%v, want %v", input, got.Valid, valid)
		}
	}
}

func TestMinLengthBoundaries(t *testing.T) {
	if got := validation.MinLength("Al", 2, msgs); !got.Valid {
		t.Fatalf("expected two characters to pass, got %+v", got)
	}
	got := validation.MinLength("A", 2, msgs)
	want := validation.Verdict{Summary: "invalid", Inline: "invalid inline"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("single character mismatch (-want +got):\n%s", diff)
	}

	if got := validation.MinLength("0123456789", 10, msgs); !got.Valid {
		t.Fatalf("expected ten characters to pass, got %+v", got)
	}
	if got := validation.MinLength("012345678", 10, msgs); got.Valid {
		t.Fatal("expected nine characters to fail")
	}
	if got := validation.MinLength("  012345678  ", 10, msgs); got.Valid {
		t.Fatal("expected surrounding whitespace not to count")
	}
	if got := validation.MinLength("\u00e9\u00e9", 2, msgs); !got.Valid {
		t.Fatal("expected two BMP characters to pass")
	}
	if got := validation.MinLength("\U0001F600", 2, msgs); !got.Valid {
		t.Fatal("expected an astral character to count as two units")
	}
	if got := validation.MinLength(strings.Repeat("\U0001F600", 5), 10, msgs); !got.Valid {
		t.Fatal("expected five astral characters to reach ten units")
	}
	if got := validation.MinLength("A\u0085", 2, msgs); !got.Valid {
		t.Fatal("expected NEL to be kept by trimming")
	}
}

func TestLengthAndTrim(t *testing.T) {
	cases := map[string]int{
		"":             0,
		"abc":          3,
		"\u00e9":       1,
		"\U0001F600":   2,
		"a\U0001F600b": 4,
	}
	for input, want := range cases {
		if got := validation.Length(input); got != want {
			t.Fatalf("Length(%q) = %d, want %d", input, got, want)
		}
	}
	if got := validation.Trim("\u00a0\ufeff x \u2028\u3000"); got != "x" {
		t.Fatalf("Trim dropped too little: %q", got)
	}
	if got := validation.Trim("\u0085x\u0085"); got != "\u0085x\u0085" {
		t.Fatalf("Trim removed NEL: %q", got)
	}
}

func TestGroupAndHiddenValueRules(t *testing.T) {
	if got := validation.AtLeastOne(0, msgs); got.Valid {
		t.Fatal("expected empty checkbox group to fail")
	}
	if got := validation.AtLeastOne(2, msgs); !got.Valid {
		t.Fatal("expected checked group to pass")
	}
	if got := validation.Selected(0, msgs); got.Valid {
		t.Fatal("expected unselected radio group to fail")
	}
	if got := validation.Selected(1, msgs); !got.Valid {
		t.Fatal("expected selected radio group to pass")
	}
	if got := validation.HiddenValue("", true, msgs); got.Valid {
		t.Fatal("expected empty hidden value to fail")
	}
	if got := validation.HiddenValue("+1", false, msgs); got.Valid {
		t.Fatal("expected absent hidden value to fail")
	}
	if got := validation.HiddenValue(" ", true, msgs); !got.Valid {
		t.Fatal("expected hidden value not to be trimmed")
	}
}
