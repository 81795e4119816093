package dropdown_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/dropdown"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/testsupport"
)

func TestToggleKeepsAtMostOneOpen(t *testing.T) {
	form := testsupport.ContactForm(t)
	set := dropdown.NewSet(form)
	country, _ := form.Dropdown("country_code")
	source, _ := form.Dropdown("source")

	set.Toggle(country)
	if !country.Open || source.Open {
		t.Fatalf("expected only country open, got country=%v source=%v", country.Open, source.Open)
	}

	set.Toggle(source)
	if country.Open || !source.Open {
		t.Fatalf("expected opening source to close country, got country=%v source=%v", country.Open, source.Open)
	}

	set.Toggle(source)
	if _, open := set.Open(); open {
		t.Fatal("expected toggling the open dropdown to close it")
	}

	set.Toggle(country)
	set.CloseAll()
	if country.Open || country.Expanded() != "false" {
		t.Fatal("expected close all to collapse every dropdown")
	}
}

func TestSelectWithFlag(t *testing.T) {
	form := testsupport.ContactForm(t)
	country, _ := form.Dropdown("country_code")
	country.Open = true

	if err := dropdown.Select(country, "+1"); err != nil {
		t.Fatalf("select: %v", err)
	}

	want := model.Display{
		Label:    "+1",
		Flag:     "\U0001F1FA\U0001F1F8",
		FlagURL:  "https://s.w.org/images/core/emoji/16.0.1/svg/1f1fa-1f1f8.svg",
		Selected: true,
	}
	if diff := cmp.Diff(want, country.Display); diff != "" {
		t.Fatalf("display mismatch (-want +got):\n%s", diff)
	}
	if country.Value != "+1" || country.Open {
		t.Fatalf("expected hidden value set and list closed, got value=%q open=%v", country.Value, country.Open)
	}
	if dropdown.AriaSelected(country, 0) != "true" || dropdown.AriaSelected(country, 1) != "" {
		t.Fatal("expected only the chosen option to be aria-selected")
	}
}

func TestSelectPlainAndUnknown(t *testing.T) {
	form := testsupport.ContactForm(t)
	source, _ := form.Dropdown("source")

	if err := dropdown.Select(source, "google"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if source.Display.Label != "Google" || source.Display.FlagURL != "" {
		t.Fatalf("unexpected display %+v", source.Display)
	}

	if err := dropdown.Select(source, "radio"); !errors.Is(err, dropdown.ErrUnknownOption) {
		t.Fatalf("expected ErrUnknownOption, got %v", err)
	}
	if source.Value != "google" {
		t.Fatalf("expected failed selection to keep value, got %q", source.Value)
	}
}

func TestFlagImageURL(t *testing.T) {
	url, err := dropdown.FlagImageURL("\U0001F1EC\U0001F1E7")
	if err != nil {
		t.Fatalf("flag url: %v", err)
	}
	if url != dropdown.EmojiBaseURL+"1f1ec-1f1e7.svg" {
		t.Fatalf("unexpected url %q", url)
	}

	if _, err := dropdown.FlagImageURL("X"); !errors.Is(err, dropdown.ErrNotFlag) {
		t.Fatalf("expected ErrNotFlag, got %v", err)
	}

	display := dropdown.DisplayFor(model.DropdownOption{Value: "x", Label: "X", Flag: "X"})
	if display.FlagURL != "" || display.Label != "X" {
		t.Fatalf("expected plain label fallback, got %+v", display)
	}
}

func TestSyncRestoresPlaceholder(t *testing.T) {
	form := testsupport.ContactForm(t)
	source, _ := form.Dropdown("source")

	source.Value = "referral"
	dropdown.Sync(source)
	if source.Display.Label != "Referral" {
		t.Fatalf("expected synced label, got %q", source.Display.Label)
	}

	source.Value = "unknown"
	dropdown.Sync(source)
	if source.Display.Label != "Select an option" {
		t.Fatalf("expected placeholder, got %q", source.Display.Label)
	}
}
