package submit_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/goliatone/go-contactform/pkg/submit"
	"github.com/goliatone/go-contactform/pkg/testsupport"
)

func TestFromFormKeepsDeclarationOrder(t *testing.T) {
	form := testsupport.ContactForm(t)
	testsupport.FillValid(t, form)
	form.Fill(map[string][]string{"services": {"web-design", "seo"}})

	rec := submit.FromForm(form)

	wantKeys := []string{"name", "email", "country_code", "phone", "services", "project", "budget", "source"}
	if diff := cmp.Diff(wantKeys, rec.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if _, err := uuid.Parse(rec.ID); err != nil {
		t.Fatalf("expected uuid id, got %q: %v", rec.ID, err)
	}

	services, ok := rec.Get("services")
	if !ok || !services.Multi {
		t.Fatalf("expected multi services entry, got %+v", services)
	}
	budget, _ := rec.Get("budget")
	if budget.Multi || budget.Value() != "5k-10k" {
		t.Fatalf("expected single budget value, got %+v", budget)
	}
}

func TestRecordJSONShape(t *testing.T) {
	form := testsupport.ContactForm(t)
	testsupport.FillValid(t, form)

	body, err := json.Marshal(submit.FromForm(form))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.HasPrefix(string(body), `{"name":"Ada Lovelace","email":`) {
		t.Fatalf("expected ordered keys, got %s", body)
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := map[string]any{
		"name":         "Ada Lovelace",
		"email":        "ada@example.com",
		"country_code": "+44",
		"phone":        "(020) 7946-0000",
		"services":     []any{"web-design"},
		"project":      "A new marketing site for our studio.",
		"budget":       "5k-10k",
		"source":       "referral",
	}
	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Fatalf("decoded mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordFormEncodeAndPretty(t *testing.T) {
	rec := submit.Record{Entries: []submit.Entry{
		{Key: "name", Values: []string{"Ada"}},
		{Key: "services", Values: []string{"a", "b"}, Multi: true},
	}}

	if got := rec.FormEncode(); got != "name=Ada&services%5B%5D=a&services%5B%5D=b" {
		t.Fatalf("unexpected form encoding %q", got)
	}
	if got := rec.Pretty(); got != "name=Ada\nservices[0]=a\nservices[1]=b\n" {
		t.Fatalf("unexpected pretty output %q", got)
	}
}

func TestLogSubmitterWritesRecord(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)

	rec := submit.Record{ID: "abc", Entries: []submit.Entry{{Key: "name", Values: []string{"Ada"}}}}
	if err := submit.NewLogSubmitter(logger).Submit(context.Background(), rec); err != nil {
		t.Fatalf("submit: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "form data") || !strings.Contains(out, "abc") {
		t.Fatalf("expected record in log output, got %q", out)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := submit.NewLogSubmitter(nil).Submit(ctx, rec); err == nil {
		t.Fatal("expected cancelled context to fail")
	}
}
