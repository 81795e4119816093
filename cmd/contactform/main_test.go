package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-contactform/pkg/submit"
	"github.com/goliatone/go-contactform/pkg/testsupport"
)

const validBody = `{"name":"Ada Lovelace","email":"ada@example.com","country_code":"+1","phone":"555 123 4567",` +
	`"services":["branding"],"project":"Rebrand for the spring launch.","budget":"under-5k","source":"google"}`

func execute(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(testsupport.Context(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeBody(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "body.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write body: %v", err)
	}
	return path
}

func TestValidateAcceptsValidBody(t *testing.T) {
	code, out, errOut := execute(t, "", "validate", writeBody(t, validBody))
	if code != 0 {
		t.Fatalf("expected exit 0, got %d\nstdout: %s\nstderr: %s", code, out, errOut)
	}
	testsupport.MustContain(t, out, "contact (confirmed)", "record ", "name=Ada Lovelace", "services[0]=branding")
}

func TestValidateReportsInvalidFields(t *testing.T) {
	code, out, _ := execute(t, `{"name":"A"}`, "validate", "-")
	if code != 1 {
		t.Fatalf("expected exit 1, got %d\n%s", code, out)
	}
	testsupport.MustContain(t, out, "contact (errors_shown)", "Please fix 8 errors below to submit the form.")
	testsupport.MustNotContain(t, out, "record ")
}

func TestValidateReportsContractViolations(t *testing.T) {
	code, out, _ := execute(t, `{"name":5,"extra":true}`, "validate", "-")
	if code != 1 {
		t.Fatalf("expected exit 1, got %d\n%s", code, out)
	}
	testsupport.MustContain(t, out, "submission does not match the contract:", "/name:")
}

func TestValidateJSONFormat(t *testing.T) {
	code, out, _ := execute(t, validBody, "validate", "--format", "json", "-")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d\n%s", code, out)
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if decoded["valid"] != true {
		t.Fatalf("expected valid response, got %s", out)
	}
}

func TestValidateMissingFile(t *testing.T) {
	code, _, errOut := execute(t, "", "validate", filepath.Join(t.TempDir(), "missing.json"))
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	testsupport.MustContain(t, errOut, "Error:", "missing.json")
}

func TestDefinitionPrintsEffectiveDefinition(t *testing.T) {
	code, out, errOut := execute(t, "", "definition")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, errOut)
	}
	testsupport.MustContain(t, out, "id: contact", "name: email", "checks:")

	code, out, _ = execute(t, "", "definition", "--format", "json")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	var def struct {
		ID       string           `json:"id"`
		Controls []map[string]any `json:"controls"`
	}
	if err := json.Unmarshal([]byte(out), &def); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if def.ID != "contact" || len(def.Controls) != 8 {
		t.Fatalf("unexpected definition %+v", def)
	}

	code, out, _ = execute(t, "", "definition", "--list")
	if code != 0 || strings.TrimSpace(out) != "contact" {
		t.Fatalf("expected contact in list, got %d %q", code, out)
	}
}

func TestUnknownFormFails(t *testing.T) {
	code, _, errOut := execute(t, "", "definition", "--form", "newsletter")
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	testsupport.MustContain(t, errOut, "newsletter")
}

func TestConfigFileMustExist(t *testing.T) {
	code, _, errOut := execute(t, "", "--config", filepath.Join(t.TempDir(), "nope.yaml"), "definition")
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	testsupport.MustContain(t, errOut, "config: file not found")
}

func TestWriteRecordFormats(t *testing.T) {
	rec := submit.Record{Entries: []submit.Entry{{Key: "name", Values: []string{"Ada"}}}}

	var buf bytes.Buffer
	if err := writeRecord(&buf, rec, outputForm); err != nil {
		t.Fatalf("form: %v", err)
	}
	if got := buf.String(); got != "name=Ada\n" {
		t.Fatalf("unexpected form output %q", got)
	}
	buf.Reset()
	if err := writeRecord(&buf, rec, outputJSON); err != nil {
		t.Fatalf("json: %v", err)
	}
	if got := buf.String(); got != "{\"name\":\"Ada\"}\n" {
		t.Fatalf("unexpected json output %q", got)
	}
	if err := writeRecord(&buf, rec, "xml"); err == nil {
		t.Fatal("expected unknown format error")
	}
}
