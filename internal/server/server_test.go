package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/internal/config"
	"github.com/goliatone/go-contactform/internal/server"
	"github.com/goliatone/go-contactform/pkg/controller"
	"github.com/goliatone/go-contactform/pkg/orchestrator"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/submit"
	"github.com/goliatone/go-contactform/pkg/testsupport"
)

func newServer(t *testing.T, options ...server.Option) *server.Server {
	t.Helper()
	cfg := config.DefaultConfig().Server
	s, err := server.New(context.Background(), cfg, options...)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return s
}

func do(t *testing.T, h http.Handler, req *http.Request) (*http.Response, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	res := rec.Result()
	body, _ := io.ReadAll(res.Body)
	return res, string(body)
}

func validForm() url.Values {
	return url.Values{
		"name":         {"Ada Lovelace"},
		"email":        {"ada@example.com"},
		"country_code": {"+44"},
		"phone":        {"(020) 7946-0000"},
		"services[]":   {"web-design", "seo"},
		"project":      {"A new marketing site for our studio."},
		"budget":       {"5k-10k"},
		"source":       {"referral"},
	}
}

func postForm(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, server.ContactPath, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestShowForm(t *testing.T) {
	h := newServer(t).Handler()

	res, body := do(t, h, httptest.NewRequest(http.MethodGet, server.ContactPath, nil))
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if got := res.Header.Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type %q", got)
	}
	testsupport.MustContain(t, body, `<form id="contact"`, `action="/contact"`, `data-placeholder="Select an option"`)

	res, _ = do(t, h, httptest.NewRequest(http.MethodGet, server.ContactPath+"?form=missing", nil))
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown form, got %d", res.StatusCode)
	}
}

func TestSubmitForm(t *testing.T) {
	h := newServer(t).Handler()

	res, body := do(t, h, postForm(validForm()))
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d\n%s", res.StatusCode, body)
	}
	testsupport.MustContain(t, body, "Success! Your message has been sent.", `data-reset-after="2000"`)

	invalid := validForm()
	invalid.Del("services[]")
	invalid.Set("email", "nope")
	res, body = do(t, h, postForm(invalid))
	if res.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", res.StatusCode)
	}
	testsupport.MustContain(t, body, "is-invalid", "Please fix 2 errors below to submit the form.")

	req := postForm(invalid)
	req.Header.Set("HX-Request", "true")
	_, body = do(t, h, req)
	testsupport.MustNotContain(t, body, "<form")

	_, metrics := do(t, h, httptest.NewRequest(http.MethodGet, server.MetricsPath, nil))
	testsupport.MustContain(t, metrics,
		"contactform_submissions_total 1",
		`contactform_validation_passes_total{outcome="invalid"} 2`,
		`contactform_http_requests_total{code="422",handler="contact_submit",method="post"} 2`,
	)
}

func TestSubmitJSON(t *testing.T) {
	h := newServer(t).Handler()

	body := `{"name":"Ada Lovelace","email":"ada@example.com","country_code":"+1","phone":"555 123 4567",` +
		`"services":["branding"],"project":"Rebrand for the spring launch.","budget":"under-5k","source":"google"}`
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, out := do(t, h, req)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d\n%s", res.StatusCode, out)
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded["valid"] != true || decoded["submission_id"] == "" {
		t.Fatalf("unexpected response %s", out)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(`{"name":"A"}`))
	res, out = do(t, h, req)
	if res.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", res.StatusCode)
	}
	testsupport.MustContain(t, out, `"valid":false`, `"summary":"Please fix 8 errors below to submit the form."`)
}

func TestSubmitJSON_ContractViolation(t *testing.T) {
	h := newServer(t).Handler()

	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(`{"name":5,"extra":true}`))
	res, out := do(t, h, req)
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
	var decoded struct {
		Error  string              `json:"error"`
		Issues map[string][]string `json:"issues"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded.Issues["name"]) == 0 || len(decoded.Issues["form"]) == 0 {
		t.Fatalf("expected name and form level issues, got %v", decoded.Issues)
	}
}

type failingBody struct{}

func (failingBody) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestSubmitJSON_BodyReadErrors(t *testing.T) {
	h := newServer(t).Handler()

	oversized := `{"project":"` + strings.Repeat("x", 65<<10) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(oversized))
	res, out := do(t, h, req)
	if res.StatusCode != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d\n%s", res.StatusCode, out)
	}
	testsupport.MustContain(t, out, "request body too large")

	req = httptest.NewRequest(http.MethodPost, "/api/contact", failingBody{})
	res, out = do(t, h, req)
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d\n%s", res.StatusCode, out)
	}
	testsupport.MustContain(t, out, "unreadable request body")
}

func TestSubmitterFailureIsUnavailable(t *testing.T) {
	failing := submit.SubmitterFunc(func(context.Context, submit.Record) error {
		return errors.New("smtp down")
	})
	h := newServer(t, server.WithOrchestrator(orchestrator.New(
		orchestrator.WithControllerOptions(controller.WithSubmitter(failing)),
	))).Handler()

	res, body := do(t, h, postForm(validForm()))
	if res.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", res.StatusCode)
	}
	testsupport.MustContain(t, body, render.DeliveryFailure)
}

func TestAuxiliaryRoutes(t *testing.T) {
	h := newServer(t).Handler()

	res, body := do(t, h, httptest.NewRequest(http.MethodGet, "/api/country-codes?q=44&limit=1", nil))
	if res.StatusCode != http.StatusOK {
		t.Fatalf("country codes: expected 200, got %d", res.StatusCode)
	}
	var codes struct {
		Data []struct {
			Value string `json:"value"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(body), &codes); err != nil {
		t.Fatalf("decode codes: %v", err)
	}
	if diff := cmp.Diff("+44", firstValue(codes.Data)); diff != "" {
		t.Fatalf("first code mismatch (-want +got):\n%s", diff)
	}

	res, body = do(t, h, httptest.NewRequest(http.MethodGet, server.OpenAPIPath, nil))
	if res.StatusCode != http.StatusOK || !strings.Contains(body, `"submitContact"`) {
		t.Fatalf("openapi: unexpected response %d", res.StatusCode)
	}

	_, body = do(t, h, httptest.NewRequest(http.MethodGet, server.HealthPath, nil))
	if body != "ok\n" {
		t.Fatalf("health: unexpected body %q", body)
	}

	preflight := httptest.NewRequest(http.MethodOptions, "/api/contact", nil)
	preflight.Header.Set("Origin", "https://example.com")
	preflight.Header.Set("Access-Control-Request-Method", http.MethodPost)
	res, _ = do(t, h, preflight)
	if got := res.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard CORS origin, got %q", got)
	}
}

func firstValue(data []struct {
	Value string `json:"value"`
}) string {
	if len(data) == 0 {
		return ""
	}
	return data[0].Value
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s := newServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	res, err := http.Get("http://" + ln.Addr().String() + server.HealthPath)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	res.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
