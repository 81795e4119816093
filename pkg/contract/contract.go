// Package contract carries the OpenAPI document of the JSON submission
// endpoint and checks request bodies against it before they reach the
// validation pass.
package contract

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// SubmitPath is the route of the JSON submission operation.
const SubmitPath = "/api/contact"

const submissionSchema = "Submission"

//go:embed openapi.yaml
var rawDocument []byte

// ErrInvalidBody marks a request body that does not match the submission
// schema. Such bodies never reach the validation pass.
var ErrInvalidBody = errors.New("contract: body does not match the submission schema")

// BodyError lists schema violations keyed by the JSON pointer of the
// offending property. Violations of the document as a whole use the empty key.
type BodyError struct {
	Issues map[string][]string
}

func (e *BodyError) Error() string {
	keys := make([]string, 0, len(e.Issues))
	for key := range e.Issues {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		label := key
		if label == "" {
			label = "body"
		}
		parts = append(parts, label+": "+strings.Join(e.Issues[key], "; "))
	}
	return fmt.Sprintf("%s: %s", ErrInvalidBody, strings.Join(parts, ", "))
}

func (e *BodyError) Unwrap() error {
	return ErrInvalidBody
}

// Contract is a loaded and validated OpenAPI document.
type Contract struct {
	doc  *openapi3.T
	body *openapi3.Schema
}

// Raw returns the embedded document source.
func Raw() []byte {
	return bytes.Clone(rawDocument)
}

// Load parses and validates the embedded document.
func Load(ctx context.Context) (*Contract, error) {
	return LoadFromData(ctx, rawDocument)
}

// LoadFromData parses and validates an OpenAPI document that defines a
// Submission schema.
func LoadFromData(ctx context.Context, raw []byte) (*Contract, error) {
	if len(raw) == 0 {
		return nil, errors.New("contract: document payload is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("contract: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("contract: validate document: %w", err)
	}
	if doc.Components == nil {
		return nil, errors.New("contract: document has no components")
	}
	ref, ok := doc.Components.Schemas[submissionSchema]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("contract: schema %q not found", submissionSchema)
	}
	return &Contract{doc: doc, body: ref.Value}, nil
}

// Document exposes the parsed document.
func (c *Contract) Document() *openapi3.T {
	return c.doc
}

// JSON serialises the document for the /openapi.json route.
func (c *Contract) JSON() ([]byte, error) {
	return c.doc.MarshalJSON()
}

// DecodeSubmission parses body and checks it against the submission schema.
// Every violation is reported, not just the first.
func (c *Contract) DecodeSubmission(body []byte) (map[string]any, error) {
	var payload any
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&payload); err != nil {
		return nil, &BodyError{Issues: map[string][]string{"": {"malformed JSON: " + err.Error()}}}
	}
	if err := c.body.VisitJSON(payload, openapi3.MultiErrors()); err != nil {
		return nil, bodyError(err)
	}
	object, ok := payload.(map[string]any)
	if !ok {
		return nil, &BodyError{Issues: map[string][]string{"": {"value must be an object"}}}
	}
	return object, nil
}

func bodyError(err error) *BodyError {
	out := &BodyError{Issues: make(map[string][]string)}
	var walk func(error)
	walk = func(err error) {
		switch typed := err.(type) {
		case openapi3.MultiError:
			for _, inner := range typed {
				walk(inner)
			}
		case *openapi3.SchemaError:
			pointer := strings.Join(typed.JSONPointer(), "/")
			if pointer != "" {
				pointer = "/" + pointer
			}
			out.Issues[pointer] = append(out.Issues[pointer], typed.Reason)
		default:
			out.Issues[""] = append(out.Issues[""], err.Error())
		}
	}
	walk(err)
	return out
}

// FormValues flattens a decoded submission into posted form values.
func FormValues(payload map[string]any) map[string][]string {
	out := make(map[string][]string, len(payload))
	for key, raw := range payload {
		switch typed := raw.(type) {
		case string:
			out[key] = []string{typed}
		case []any:
			values := make([]string, 0, len(typed))
			for _, item := range typed {
				if s, ok := item.(string); ok {
					values = append(values, s)
				}
			}
			out[key] = values
		case nil:
			out[key] = nil
		default:
			out[key] = []string{fmt.Sprint(typed)}
		}
	}
	return out
}
