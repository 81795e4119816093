package orchestrator

import (
	"context"
	"fmt"

	"github.com/goliatone/go-contactform/pkg/model"
)

// Transformer mutates a freshly built form before request values are bound,
// for example to seed defaults or trim options.
type Transformer interface {
	Transform(ctx context.Context, form *model.Form) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, form *model.Form) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, form *model.Form) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, form)
}

// Chain runs transformers in order and stops at the first error.
func Chain(transformers ...Transformer) Transformer {
	return TransformerFunc(func(ctx context.Context, form *model.Form) error {
		for i, t := range transformers {
			if t == nil {
				continue
			}
			if err := t.Transform(ctx, form); err != nil {
				return fmt.Errorf("transformer %d: %w", i, err)
			}
		}
		return nil
	})
}

// Prefill returns a transformer that assigns values to the bound controls
// the same way a posted form would.
func Prefill(values map[string][]string) Transformer {
	return TransformerFunc(func(_ context.Context, form *model.Form) error {
		form.Fill(values)
		return nil
	})
}
