package testsupport

import (
	"context"
	"strings"
	"testing"
)

// Context returns the context used by renderer and controller tests.
func Context() context.Context {
	return context.Background()
}

// MustContain fails the test when output lacks any of the fragments.
func MustContain(t testing.TB, output string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(output, fragment) {
			t.Fatalf("expected output to contain %q\noutput:\n%s", fragment, output)
		}
	}
}

// MustNotContain fails the test when output holds any of the fragments.
func MustNotContain(t testing.TB, output string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if strings.Contains(output, fragment) {
			t.Fatalf("expected output to omit %q\noutput:\n%s", fragment, output)
		}
	}
}
