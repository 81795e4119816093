package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-contactform/pkg/contract"
	"github.com/goliatone/go-contactform/pkg/controller"
	"github.com/goliatone/go-contactform/pkg/orchestrator"
	"github.com/goliatone/go-contactform/pkg/submit"
)

func newValidateCmd(a *app) *cobra.Command {
	var (
		formID string
		format string
	)
	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate a JSON submission body offline",
		Long: `Validate a JSON submission body against the submission contract and
the form checks, then print the resulting form state.

Use - to read the body from stdin. The exit status is 1 when the
body is rejected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			out := cmd.OutOrStdout()

			body, err := readBody(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			c, err := contract.Load(ctx)
			if err != nil {
				return err
			}
			payload, err := c.DecodeSubmission(body)
			if err != nil {
				var bodyErr *contract.BodyError
				if !errors.As(err, &bodyErr) {
					return err
				}
				printIssues(out, bodyErr)
				return &ExitError{Code: 1}
			}

			registry, err := terminalRegistry(out)
			if err != nil {
				return err
			}
			// the submitter is a no-op: validate never delivers anything
			orch := a.orchestrator(
				orchestrator.WithRegistry(registry),
				orchestrator.WithControllerOptions(a.controllerOptions(
					controller.WithSubmitter(submit.SubmitterFunc(func(context.Context, submit.Record) error { return nil })),
				)...),
			)
			resp, err := orch.Generate(ctx, orchestrator.Request{
				FormID:   formID,
				Values:   contract.FormValues(payload),
				Submit:   true,
				Renderer: format,
			})
			if err != nil {
				return err
			}
			if _, err := out.Write(resp.Body); err != nil {
				return err
			}
			if !resp.Snapshot.Valid() {
				return &ExitError{Code: 1}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&formID, "form", "", "form id (default is form.form_id)")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output renderer: text, json or html")
	return cmd
}

func readBody(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	return body, nil
}

func printIssues(w io.Writer, bodyErr *contract.BodyError) {
	fmt.Fprintln(w, "submission does not match the contract:")
	keys := make([]string, 0, len(bodyErr.Issues))
	for key := range bodyErr.Issues {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		label := key
		if label == "" {
			label = "(body)"
		}
		for _, msg := range bodyErr.Issues[key] {
			fmt.Fprintf(w, "  %s: %s\n", label, msg)
		}
	}
}
