package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-contactform/pkg/controller"
	"github.com/goliatone/go-contactform/pkg/definition"
	"github.com/goliatone/go-contactform/pkg/renderers/text"
	"github.com/goliatone/go-contactform/pkg/renderers/tui"
	"github.com/goliatone/go-contactform/pkg/submit"
)

// Record output formats.
const (
	outputPretty = "pretty"
	outputJSON   = "json"
	outputForm   = "form"
)

func newFillCmd(a *app) *cobra.Command {
	var (
		formID   string
		output   string
		attempts int
	)
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill the form interactively and print the submitted record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := commandContext(cmd)
			out := cmd.OutOrStdout()

			def, err := a.orchestrator().Definition(formID)
			if err != nil {
				return err
			}
			form, plan, err := definition.Build(def, definition.WithCountryCodes(a.countries))
			if err != nil {
				return err
			}

			session, err := tui.New(form,
				tui.WithPromptDriver(tui.NewSurveyDriver(out)),
				tui.WithRenderer(text.New(text.WithColorOutput(out), text.WithoutTable())),
				tui.WithMaxAttempts(attempts),
				tui.WithLogger(a.logger),
				tui.WithControllerOptions(a.controllerOptions(
					controller.WithPlan(plan),
					controller.WithSubmitter(submit.NewLogSubmitter(a.logger)),
				)...),
			)
			if err != nil {
				return err
			}
			defer session.Close()

			snap, err := session.Run(ctx)
			switch {
			case errors.Is(err, tui.ErrAborted):
				return &ExitError{Code: 130}
			case err != nil:
				return err
			case snap.Record == nil:
				return errors.New("fill: submission produced no record")
			}
			return writeRecord(out, *snap.Record, output)
		},
	}
	cmd.Flags().StringVar(&formID, "form", "", "form id (default is form.form_id)")
	cmd.Flags().StringVarP(&output, "output", "o", outputPretty, "record format: pretty, json or form")
	cmd.Flags().IntVar(&attempts, "max-attempts", 0, "stop after this many invalid passes (0 is unlimited)")
	return cmd
}

func writeRecord(w io.Writer, rec submit.Record, format string) error {
	switch format {
	case outputPretty, "":
		_, err := io.WriteString(w, rec.Pretty())
		return err
	case outputJSON:
		body, err := rec.MarshalJSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(body))
		return err
	case outputForm:
		_, err := fmt.Fprintln(w, rec.FormEncode())
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
