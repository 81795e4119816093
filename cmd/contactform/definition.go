package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-contactform/pkg/definition"
)

func newDefinitionCmd(a *app) *cobra.Command {
	var (
		formID string
		format string
		list   bool
	)
	cmd := &cobra.Command{
		Use:   "definition",
		Short: "Print the effective form definition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			orch := a.orchestrator()

			if list {
				ids, err := orch.FormIDs()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, strings.Join(ids, "\n"))
				return err
			}

			def, err := orch.Definition(formID)
			if err != nil {
				return err
			}
			var body []byte
			switch format {
			case "yaml", "":
				body, err = definition.Marshal(def)
			case "json":
				body, err = json.MarshalIndent(def, "", "  ")
				body = append(body, '\n')
			default:
				return fmt.Errorf("unknown format %q", format)
			}
			if err != nil {
				return err
			}
			_, err = out.Write(body)
			return err
		},
	}
	cmd.Flags().StringVar(&formID, "form", "", "form id (default is form.form_id)")
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml or json")
	cmd.Flags().BoolVar(&list, "list", false, "list the loaded form ids")
	return cmd
}
