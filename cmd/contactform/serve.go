package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-contactform/internal/metrics"
	"github.com/goliatone/go-contactform/internal/server"
	"github.com/goliatone/go-contactform/pkg/controller"
	"github.com/goliatone/go-contactform/pkg/orchestrator"
	"github.com/goliatone/go-contactform/pkg/submit"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the contact form over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := commandContext(cmd)
			if addr != "" {
				a.cfg.Server.Addr = addr
			}

			m := metrics.New(nil)
			orch := a.orchestrator(orchestrator.WithControllerOptions(a.controllerOptions(
				controller.WithObserver(m),
				controller.WithSubmitter(submit.NewLogSubmitter(a.logger)),
			)...))

			srv, err := server.New(ctx, a.cfg.Server,
				server.WithLogger(a.logger),
				server.WithMetrics(m),
				server.WithCountryCodes(a.countries),
				server.WithOrchestrator(orch),
			)
			if err != nil {
				return err
			}
			return srv.ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}
