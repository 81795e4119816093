package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-contactform/components/countrycodes"
	"github.com/goliatone/go-contactform/internal/config"
	"github.com/goliatone/go-contactform/internal/logging"
	"github.com/goliatone/go-contactform/pkg/controller"
	"github.com/goliatone/go-contactform/pkg/definition"
	"github.com/goliatone/go-contactform/pkg/orchestrator"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/renderers/html"
	"github.com/goliatone/go-contactform/pkg/renderers/jsonapi"
	"github.com/goliatone/go-contactform/pkg/renderers/text"
)

// Version is set via -ldflags.
var Version = "dev"

// app holds what every subcommand shares once the config is loaded.
type app struct {
	cfgFile  string
	logLevel string

	cfg       *config.Config
	logger    *log.Logger
	countries *countrycodes.Component
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "contactform",
		Short: "Validate and submit a contact form",
		Long: `contactform validates a contact form and hands valid submissions
to a submitter.

It serves the form over HTTP, fills it interactively in the terminal
and checks JSON submission bodies offline.

Examples:
  contactform serve --addr :9090
  contactform fill
  contactform validate body.json
  contactform definition --format json`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./contactform.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(newServeCmd(a))
	root.AddCommand(newFillCmd(a))
	root.AddCommand(newValidateCmd(a))
	root.AddCommand(newDefinitionCmd(a))
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, used, err := config.Load(commandContext(cmd), config.LoadOptions{ConfigFilePath: a.cfgFile})
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log)
	if err != nil {
		return err
	}
	if used != "" {
		logger.Debug("config loaded", "file", used)
	}

	a.cfg = cfg
	a.logger = logger
	a.countries = countrycodes.New()
	return nil
}

// controllerOptions maps the form config onto controller options.
func (a *app) controllerOptions(extra ...controller.Option) []controller.Option {
	options := []controller.Option{
		controller.WithLogger(a.logger),
		controller.WithResetDelay(a.cfg.Form.ResetDelay),
		controller.WithFocusDelay(a.cfg.Form.FocusDelay),
		controller.WithBannerTimeout(a.cfg.Form.BannerTimeout),
	}
	return append(options, extra...)
}

func (a *app) orchestrator(extra ...orchestrator.Option) *orchestrator.Orchestrator {
	options := []orchestrator.Option{
		orchestrator.WithDefaultForm(a.cfg.Form.FormID),
		orchestrator.WithBuildOptions(definition.WithCountryCodes(a.countries)),
	}
	if dir := a.cfg.Form.DefinitionDir; dir != "" {
		options = append(options, orchestrator.WithDefinitionsFS(os.DirFS(dir)))
	}
	return orchestrator.New(append(options, extra...)...)
}

// terminalRegistry renders text with colour when out is a terminal.
func terminalRegistry(out io.Writer) (*render.Registry, error) {
	htmlRenderer, err := html.New()
	if err != nil {
		return nil, err
	}
	registry, err := render.NewRegistry(
		text.New(text.WithColorOutput(out)),
		jsonapi.New(jsonapi.WithIndent("  ")),
		htmlRenderer,
	)
	if err != nil {
		return nil, fmt.Errorf("renderers: %w", err)
	}
	return registry, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
