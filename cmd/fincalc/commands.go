package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/internal/config"
	"github.com/iwvelando/finance-calculators/internal/formulas"
	"github.com/iwvelando/finance-calculators/internal/server"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/output"
	"github.com/iwvelando/finance-calculators/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// app carries the state shared by every subcommand once the root command
// has loaded configuration.
type app struct {
	configPath string
	logLevel   string
	conf       *config.Configuration
	logger     *zap.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "fincalc",
		Short:         "Financial calculators served over HTTP or run from the command line",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(a.serveCommand(), a.listCommand(), a.evalCommand())
	return root
}

func (a *app) load() error {
	conf, err := config.LoadConfiguration(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", a.configPath, err)
	}
	if err := conf.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := initializeLogger(conf.Logging, a.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a.conf = conf
	a.logger = logger
	return nil
}

func (a *app) registry() (*calculator.Registry, error) {
	registry, err := formulas.NewRegistry(a.logger)
	if err != nil {
		return nil, err
	}
	registry.SetPercentDecimals(a.conf.Format.PercentDecimals)
	return registry, nil
}

// outputFormat resolves the flag over the configured format.
func (a *app) outputFormat(flagValue string) (string, error) {
	format := a.conf.Output.Format
	if flagValue != "" {
		format = flagValue
	}
	if format == "" {
		format = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(format); err != nil {
		return "", err
	}
	return format, nil
}

func (a *app) serveCommand() *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srvCfg, err := server.LoadConfig(a.conf.Server.ConfigFile)
			if err != nil {
				return err
			}
			if address != "" {
				srvCfg.Address = address
			}

			logger := a.logger
			if srvCfg.Logging != (config.LoggingConfig{}) {
				logger, err = initializeLogger(mergeLogging(a.conf.Logging, srvCfg.Logging), a.logLevel)
				if err != nil {
					return fmt.Errorf("failed to initialize server logger: %w", err)
				}
				defer func() {
					_ = logger.Sync()
				}()
			}

			a.logger = logger
			registry, err := a.registry()
			if err != nil {
				return err
			}

			httpServer := &http.Server{
				Addr:         srvCfg.Address,
				Handler:      server.NewHandler(logger, registry, srvCfg.BodySizeBytes(), version),
				ReadTimeout:  srvCfg.ReadTimeout,
				WriteTimeout: srvCfg.WriteTimeout,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info("serving calculator API",
					zap.String("op", "main.serve"),
					zap.String("address", srvCfg.Address),
					zap.Int("calculators", registry.Len()),
					zap.Int64("maxBodySize", srvCfg.BodySizeBytes()),
				)
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			logger.Info("shutting down", zap.String("op", "main.serve"))
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "listen address override, e.g. :8080")
	return cmd
}

func (a *app) listCommand() *cobra.Command {
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the calculator catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.outputFormat(formatFlag)
			if err != nil {
				return err
			}
			registry, err := a.registry()
			if err != nil {
				return err
			}

			specs := registry.List()
			catalog := make([]output.CatalogEntry, 0, len(specs))
			for _, spec := range specs {
				fields := make([]string, 0, len(spec.Fields))
				for _, field := range spec.Fields {
					fields = append(fields, field.Name)
				}
				catalog = append(catalog, output.CatalogEntry{
					ID:       spec.ID,
					Title:    spec.Title,
					Category: spec.Category,
					Summary:  spec.Summary,
					Fields:   fields,
				})
			}
			return output.WriteCatalog(cmd.OutOrStdout(), format, catalog)
		},
	}

	cmd.Flags().StringVar(&formatFlag, "output-format", "", "type of output override: pretty, csv, yaml")
	return cmd
}

func (a *app) evalCommand() *cobra.Command {
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "eval <calculator> [field=value ...]",
		Short: "Evaluate one calculator with the given field values",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.outputFormat(formatFlag)
			if err != nil {
				return err
			}
			raw, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}
			registry, err := a.registry()
			if err != nil {
				return err
			}

			view, err := registry.Evaluate(args[0], raw)
			if err != nil {
				var vErr *validation.Error
				if errors.As(err, &vErr) {
					for _, issue := range vErr.Issues {
						fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", issue)
					}
				}
				return err
			}

			result := output.Result{
				Calculator: view.Calculator,
				Label:      view.Label,
				Lines:      make([]output.Line, 0, len(view.Outputs)),
				Defaulted:  view.Defaulted,
			}
			for _, out := range view.Outputs {
				result.Lines = append(result.Lines, output.Line{Name: out.Name, Label: out.Label, Value: out.Value})
			}
			return output.WriteResult(cmd.OutOrStdout(), format, result)
		},
	}

	cmd.Flags().StringVar(&formatFlag, "output-format", "", "type of output override: pretty, csv, yaml")
	return cmd
}

// parseAssignments turns name=value arguments into a raw submission. The
// value may itself contain '='.
func parseAssignments(args []string) (calculator.RawInput, error) {
	raw := make(calculator.RawInput, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("expected field=value, got %q", arg)
		}
		raw[name] = value
	}
	return raw, nil
}
