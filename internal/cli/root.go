// Package cli implements the fiscalsim command line.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fiscalsim/consolidated-fiscal/internal/config"
	"github.com/fiscalsim/consolidated-fiscal/internal/output"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags and the state every subcommand shares.
type RootOptions struct {
	SettingsPath string
	Format       string
	LogLevel     string
	Verbose      bool

	Settings config.Settings
	Logger   *logrus.Logger
}

// NewRootCommand creates the fiscalsim root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "fiscalsim",
		Short: "Consolidated fiscal projection engine",
		Long: `fiscalsim projects a government's consolidated budget year by year:
tax revenue, central bank remittance, policy expenditure, debt service,
fiscal balance and debt stock, under named macroeconomic scenarios.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.SettingsPath, "settings", "", "settings file (default "+config.SettingsPath()+")")
	cmd.PersistentFlags().StringVarP(&opts.Format, "format", "f", "", "output format: "+strings.Join(output.AvailableFormatterNames(), ", ")+" or all")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging with a per-year trace")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewScenariosCommand(opts))
	cmd.AddCommand(NewActualsCommand(opts))
	cmd.AddCommand(NewOptimizeCommand(opts))
	cmd.AddCommand(NewBreakdownCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewExampleCommand(opts))
	cmd.AddCommand(NewSettingsCommand(opts))

	return cmd
}

// setup loads settings, applies environment and flag overrides, and builds the logger.
func (o *RootOptions) setup(cmd *cobra.Command) error {
	settings, err := config.LoadSettings(o.SettingsPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "loading settings", err)
	}
	if err := settings.ApplyEnv(); err != nil {
		return WrapExitError(ExitCommandError, "applying environment", err)
	}
	if o.Format != "" {
		settings.Output.Format = o.Format
	}
	if o.LogLevel != "" {
		settings.Log.Level = o.LogLevel
	}
	if o.Verbose {
		settings.Log.Level = "debug"
	}

	format := output.NormalizeFormatName(settings.Output.Format)
	if format != "all" && output.GetFormatterByName(format) == nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("invalid format %q", settings.Output.Format),
			fmt.Errorf("must be one of %v or all", output.AvailableFormatterNames()))
	}
	settings.Output.Format = format

	logger, err := newLogger(settings.Log, cmd.ErrOrStderr())
	if err != nil {
		return WrapExitError(ExitCommandError, "configuring logging", err)
	}
	o.Settings = settings
	o.Logger = logger
	return nil
}

func newLogger(prefs config.LogPrefs, w io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(w)
	if prefs.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	level, err := logrus.ParseLevel(prefs.Level)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(level)
	return logger, nil
}

// wantsJSON reports whether list-style commands should emit JSON.
func (o *RootOptions) wantsJSON() bool {
	return o.Settings.Output.Format == "json"
}
