package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/fiscalsim/consolidated-fiscal/internal/calculation"
	"github.com/fiscalsim/consolidated-fiscal/internal/server"
	"github.com/spf13/cobra"
)

// NewServeCommand creates the serve command, which runs the HTTP API.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve projections over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := rootOpts.Settings
			if addr == "" {
				addr = s.Server.Address
			}

			actuals := calculation.NewActualDataManager(s.Data.ActualsPath)
			if err := actuals.Load(); err != nil {
				return WrapExitError(ExitCommandError, "loading actual data", err)
			}

			engine := calculation.NewProjectionEngine()
			engine.SetLogger(rootOpts.Logger)

			srv := server.New(engine, actuals, server.Options{
				Projection:   s.ProjectionSettings(),
				ReadTimeout:  s.ReadTimeout(),
				WriteTimeout: s.WriteTimeout(),
			}, rootOpts.Logger)

			ctx, stop := signal.NotifyContext(contextOf(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from settings)")
	return cmd
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
