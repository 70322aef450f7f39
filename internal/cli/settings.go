package cli

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/fiscalsim/consolidated-fiscal/internal/config"
	"github.com/spf13/cobra"
)

// NewSettingsCommand creates the settings command group.
func NewSettingsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or initialise the settings file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return toml.NewEncoder(cmd.OutOrStdout()).Encode(rootOpts.Settings)
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := rootOpts.SettingsPath
			if path == "" {
				path = config.SettingsPath()
			}
			if !force && fileExists(path) {
				return WrapExitError(ExitCommandError, fmt.Sprintf("%s already exists", path), fmt.Errorf("use --force to overwrite"))
			}
			if err := config.SaveSettings(config.DefaultSettings(), path); err != nil {
				return WrapExitError(ExitCommandError, "writing settings", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.AddCommand(initCmd)

	return cmd
}
