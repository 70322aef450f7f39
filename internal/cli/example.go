package cli

import (
	"fmt"
	"os"

	"github.com/fiscalsim/consolidated-fiscal/internal/config"
	"github.com/spf13/cobra"
)

// NewExampleCommand creates the example command, which writes a sample scenario file.
func NewExampleCommand(rootOpts *RootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "example [path]",
		Short: "Write an example scenario file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "fiscal_scenarios.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if fileExists(path) && !force {
				return WrapExitError(ExitCommandError, fmt.Sprintf("%s already exists", path), fmt.Errorf("use --force to overwrite"))
			}
			example := config.NewInputParser().CreateExampleConfiguration()
			if err := config.SaveConfiguration(example, path); err != nil {
				return WrapExitError(ExitCommandError, "writing example", err)
			}
			rootOpts.Logger.Debugf("example has %d presets and %d custom scenarios", len(example.Presets), len(example.Scenarios))
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
