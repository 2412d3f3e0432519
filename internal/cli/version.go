package cli

import (
	"runtime"

	"github.com/spf13/cobra"
)

// addVersionCommand registers the version command.
func addVersionCommand(rootCmd *cobra.Command) {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cmd)
			if out.IsJSON() {
				return out.JSON(map[string]string{
					"version": Version,
					"go":      runtime.Version(),
				})
			}
			out.Printf("optionscout %s (%s)\n", Version, runtime.Version())
			return nil
		},
	}
	rootCmd.AddCommand(versionCmd)
}
