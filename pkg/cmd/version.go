package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
)

// NewVersionCommand reports the version of the binary.
func NewVersionCommand(programName string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: fmt.Sprintf("displays the version of %s", programName),
		RunE: func(cmd *cobra.Command, args []string) error {
			bi, ok := debug.ReadBuildInfo()
			if !ok {
				return fmt.Errorf("failed to read BuildInfo because the program was compiled with Go %s", runtime.Version())
			}

			fmt.Fprintln(cmd.OutOrStdout(), cobrautil.VersionWithFallbacks(bi))
			return nil
		},
		Args: cobra.ExactArgs(0),
	}
}
