package main

import (
	"os"

	"github.com/charthound/charthound/internal/logging"
	"github.com/charthound/charthound/pkg/cmd"
)

const programName = "charthound"

func main() {
	rootCmd := cmd.NewRootCommand(programName)
	cmd.RegisterRootFlags(rootCmd)

	tablesCmd := cmd.NewTablesCommand(programName)
	cmd.RegisterTablesFlags(tablesCmd)
	rootCmd.AddCommand(tablesCmd)

	rootCmd.AddCommand(cmd.NewDumpCommand(programName))

	collectCmd := cmd.NewCollectCommand(programName)
	cmd.RegisterCollectFlags(collectCmd)
	rootCmd.AddCommand(collectCmd)

	rootCmd.AddCommand(cmd.NewVerifyCommand(programName))
	rootCmd.AddCommand(cmd.NewVersionCommand(programName))

	if err := rootCmd.Execute(); err != nil {
		logging.Err(err).Msg("terminated with errors")
		os.Exit(1)
	}
}
