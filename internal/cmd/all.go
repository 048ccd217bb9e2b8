package cmd

import "github.com/spf13/cobra"

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run every family extraction against the configured inputs",
	Args:  cobra.NoArgs,
	RunE:  runAll,
}

func init() {
	rootCmd.AddCommand(allCmd)
}

// runAll runs the four family pipelines sequentially and in isolation;
// each degrades on its own errors without affecting the others.
func runAll(cmd *cobra.Command, args []string) error {
	runHTTP(cmd, nil)
	runSSL(cmd, nil)
	runTCP(cmd, nil)
	runX509(cmd, nil)
	return nil
}
