// Package cmd implements the wire-batch CLI.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/titleflow/wire-batch-pipeline/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "wire-batch",
	Short: "Validate and execute bulk disbursement batches",
	Long: `wire-batch ingests disbursement files exported from a title/escrow
ledger, validates them, routes each payout to a settlement rail, executes
transfers through the payment-rail provider, and writes reconciliation CSVs
for re-import into the ledger.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the YAML policy file (defaults apply if omitted)")
}

func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}
