package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/titleflow/wire-batch-pipeline/internal/provider"
)

var statusCmd = &cobra.Command{
	Use:   "status <transfer-id>",
	Short: "Query the provider for a transfer's settlement status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Provider.BaseURL == "" {
			return fmt.Errorf("provider.base_url must be configured")
		}

		client := provider.NewHTTPClient(cfg.Provider.BaseURL, cfg.ProviderAPIKey())
		status, err := client.TransferStatus(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s\n", args[0], status)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
