package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/titleflow/wire-batch-pipeline/internal/api"
	"github.com/titleflow/wire-batch-pipeline/internal/config"
	"github.com/titleflow/wire-batch-pipeline/internal/provider"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the batch pipeline HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		sc, err := config.LoadServer()
		if err != nil {
			return err
		}

		srv := &api.Server{
			Policy:       cfg.Policy(),
			Provider:     provider.NewHTTPClient(cfg.Provider.BaseURL, cfg.ProviderAPIKey()),
			OutputPrefix: cfg.Output.Prefix,
			BodyLimitMB:  sc.BodyLimitMB,
		}

		log.Printf("wire-batch API listening on %s", sc.Addr)
		return srv.App().Listen(sc.Addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
