package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/titleflow/wire-batch-pipeline/internal/api"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and exit",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("wire-batch v%s\n", api.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
