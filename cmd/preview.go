package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/titleflow/wire-batch-pipeline/internal/extractor"
	"github.com/titleflow/wire-batch-pipeline/internal/parser"
	"github.com/titleflow/wire-batch-pipeline/internal/validate"
)

var previewCmd = &cobra.Command{
	Use:   "preview <file>",
	Short: "Parse and validate a batch file without executing it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}

		normalized, err := extractor.Normalize(args[0], data)
		if err != nil {
			return err
		}

		result := parser.Parse(normalized, args[0])
		fmt.Printf("File type: %s\n", result.FileType)
		if !result.Success {
			for _, e := range result.Errors {
				fmt.Printf("  error: %s\n", e.Message)
			}
			return fmt.Errorf("file cannot be processed")
		}

		fmt.Printf("Items: %d, total $%.2f\n", result.ItemCount, result.TotalDollars())
		for _, w := range result.Warnings {
			fmt.Printf("  warning: %s\n", w)
		}
		for _, e := range result.Errors {
			fmt.Printf("  line %d: %s\n", e.LineNumber, e.Message)
		}

		summary := validate.Summarize(result.Items, cfg.Policy())
		fmt.Printf("Large-value (wire): %d items, $%.2f\n",
			summary.LargeValueCount, float64(summary.LargeValueCents)/100)
		fmt.Printf("Small-value (%s): %d items, $%.2f\n",
			summary.SmallValueRail, summary.SmallValueCount, float64(summary.SmallValueCents)/100)
		if summary.MissingBankDetails > 0 {
			fmt.Printf("Missing bank details: %d items\n", summary.MissingBankDetails)
		}
		for _, e := range summary.Errors {
			fmt.Printf("  line %d: %s\n", e.LineNumber, e.Message)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
}
