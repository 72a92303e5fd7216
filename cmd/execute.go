package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/titleflow/wire-batch-pipeline/internal/executor"
	"github.com/titleflow/wire-batch-pipeline/internal/extractor"
	"github.com/titleflow/wire-batch-pipeline/internal/models"
	"github.com/titleflow/wire-batch-pipeline/internal/parser"
	"github.com/titleflow/wire-batch-pipeline/internal/provider"
	"github.com/titleflow/wire-batch-pipeline/internal/writer"
)

var (
	execFundingSource string
	execCurrency      string
	execBatchID       string
	execDryRun        bool
	execConcurrency   int
	execOperator      string
	execOutDir        string
)

var executeCmd = &cobra.Command{
	Use:   "execute <file>",
	Short: "Execute a batch and write reconciliation exports",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if !execDryRun && execFundingSource == "" {
			return fmt.Errorf("--funding-source is required unless --dry-run is set")
		}
		if !execDryRun && cfg.Provider.BaseURL == "" {
			return fmt.Errorf("provider.base_url must be configured to execute transfers")
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
		if !result.Success {
			for _, e := range result.Errors {
				fmt.Printf("  error: %s\n", e.Message)
			}
			return fmt.Errorf("file cannot be processed")
		}
		for _, e := range result.Errors {
			fmt.Printf("  line %d: %s\n", e.LineNumber, e.Message)
		}
		fmt.Printf("Executing %d item(s), total $%.2f\n", result.ItemCount, result.TotalDollars())

		exec := &executor.Executor{
			Provider: provider.NewHTTPClient(cfg.Provider.BaseURL, cfg.ProviderAPIKey()),
			Policy:   cfg.Policy(),
		}
		batch := exec.Execute(cmd.Context(), executor.Options{
			BatchID:         execBatchID,
			FundingSourceID: execFundingSource,
			Currency:        execCurrency,
			DryRun:          execDryRun,
			Concurrency:     execConcurrency,
		}, result.Items)

		fmt.Printf("Batch %s: %d processed, %d success, %d failed, %d skipped\n",
			batch.BatchID, batch.TotalProcessed, batch.SuccessCount, batch.FailedCount, batch.SkippedCount)
		for _, r := range batch.Results {
			if r.Status == models.StatusFailed {
				fmt.Printf("  line %d (%s): %s\n", r.LineNumber, r.Reference, r.ErrorMessage)
			}
		}

		outDir := execOutDir
		if outDir == "" {
			outDir = cfg.Output.Dir
		}
		meta := writer.BatchMetadata{
			BatchID:         batch.BatchID,
			FundingSourceID: execFundingSource,
			SourceFileName:  filepath.Base(args[0]),
			Operator:        execOperator,
		}
		now := time.Now().UTC()
		exports := map[string]string{
			"positive-pay": writer.PositivePay(batch.Results, batch.BatchID),
			"bank-recon":   writer.BankReconciliation(batch.Results, batch.BatchID, writer.ReconOptions{IncludeFailed: true}),
			"audit":        writer.Audit(batch.Results, meta),
		}
		for kind, body := range exports {
			path := filepath.Join(outDir, writer.Filename(cfg.Output.Prefix, kind, batch.BatchID, now))
			if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
				return fmt.Errorf("writing %s export: %w", kind, err)
			}
			fmt.Printf("  wrote %s\n", path)
		}

		if batch.CanRetry {
			fmt.Println("Some items failed; re-run against the failed subset after correcting the cause.")
		}
		return nil
	},
}

func init() {
	executeCmd.Flags().StringVar(&execFundingSource, "funding-source", "", "Provider funding source identifier")
	executeCmd.Flags().StringVar(&execCurrency, "currency", "usd", "Source currency tag")
	executeCmd.Flags().StringVar(&execBatchID, "batch-id", "", "Batch identifier (generated if omitted)")
	executeCmd.Flags().BoolVar(&execDryRun, "dry-run", false, "Simulate execution without calling the provider")
	executeCmd.Flags().IntVar(&execConcurrency, "concurrency", 1, "Bounded fan-out over provider calls (1 = sequential)")
	executeCmd.Flags().StringVar(&execOperator, "operator", "", "Operator identity recorded in the audit export")
	executeCmd.Flags().StringVar(&execOutDir, "out", "", "Directory for reconciliation exports (defaults to output.dir)")
	rootCmd.AddCommand(executeCmd)
}
