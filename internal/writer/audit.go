package writer

import (
	"strconv"
	"time"

	"github.com/titleflow/wire-batch-pipeline/internal/models"
)

// Audit renders the detailed audit export: one row per item regardless of
// status, every field captured on the result, and the batch metadata repeated
// on every row for self-contained auditability.
func Audit(results []models.PayoutResult, meta BatchMetadata) string {
	rows := [][]string{{
		"BatchID", "Line", "Reference", "Payee", "Amount", "Rail", "Status",
		"TransferID", "ExternalAccountID", "Error", "CompletedAt",
		"FundingSource", "SourceFile", "Operator",
	}}

	for _, r := range results {
		completed := ""
		if !r.CompletedAt.IsZero() {
			completed = r.CompletedAt.Format(time.RFC3339)
		}
		rows = append(rows, []string{
			meta.BatchID,
			strconv.Itoa(r.LineNumber),
			r.Reference,
			r.PayeeName,
			formatDollars(r.AmountCents),
			string(r.Rail),
			string(r.Status),
			r.TransferID,
			r.ExternalAccountID,
			r.ErrorMessage,
			completed,
			meta.FundingSourceID,
			meta.SourceFileName,
			meta.Operator,
		})
	}

	return buildFile(rows)
}
