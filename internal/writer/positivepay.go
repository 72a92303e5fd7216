package writer

import "github.com/titleflow/wire-batch-pipeline/internal/models"

// PositivePay renders the positive-pay export: one row per successful item
// only, with the truncated transfer id standing in as a check/wire number and
// the full id carried in the last column for exact matching.
func PositivePay(results []models.PayoutResult, batchID string) string {
	rows := [][]string{{
		"Date", "CheckNumber", "Payee", "Amount", "Status", "Rail", "Reference", "TransferID",
	}}

	for _, r := range results {
		if r.Status != models.StatusSuccess {
			continue
		}
		rows = append(rows, []string{
			formatDate(r.CompletedAt),
			checkNumber(r.TransferID),
			r.PayeeName,
			formatDollars(r.AmountCents),
			"CLEARED",
			string(r.Rail),
			r.Reference,
			r.TransferID,
		})
	}

	return buildFile(rows)
}
