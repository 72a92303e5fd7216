package writer

import "github.com/titleflow/wire-batch-pipeline/internal/models"

// ReconOptions control which non-cleared rows appear in the bank
// reconciliation export.
type ReconOptions struct {
	IncludeFailed  bool
	IncludePending bool
}

// BankReconciliation renders the bank reconciliation export. The balance
// column is a signed accumulator decremented by each successful item's amount
// in file order, so the final balance is the total drawn from the funding
// account. Two summary rows trail the data: total cleared, and total voided
// when any item failed.
func BankReconciliation(results []models.PayoutResult, batchID string, opts ReconOptions) string {
	rows := [][]string{{
		"Date", "Reference", "Payee", "Status", "Rail", "Amount", "Balance",
	}}

	var balanceCents int64
	var clearedCents int64
	var voidedCents int64
	voided := 0

	for _, r := range results {
		if r.Status == models.StatusFailed {
			voided++
			voidedCents += r.AmountCents
			if !opts.IncludeFailed {
				continue
			}
		}
		if r.Status == models.StatusPending && !opts.IncludePending {
			continue
		}

		if r.Status == models.StatusSuccess {
			balanceCents -= r.AmountCents
			clearedCents += r.AmountCents
		}

		rows = append(rows, []string{
			formatDate(r.CompletedAt),
			r.Reference,
			r.PayeeName,
			statusLabel(r.Status),
			string(r.Rail),
			formatDollars(r.AmountCents),
			formatDollars(balanceCents),
		})
	}

	rows = append(rows, []string{"", "", "TOTAL CLEARED", "", "", formatDollars(clearedCents), formatDollars(balanceCents)})
	if voided > 0 {
		rows = append(rows, []string{"", "", "TOTAL VOIDED", "", "", formatDollars(voidedCents), ""})
	}

	return buildFile(rows)
}
