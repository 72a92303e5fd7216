// Package writer renders the reconciliation exports for an executed batch:
// a positive-pay file, a bank reconciliation file with a running balance,
// and a detailed audit file. All three share the csvfmt quoting rule so the
// files round-trip through the pipeline's own tabular splitter.
package writer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/titleflow/wire-batch-pipeline/internal/csvfmt"
	"github.com/titleflow/wire-batch-pipeline/internal/models"
)

// ContentType is the MIME type for every export.
const ContentType = "text/csv"

// checkNumberWidth is the fixed width of the pseudo check/wire number derived
// from the provider transfer id in the positive-pay export.
const checkNumberWidth = 10

// BatchMetadata is caller-supplied context repeated on every audit row so the
// file is self-contained.
type BatchMetadata struct {
	BatchID         string `json:"batchId"`
	FundingSourceID string `json:"fundingSourceId"`
	SourceFileName  string `json:"sourceFileName"`
	Operator        string `json:"operator"`
}

// Filename builds the export filename: product prefix, export kind, batch id,
// and ISO date.
func Filename(prefix, kind, batchID string, date time.Time) string {
	if prefix == "" {
		prefix = "titleflow"
	}
	return fmt.Sprintf("%s_%s_%s_%s.csv", prefix, kind, batchID, date.Format("2006-01-02"))
}

func formatDollars(cents int64) string {
	return strconv.FormatFloat(float64(cents)/100, 'f', 2, 64)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func buildFile(rows [][]string) string {
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(csvfmt.JoinRow(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// checkNumber truncates a provider transfer id to the fixed check-number
// width used by positive-pay consumers.
func checkNumber(transferID string) string {
	id := strings.ReplaceAll(transferID, "-", "")
	if len(id) > checkNumberWidth {
		return id[:checkNumberWidth]
	}
	return id
}

// statusLabel maps a payout status to the literal the bank reconciliation
// export uses.
func statusLabel(s models.PayoutStatus) string {
	switch s {
	case models.StatusSuccess:
		return "CLEARED"
	case models.StatusFailed:
		return "VOID"
	case models.StatusPending:
		return "PENDING"
	case models.StatusSkipped:
		return "SKIPPED"
	default:
		return strings.ToUpper(string(s))
	}
}
