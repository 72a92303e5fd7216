// Package validate runs structural and business-rule checks over parsed
// payout items without performing any external call.
package validate

import (
	"fmt"

	"github.com/titleflow/wire-batch-pipeline/internal/models"
	"github.com/titleflow/wire-batch-pipeline/internal/rails"
)

// abaWeights are the cyclic checksum weights for ABA routing numbers.
var abaWeights = [9]int{3, 7, 1, 3, 7, 1, 3, 7, 1}

// ValidRoutingNumber reports whether rtn is a 9-digit routing number with a
// valid ABA checksum: the 3-7-1 weighted digit sum must be divisible by 10.
func ValidRoutingNumber(rtn string) bool {
	if len(rtn) != 9 {
		return false
	}
	sum := 0
	for i := 0; i < 9; i++ {
		d := rtn[i]
		if d < '0' || d > '9' {
			return false
		}
		sum += abaWeights[i] * int(d-'0')
	}
	return sum%10 == 0
}

// Summarize produces a routing-aware preview of a parsed batch. Items missing
// bank details are counted separately and excluded from rail totals; items
// failing the routing checksum get a line error but stay in the totals, since
// the operator still needs to see the money they represent.
func Summarize(items []models.ParsedPayoutItem, policy rails.Policy) models.ValidationSummary {
	summary := models.ValidationSummary{
		SmallValueRail: policy.SmallValueRail(),
	}

	for _, item := range items {
		if !item.HasBankDetails() {
			summary.MissingBankDetails++
			summary.Errors = append(summary.Errors, models.ParseError{
				LineNumber: item.LineNumber,
				Message:    fmt.Sprintf("payee %q is missing bank details and needs manual entry", item.PayeeName),
			})
			continue
		}

		if !ValidRoutingNumber(item.RoutingNumber) {
			summary.Errors = append(summary.Errors, models.ParseError{
				LineNumber: item.LineNumber,
				Message:    fmt.Sprintf("routing number %q fails the ABA checksum", item.RoutingNumber),
			})
		}

		if item.AmountCents <= 0 {
			summary.Errors = append(summary.Errors, models.ParseError{
				LineNumber: item.LineNumber,
				Message:    fmt.Sprintf("amount must be positive, got %.2f", item.AmountDollars()),
			})
		}

		if policy.Route(item.AmountCents) == models.RailWire {
			summary.LargeValueCount++
			summary.LargeValueCents += item.AmountCents
		} else {
			summary.SmallValueCount++
			summary.SmallValueCents += item.AmountCents
		}
	}

	return summary
}
