package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/titleflow/wire-batch-pipeline/internal/models"
)

// Retry re-executes only the failed subset of a prior pass. Original item
// data is recovered from originalItems by matching line number and reference.
// The returned result set is not merged with the prior pass; the caller owns
// reconciling the two.
func (e *Executor) Retry(ctx context.Context, opts Options, prior models.BatchPayoutResult, originalItems []models.ParsedPayoutItem) models.BatchPayoutResult {
	if opts.BatchID == "" {
		opts.BatchID = prior.BatchID
	}

	if !prior.CanRetry {
		return models.BatchPayoutResult{
			BatchID: opts.BatchID,
			Results: []models.PayoutResult{},
		}
	}

	byKey := make(map[string]models.ParsedPayoutItem, len(originalItems))
	for _, item := range originalItems {
		byKey[itemKey(item.LineNumber, item.Reference)] = item
	}

	var subset []models.ParsedPayoutItem
	var unmatched []models.PayoutResult
	for _, r := range prior.Results {
		if r.Status != models.StatusFailed {
			continue
		}
		item, ok := byKey[itemKey(r.LineNumber, r.Reference)]
		if !ok {
			unmatched = append(unmatched, models.PayoutResult{
				LineNumber:   r.LineNumber,
				Reference:    r.Reference,
				PayeeName:    r.PayeeName,
				AmountCents:  r.AmountCents,
				Rail:         r.Rail,
				Status:       models.StatusFailed,
				ErrorMessage: fmt.Sprintf("original item for line %d (%s) not found in source file", r.LineNumber, r.Reference),
				CompletedAt:  time.Now().UTC(),
			})
			continue
		}
		subset = append(subset, item)
	}

	batch := e.Execute(ctx, opts, subset)
	if len(unmatched) > 0 {
		batch.Results = append(batch.Results, unmatched...)
		batch = aggregate(batch.BatchID, batch.Results)
	}
	return batch
}

func itemKey(line int, reference string) string {
	return fmt.Sprintf("%d|%s", line, reference)
}
