// Package rails decides the settlement rail for a payout amount. The routing
// policy is the single source of truth shared by batch preview and execution,
// so the two can never disagree about where an item will clear.
package rails

import "github.com/titleflow/wire-batch-pipeline/internal/models"

// DefaultThresholdCents separates large-value wires from small-value payouts:
// $100,000.00, exclusive on the wire side.
const DefaultThresholdCents int64 = 100_000_00

// Policy holds the routing configuration for one deployment.
type Policy struct {
	// ThresholdCents is the boundary between rails. Amounts strictly above
	// it clear as wires; amounts at or below it take the small-value rail.
	ThresholdCents int64
	// RTPEnabled gates the near-real-time rail. When false, small-value
	// items fall back to ACH transparently.
	RTPEnabled bool
}

// DefaultPolicy returns the reference deployment policy.
func DefaultPolicy() Policy {
	return Policy{ThresholdCents: DefaultThresholdCents, RTPEnabled: true}
}

// Route maps an amount to a rail. Pure; callers on the preview and execution
// paths must both go through it.
func (p Policy) Route(amountCents int64) models.Rail {
	if amountCents > p.ThresholdCents {
		return models.RailWire
	}
	return p.SmallValueRail()
}

// SmallValueRail returns the rail small-value items actually clear over,
// reflecting the RTP feature flag so operators see true settlement speed.
func (p Policy) SmallValueRail() models.Rail {
	if p.RTPEnabled {
		return models.RailRTP
	}
	return models.RailACH
}
