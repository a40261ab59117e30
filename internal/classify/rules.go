// =============================================================================
// AVC Purchase-Order Processor - Acceptance Rules
// =============================================================================
//
// The acceptance policy is an ordered chain of named rules evaluated
// short-circuit: the first rule that fires decides the order's fate, and an
// order that survives the whole chain is accepted. The chain order is a
// deliberate tie-break: the price check runs before the stock check, so a
// line violating both is reported as a price rejection.
//
// Policy extensions (like the minimum order-value review rule) are extra
// rules appended to the chain, not divergent code paths.
//
// =============================================================================

package classify

import (
	"github.com/shopspring/decimal"
)

// Outcome is a rule's verdict for one order.
type Outcome int

const (
	// OutcomePass lets the order continue down the chain.
	OutcomePass Outcome = iota

	// OutcomeReject sends the order to the rejected bucket.
	OutcomeReject

	// OutcomeSuggest sends the order to the rejected bucket and also to
	// the suggested bucket for manual review.
	OutcomeSuggest
)

// Evaluation is the resolved view of one order that rules are judged
// against. It is assembled by the engine before the chain runs.
type Evaluation struct {
	// Quantity is the requested quantity in ordered units.
	Quantity int

	// TotalUnitsInEach is the stock draw in individual units.
	TotalUnitsInEach int

	// UnitCost is the vendor's price per ordered unit.
	UnitCost decimal.Decimal

	// TotalPrice is the vendor's total for the line.
	TotalPrice decimal.Decimal

	// Stock is the on-hand quantity for the resolved item.
	Stock int

	// EffectiveReferencePrice is the reference price normalized to the
	// same per-requested-unit basis as UnitCost.
	EffectiveReferencePrice decimal.Decimal
}

// Rule is one named acceptance check.
type Rule struct {
	Name     string
	Evaluate func(ev *Evaluation) (Outcome, Reason)
}

// PriceRule rejects orders where the effective reference unit price, rounded
// to 2 decimals, exceeds the vendor's unit cost rounded the same way: the
// vendor must not charge more than the reference price.
func PriceRule() Rule {
	return Rule{
		Name: "price",
		Evaluate: func(ev *Evaluation) (Outcome, Reason) {
			if ev.EffectiveReferencePrice.Round(2).GreaterThan(ev.UnitCost.Round(2)) {
				return OutcomeReject, ReasonPrice
			}
			return OutcomePass, ""
		},
	}
}

// StockRule rejects orders drawing more individual units than are on hand.
func StockRule() Rule {
	return Rule{
		Name: "stock",
		Evaluate: func(ev *Evaluation) (Outcome, Reason) {
			if ev.Stock < ev.TotalUnitsInEach {
				return OutcomeReject, ReasonInsufficientStock
			}
			return OutcomePass, ""
		},
	}
}

// MinOrderValueRule suggests manual review for orders whose total price
// falls below the threshold. Disabled by default; enabled via configuration.
func MinOrderValueRule(threshold decimal.Decimal) Rule {
	return Rule{
		Name: "min-order-value",
		Evaluate: func(ev *Evaluation) (Outcome, Reason) {
			if ev.TotalPrice.LessThan(threshold) {
				return OutcomeSuggest, ReasonBelowMinimumValue
			}
			return OutcomePass, ""
		},
	}
}

// DefaultRules returns the default acceptance chain: price, then stock.
func DefaultRules() []Rule {
	return []Rule{PriceRule(), StockRule()}
}
