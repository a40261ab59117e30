// =============================================================================
// AVC Purchase-Order Processor - Classification Engine
// =============================================================================
//
// The classification engine applies the business rules to each order line
// and sorts it into one of three buckets: accepted, rejected, or suggested.
//
// PER-ORDER ALGORITHM:
//   1. Resolve the UOM code from the UOM master (default EA).
//   2. Reject "Invalid SKU" when the model number has no pack separator or
//      ends in the literal EACH marker.
//   3. Resolve the item number from the UOM master; no match rejects
//      "Not in SAP".
//   4. Resolve stock and reference price from the inventory master; an
//      unknown item rejects "Not in SAP".
//   5. Normalize the reference price to the vendor's per-requested-unit
//      basis: referencePrice * unitQuantity / quantityRequested.
//   6. Run the rule chain; the first rule that fires wins.
//   7. Surviving orders are accepted with their per-each price computed.
//
// Classification is pure: it performs no I/O, never mutates its inputs, and
// every output entry is a newly constructed record.
//
// =============================================================================

package classify

import (
	"github.com/shopspring/decimal"

	"github.com/bazic-ecom/avc-po-processor/internal/orders"
	"github.com/bazic-ecom/avc-po-processor/internal/refdata"
)

// Engine classifies order lines against the reference lookup tables.
type Engine struct {
	uom       *refdata.UOMTable
	inventory *refdata.InventoryTable
	rules     []Rule
}

// NewEngine builds an engine over the loaded reference tables with the
// given acceptance chain.
func NewEngine(uom *refdata.UOMTable, inventory *refdata.InventoryTable, rules []Rule) *Engine {
	return &Engine{
		uom:       uom,
		inventory: inventory,
		rules:     rules,
	}
}

// Classify processes order lines in input order and returns the three
// buckets. Bucket ordering follows input ordering; sorting happens later in
// aggregation.
func (e *Engine) Classify(lines []orders.OrderLine) *Buckets {
	buckets := &Buckets{}

	for i := range lines {
		e.classifyOne(&lines[i], buckets)
	}

	return buckets
}

// classifyOne runs the per-order algorithm and appends the outcome to the
// matching bucket(s).
func (e *Engine) classifyOne(order *orders.OrderLine, buckets *Buckets) {
	// Step 1: UOM resolution. The default applies whenever the master has
	// no entry, including degraded runs with an empty table.
	uomEntry, uomFound := e.uom.Resolve(order.ModelNumber)
	uomCode := refdata.DefaultUOMCode
	if uomFound {
		uomCode = uomEntry.UOMCode()
	}

	// Step 2: a model number without a numeric pack size cannot be
	// prorated against the reference price.
	if !order.HasPackSeparator() || order.IsEachOnly() {
		buckets.Rejected = append(buckets.Rejected,
			rejectedEntry(order, uomCode, decimal.Zero, ReasonInvalidSKU))
		return
	}

	// Step 3: item number resolution. The internal item number is the SKU
	// portion of the authoritative model number, not the vendor's SKU.
	if !uomFound {
		buckets.Rejected = append(buckets.Rejected,
			rejectedEntry(order, uomCode, decimal.Zero, ReasonNotInSAP))
		return
	}
	itemNumber := uomEntry.ItemNumber()

	// Step 4: stock and reference price resolution.
	invEntry, invFound := e.inventory.Lookup(itemNumber)
	if !invFound {
		buckets.Rejected = append(buckets.Rejected,
			rejectedEntry(order, uomCode, decimal.Zero, ReasonNotInSAP))
		return
	}

	// Step 5: prorate the reference price down to the vendor's
	// per-requested-unit basis so the two are comparable regardless of
	// pack size. A zero requested quantity cannot be prorated; the
	// sentinel guarantees such a line fails the price check.
	effective := refdata.SentinelReferencePrice
	if order.QuantityRequested > 0 {
		effective = invEntry.ReferencePrice.
			Mul(decimal.NewFromInt(int64(order.UnitQuantity))).
			Div(decimal.NewFromInt(int64(order.QuantityRequested)))
	}

	ev := &Evaluation{
		Quantity:                order.QuantityRequested,
		TotalUnitsInEach:        order.TotalUnitsInEach,
		UnitCost:                order.UnitCost,
		TotalPrice:              order.TotalPrice,
		Stock:                   invEntry.AvailableQty,
		EffectiveReferencePrice: effective,
	}

	// Step 6: first rule that fires wins.
	for _, rule := range e.rules {
		outcome, reason := rule.Evaluate(ev)
		switch outcome {
		case OutcomeReject:
			buckets.Rejected = append(buckets.Rejected,
				rejectedEntry(order, uomCode, effective, reason))
			return
		case OutcomeSuggest:
			entry := rejectedEntry(order, uomCode, effective, reason)
			buckets.Rejected = append(buckets.Rejected, entry)
			buckets.Suggested = append(buckets.Suggested, entry)
			return
		}
	}

	// Step 7: accepted. TotalUnitsInEach is positive here: UnitQuantity is
	// at least 1 and a zero quantity was caught by the price check above.
	buckets.Accepted = append(buckets.Accepted, AcceptedEntry{
		ItemNumber:         itemNumber,
		UOMCode:            uomCode,
		PO:                 order.PO,
		ModelNumber:        order.ModelNumber,
		Quantity:           order.QuantityRequested,
		UnitCost:           order.UnitCost,
		TotalPrice:         order.TotalPrice,
		ReferenceUnitPrice: effective,
		PricePerUnitInEach: order.TotalPrice.Div(decimal.NewFromInt(int64(order.TotalUnitsInEach))),
		SourceRow:          order.SourceRow,
	})
}

// rejectedEntry builds a rejected/suggested record from an order line.
func rejectedEntry(order *orders.OrderLine, uomCode string, referencePrice decimal.Decimal, reason Reason) RejectedEntry {
	return RejectedEntry{
		PO:                 order.PO,
		ModelNumber:        order.ModelNumber,
		Quantity:           order.QuantityRequested,
		UnitCost:           order.UnitCost,
		UOMCode:            uomCode,
		TotalPrice:         order.TotalPrice,
		ReferenceUnitPrice: referencePrice,
		Reason:             reason,
		SourceRow:          order.SourceRow,
	}
}
