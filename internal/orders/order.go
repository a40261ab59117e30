// =============================================================================
// AVC Purchase-Order Processor - Order Types
// =============================================================================
//
// This file defines the OrderLine record, one per row of the vendor batch
// file, together with the model-number decoding rules.
//
// MODEL NUMBER ENCODING:
//   The vendor encodes the item SKU and the pack size in the model number:
//     "ABC123-4"     : SKU ABC123, 4 units per ordered pack
//     "ABC123-EACH"  : SKU ABC123, single units
//     "ABC123"       : no pack separator; cannot be classified
//   The trailing segment after the last '-' is the pack size. A non-numeric
//   trailing segment means a unit quantity of 1.
//
// =============================================================================

package orders

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ModelNumberSeparator splits the SKU portion from the pack-size segment.
const ModelNumberSeparator = "-"

// EachMarker is the literal trailing segment meaning single units.
const EachMarker = "EACH"

// OrderLine represents one purchase-order row from the vendor batch file.
type OrderLine struct {
	// Positional fields, in batch-file column order.
	PO                string
	Vendor            string
	ShipToLocation    string
	ASIN              string
	ExternalID        string
	ExternalIDType    string
	ModelNumber       string
	Title             string
	Availability      string
	WindowType        string
	WindowStart       string
	WindowEnd         string
	ExpectedDate      string
	QuantityRequested int
	ExpectedQuantity  int
	UnitCost          decimal.Decimal
	CurrencyCode      string

	// Derived fields, computed at parse time.

	// UnitQuantity is the per-order-unit pack multiplier decoded from the
	// trailing model-number segment (1 when the segment is non-numeric).
	UnitQuantity int

	// TotalUnitsInEach is UnitQuantity * QuantityRequested: the number of
	// individual units this line draws from stock.
	TotalUnitsInEach int

	// TotalPrice is UnitCost * QuantityRequested at the vendor's price.
	TotalPrice decimal.Decimal

	// SourceRow is the 1-based row number in the batch file, kept for
	// diagnostics and for stable tie-breaking downstream.
	SourceRow int
}

// HasPackSeparator reports whether the model number carries a pack-size
// segment at all. Lines without one cannot be classified.
func (o *OrderLine) HasPackSeparator() bool {
	return strings.Contains(o.ModelNumber, ModelNumberSeparator)
}

// TrailingSegment returns the segment after the last separator. For a model
// number without a separator this is the whole model number.
func (o *OrderLine) TrailingSegment() string {
	parts := strings.Split(o.ModelNumber, ModelNumberSeparator)
	return parts[len(parts)-1]
}

// IsEachOnly reports whether the trailing segment is the literal EACH
// marker, which carries no numeric pack size usable for proration.
func (o *OrderLine) IsEachOnly() bool {
	return o.TrailingSegment() == EachMarker
}

// unitQuantityFromModel decodes the pack multiplier from a model number.
// A non-numeric or non-positive trailing segment yields 1.
func unitQuantityFromModel(modelNumber string) int {
	parts := strings.Split(modelNumber, ModelNumberSeparator)
	n, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// derive fills the computed fields once the positional fields are set.
func (o *OrderLine) derive() {
	o.UnitQuantity = unitQuantityFromModel(o.ModelNumber)
	o.TotalUnitsInEach = o.UnitQuantity * o.QuantityRequested
	o.TotalPrice = o.UnitCost.Mul(decimal.NewFromInt(int64(o.QuantityRequested)))
}
