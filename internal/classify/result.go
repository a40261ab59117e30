// =============================================================================
// AVC Purchase-Order Processor - Classification Results
// =============================================================================
//
// This file defines the three output buckets produced by the classification
// engine. Entries carry exactly the data the report sheets need; they are
// newly constructed records, never references into the input order lines.
//
// =============================================================================

package classify

import (
	"github.com/shopspring/decimal"
)

// Reason is the rejection/suggestion reason code rendered on the report.
type Reason string

const (
	// ReasonInvalidSKU marks a model number with no pack-size separator or
	// with the literal EACH marker, which carries no numeric pack size.
	ReasonInvalidSKU Reason = "Invalid SKU"

	// ReasonNotInSAP marks an item unknown to the UOM or inventory master.
	ReasonNotInSAP Reason = "Not in SAP"

	// ReasonPrice marks a vendor price above the reference price.
	ReasonPrice Reason = "Price"

	// ReasonInsufficientStock marks an order drawing more units than are
	// on hand.
	ReasonInsufficientStock Reason = "Insufficient Stock"

	// ReasonBelowMinimumValue marks an order below the optional minimum
	// order-value threshold.
	ReasonBelowMinimumValue Reason = "Below Min Value"
)

// AcceptedEntry is one accepted order, carrying the resolved item data and
// the per-unit price fields the report needs.
type AcceptedEntry struct {
	ItemNumber  string
	UOMCode     string
	PO          string
	ModelNumber string
	Quantity    int

	// UnitCost is the vendor's proposed price per ordered unit.
	UnitCost decimal.Decimal

	// TotalPrice is UnitCost * Quantity.
	TotalPrice decimal.Decimal

	// ReferenceUnitPrice is the effective reference price per requested
	// unit, prorated by pack ratio.
	ReferenceUnitPrice decimal.Decimal

	// PricePerUnitInEach is TotalPrice spread over the individual units
	// the order contains.
	PricePerUnitInEach decimal.Decimal

	// SourceRow preserves the batch-file position for stable ordering.
	SourceRow int
}

// RejectedEntry is one rejected (or suggested) order with its reason code.
// The Optional sheet shares this shape.
type RejectedEntry struct {
	PO          string
	ModelNumber string
	Quantity    int
	UnitCost    decimal.Decimal
	UOMCode     string
	TotalPrice  decimal.Decimal

	// ReferenceUnitPrice is zero when the item never resolved far enough
	// to have one (invalid SKU, unknown item).
	ReferenceUnitPrice decimal.Decimal

	Reason Reason

	// SourceRow preserves the batch-file position for stable ordering.
	SourceRow int
}

// Buckets holds the three ordered classification outcomes.
type Buckets struct {
	Accepted  []AcceptedEntry
	Rejected  []RejectedEntry
	Suggested []RejectedEntry
}
