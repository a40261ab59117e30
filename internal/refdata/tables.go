// =============================================================================
// AVC Purchase-Order Processor - Reference Lookup Tables
// =============================================================================
//
// This file defines the two read-only lookup tables built once per run:
//
//   UOMTable       : maps a "SKU-packQty" composite key to the authoritative
//                    model number (whose trailing segment is the UOM code),
//                    the SKU, and the pack quantity.
//   InventoryTable : maps an item number to on-hand stock and the reference
//                    unit price from the inventory system export.
//
// Both tables are immutable after loading. An item missing from the
// inventory table resolves to zero stock and a sentinel reference price so
// that unresolved items always fail the price and stock checks; they can
// never be silently accepted.
//
// =============================================================================

package refdata

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultUOMCode is the unit-of-measure label used when the UOM master has
// no entry for an order's model number.
const DefaultUOMCode = "EA"

// SentinelReferencePrice is the reference price assumed for items the
// inventory master does not know. It is high enough that the "vendor must
// not charge more than the reference price" check always fails.
var SentinelReferencePrice = decimal.RequireFromString("9999999.99")

// UOMEntry is one row of the unit-of-measure master.
type UOMEntry struct {
	// ModelNumber is the authoritative model number; its trailing segment
	// is the UOM code (CASE, BOX or EA).
	ModelNumber string

	// SKU is the internal item number for the model.
	SKU string

	// PackQty is the number of individual units per ordered pack.
	PackQty int
}

// UOMCode returns the unit-of-measure label encoded in the authoritative
// model number's trailing segment.
func (e UOMEntry) UOMCode() string {
	parts := strings.Split(e.ModelNumber, "-")
	return parts[len(parts)-1]
}

// ItemNumber returns the internal item number: the authoritative model
// number with its trailing UOM segment stripped. This is the key the
// inventory master is indexed by.
func (e UOMEntry) ItemNumber() string {
	idx := strings.LastIndex(e.ModelNumber, "-")
	if idx < 0 {
		return e.ModelNumber
	}
	return e.ModelNumber[:idx]
}

// UOMTable is the loaded unit-of-measure master.
type UOMTable struct {
	entries map[string]UOMEntry
}

// NewUOMTable builds an empty table.
func NewUOMTable() *UOMTable {
	return &UOMTable{entries: make(map[string]UOMEntry)}
}

// Add indexes an entry under its "SKU-packQty" composite key, which is the
// exact shape of a vendor model number.
func (t *UOMTable) Add(e UOMEntry) {
	t.entries[compositeKey(e.SKU, e.PackQty)] = e
}

// Resolve looks up an order's model number.
func (t *UOMTable) Resolve(modelNumber string) (UOMEntry, bool) {
	e, ok := t.entries[modelNumber]
	return e, ok
}

// Len returns the number of loaded entries.
func (t *UOMTable) Len() int {
	return len(t.entries)
}

// InventoryEntry is one row of the inventory/price master.
type InventoryEntry struct {
	// ItemNumber is the internal item number (SKU).
	ItemNumber string

	// AvailableQty is the on-hand stock in individual units.
	AvailableQty int

	// ReferencePrice is the authoritative unit price.
	ReferencePrice decimal.Decimal
}

// InventoryTable is the loaded inventory/price master.
type InventoryTable struct {
	entries map[string]InventoryEntry
}

// NewInventoryTable builds an empty table.
func NewInventoryTable() *InventoryTable {
	return &InventoryTable{entries: make(map[string]InventoryEntry)}
}

// Add indexes an entry under its item number.
func (t *InventoryTable) Add(e InventoryEntry) {
	t.entries[e.ItemNumber] = e
}

// Lookup resolves an item number. When the item is unknown the returned
// entry carries zero stock and the sentinel reference price, and found is
// false.
func (t *InventoryTable) Lookup(itemNumber string) (InventoryEntry, bool) {
	if e, ok := t.entries[itemNumber]; ok {
		return e, true
	}
	return InventoryEntry{
		ItemNumber:     itemNumber,
		AvailableQty:   0,
		ReferencePrice: SentinelReferencePrice,
	}, false
}

// Len returns the number of loaded entries.
func (t *InventoryTable) Len() int {
	return len(t.entries)
}
