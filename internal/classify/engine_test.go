package classify

import (
	"strconv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/bazic-ecom/avc-po-processor/internal/orders"
	"github.com/bazic-ecom/avc-po-processor/internal/refdata"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// testOrder builds a parsed order line with its derived fields filled in,
// mirroring what the batch parser produces.
func testOrder(po, model string, qty int, cost string) orders.OrderLine {
	line := orders.OrderLine{
		PO:                po,
		ModelNumber:       model,
		QuantityRequested: qty,
		UnitCost:          d(cost),
		SourceRow:         2,
	}

	line.UnitQuantity = 1
	parts := strings.Split(model, "-")
	if n, err := strconv.Atoi(parts[len(parts)-1]); err == nil && n >= 1 {
		line.UnitQuantity = n
	}
	line.TotalUnitsInEach = line.UnitQuantity * qty
	line.TotalPrice = line.UnitCost.Mul(decimal.NewFromInt(int64(qty)))
	return line
}

// testTables builds reference tables where vendor model ABC-4 resolves to
// item XYZ sold by the CASE, with 1000 units on hand at $1.00 each.
func testTables() (*refdata.UOMTable, *refdata.InventoryTable) {
	uom := refdata.NewUOMTable()
	uom.Add(refdata.UOMEntry{ModelNumber: "XYZ-CASE", SKU: "ABC", PackQty: 4})

	inv := refdata.NewInventoryTable()
	inv.Add(refdata.InventoryEntry{
		ItemNumber:     "XYZ",
		AvailableQty:   1000,
		ReferencePrice: d("1.00"),
	})
	return uom, inv
}

func TestClassifyAccepted(t *testing.T) {
	uom, inv := testTables()
	engine := NewEngine(uom, inv, DefaultRules())

	// 10 packs of 4 at $5.00 per pack. The reference price per pack is
	// $1.00 * 4 = $4.00 spread over 10 requested units, so $0.40 per
	// requested unit, well under the vendor's $5.00.
	buckets := engine.Classify([]orders.OrderLine{
		testOrder("PO-1", "ABC-4", 10, "5.00"),
	})

	if len(buckets.Rejected) != 0 || len(buckets.Suggested) != 0 {
		t.Fatalf("expected no rejections, got %d rejected %d suggested",
			len(buckets.Rejected), len(buckets.Suggested))
	}
	if len(buckets.Accepted) != 1 {
		t.Fatalf("expected 1 accepted, got %d", len(buckets.Accepted))
	}

	entry := buckets.Accepted[0]
	if entry.ItemNumber != "XYZ" {
		t.Errorf("ItemNumber = %q, want XYZ", entry.ItemNumber)
	}
	if entry.UOMCode != "CASE" {
		t.Errorf("UOMCode = %q, want CASE", entry.UOMCode)
	}
	if entry.TotalPrice.StringFixed(2) != "50.00" {
		t.Errorf("TotalPrice = %s, want 50.00", entry.TotalPrice)
	}
	if entry.ReferenceUnitPrice.StringFixed(2) != "0.40" {
		t.Errorf("ReferenceUnitPrice = %s, want 0.40", entry.ReferenceUnitPrice)
	}
	if entry.PricePerUnitInEach.StringFixed(2) != "1.25" {
		t.Errorf("PricePerUnitInEach = %s, want 1.25", entry.PricePerUnitInEach)
	}
}

func TestClassifyInvalidSKU(t *testing.T) {
	uom, inv := testTables()
	engine := NewEngine(uom, inv, DefaultRules())

	buckets := engine.Classify([]orders.OrderLine{
		testOrder("PO-1", "ABC", 10, "5.00"),      // no pack separator
		testOrder("PO-1", "ABC-EACH", 10, "5.00"), // no numeric pack size
	})

	if len(buckets.Accepted) != 0 {
		t.Fatalf("expected no accepted, got %d", len(buckets.Accepted))
	}
	if len(buckets.Rejected) != 2 {
		t.Fatalf("expected 2 rejected, got %d", len(buckets.Rejected))
	}
	for _, entry := range buckets.Rejected {
		if entry.Reason != ReasonInvalidSKU {
			t.Errorf("model %q: Reason = %q, want %q",
				entry.ModelNumber, entry.Reason, ReasonInvalidSKU)
		}
	}
}

func TestClassifyNotInSAP(t *testing.T) {
	uom, inv := testTables()
	// Vendor model with no UOM master entry at all.
	uom.Add(refdata.UOMEntry{ModelNumber: "GHOST-BOX", SKU: "GGG", PackQty: 2})
	engine := NewEngine(uom, inv, DefaultRules())

	buckets := engine.Classify([]orders.OrderLine{
		testOrder("PO-1", "ZZZ-4", 10, "5.00"), // unknown to the UOM master
		testOrder("PO-1", "GGG-2", 10, "5.00"), // resolves to GHOST, unknown to inventory
	})

	if len(buckets.Rejected) != 2 {
		t.Fatalf("expected 2 rejected, got %d", len(buckets.Rejected))
	}
	for _, entry := range buckets.Rejected {
		if entry.Reason != ReasonNotInSAP {
			t.Errorf("model %q: Reason = %q, want %q",
				entry.ModelNumber, entry.Reason, ReasonNotInSAP)
		}
	}
}

func TestClassifyPriceRejection(t *testing.T) {
	uom, inv := testTables()
	engine := NewEngine(uom, inv, DefaultRules())

	// Effective reference price is $1.00 * 4 / 2 = $2.00 per requested
	// unit; the vendor wants only $0.50.
	buckets := engine.Classify([]orders.OrderLine{
		testOrder("PO-1", "ABC-4", 2, "0.50"),
	})

	if len(buckets.Rejected) != 1 {
		t.Fatalf("expected 1 rejected, got %d", len(buckets.Rejected))
	}
	entry := buckets.Rejected[0]
	if entry.Reason != ReasonPrice {
		t.Errorf("Reason = %q, want %q", entry.Reason, ReasonPrice)
	}
	if entry.ReferenceUnitPrice.StringFixed(2) != "2.00" {
		t.Errorf("ReferenceUnitPrice = %s, want 2.00", entry.ReferenceUnitPrice)
	}
}

func TestClassifyInsufficientStock(t *testing.T) {
	uom, inv := testTables()
	engine := NewEngine(uom, inv, DefaultRules())

	// 500 packs of 4 draw 2000 units against 1000 on hand. The price is
	// fine, so the stock rule fires.
	buckets := engine.Classify([]orders.OrderLine{
		testOrder("PO-1", "ABC-4", 500, "5.00"),
	})

	if len(buckets.Rejected) != 1 {
		t.Fatalf("expected 1 rejected, got %d", len(buckets.Rejected))
	}
	if reason := buckets.Rejected[0].Reason; reason != ReasonInsufficientStock {
		t.Errorf("Reason = %q, want %q", reason, ReasonInsufficientStock)
	}
}

func TestClassifyPriceRunsBeforeStock(t *testing.T) {
	uom, _ := testTables()
	inv := refdata.NewInventoryTable()
	inv.Add(refdata.InventoryEntry{
		ItemNumber:     "XYZ",
		AvailableQty:   1000,
		ReferencePrice: d("1000.00"),
	})
	engine := NewEngine(uom, inv, DefaultRules())

	// 500 packs of 4 violate both checks: the draw of 2000 units exceeds
	// stock, and the effective reference price of $8.00 out-prices the
	// vendor's $5.00. The price rejection wins.
	buckets := engine.Classify([]orders.OrderLine{
		testOrder("PO-1", "ABC-4", 500, "5.00"),
	})

	if len(buckets.Rejected) != 1 {
		t.Fatalf("expected 1 rejected, got %d", len(buckets.Rejected))
	}
	if reason := buckets.Rejected[0].Reason; reason != ReasonPrice {
		t.Errorf("Reason = %q, want %q", reason, ReasonPrice)
	}
}

func TestClassifyZeroQuantityFailsPriceCheck(t *testing.T) {
	uom, inv := testTables()
	engine := NewEngine(uom, inv, DefaultRules())

	buckets := engine.Classify([]orders.OrderLine{
		testOrder("PO-1", "ABC-4", 0, "5.00"),
	})

	if len(buckets.Rejected) != 1 {
		t.Fatalf("expected 1 rejected, got %d", len(buckets.Rejected))
	}
	entry := buckets.Rejected[0]
	if entry.Reason != ReasonPrice {
		t.Errorf("Reason = %q, want %q", entry.Reason, ReasonPrice)
	}
	if !entry.ReferenceUnitPrice.Equal(refdata.SentinelReferencePrice) {
		t.Errorf("ReferenceUnitPrice = %s, want sentinel", entry.ReferenceUnitPrice)
	}
}

func TestClassifyRoundedPricesCompareEqual(t *testing.T) {
	uom, inv := testTables()
	engine := NewEngine(uom, inv, DefaultRules())

	// Reference $1.00 * 4 / 3 = $1.3333 per requested unit, which rounds
	// to $1.33 and must not out-price a vendor cost of exactly $1.33.
	buckets := engine.Classify([]orders.OrderLine{
		testOrder("PO-1", "ABC-4", 3, "1.33"),
	})

	if len(buckets.Accepted) != 1 {
		t.Fatalf("expected 1 accepted, got %d accepted %d rejected",
			len(buckets.Accepted), len(buckets.Rejected))
	}
}

func TestMinOrderValueSuggestsReview(t *testing.T) {
	uom, inv := testTables()
	rules := append(DefaultRules(), MinOrderValueRule(d("30")))
	engine := NewEngine(uom, inv, rules)

	// 1 pack at $5.00 passes price and stock but totals under $30.
	buckets := engine.Classify([]orders.OrderLine{
		testOrder("PO-1", "ABC-4", 1, "5.00"),
	})

	if len(buckets.Accepted) != 0 {
		t.Fatalf("expected no accepted, got %d", len(buckets.Accepted))
	}
	if len(buckets.Rejected) != 1 || len(buckets.Suggested) != 1 {
		t.Fatalf("expected order in both buckets, got %d rejected %d suggested",
			len(buckets.Rejected), len(buckets.Suggested))
	}
	if buckets.Rejected[0] != buckets.Suggested[0] {
		t.Error("rejected and suggested entries differ")
	}
	if reason := buckets.Suggested[0].Reason; reason != ReasonBelowMinimumValue {
		t.Errorf("Reason = %q, want %q", reason, ReasonBelowMinimumValue)
	}
}

func TestClassifyDefaultUOMCodeWhenUnresolved(t *testing.T) {
	engine := NewEngine(refdata.NewUOMTable(), refdata.NewInventoryTable(), DefaultRules())

	buckets := engine.Classify([]orders.OrderLine{
		testOrder("PO-1", "ABC-4", 10, "5.00"),
	})

	if len(buckets.Rejected) != 1 {
		t.Fatalf("expected 1 rejected, got %d", len(buckets.Rejected))
	}
	entry := buckets.Rejected[0]
	if entry.UOMCode != refdata.DefaultUOMCode {
		t.Errorf("UOMCode = %q, want %q", entry.UOMCode, refdata.DefaultUOMCode)
	}
	if entry.Reason != ReasonNotInSAP {
		t.Errorf("Reason = %q, want %q", entry.Reason, ReasonNotInSAP)
	}
}
