package orders

import (
	"testing"
)

func TestUnitQuantityFromModel(t *testing.T) {
	tests := []struct {
		name        string
		modelNumber string
		want        int
	}{
		{"numeric pack size", "ABC-4", 4},
		{"large pack size", "ABC-144", 144},
		{"each marker", "ABC-EACH", 1},
		{"no separator", "ABC", 1},
		{"multi-segment sku", "AB-CD-12", 12},
		{"non-numeric trailing segment", "ABC-BOX", 1},
		{"zero pack size clamps to one", "ABC-0", 1},
		{"negative pack size clamps to one", "ABC--3", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unitQuantityFromModel(tt.modelNumber); got != tt.want {
				t.Errorf("unitQuantityFromModel(%q) = %d, want %d", tt.modelNumber, got, tt.want)
			}
		})
	}
}

func TestModelNumberPredicates(t *testing.T) {
	withSep := OrderLine{ModelNumber: "ABC-4"}
	if !withSep.HasPackSeparator() {
		t.Error("ABC-4 should have a pack separator")
	}
	if withSep.IsEachOnly() {
		t.Error("ABC-4 should not be EACH-only")
	}
	if got := withSep.TrailingSegment(); got != "4" {
		t.Errorf("TrailingSegment = %q, want %q", got, "4")
	}

	each := OrderLine{ModelNumber: "ABC-EACH"}
	if !each.IsEachOnly() {
		t.Error("ABC-EACH should be EACH-only")
	}

	bare := OrderLine{ModelNumber: "ABC"}
	if bare.HasPackSeparator() {
		t.Error("ABC should not have a pack separator")
	}
	if got := bare.TrailingSegment(); got != "ABC" {
		t.Errorf("TrailingSegment = %q, want %q", got, "ABC")
	}
}

func TestDeriveComputesTotals(t *testing.T) {
	line := OrderLine{ModelNumber: "ABC-4", QuantityRequested: 10}
	line.UnitCost = mustDecimal(t, "5.00")
	line.derive()

	if line.UnitQuantity != 4 {
		t.Errorf("UnitQuantity = %d, want 4", line.UnitQuantity)
	}
	if line.TotalUnitsInEach != 40 {
		t.Errorf("TotalUnitsInEach = %d, want 40", line.TotalUnitsInEach)
	}
	if !line.TotalPrice.Equal(mustDecimal(t, "50.00")) {
		t.Errorf("TotalPrice = %s, want 50.00", line.TotalPrice)
	}
}
