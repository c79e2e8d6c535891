// README: Cart line mutation tests (merge, quantity-zero removal).
package cart

import "testing"

func TestUpsertLine_MergesSameSelection(t *testing.T) {
	lines := upsertLine(nil, Line{ProductID: "p1", Quantity: 1, AddOns: []AddOn{{AddOnID: "a1", Quantity: 2}}})
	lines = upsertLine(lines, Line{ProductID: "p1", Quantity: 2, AddOns: []AddOn{{AddOnID: "a1", Quantity: 2}}})

	if len(lines) != 1 {
		t.Fatalf("expected merged line, got %d lines", len(lines))
	}
	if lines[0].Quantity != 3 {
		t.Errorf("Quantity = %d, want 3", lines[0].Quantity)
	}
}

func TestUpsertLine_DifferentAddOnsStaySeparate(t *testing.T) {
	lines := upsertLine(nil, Line{ProductID: "p1", Quantity: 1, AddOns: []AddOn{{AddOnID: "a1", Quantity: 1}}})
	lines = upsertLine(lines, Line{ProductID: "p1", Quantity: 1})

	if len(lines) != 2 {
		t.Fatalf("expected two lines for distinct selections, got %d", len(lines))
	}
}

func TestSetLineQuantity_ZeroRemovesLine(t *testing.T) {
	lines := []Line{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 1},
	}

	lines = setLineQuantity(lines, "p2", 0)

	if len(lines) != 1 || lines[0].ProductID != "p1" {
		t.Fatalf("expected p2 removed, got %v", lines)
	}
}

func TestSetLineQuantity_UpdatesInPlace(t *testing.T) {
	lines := setLineQuantity([]Line{{ProductID: "p1", Quantity: 2}}, "p1", 5)
	if lines[0].Quantity != 5 {
		t.Errorf("Quantity = %d, want 5", lines[0].Quantity)
	}
}

func TestSetLineQuantity_UnknownProductNoop(t *testing.T) {
	lines := setLineQuantity([]Line{{ProductID: "p1", Quantity: 2}}, "missing", 0)
	if len(lines) != 1 {
		t.Errorf("unknown product must not change the cart: %v", lines)
	}
}

func TestSetAddOnQuantity_ZeroRemovesAddOn(t *testing.T) {
	lines := []Line{{
		ProductID: "p1", Quantity: 1,
		AddOns: []AddOn{
			{AddOnID: "a1", Quantity: 2},
			{AddOnID: "a2", Quantity: 1},
		},
	}}

	lines = setAddOnQuantity(lines, "p1", "a1", 0)

	if len(lines[0].AddOns) != 1 || lines[0].AddOns[0].AddOnID != "a2" {
		t.Fatalf("expected a1 removed, got %v", lines[0].AddOns)
	}
}

func TestSetAddOnQuantity_Updates(t *testing.T) {
	lines := []Line{{
		ProductID: "p1", Quantity: 1,
		AddOns:    []AddOn{{AddOnID: "a1", Quantity: 2}},
	}}

	lines = setAddOnQuantity(lines, "p1", "a1", 4)

	if lines[0].AddOns[0].Quantity != 4 {
		t.Errorf("Quantity = %d, want 4", lines[0].AddOns[0].Quantity)
	}
}
