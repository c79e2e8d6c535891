// README: Pricing composition tests (line totals, aggregate, minimum-order gate).
package cart

import (
	"math"
	"testing"

	"tavola/internal/modules/store"
)

const eps = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name string
		line Line
		want float64
	}{
		{
			name: "no add-ons",
			line: Line{UnitPrice: 7.5, Quantity: 2},
			want: 15,
		},
		{
			name: "add-on bundle scales with parent quantity",
			line: Line{
				UnitPrice: 5, Quantity: 2,
				AddOns: []AddOn{{UnitPrice: 1, Quantity: 3}},
			},
			// base 10, addOnUnitSum 3, total 10 + 3*2
			want: 16,
		},
		{
			name: "quantity one degenerates to base plus add-on sum",
			line: Line{
				UnitPrice: 5, Quantity: 1,
				AddOns: []AddOn{{UnitPrice: 1, Quantity: 3}},
			},
			want: 8,
		},
		{
			name: "multiple add-ons",
			line: Line{
				UnitPrice: 10, Quantity: 3,
				AddOns: []AddOn{
					{UnitPrice: 0.5, Quantity: 2},
					{UnitPrice: 2, Quantity: 1},
				},
			},
			// addOnUnitSum 3, total 30 + 3*3
			want: 39,
		},
		{
			name: "missing prices default to zero",
			line: Line{Quantity: 4, AddOns: []AddOn{{Quantity: 2}}},
			want: 0,
		},
		{
			name: "negative price treated as zero",
			line: Line{UnitPrice: -3, Quantity: 2, AddOns: []AddOn{{UnitPrice: 1, Quantity: 1}}},
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LineTotal(tt.line)
			if !almostEqual(got, tt.want) {
				t.Errorf("LineTotal() = %f, want %f", got, tt.want)
			}
		})
	}
}

func feeStore() store.Store {
	return store.Store{
		DeliveryFee:    2.5,
		ServiceFee:     0.5,
		MinimumOrder:   10,
		TaxRatePercent: 9,
	}
}

func TestCompose_DeliveryOrder(t *testing.T) {
	lines := []Line{{UnitPrice: 10, Quantity: 2}} // subtotal 20

	agg, gate := Compose(lines, feeStore(), OrderTypeDelivery, 0)

	if !almostEqual(agg.Subtotal, 20) {
		t.Errorf("Subtotal = %f, want 20", agg.Subtotal)
	}
	if !almostEqual(agg.TaxAmount, 1.8) {
		t.Errorf("TaxAmount = %f, want 1.8", agg.TaxAmount)
	}
	if !almostEqual(agg.DeliveryFee, 2.5) {
		t.Errorf("DeliveryFee = %f, want 2.5", agg.DeliveryFee)
	}
	if !almostEqual(agg.Total, 24.8) {
		t.Errorf("Total = %f, want 24.8", agg.Total)
	}
	if !gate.MeetsMinimum {
		t.Errorf("gate should pass at subtotal 20, minimum 10")
	}
	if !almostEqual(gate.Shortfall, 0) {
		t.Errorf("Shortfall = %f, want 0", gate.Shortfall)
	}
}

func TestCompose_CollectionHasNoDeliveryFee(t *testing.T) {
	lines := []Line{{UnitPrice: 10, Quantity: 2}}

	agg, _ := Compose(lines, feeStore(), OrderTypeCollection, 0)

	if !almostEqual(agg.DeliveryFee, 0) {
		t.Errorf("DeliveryFee = %f, want 0 for collection", agg.DeliveryFee)
	}
	if !almostEqual(agg.Total, 22.3) {
		t.Errorf("Total = %f, want 22.3", agg.Total)
	}
}

func TestCompose_MinimumOrderGateBlocked(t *testing.T) {
	lines := []Line{{UnitPrice: 4, Quantity: 2}} // subtotal 8

	_, gate := Compose(lines, feeStore(), OrderTypeDelivery, 0)

	if gate.MeetsMinimum {
		t.Errorf("gate should block at subtotal 8, minimum 10")
	}
	if !almostEqual(gate.Shortfall, 2) {
		t.Errorf("Shortfall = %f, want 2", gate.Shortfall)
	}
}

func TestCompose_TotalFlooredAtZero(t *testing.T) {
	lines := []Line{{UnitPrice: 10, Quantity: 2}}

	agg, _ := Compose(lines, feeStore(), OrderTypeDelivery, 100)

	if !almostEqual(agg.Total, 0) {
		t.Errorf("Total = %f, want 0 when discount exceeds charges", agg.Total)
	}
	if !almostEqual(agg.Discount, 100) {
		t.Errorf("Discount = %f, want 100 recorded as supplied", agg.Discount)
	}
}

func TestCompose_TaxOnSubtotalOnly(t *testing.T) {
	lines := []Line{{UnitPrice: 10, Quantity: 2}}

	// Tax must not include fees: 9% of 20, not of 20+0.5+2.5.
	agg, _ := Compose(lines, feeStore(), OrderTypeDelivery, 5)
	if !almostEqual(agg.TaxAmount, 1.8) {
		t.Errorf("TaxAmount = %f, want 1.8 regardless of fees and discount", agg.TaxAmount)
	}
}

func TestCompose_EmptyCart(t *testing.T) {
	agg, gate := Compose(nil, feeStore(), OrderTypeDelivery, 0)
	if !almostEqual(agg.Subtotal, 0) {
		t.Errorf("Subtotal = %f, want 0", agg.Subtotal)
	}
	if gate.MeetsMinimum {
		t.Errorf("empty cart must not pass a 10 minimum")
	}
	if !almostEqual(gate.Shortfall, 10) {
		t.Errorf("Shortfall = %f, want 10", gate.Shortfall)
	}
}
