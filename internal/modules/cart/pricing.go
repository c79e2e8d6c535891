// README: Line and aggregate price composition; the pricing rules live here.
package cart

import "tavola/internal/modules/store"

// LineTotal computes the monetary value of one cart line. Add-ons are priced per
// serving: the add-on bundle is summed once per unit of the parent item and then
// scaled by the parent quantity, so
//
//	total = unitPrice*qty + (Σ addOn.unitPrice*addOn.qty) * qty
//
// For a quantity-1 line this degenerates to base + addOnUnitSum. Missing or
// negative price fields are treated as zero rather than failing.
func LineTotal(l Line) float64 {
	base := nonNegative(l.UnitPrice) * float64(nonNegativeInt(l.Quantity))

	var addOnUnitSum float64
	for _, a := range l.AddOns {
		addOnUnitSum += nonNegative(a.UnitPrice) * float64(nonNegativeInt(a.Quantity))
	}

	return base + addOnUnitSum*float64(nonNegativeInt(l.Quantity))
}

// Compose derives the full pricing breakdown for a cart against one store's
// configuration. The service fee is flat, tax applies to the subtotal only
// (before fees and discount), and the delivery fee is zeroed for collection
// orders. The total is floored at zero so stacked discounts can never produce a
// negative charge. The gate result is always populated so callers can show the
// shortfall even when checkout is blocked.
func Compose(lines []Line, st store.Store, orderType OrderType, discount float64) (Aggregate, Gate) {
	var subtotal float64
	for _, l := range lines {
		subtotal += LineTotal(l)
	}

	discount = nonNegative(discount)

	deliveryFee := 0.0
	if orderType == OrderTypeDelivery {
		deliveryFee = st.DeliveryFee
	}

	taxAmount := subtotal * st.TaxRatePercent / 100

	total := subtotal + st.ServiceFee + taxAmount + deliveryFee - discount
	if total < 0 {
		total = 0
	}

	agg := Aggregate{
		Subtotal:       subtotal,
		Discount:       discount,
		ServiceFee:     st.ServiceFee,
		TaxAmount:      taxAmount,
		TaxRatePercent: st.TaxRatePercent,
		DeliveryFee:    deliveryFee,
		Total:          total,
	}

	gate := Gate{MeetsMinimum: subtotal >= st.MinimumOrder}
	if !gate.MeetsMinimum {
		gate.Shortfall = st.MinimumOrder - subtotal
	}
	return agg, gate
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func nonNegativeInt(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
