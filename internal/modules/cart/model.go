// README: Cart line/aggregate types and pure line-mutation helpers.
package cart

import (
	"fmt"
	"strings"
	"time"
)

type OrderType string

const (
	OrderTypeDelivery   OrderType = "delivery"
	OrderTypeCollection OrderType = "collection"
)

// AddOn is one selected extra on a cart line. Quantity is always >= 1; an add-on
// reduced to zero is removed from the line rather than kept as a phantom entry.
type AddOn struct {
	AddOnID   string  `json:"add_on_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

// Line is one product entry in a cart with its own quantity, optional add-ons
// and free-text notes.
type Line struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	AddOns    []AddOn `json:"add_ons,omitempty"`
	Notes     string  `json:"notes,omitempty"`
}

// Cart is the per-customer working set. It holds no derived pricing; the
// aggregate is recomputed from scratch on every read.
type Cart struct {
	CustomerID string    `json:"customer_id"`
	Lines      []Line    `json:"lines"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Aggregate is the derived pricing breakdown for a cart against one store's fee
// and tax configuration. It is never mutated independently; checkout freezes a
// copy of it onto the order.
type Aggregate struct {
	Subtotal       float64 `json:"subtotal"`
	Discount       float64 `json:"discount"`
	ServiceFee     float64 `json:"service_fee"`
	TaxAmount      float64 `json:"tax_amount"`
	TaxRatePercent float64 `json:"tax_rate_percent"`
	DeliveryFee    float64 `json:"delivery_fee"`
	Total          float64 `json:"total"`
}

// Gate is the minimum-order check result, kept alongside the aggregate so the
// shortfall can always be displayed.
type Gate struct {
	MeetsMinimum bool    `json:"meets_minimum"`
	Shortfall    float64 `json:"shortfall"`
}

// BelowMinimumOrderError blocks checkout when the subtotal is under the store's
// minimum. It carries the shortfall for an actionable message.
type BelowMinimumOrderError struct {
	Minimum   float64
	Shortfall float64
}

func (e *BelowMinimumOrderError) Error() string {
	return fmt.Sprintf("order is %.2f below the %.2f minimum", e.Shortfall, e.Minimum)
}

// addOnKey identifies a line's add-on selection so identical selections of the
// same product merge into one line instead of duplicating it.
func addOnKey(addOns []AddOn) string {
	if len(addOns) == 0 {
		return ""
	}
	parts := make([]string, 0, len(addOns))
	for _, a := range addOns {
		parts = append(parts, fmt.Sprintf("%s:%d", a.AddOnID, a.Quantity))
	}
	return strings.Join(parts, "|")
}

// upsertLine merges the new line into an existing one with the same product and
// add-on selection, otherwise appends it.
func upsertLine(lines []Line, l Line) []Line {
	key := addOnKey(l.AddOns)
	for i := range lines {
		if lines[i].ProductID == l.ProductID && addOnKey(lines[i].AddOns) == key {
			lines[i].Quantity += l.Quantity
			if l.Notes != "" {
				lines[i].Notes = l.Notes
			}
			return lines
		}
	}
	return append(lines, l)
}

// setLineQuantity updates a line's quantity in place; zero or less removes the
// line entirely so no zero-quantity lines persist.
func setLineQuantity(lines []Line, productID string, qty int) []Line {
	for i := range lines {
		if lines[i].ProductID != productID {
			continue
		}
		if qty <= 0 {
			return append(lines[:i], lines[i+1:]...)
		}
		lines[i].Quantity = qty
		return lines
	}
	return lines
}

// setAddOnQuantity updates one add-on's quantity on a line; zero or less removes
// the add-on from the selection.
func setAddOnQuantity(lines []Line, productID, addOnID string, qty int) []Line {
	for i := range lines {
		if lines[i].ProductID != productID {
			continue
		}
		addOns := lines[i].AddOns
		for j := range addOns {
			if addOns[j].AddOnID != addOnID {
				continue
			}
			if qty <= 0 {
				lines[i].AddOns = append(addOns[:j], addOns[j+1:]...)
			} else {
				addOns[j].Quantity = qty
			}
			return lines
		}
		return lines
	}
	return lines
}
