// README: Store record and fee/tax configuration.
package store

import (
	"time"

	"tavola/internal/geo"
)

// Store is one physical restaurant location together with the delivery and
// pricing configuration an administrator maintains for it. Only active stores
// take part in eligibility resolution.
type Store struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	Position       geo.Point `json:"position"`
	RadiusKm       float64   `json:"radius_km"`
	CoverageCities []string  `json:"coverage_cities"`
	DeliveryFee    float64   `json:"delivery_fee"`
	ServiceFee     float64   `json:"service_fee"`
	MinimumOrder   float64   `json:"minimum_order"`
	TaxRatePercent float64   `json:"tax_rate_percent"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
