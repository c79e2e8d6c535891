// README: Delivery eligibility types: candidate, class ordering, resolution result.
package delivery

import (
	"fmt"

	"tavola/internal/geo"
	"tavola/internal/modules/store"
)

// EligibilityClass orders address candidates by desirability; lower is better.
// It is always derived from a resolution, never stored.
type EligibilityClass int

const (
	InCoverageAndRange EligibilityClass = iota
	InRangeOnly
	OutsideRange
)

func (c EligibilityClass) String() string {
	switch c {
	case InCoverageAndRange:
		return "in_coverage_and_range"
	case InRangeOnly:
		return "in_range_only"
	default:
		return "outside_range"
	}
}

// Candidate is one geocoded address suggestion, classified against the store
// directory. Candidates are ephemeral: produced per search, discarded once the
// customer confirms a selection.
type Candidate struct {
	Text       string           `json:"text"`
	Position   geo.Point        `json:"position"`
	DistanceKm float64          `json:"distance_km"`
	Class      EligibilityClass `json:"-"`
}

// Location is a confirmed delivery selection, threaded explicitly through cart
// and checkout calls rather than held as ambient session state.
type Location struct {
	Address  string    `json:"address"`
	Position geo.Point `json:"position"`
}

// Resolution is the outcome of classifying one coordinate. Store is nil when no
// active store exists; the class is then OutsideRange.
type Resolution struct {
	Store      *store.Store
	DistanceKm float64
	Class      EligibilityClass
}

// NoEligibleStoreError reports a coordinate outside every active store's range.
// It carries the nearest distance so callers can render "X km outside range".
type NoEligibleStoreError struct {
	DistanceKm   float64
	NearestStore string
}

func (e *NoEligibleStoreError) Error() string {
	if e.NearestStore == "" {
		return "no active store delivers to this address"
	}
	return fmt.Sprintf("address is outside delivery range (%.1f km from %s)", e.DistanceKm, e.NearestStore)
}
