// README: Eligibility resolver and candidate ranker over the store directory.
package delivery

import (
	"context"
	"strings"

	"tavola/internal/geo"
	"tavola/internal/maps"
	"tavola/internal/modules/store"
)

// Resolve classifies a coordinate against the supplied store list. It is pure:
// no active stores (or an empty slice) degrades to OutsideRange with a nil
// store, never an error. Ties on distance keep the first-seen store so results
// are deterministic for a given directory order.
func Resolve(addressText string, pos geo.Point, stores []store.Store) Resolution {
	var nearest *store.Store
	var nearestDist float64

	for i := range stores {
		if !stores[i].IsActive {
			continue
		}
		d := geo.HaversineKm(pos, stores[i].Position)
		if nearest == nil || d < nearestDist {
			nearest = &stores[i]
			nearestDist = d
		}
	}

	if nearest == nil {
		return Resolution{Class: OutsideRange}
	}

	// Radius boundary is inclusive: a candidate at exactly RadiusKm is in range.
	inRange := nearestDist <= nearest.RadiusKm
	inCoverage := coversAddress(nearest.CoverageCities, addressText)

	class := OutsideRange
	switch {
	case inRange && inCoverage:
		class = InCoverageAndRange
	case inRange:
		class = InRangeOnly
	}

	return Resolution{Store: nearest, DistanceKm: nearestDist, Class: class}
}

// coversAddress applies the canonical coverage rule: an empty list means
// unrestricted, otherwise any coverage city must appear in the address text,
// case-insensitively.
func coversAddress(cities []string, addressText string) bool {
	if len(cities) == 0 {
		return true
	}
	lower := strings.ToLower(addressText)
	for _, city := range cities {
		if city != "" && strings.Contains(lower, strings.ToLower(city)) {
			return true
		}
	}
	return false
}

// Rank orders candidates best-first: eligibility class, then distance. The sort
// is stable so equal candidates keep their input order.
func Rank(candidates []Candidate) {
	geo.SortStableBy(candidates, func(a, b Candidate) bool {
		if a.Class != b.Class {
			return a.Class < b.Class
		}
		return a.DistanceKm < b.DistanceKm
	})
}

// Geocoder is the slice of the maps client this module consumes.
type Geocoder interface {
	Geocode(ctx context.Context, query string) ([]maps.GeocodeResult, error)
}

// StoreDirectory supplies the active stores eligibility is resolved against.
type StoreDirectory interface {
	ListActive(ctx context.Context) ([]store.Store, error)
}

type Service struct {
	geocoder Geocoder
	stores   StoreDirectory
}

func NewService(geocoder Geocoder, stores StoreDirectory) *Service {
	return &Service{geocoder: geocoder, stores: stores}
}

// Search geocodes a free-text query and returns ranked, classified candidates.
// A directory failure degrades every candidate to OutsideRange rather than
// failing the search; only the geocoder itself can fail the call.
func (s *Service) Search(ctx context.Context, query string) ([]Candidate, error) {
	hits, err := s.geocoder.Geocode(ctx, query)
	if err != nil {
		return nil, err
	}

	stores, err := s.stores.ListActive(ctx)
	if err != nil {
		stores = nil
	}

	candidates := make([]Candidate, 0, len(hits))
	for _, hit := range hits {
		res := Resolve(hit.Text, hit.Position, stores)
		candidates = append(candidates, Candidate{
			Text:       hit.Text,
			Position:   hit.Position,
			DistanceKm: res.DistanceKm,
			Class:      res.Class,
		})
	}
	Rank(candidates)
	return candidates, nil
}

// Check is the hard yes/no used at checkout: an invalid coordinate or an
// out-of-range location is an error, with enough data for an actionable message.
func (s *Service) Check(ctx context.Context, loc Location) (Resolution, error) {
	if err := loc.Position.Validate(); err != nil {
		return Resolution{}, err
	}

	stores, err := s.stores.ListActive(ctx)
	if err != nil {
		return Resolution{}, err
	}

	res := Resolve(loc.Address, loc.Position, stores)
	if res.Class == OutsideRange {
		e := &NoEligibleStoreError{DistanceKm: res.DistanceKm}
		if res.Store != nil {
			e.NearestStore = res.Store.Name
		}
		return Resolution{}, e
	}
	return res, nil
}
