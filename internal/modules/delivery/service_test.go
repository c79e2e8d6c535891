// README: Resolver classification and ranking tests (pure, no collaborators).
package delivery

import (
	"math"
	"testing"

	"tavola/internal/geo"
	"tavola/internal/modules/store"
)

// Distances below are measured along a meridian: one degree of latitude is
// roughly 111.19 km, so 0.01 degrees is roughly 1.11 km.
func activeStore(id string, pos geo.Point, radiusKm float64, cities ...string) store.Store {
	return store.Store{
		ID:             id,
		Name:           id,
		Position:       pos,
		RadiusKm:       radiusKm,
		CoverageCities: cities,
		IsActive:       true,
	}
}

func TestResolve_Classification(t *testing.T) {
	base := geo.Point{Lat: 51.5, Lng: -0.1}

	tests := []struct {
		name    string
		address string
		pos     geo.Point
		stores  []store.Store
		want    EligibilityClass
	}{
		{
			name:    "in range and in coverage",
			address: "12 High Street, Croydon",
			pos:     geo.Point{Lat: 51.51, Lng: -0.1},
			stores:  []store.Store{activeStore("s1", base, 5, "Croydon")},
			want:    InCoverageAndRange,
		},
		{
			name:    "in range, outside coverage list",
			address: "12 High Street, Bromley",
			pos:     geo.Point{Lat: 51.51, Lng: -0.1},
			stores:  []store.Store{activeStore("s1", base, 5, "Croydon")},
			want:    InRangeOnly,
		},
		{
			name:    "empty coverage list means unrestricted",
			address: "anywhere at all",
			pos:     geo.Point{Lat: 51.51, Lng: -0.1},
			stores:  []store.Store{activeStore("s1", base, 5)},
			want:    InCoverageAndRange,
		},
		{
			name:    "coverage match is case-insensitive",
			address: "12 high street, CROYDON",
			pos:     geo.Point{Lat: 51.51, Lng: -0.1},
			stores:  []store.Store{activeStore("s1", base, 5, "Croydon")},
			want:    InCoverageAndRange,
		},
		{
			name:    "out of range",
			address: "far away",
			pos:     geo.Point{Lat: 52.5, Lng: -0.1},
			stores:  []store.Store{activeStore("s1", base, 5, "Croydon")},
			want:    OutsideRange,
		},
		{
			name:    "no stores at all",
			address: "somewhere",
			pos:     base,
			stores:  nil,
			want:    OutsideRange,
		},
		{
			name:    "only inactive stores",
			address: "somewhere",
			pos:     base,
			stores: []store.Store{{
				ID: "s1", Position: base, RadiusKm: 5, IsActive: false,
			}},
			want: OutsideRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.address, tt.pos, tt.stores)
			if got.Class != tt.want {
				t.Errorf("Resolve() class = %s, want %s", got.Class, tt.want)
			}
		})
	}
}

func TestResolve_NoStoresHasNilStore(t *testing.T) {
	res := Resolve("anywhere", geo.Point{Lat: 51.5, Lng: -0.1}, nil)
	if res.Store != nil {
		t.Errorf("expected nil store, got %+v", res.Store)
	}
	if res.Class != OutsideRange {
		t.Errorf("expected OutsideRange, got %s", res.Class)
	}
}

func TestResolve_RadiusBoundaryInclusive(t *testing.T) {
	base := geo.Point{Lat: 51.5, Lng: -0.1}
	pos := geo.Point{Lat: 51.51, Lng: -0.1}
	d := geo.HaversineKm(base, pos)

	res := Resolve("boundary case", pos, []store.Store{activeStore("s1", base, d)})
	if res.Class != InCoverageAndRange {
		t.Errorf("candidate at exactly radius must be in range, got %s (d=%f)", res.Class, d)
	}
}

func TestResolve_NearestStoreWins(t *testing.T) {
	near := activeStore("near", geo.Point{Lat: 51.5, Lng: -0.1}, 5)
	far := activeStore("far", geo.Point{Lat: 51.6, Lng: -0.1}, 50)

	res := Resolve("x", geo.Point{Lat: 51.51, Lng: -0.1}, []store.Store{far, near})
	if res.Store == nil || res.Store.ID != "near" {
		t.Fatalf("expected nearest store to win, got %+v", res.Store)
	}
}

func TestResolve_DistanceTieFirstSeenWins(t *testing.T) {
	pos := geo.Point{Lat: 51.5, Lng: -0.1}
	a := activeStore("a", geo.Point{Lat: 51.51, Lng: -0.1}, 5)
	b := activeStore("b", geo.Point{Lat: 51.49, Lng: -0.1}, 5) // same distance, opposite side

	res := Resolve("x", pos, []store.Store{a, b})
	if res.Store == nil || res.Store.ID != "a" {
		t.Fatalf("expected first-seen store on tie, got %+v", res.Store)
	}
}

func TestRank_OrdersByClassThenDistance(t *testing.T) {
	candidates := []Candidate{
		{Text: "out", Class: OutsideRange, DistanceKm: 1},
		{Text: "range-far", Class: InRangeOnly, DistanceKm: 4},
		{Text: "best-far", Class: InCoverageAndRange, DistanceKm: 3},
		{Text: "best-near", Class: InCoverageAndRange, DistanceKm: 1},
	}

	Rank(candidates)

	want := []string{"best-near", "best-far", "range-far", "out"}
	for i, w := range want {
		if candidates[i].Text != w {
			t.Fatalf("unexpected rank order: %v", candidates)
		}
	}
}

func TestRank_Stable(t *testing.T) {
	candidates := []Candidate{
		{Text: "first", Class: InRangeOnly, DistanceKm: 2.5},
		{Text: "second", Class: InRangeOnly, DistanceKm: 2.5},
		{Text: "third", Class: InRangeOnly, DistanceKm: 2.5},
	}

	Rank(candidates)

	if candidates[0].Text != "first" || candidates[1].Text != "second" || candidates[2].Text != "third" {
		t.Errorf("equal candidates must keep input order: %v", candidates)
	}
}

func TestResolve_DistanceMatchesHaversine(t *testing.T) {
	base := geo.Point{Lat: 51.5, Lng: -0.1}
	pos := geo.Point{Lat: 51.52, Lng: -0.08}
	res := Resolve("x", pos, []store.Store{activeStore("s1", base, 10)})
	want := geo.HaversineKm(pos, base)
	if math.Abs(res.DistanceKm-want) > 1e-9 {
		t.Errorf("DistanceKm = %f, want %f", res.DistanceKm, want)
	}
}
