package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"tavola/internal/geo"
)

// GeocodeResult is a simplified geocoding hit: the formatted address and its position.
type GeocodeResult struct {
	Text     string
	Position geo.Point
}

// GeocodingService handles interactions with the Google Geocoding API.
type GeocodingService struct {
	client *maps.Client
	region string
}

// NewGeocodingService creates a new GeocodingService with the given API key.
// region biases results (e.g. "GB") without excluding other matches.
func NewGeocodingService(apiKey, region string) (*GeocodingService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GeocodingService{client: client, region: region}, nil
}

// Geocode resolves a free-text address into candidate positions. Results whose
// coordinates fail WGS84 validation are dropped rather than passed downstream.
func (s *GeocodingService) Geocode(ctx context.Context, query string) ([]GeocodeResult, error) {
	r := &maps.GeocodingRequest{
		Address: query,
		Region:  s.region,
	}

	resp, err := s.client.Geocode(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("geocoding api error: %w", err)
	}

	results := make([]GeocodeResult, 0, len(resp))
	for _, hit := range resp {
		p := geo.Point{Lat: hit.Geometry.Location.Lat, Lng: hit.Geometry.Location.Lng}
		if p.Validate() != nil {
			continue
		}
		results = append(results, GeocodeResult{
			Text:     hit.FormattedAddress,
			Position: p,
		})
	}
	return results, nil
}
