// README: Delivery handler tests with stubbed geocoder and store directory.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tavola/internal/geo"
	"tavola/internal/http/handlers"
	"tavola/internal/maps"
	"tavola/internal/modules/delivery"
	"tavola/internal/modules/store"
)

type stubGeocoder struct {
	results []maps.GeocodeResult
	err     error
}

func (s *stubGeocoder) Geocode(_ context.Context, _ string) ([]maps.GeocodeResult, error) {
	return s.results, s.err
}

type stubDirectory struct {
	stores []store.Store
	err    error
}

func (s *stubDirectory) ListActive(_ context.Context) ([]store.Store, error) {
	return s.stores, s.err
}

func buildDeliveryRouter(g delivery.Geocoder, d delivery.StoreDirectory) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handlers.NewDeliveryHandler(delivery.NewService(g, d))
	r.GET("/api/delivery/search", h.Search)
	r.POST("/api/delivery/check", h.Check)
	return r
}

func testStore() store.Store {
	return store.Store{
		ID:             "s1",
		Name:           "Tavola Central",
		Position:       geo.Point{Lat: 51.5, Lng: -0.1},
		RadiusKm:       5,
		CoverageCities: []string{"Croydon"},
		IsActive:       true,
	}
}

func TestSearch_RanksCandidatesBestFirst(t *testing.T) {
	geocoder := &stubGeocoder{results: []maps.GeocodeResult{
		{Text: "99 Nowhere Lane", Position: geo.Point{Lat: 53.0, Lng: -0.1}},
		{Text: "12 High Street, Croydon", Position: geo.Point{Lat: 51.51, Lng: -0.1}},
	}}
	r := buildDeliveryRouter(geocoder, &stubDirectory{stores: []store.Store{testStore()}})

	req := httptest.NewRequest(http.MethodGet, "/api/delivery/search?q=high+street", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Candidates []struct {
			Text  string `json:"text"`
			Class string `json:"eligibility"`
		} `json:"candidates"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Candidates, 2)
	assert.Equal(t, "12 High Street, Croydon", resp.Candidates[0].Text)
	assert.Equal(t, "in_coverage_and_range", resp.Candidates[0].Class)
	assert.Equal(t, "outside_range", resp.Candidates[1].Class)
}

func TestSearch_MissingQuery(t *testing.T) {
	r := buildDeliveryRouter(&stubGeocoder{}, &stubDirectory{})

	req := httptest.NewRequest(http.MethodGet, "/api/delivery/search", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearch_GeocoderFailure(t *testing.T) {
	r := buildDeliveryRouter(&stubGeocoder{err: errors.New("upstream down")}, &stubDirectory{})

	req := httptest.NewRequest(http.MethodGet, "/api/delivery/search?q=x", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSearch_DirectoryFailureDegradesToOutsideRange(t *testing.T) {
	geocoder := &stubGeocoder{results: []maps.GeocodeResult{
		{Text: "12 High Street, Croydon", Position: geo.Point{Lat: 51.51, Lng: -0.1}},
	}}
	r := buildDeliveryRouter(geocoder, &stubDirectory{err: errors.New("db down")})

	req := httptest.NewRequest(http.MethodGet, "/api/delivery/search?q=x", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Candidates []struct {
			Class string `json:"eligibility"`
		} `json:"candidates"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Candidates, 1)
	assert.Equal(t, "outside_range", resp.Candidates[0].Class)
}

func doCheck(r *gin.Engine, body map[string]any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest(http.MethodPost, "/api/delivery/check", &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCheck_EligibleLocation(t *testing.T) {
	r := buildDeliveryRouter(&stubGeocoder{}, &stubDirectory{stores: []store.Store{testStore()}})

	w := doCheck(r, map[string]any{
		"address": "12 High Street, Croydon",
		"lat":     51.51,
		"lng":     -0.1,
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"store_id":"s1"`)
}

func TestCheck_OutOfRangeCarriesDistance(t *testing.T) {
	r := buildDeliveryRouter(&stubGeocoder{}, &stubDirectory{stores: []store.Store{testStore()}})

	w := doCheck(r, map[string]any{
		"address": "far away",
		"lat":     53.0,
		"lng":     -0.1,
	})

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Details struct {
			Code         string  `json:"code"`
			DistanceKm   float64 `json:"distance_km"`
			NearestStore string  `json:"nearest_store"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "no_eligible_store", resp.Details.Code)
	assert.Equal(t, "Tavola Central", resp.Details.NearestStore)
	assert.Greater(t, resp.Details.DistanceKm, 5.0)
}

func TestCheck_InvalidCoordinate(t *testing.T) {
	r := buildDeliveryRouter(&stubGeocoder{}, &stubDirectory{stores: []store.Store{testStore()}})

	w := doCheck(r, map[string]any{
		"address": "bad geocode",
		"lat":     123.0,
		"lng":     -0.1,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
