// README: Address search and delivery eligibility check handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tavola/internal/geo"
	"tavola/internal/modules/delivery"
)

type DeliveryHandler struct {
	delivery *delivery.Service
}

func NewDeliveryHandler(svc *delivery.Service) *DeliveryHandler {
	return &DeliveryHandler{delivery: svc}
}

type candidateResp struct {
	Text       string    `json:"text"`
	Position   geo.Point `json:"position"`
	DistanceKm float64   `json:"distance_km"`
	Class      string    `json:"eligibility"`
}

// Search geocodes the q parameter and returns candidates ranked best-first.
func (h *DeliveryHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		writeError(c, http.StatusBadRequest, "missing query")
		return
	}

	candidates, err := h.delivery.Search(c.Request.Context(), query)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	out := make([]candidateResp, 0, len(candidates))
	for _, cand := range candidates {
		out = append(out, candidateResp{
			Text:       cand.Text,
			Position:   cand.Position,
			DistanceKm: cand.DistanceKm,
			Class:      cand.Class.String(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"candidates": out})
}

type checkReq struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// Check runs the hard eligibility decision for a confirmed location.
func (h *DeliveryHandler) Check(c *gin.Context) {
	var req checkReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	res, err := h.delivery.Check(c.Request.Context(), delivery.Location{
		Address:  req.Address,
		Position: geo.Point{Lat: req.Lat, Lng: req.Lng},
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"store_id":    res.Store.ID,
		"store_name":  res.Store.Name,
		"distance_km": res.DistanceKm,
		"eligibility": res.Class.String(),
	})
}
