// README: Store handlers; public active list plus admin CRUD.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tavola/internal/geo"
	"tavola/internal/modules/store"
)

type StoreHandler struct {
	stores *store.Service
}

func NewStoreHandler(svc *store.Service) *StoreHandler {
	return &StoreHandler{stores: svc}
}

func (h *StoreHandler) ListActive(c *gin.Context) {
	out, err := h.stores.ListActive(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stores": out})
}

func (h *StoreHandler) List(c *gin.Context) {
	out, err := h.stores.List(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stores": out})
}

func (h *StoreHandler) Get(c *gin.Context) {
	out, err := h.stores.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type storeReq struct {
	Name           string   `json:"name"`
	Address        string   `json:"address"`
	Lat            float64  `json:"lat"`
	Lng            float64  `json:"lng"`
	RadiusKm       float64  `json:"radius_km"`
	CoverageCities []string `json:"coverage_cities"`
	DeliveryFee    float64  `json:"delivery_fee"`
	ServiceFee     float64  `json:"service_fee"`
	MinimumOrder   float64  `json:"minimum_order"`
	TaxRatePercent float64  `json:"tax_rate_percent"`
	IsActive       bool     `json:"is_active"`
}

func (r storeReq) command(id string) store.UpsertCommand {
	return store.UpsertCommand{
		ID:             id,
		Name:           r.Name,
		Address:        r.Address,
		Position:       geo.Point{Lat: r.Lat, Lng: r.Lng},
		RadiusKm:       r.RadiusKm,
		CoverageCities: r.CoverageCities,
		DeliveryFee:    r.DeliveryFee,
		ServiceFee:     r.ServiceFee,
		MinimumOrder:   r.MinimumOrder,
		TaxRatePercent: r.TaxRatePercent,
		IsActive:       r.IsActive,
	}
}

func (h *StoreHandler) Create(c *gin.Context) {
	var req storeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	out, err := h.stores.Create(c.Request.Context(), req.command(""))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *StoreHandler) Update(c *gin.Context) {
	var req storeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	out, err := h.stores.Update(c.Request.Context(), req.command(c.Param("id")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *StoreHandler) Deactivate(c *gin.Context) {
	if err := h.stores.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
