// README: Cart handlers; line mutations plus the priced summary.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tavola/internal/modules/cart"
	"tavola/internal/modules/store"
)

type CartHandler struct {
	carts  *cart.Service
	stores *store.Service
}

func NewCartHandler(carts *cart.Service, stores *store.Service) *CartHandler {
	return &CartHandler{carts: carts, stores: stores}
}

func (h *CartHandler) Get(c *gin.Context) {
	cid := customerID(c)
	if cid == "" {
		writeError(c, http.StatusBadRequest, "missing customer id")
		return
	}
	out, err := h.carts.Get(c.Request.Context(), cid)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *CartHandler) AddItem(c *gin.Context) {
	cid := customerID(c)
	if cid == "" {
		writeError(c, http.StatusBadRequest, "missing customer id")
		return
	}
	var line cart.Line
	if err := c.ShouldBindJSON(&line); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	out, err := h.carts.UpsertLine(c.Request.Context(), cid, line)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type quantityReq struct {
	Quantity *int `json:"quantity"`
}

func (h *CartHandler) SetQuantity(c *gin.Context) {
	cid := customerID(c)
	if cid == "" {
		writeError(c, http.StatusBadRequest, "missing customer id")
		return
	}
	var req quantityReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		writeError(c, http.StatusBadRequest, "missing quantity")
		return
	}
	out, err := h.carts.SetLineQuantity(c.Request.Context(), cid, c.Param("productId"), *req.Quantity)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *CartHandler) SetAddOnQuantity(c *gin.Context) {
	cid := customerID(c)
	if cid == "" {
		writeError(c, http.StatusBadRequest, "missing customer id")
		return
	}
	var req quantityReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		writeError(c, http.StatusBadRequest, "missing quantity")
		return
	}
	out, err := h.carts.SetAddOnQuantity(c.Request.Context(), cid, c.Param("productId"), c.Param("addOnId"), *req.Quantity)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *CartHandler) Clear(c *gin.Context) {
	cid := customerID(c)
	if cid == "" {
		writeError(c, http.StatusBadRequest, "missing customer id")
		return
	}
	if err := h.carts.Clear(c.Request.Context(), cid); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Summary composes the full aggregate and minimum-order gate for the cart
// against one store. The frontend shows this before checkout; checkout itself
// recomputes from scratch.
func (h *CartHandler) Summary(c *gin.Context) {
	cid := customerID(c)
	if cid == "" {
		writeError(c, http.StatusBadRequest, "missing customer id")
		return
	}
	storeID := c.Query("store_id")
	if storeID == "" {
		writeError(c, http.StatusBadRequest, "missing store_id")
		return
	}
	orderType := cart.OrderType(c.DefaultQuery("order_type", string(cart.OrderTypeDelivery)))
	if orderType != cart.OrderTypeDelivery && orderType != cart.OrderTypeCollection {
		writeError(c, http.StatusBadRequest, "invalid order_type")
		return
	}
	discount := 0.0
	if raw := c.Query("discount"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			writeError(c, http.StatusBadRequest, "invalid discount")
			return
		}
		discount = v
	}

	ct, err := h.carts.Get(c.Request.Context(), cid)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	st, err := h.stores.Get(c.Request.Context(), storeID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	agg, gate := cart.Compose(ct.Lines, *st, orderType, discount)
	c.JSON(http.StatusOK, gin.H{"pricing": agg, "gate": gate})
}
