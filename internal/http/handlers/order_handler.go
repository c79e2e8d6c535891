// README: Order handlers; customer checkout/cancel plus admin lifecycle actions.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tavola/internal/geo"
	"tavola/internal/modules/cart"
	"tavola/internal/modules/delivery"
	"tavola/internal/modules/order"
)

type OrderHandler struct {
	orders *order.Service
}

func NewOrderHandler(svc *order.Service) *OrderHandler {
	return &OrderHandler{orders: svc}
}

type checkoutReq struct {
	CustomerName  string  `json:"customer_name"`
	CustomerPhone string  `json:"customer_phone"`
	Type          string  `json:"type"`
	Address       string  `json:"address"`
	Lat           float64 `json:"lat"`
	Lng           float64 `json:"lng"`
	StoreID       string  `json:"store_id"`
	PaymentMethod string  `json:"payment_method"`
	Discount      float64 `json:"discount"`
	Notes         string  `json:"notes"`
}

func (h *OrderHandler) Checkout(c *gin.Context) {
	cid := customerID(c)
	if cid == "" {
		writeError(c, http.StatusBadRequest, "missing customer id")
		return
	}
	var req checkoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	cmd := order.CheckoutCommand{
		CustomerID:    cid,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Type:          cart.OrderType(req.Type),
		StoreID:       req.StoreID,
		PaymentMethod: order.PaymentMethod(req.PaymentMethod),
		Discount:      req.Discount,
		Notes:         req.Notes,
	}
	if cmd.Type == cart.OrderTypeDelivery {
		cmd.Location = &delivery.Location{
			Address:  req.Address,
			Position: geo.Point{Lat: req.Lat, Lng: req.Lng},
		}
	}

	o, err := h.orders.Checkout(c.Request.Context(), cmd)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

func (h *OrderHandler) Get(c *gin.Context) {
	o, err := h.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// CustomerCancel applies the customer cancellation window; once preparation has
// started it maps to 409 via InvalidTransitionError.
func (h *OrderHandler) CustomerCancel(c *gin.Context) {
	o, err := h.orders.Cancel(c.Request.Context(), c.Param("id"), order.ActorCustomer)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) List(c *gin.Context) {
	out, err := h.orders.ListByStatus(c.Request.Context(), order.Status(c.Query("status")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": out})
}

func (h *OrderHandler) Advance(c *gin.Context) {
	o, err := h.orders.Advance(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) Reject(c *gin.Context) {
	o, err := h.orders.Reject(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) AdminCancel(c *gin.Context) {
	o, err := h.orders.Cancel(c.Request.Context(), c.Param("id"), order.ActorAdmin)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) Events(c *gin.Context) {
	events, err := h.orders.Events(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}
