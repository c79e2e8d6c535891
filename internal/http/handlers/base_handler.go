// README: Base handler utilities (JSON helpers, domain error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tavola/internal/geo"
	"tavola/internal/modules/cart"
	"tavola/internal/modules/delivery"
	"tavola/internal/modules/order"
	"tavola/internal/modules/store"
)

type errorResponse struct {
	Error   string         `json:"error"`
	Details map[string]any `json:"details,omitempty"`
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, errorResponse{Error: msg})
}

// writeDomainError maps the error taxonomy onto HTTP statuses. Taxonomy errors
// are user-facing and carry their data in the response; anything unknown is a
// plain 500.
func writeDomainError(c *gin.Context, err error) {
	var belowMin *cart.BelowMinimumOrderError
	var noStore *delivery.NoEligibleStoreError
	var badTransition *order.InvalidTransitionError

	switch {
	case errors.As(err, &belowMin):
		c.JSON(http.StatusUnprocessableEntity, errorResponse{
			Error: err.Error(),
			Details: map[string]any{
				"code":      "below_minimum_order",
				"minimum":   belowMin.Minimum,
				"shortfall": belowMin.Shortfall,
			},
		})
	case errors.As(err, &noStore):
		c.JSON(http.StatusUnprocessableEntity, errorResponse{
			Error: err.Error(),
			Details: map[string]any{
				"code":          "no_eligible_store",
				"distance_km":   noStore.DistanceKm,
				"nearest_store": noStore.NearestStore,
			},
		})
	case errors.As(err, &badTransition):
		c.JSON(http.StatusConflict, errorResponse{
			Error: err.Error(),
			Details: map[string]any{
				"code":             "invalid_transition",
				"current_status":   badTransition.From,
				"attempted_status": badTransition.To,
			},
		})
	case errors.Is(err, geo.ErrInvalidCoordinate),
		errors.Is(err, cart.ErrBadRequest),
		errors.Is(err, order.ErrBadRequest),
		errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, store.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, order.ErrNotFound), errors.Is(err, store.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, order.ErrConflict):
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

// customerID reads the customer identity header. Authentication itself is
// out of scope; the API only needs a stable key for the cart and orders.
func customerID(c *gin.Context) string {
	return c.GetHeader("X-Customer-ID")
}
