// README: Order aggregate, status definitions and the transition table.
package order

import (
	"fmt"
	"time"

	"tavola/internal/geo"
	"tavola/internal/modules/cart"
)

type Status string

const (
	StatusNone           Status = "none"
	StatusPending        Status = "pending"
	StatusAccepted       Status = "accepted"
	StatusConfirmed      Status = "confirmed"
	StatusPreparing      Status = "preparing"
	StatusReady          Status = "ready"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
	StatusRejected       Status = "rejected"
)

type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodCash PaymentMethod = "cash"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// AllowedTransitions represents the order state flow (diagram) as code.
// cancelled and rejected are reachable from every non-terminal state; the three
// terminal states have no outgoing edges at all.
var AllowedTransitions = map[Status][]Status{
	StatusPending:        {StatusAccepted, StatusConfirmed, StatusCancelled, StatusRejected},
	StatusAccepted:       {StatusPreparing, StatusCancelled, StatusRejected},
	StatusConfirmed:      {StatusPreparing, StatusCancelled, StatusRejected},
	StatusPreparing:      {StatusReady, StatusCancelled, StatusRejected},
	StatusReady:          {StatusOutForDelivery, StatusCancelled, StatusRejected},
	StatusOutForDelivery: {StatusDelivered, StatusCancelled, StatusRejected},
}

// forwardPath is the fixed map the admin "advance" action walks. Advancing
// never skips a step and never picks an arbitrary target; both entry states
// converge on preparing.
var forwardPath = map[Status]Status{
	StatusPending:        StatusConfirmed,
	StatusAccepted:       StatusPreparing,
	StatusConfirmed:      StatusPreparing,
	StatusPreparing:      StatusReady,
	StatusReady:          StatusOutForDelivery,
	StatusOutForDelivery: StatusDelivered,
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

// NextStatus returns the next happy-path status, or false from a terminal state.
func NextStatus(from Status) (Status, bool) {
	next, ok := forwardPath[from]
	return next, ok
}

func IsTerminal(s Status) bool {
	_, ok := AllowedTransitions[s]
	return !ok
}

// CanCustomerCancel bounds the customer cancellation window: once preparation
// has started the kitchen owns the order.
func CanCustomerCancel(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusAccepted:
		return true
	}
	return false
}

// InvalidTransitionError reports an illegal lifecycle change with both ends of
// the attempted transition, so callers can render the current and attempted
// status. The machine never silently no-ops.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	if e.To == "" {
		return fmt.Sprintf("order in status %q cannot advance", e.From)
	}
	return fmt.Sprintf("invalid order transition %q -> %q", e.From, e.To)
}

// Order is a placed order. Pricing is a snapshot frozen at creation time: later
// store fee changes never alter it. Status is mutated only through the service's
// transition methods.
type Order struct {
	ID            string         `json:"id"`
	CustomerID    string         `json:"customer_id"`
	CustomerName  string         `json:"customer_name"`
	CustomerPhone string         `json:"customer_phone"`
	StoreID       string         `json:"store_id"`
	Type          cart.OrderType `json:"type"`
	Address       string         `json:"address,omitempty"`
	Position      geo.Point      `json:"position,omitempty"`
	Lines         []cart.Line    `json:"lines"`
	Pricing       cart.Aggregate `json:"pricing"`
	PaymentMethod PaymentMethod  `json:"payment_method"`
	PaymentStatus PaymentStatus  `json:"payment_status"`
	PaymentRef    string         `json:"payment_ref,omitempty"`
	ClientSecret  string         `json:"client_secret,omitempty"`
	Status        Status         `json:"status"`
	StatusVersion int            `json:"-"`
	Notes         string         `json:"notes,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Event records one status change. The event log is the audit trail the kitchen
// and delivery views read; nothing else mutates status.
type Event struct {
	ID        int64     `json:"id"`
	OrderID   string    `json:"order_id"`
	From      Status    `json:"from"`
	To        Status    `json:"to"`
	ActorType string    `json:"actor_type"`
	CreatedAt time.Time `json:"created_at"`
}
