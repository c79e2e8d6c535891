// README: Order service; checkout with pricing snapshot plus lifecycle transitions.
package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"tavola/internal/modules/cart"
	"tavola/internal/modules/delivery"
	"tavola/internal/modules/store"
	"tavola/internal/payment"
)

var (
	ErrNotFound   = errors.New("order not found")
	ErrBadRequest = errors.New("bad order request")
	ErrEmptyCart  = errors.New("cart is empty")
	ErrConflict   = errors.New("order state conflict")
)

const (
	ActorCustomer = "customer"
	ActorAdmin    = "admin"
)

// Carts is the slice of the cart module checkout consumes.
type Carts interface {
	Get(ctx context.Context, customerID string) (cart.Cart, error)
	Clear(ctx context.Context, customerID string) error
}

// EligibilityChecker yields the authoritative serving store for a delivery
// location, or an error when no store can serve it.
type EligibilityChecker interface {
	Check(ctx context.Context, loc delivery.Location) (delivery.Resolution, error)
}

// StoreDirectory resolves the serving store for collection orders.
type StoreDirectory interface {
	Get(ctx context.Context, id string) (*store.Store, error)
}

// Payments registers a card payment and hands back the client secret the
// frontend confirms with. Cash orders never touch it.
type Payments interface {
	CreateIntent(ctx context.Context, amount float64, orderID string) (payment.Intent, error)
}

type Service struct {
	store       *Store
	carts       Carts
	eligibility EligibilityChecker
	stores      StoreDirectory
	payments    Payments
}

func NewService(st *Store, carts Carts, eligibility EligibilityChecker, stores StoreDirectory, payments Payments) *Service {
	return &Service{store: st, carts: carts, eligibility: eligibility, stores: stores, payments: payments}
}

type CheckoutCommand struct {
	CustomerID    string
	CustomerName  string
	CustomerPhone string
	Type          cart.OrderType
	Location      *delivery.Location // required for delivery orders
	StoreID       string             // required for collection orders
	PaymentMethod PaymentMethod
	Discount      float64
	Notes         string
}

// Checkout turns the customer's cart into an order. Eligibility is enforced for
// delivery orders, the minimum-order gate blocks rather than warns, and the
// aggregate computed here is frozen onto the order as its pricing snapshot.
func (s *Service) Checkout(ctx context.Context, cmd CheckoutCommand) (*Order, error) {
	if cmd.CustomerID == "" || cmd.CustomerName == "" || cmd.CustomerPhone == "" {
		return nil, ErrBadRequest
	}
	if cmd.PaymentMethod != PaymentMethodCard && cmd.PaymentMethod != PaymentMethodCash {
		return nil, ErrBadRequest
	}

	c, err := s.carts.Get(ctx, cmd.CustomerID)
	if err != nil {
		return nil, err
	}
	if len(c.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	var servingStore *store.Store
	var loc delivery.Location

	switch cmd.Type {
	case cart.OrderTypeDelivery:
		if cmd.Location == nil {
			return nil, ErrBadRequest
		}
		loc = *cmd.Location
		res, err := s.eligibility.Check(ctx, loc)
		if err != nil {
			return nil, err
		}
		servingStore = res.Store
	case cart.OrderTypeCollection:
		if cmd.StoreID == "" {
			return nil, ErrBadRequest
		}
		servingStore, err = s.stores.Get(ctx, cmd.StoreID)
		if err != nil {
			return nil, err
		}
	default:
		return nil, ErrBadRequest
	}

	agg, gate := cart.Compose(c.Lines, *servingStore, cmd.Type, cmd.Discount)
	if !gate.MeetsMinimum {
		return nil, &cart.BelowMinimumOrderError{
			Minimum:   servingStore.MinimumOrder,
			Shortfall: gate.Shortfall,
		}
	}

	now := time.Now()
	o := &Order{
		ID:            uuid.NewString(),
		CustomerID:    cmd.CustomerID,
		CustomerName:  cmd.CustomerName,
		CustomerPhone: cmd.CustomerPhone,
		StoreID:       servingStore.ID,
		Type:          cmd.Type,
		Address:       loc.Address,
		Position:      loc.Position,
		Lines:         c.Lines,
		Pricing:       agg,
		PaymentMethod: cmd.PaymentMethod,
		PaymentStatus: PaymentStatusPending,
		Status:        StatusPending,
		Notes:         cmd.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if cmd.PaymentMethod == PaymentMethodCard {
		intent, err := s.payments.CreateIntent(ctx, agg.Total, o.ID)
		if err != nil {
			return nil, err
		}
		o.PaymentRef = intent.ID
		o.ClientSecret = intent.ClientSecret
	}

	if err := s.store.Create(ctx, o); err != nil {
		return nil, err
	}
	_ = s.store.AppendEvent(ctx, &Event{
		OrderID:   o.ID,
		From:      StatusNone,
		To:        StatusPending,
		ActorType: ActorCustomer,
		CreatedAt: now,
	})

	// A failed cart clear is not worth failing a placed order over.
	_ = s.carts.Clear(ctx, cmd.CustomerID)

	return o, nil
}

// Advance moves an order one step along the fixed forward path. The target is
// always computed from the map, never supplied by the caller.
func (s *Service) Advance(ctx context.Context, id string) (*Order, error) {
	o, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	next, ok := NextStatus(o.Status)
	if !ok {
		return nil, &InvalidTransitionError{From: o.Status}
	}
	return s.transition(ctx, o, next, ActorAdmin)
}

// Cancel applies a cancellation. Customers may cancel only before preparation
// starts; admins may cancel any non-terminal order.
func (s *Service) Cancel(ctx context.Context, id, actor string) (*Order, error) {
	o, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor == ActorCustomer && !CanCustomerCancel(o.Status) {
		return nil, &InvalidTransitionError{From: o.Status, To: StatusCancelled}
	}
	if !CanTransition(o.Status, StatusCancelled) {
		return nil, &InvalidTransitionError{From: o.Status, To: StatusCancelled}
	}
	return s.transition(ctx, o, StatusCancelled, actor)
}

// Reject is the admin-only terminal refusal, distinct from a cancellation.
func (s *Service) Reject(ctx context.Context, id string) (*Order, error) {
	o, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(o.Status, StatusRejected) {
		return nil, &InvalidTransitionError{From: o.Status, To: StatusRejected}
	}
	return s.transition(ctx, o, StatusRejected, ActorAdmin)
}

func (s *Service) transition(ctx context.Context, o *Order, to Status, actor string) (*Order, error) {
	if !CanTransition(o.Status, to) {
		return nil, &InvalidTransitionError{From: o.Status, To: to}
	}
	ok, err := s.store.UpdateStatus(ctx, o.ID, o.Status, to, o.StatusVersion)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrConflict
	}
	_ = s.store.AppendEvent(ctx, &Event{
		OrderID:   o.ID,
		From:      o.Status,
		To:        to,
		ActorType: actor,
		CreatedAt: time.Now(),
	})
	return s.store.Get(ctx, o.ID)
}

func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) ListByStatus(ctx context.Context, status Status) ([]Order, error) {
	return s.store.ListByStatus(ctx, status)
}

func (s *Service) Events(ctx context.Context, id string) ([]Event, error) {
	return s.store.ListEvents(ctx, id)
}
