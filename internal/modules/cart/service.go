// README: Cart service; line mutations with read-modify-write against the store.
package cart

import (
	"context"
	"errors"
	"time"
)

var ErrBadRequest = errors.New("bad cart request")

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context, customerID string) (Cart, error) {
	return s.store.Get(ctx, customerID)
}

// UpsertLine adds a line, merging quantities into an existing line with the same
// product and add-on selection.
func (s *Service) UpsertLine(ctx context.Context, customerID string, l Line) (Cart, error) {
	if l.ProductID == "" || l.Quantity < 1 {
		return Cart{}, ErrBadRequest
	}
	for _, a := range l.AddOns {
		if a.AddOnID == "" || a.Quantity < 1 {
			return Cart{}, ErrBadRequest
		}
	}

	c, err := s.store.Get(ctx, customerID)
	if err != nil {
		return Cart{}, err
	}
	c.Lines = upsertLine(c.Lines, l)
	return s.save(ctx, c)
}

// SetLineQuantity sets a line's quantity; zero removes the line.
func (s *Service) SetLineQuantity(ctx context.Context, customerID, productID string, qty int) (Cart, error) {
	if productID == "" || qty < 0 {
		return Cart{}, ErrBadRequest
	}
	c, err := s.store.Get(ctx, customerID)
	if err != nil {
		return Cart{}, err
	}
	c.Lines = setLineQuantity(c.Lines, productID, qty)
	return s.save(ctx, c)
}

// SetAddOnQuantity sets one add-on's quantity on a line; zero removes the add-on.
func (s *Service) SetAddOnQuantity(ctx context.Context, customerID, productID, addOnID string, qty int) (Cart, error) {
	if productID == "" || addOnID == "" || qty < 0 {
		return Cart{}, ErrBadRequest
	}
	c, err := s.store.Get(ctx, customerID)
	if err != nil {
		return Cart{}, err
	}
	c.Lines = setAddOnQuantity(c.Lines, productID, addOnID, qty)
	return s.save(ctx, c)
}

func (s *Service) Clear(ctx context.Context, customerID string) error {
	return s.store.Delete(ctx, customerID)
}

func (s *Service) save(ctx context.Context, c Cart) (Cart, error) {
	c.UpdatedAt = time.Now()
	if err := s.store.Save(ctx, c); err != nil {
		return Cart{}, err
	}
	return c, nil
}
