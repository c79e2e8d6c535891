// README: Order persistence backed by PostgreSQL with optimistic status updates.
package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tavola/internal/modules/cart"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const orderColumns = `
	id, customer_id, customer_name, customer_phone, store_id, type,
	address, lat, lng, lines,
	subtotal, discount, service_fee, tax_amount, tax_rate_percent, delivery_fee, total,
	payment_method, payment_status, payment_ref, client_secret,
	status, status_version, notes, created_at, updated_at`

func (s *Store) Create(ctx context.Context, o *Order) error {
	lines, err := json.Marshal(o.Lines)
	if err != nil {
		return fmt.Errorf("encode order lines: %w", err)
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO orders (
			id, customer_id, customer_name, customer_phone, store_id, type,
			address, lat, lng, lines,
			subtotal, discount, service_fee, tax_amount, tax_rate_percent, delivery_fee, total,
			payment_method, payment_status, payment_ref, client_secret,
			status, status_version, notes, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17,
			$18, $19, $20, $21,
			$22, $23, $24, $25, $26
		)`,
		o.ID, o.CustomerID, o.CustomerName, o.CustomerPhone, o.StoreID, string(o.Type),
		o.Address, o.Position.Lat, o.Position.Lng, lines,
		o.Pricing.Subtotal, o.Pricing.Discount, o.Pricing.ServiceFee, o.Pricing.TaxAmount,
		o.Pricing.TaxRatePercent, o.Pricing.DeliveryFee, o.Pricing.Total,
		string(o.PaymentMethod), string(o.PaymentStatus), o.PaymentRef, o.ClientSecret,
		string(o.Status), o.StatusVersion, o.Notes, o.CreatedAt, o.UpdatedAt,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id string) (*Order, error) {
	row := s.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

// UpdateStatus applies a transition only when the stored status and version
// still match what the caller read; a false return means a concurrent writer
// won and the caller should re-read.
func (s *Store) UpdateStatus(ctx context.Context, id string, from, to Status, version int) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE orders
		SET status = $1,
		    status_version = status_version + 1,
		    updated_at = NOW()
		WHERE id = $2 AND status = $3 AND status_version = $4`,
		string(to), id, string(from), version,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) AppendEvent(ctx context.Context, e *Event) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO order_status_events (
			order_id, from_status, to_status, actor_type, created_at
		) VALUES ($1, $2, $3, $4, $5)`,
		e.OrderID, string(e.From), string(e.To), e.ActorType, e.CreatedAt,
	)
	return err
}

func (s *Store) ListByStatus(ctx context.Context, status Status) ([]Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	args := []any{}
	if status != "" {
		q = `SELECT ` + orderColumns + ` FROM orders WHERE status = $1 ORDER BY created_at DESC`
		args = append(args, string(status))
	}
	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (s *Store) ListEvents(ctx context.Context, orderID string) ([]Event, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, order_id, from_status, to_status, actor_type, created_at
		FROM order_status_events
		WHERE order_id = $1
		ORDER BY id`, orderID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		var from, to string
		if err := rows.Scan(&e.ID, &e.OrderID, &from, &to, &e.ActorType, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.From, e.To = Status(from), Status(to)
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	var typ, method, payStatus, status string
	var lines []byte

	err := row.Scan(
		&o.ID, &o.CustomerID, &o.CustomerName, &o.CustomerPhone, &o.StoreID, &typ,
		&o.Address, &o.Position.Lat, &o.Position.Lng, &lines,
		&o.Pricing.Subtotal, &o.Pricing.Discount, &o.Pricing.ServiceFee, &o.Pricing.TaxAmount,
		&o.Pricing.TaxRatePercent, &o.Pricing.DeliveryFee, &o.Pricing.Total,
		&method, &payStatus, &o.PaymentRef, &o.ClientSecret,
		&status, &o.StatusVersion, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	o.Type = cart.OrderType(typ)
	o.PaymentMethod = PaymentMethod(method)
	o.PaymentStatus = PaymentStatus(payStatus)
	o.Status = Status(status)

	if len(lines) > 0 {
		if err := json.Unmarshal(lines, &o.Lines); err != nil {
			return nil, fmt.Errorf("decode order lines: %w", err)
		}
	}
	return &o, nil
}
