package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shoplite/shoplite-go/internal/model"
)

// OrderRepository handles order persistence operations.
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create stores an order, serializing customer and items as JSON text, and
// sets the generated ID.
func (r *OrderRepository) Create(ctx context.Context, order *model.Order) error {
	customer, err := json.Marshal(order.Customer)
	if err != nil {
		return fmt.Errorf("encoding customer: %w", err)
	}
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("encoding items: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO orders (customer, items, total, created_at) VALUES (?, ?, ?, ?)`,
		string(customer), string(items), order.Total, order.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	order.ID = id
	return nil
}

// List returns all orders, newest first.
func (r *OrderRepository) List(ctx context.Context) ([]model.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, customer, items, total, created_at FROM orders ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		var (
			o         model.Order
			customer  string
			items     string
			createdAt string
		)
		if err := rows.Scan(&o.ID, &customer, &items, &o.Total, &createdAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(customer), &o.Customer); err != nil {
			return nil, fmt.Errorf("decoding customer for order %d: %w", o.ID, err)
		}
		if err := json.Unmarshal([]byte(items), &o.Items); err != nil {
			return nil, fmt.Errorf("decoding items for order %d: %w", o.ID, err)
		}
		if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
			o.CreatedAt = ts
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
