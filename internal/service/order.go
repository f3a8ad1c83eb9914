package service

import (
	"context"
	"errors"
	"time"

	"github.com/shoplite/shoplite-go/internal/model"
)

var (
	ErrCustomerRequired = errors.New("customer name and email are required")
	ErrNoItems          = errors.New("order has no items")
	ErrInvalidTotal     = errors.New("total must be greater than zero")
)

// OrderStore is the order persistence layer.
type OrderStore interface {
	Create(ctx context.Context, order *model.Order) error
	List(ctx context.Context) ([]model.Order, error)
}

// OrderService handles order business logic.
type OrderService struct {
	store OrderStore
}

// NewOrderService creates a new OrderService.
func NewOrderService(store OrderStore) *OrderService {
	return &OrderService{store: store}
}

// Create validates and stores an order. Stock is not decremented here;
// inventory reconciliation is outside this service.
func (s *OrderService) Create(ctx context.Context, req model.CreateOrderRequest) (model.CreateOrderResponse, error) {
	if req.Customer.Name == "" || req.Customer.Email == "" {
		return model.CreateOrderResponse{}, ErrCustomerRequired
	}
	if len(req.Items) == 0 {
		return model.CreateOrderResponse{}, ErrNoItems
	}
	if req.Total <= 0 {
		return model.CreateOrderResponse{}, ErrInvalidTotal
	}

	order := &model.Order{
		Customer:  req.Customer,
		Items:     req.Items,
		Total:     req.Total,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Create(ctx, order); err != nil {
		return model.CreateOrderResponse{}, err
	}

	return model.CreateOrderResponse{
		ID:      order.ID,
		Message: "order created",
	}, nil
}

// List returns all orders, newest first.
func (s *OrderService) List(ctx context.Context) ([]model.OrderResponse, error) {
	orders, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, model.OrderResponse{
			ID:        o.ID,
			Customer:  o.Customer,
			Items:     o.Items,
			Total:     o.Total,
			CreatedAt: o.CreatedAt,
		})
	}
	return out, nil
}
