package service

import (
	"context"
	"errors"

	"github.com/shoplite/shoplite-go/internal/model"
	"github.com/shoplite/shoplite-go/internal/repository"
)

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrProductNotFound = errors.New("product not found")
)

// ProductStore is the catalog persistence layer.
type ProductStore interface {
	List(ctx context.Context) ([]model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id int64) error
}

// CatalogService handles product catalog business logic.
type CatalogService struct {
	store ProductStore
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(store ProductStore) *CatalogService {
	return &CatalogService{store: store}
}

// List returns all products.
func (s *CatalogService) List(ctx context.Context) ([]model.Product, error) {
	return s.store.List(ctx)
}

// Get returns a single product.
func (s *CatalogService) Get(ctx context.Context, id int64) (*model.Product, error) {
	p, err := s.store.GetByID(ctx, id)
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, ErrProductNotFound
	}
	return p, err
}

// Create adds a product to the catalog.
func (s *CatalogService) Create(ctx context.Context, req model.ProductRequest) (*model.Product, error) {
	if req.Title == "" {
		return nil, ErrTitleRequired
	}

	p := &model.Product{
		Title:       req.Title,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		Description: req.Description,
		Image:       req.Image,
	}
	if err := s.store.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update overwrites an existing product.
func (s *CatalogService) Update(ctx context.Context, id int64, req model.ProductRequest) error {
	if req.Title == "" {
		return ErrTitleRequired
	}

	p := &model.Product{
		ID:          id,
		Title:       req.Title,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		Description: req.Description,
		Image:       req.Image,
	}
	err := s.store.Update(ctx, p)
	if errors.Is(err, repository.ErrProductNotFound) {
		return ErrProductNotFound
	}
	return err
}

// Delete removes a product from the catalog.
func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	err := s.store.Delete(ctx, id)
	if errors.Is(err, repository.ErrProductNotFound) {
		return ErrProductNotFound
	}
	return err
}
