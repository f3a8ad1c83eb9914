package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shoplite/shoplite-go/internal/model"
)

var ErrProductNotFound = errors.New("product not found")

// ProductRepository handles catalog persistence operations.
type ProductRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, title, price, COALESCE(category, ''), stock, COALESCE(description, ''), COALESCE(image, '')`

// List returns all catalog products.
func (r *ProductRepository) List(ctx context.Context) ([]model.Product, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Price, &p.Category, &p.Stock, &p.Description, &p.Image); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetByID retrieves a single product.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	p := &model.Product{}
	err := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id).Scan(
		&p.ID, &p.Title, &p.Price, &p.Category, &p.Stock, &p.Description, &p.Image,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// Create inserts a product and sets the generated ID.
func (r *ProductRepository) Create(ctx context.Context, p *model.Product) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO products (title, price, category, stock, description, image) VALUES (?, ?, ?, ?, ?, ?)`,
		p.Title, p.Price, p.Category, p.Stock, p.Description, p.Image)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

// Update overwrites a product's fields. Returns ErrProductNotFound when no
// row matches.
func (r *ProductRepository) Update(ctx context.Context, p *model.Product) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE products SET title = ?, price = ?, category = ?, stock = ?, description = ?, image = ? WHERE id = ?`,
		p.Title, p.Price, p.Category, p.Stock, p.Description, p.Image, p.ID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Delete removes a product. Returns ErrProductNotFound when no row matches.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}
