package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

// NewDB opens a database connection pool. The default driver is sqlite3
// with a local file store; mysql is supported for deployments that need it.
func NewDB(driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if driver == "sqlite3" {
		// A single writer avoids SQLITE_BUSY under concurrent requests.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return db, nil
}

// InitSchema creates the users, products and orders tables if they do not
// exist yet. Email uniqueness is enforced here; registration relies on this
// index for its atomic check-then-insert.
func InitSchema(ctx context.Context, db *sql.DB, driver string) error {
	userPK := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if driver == "mysql" {
		userPK = "BIGINT PRIMARY KEY AUTO_INCREMENT"
	}

	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS users (
			id %s,
			name TEXT NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			role VARCHAR(16) NOT NULL DEFAULT 'user',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`, userPK),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS products (
			id %s,
			title TEXT NOT NULL,
			price REAL NOT NULL DEFAULT 0,
			category TEXT,
			stock INTEGER NOT NULL DEFAULT 0,
			description TEXT,
			image TEXT
		)`, userPK),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS orders (
			id %s,
			customer TEXT NOT NULL,
			items TEXT NOT NULL,
			total REAL NOT NULL,
			created_at TEXT NOT NULL
		)`, userPK),
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}

// SeedProducts inserts the demo catalog on first boot, when the products
// table is empty.
func SeedProducts(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seed := []struct {
		title       string
		price       float64
		category    string
		stock       int
		description string
	}{
		{"Casual T-Shirt", 19.99, "Clothing", 12, "Comfortable cotton t-shirt."},
		{"Running Sneakers", 79.99, "Footwear", 8, "Lightweight running shoes."},
		{"Wireless Headphones", 129.99, "Electronics", 5, "Noise-cancelling over-ear headphones."},
	}

	for _, p := range seed {
		_, err := db.ExecContext(ctx,
			`INSERT INTO products (title, price, category, stock, description) VALUES (?, ?, ?, ?, ?)`,
			p.title, p.price, p.category, p.stock, p.description)
		if err != nil {
			return fmt.Errorf("seeding products: %w", err)
		}
	}
	return nil
}
