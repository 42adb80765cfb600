package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("product not found")

func Fetch(ctx context.Context, ext sqlx.ExtContext, productID string) (Product, error) {
	const q = `
	SELECT product_id, title, description, price, created_at, updated_at
	FROM products
	WHERE product_id = $1`

	var p Product
	if err := sqlx.GetContext(ctx, ext, &p, q, productID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, fmt.Errorf("selecting product[%s]: %w", productID, err)
	}

	return p, nil
}

func FetchAll(ctx context.Context, ext sqlx.ExtContext) ([]Product, error) {
	const q = `
	SELECT product_id, title, description, price, created_at, updated_at
	FROM products
	ORDER BY title`

	ps := []Product{}
	if err := sqlx.SelectContext(ctx, ext, &ps, q); err != nil {
		return nil, fmt.Errorf("selecting products: %w", err)
	}

	return ps, nil
}

func Create(ctx context.Context, ext sqlx.ExtContext, p Product) error {
	const q = `
	INSERT INTO products (product_id, title, description, price, created_at, updated_at)
	VALUES (:product_id, :title, :description, :price, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, ext, q, p); err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}

	return nil
}
