package order

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func Create(ctx context.Context, ext sqlx.ExtContext, ord Order) error {
	const q = `
	INSERT INTO orders (order_id, user_id, cart_id, first_name, last_name, address, comment, status, total, created_at, updated_at)
	VALUES (:order_id, :user_id, :cart_id, :first_name, :last_name, :address, :comment, :status, :total, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, ext, q, ord); err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}

	return nil
}

func FetchByUser(ctx context.Context, ext sqlx.ExtContext, userID string) ([]Order, error) {
	const q = `
	SELECT order_id, user_id, cart_id, first_name, last_name, address, comment, status, total, created_at, updated_at
	FROM orders
	WHERE user_id = $1
	ORDER BY created_at DESC`

	ords := []Order{}
	if err := sqlx.SelectContext(ctx, ext, &ords, q, userID); err != nil {
		return nil, fmt.Errorf("selecting orders of user[%s]: %w", userID, err)
	}

	return ords, nil
}
