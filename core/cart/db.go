package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexej1900/cart-api/validate"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// ErrNotFound reports that no open cart resolves for a user. Readers map
// it to absence, never to a failure.
var ErrNotFound = errors.New("cart not found")

// Fetch returns the user's open cart row without its items.
func Fetch(ctx context.Context, ext sqlx.ExtContext, userID string) (Cart, error) {
	if userID == "" {
		return Cart{}, ErrNotFound
	}

	const q = `
	SELECT cart_id, user_id, status, created_at, updated_at
	FROM carts
	WHERE user_id = $1 AND status = $2`

	var c Cart
	if err := sqlx.GetContext(ctx, ext, &c, q, userID, Open); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Cart{}, ErrNotFound
		}
		return Cart{}, fmt.Errorf("selecting open cart of user[%s]: %w", userID, err)
	}

	return c, nil
}

// FetchItems returns the cart's line items with catalog display fields
// joined in.
func FetchItems(ctx context.Context, ext sqlx.ExtContext, cartID string) ([]Item, error) {
	const q = `
	SELECT ci.product_id, ci.count, p.title, p.description, p.price
	FROM cart_items AS ci
	JOIN products AS p ON p.product_id = ci.product_id
	WHERE ci.cart_id = $1`

	var rows []struct {
		ProductID   string `db:"product_id"`
		Count       int    `db:"count"`
		Title       string `db:"title"`
		Description string `db:"description"`
		Price       int    `db:"price"`
	}
	if err := sqlx.SelectContext(ctx, ext, &rows, q, cartID); err != nil {
		return nil, fmt.Errorf("selecting items of cart[%s]: %w", cartID, err)
	}

	items := make([]Item, 0, len(rows))
	for _, r := range rows {
		items = append(items, Item{
			Product: ItemProduct{
				ID:          r.ProductID,
				Title:       r.Title,
				Description: r.Description,
				Price:       r.Price,
			},
			Count: r.Count,
		})
	}

	return items, nil
}

// FetchByUser returns the user's open cart hydrated with its items.
func FetchByUser(ctx context.Context, ext sqlx.ExtContext, userID string) (Cart, error) {
	c, err := Fetch(ctx, ext, userID)
	if err != nil {
		return Cart{}, err
	}

	if c.Items, err = FetchItems(ctx, ext, c.ID); err != nil {
		return Cart{}, err
	}

	return c, nil
}

// Create inserts a fresh open cart for the user and returns it with the
// database-generated timestamps.
func Create(ctx context.Context, ext sqlx.ExtContext, userID string) (Cart, error) {
	c := Cart{
		ID:     validate.GenerateID(),
		UserID: userID,
		Status: Open,
		Items:  []Item{},
	}

	const q = `
	INSERT INTO carts (cart_id, user_id, status)
	VALUES ($1, $2, $3)
	RETURNING created_at, updated_at`

	row := ext.QueryRowxContext(ctx, q, c.ID, c.UserID, c.Status)
	if err := row.Scan(&c.CreatedAt, &c.UpdatedAt); err != nil {
		return Cart{}, fmt.Errorf("inserting cart for user[%s]: %w", userID, err)
	}

	return c, nil
}

// FetchOrCreate resolves the user's open cart, creating one when absent.
// Two concurrent calls can both attempt the insert; the loser hits the
// partial unique index on (user_id) WHERE status = 'open' and re-reads the
// winner's row, so callers always observe a single open cart.
func FetchOrCreate(ctx context.Context, ext sqlx.ExtContext, userID string) (Cart, error) {
	if userID == "" {
		return Cart{}, ErrNotFound
	}

	c, err := FetchByUser(ctx, ext, userID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Cart{}, err
	}

	c, err = Create(ctx, ext, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return FetchByUser(ctx, ext, userID)
		}
		return Cart{}, err
	}

	return c, nil
}

// UpsertItem stores the absolute count for (cart, product) as a single
// atomic statement. A plain insert-or-read-then-write would lose updates
// under concurrent requests for the same product.
func UpsertItem(ctx context.Context, ext sqlx.ExtContext, cartID string, productID string, count int) error {
	const q = `
	INSERT INTO cart_items (cart_id, product_id, count)
	VALUES ($1, $2, $3)
	ON CONFLICT (cart_id, product_id)
	DO UPDATE SET count = EXCLUDED.count, updated_at = now()`

	if _, err := ext.ExecContext(ctx, q, cartID, productID, count); err != nil {
		return fmt.Errorf("upserting item[%s] of cart[%s]: %w", productID, cartID, err)
	}

	return nil
}

// DeleteItem removes the (cart, product) row. Absence is not an error.
func DeleteItem(ctx context.Context, ext sqlx.ExtContext, cartID string, productID string) error {
	const q = `
	DELETE FROM cart_items
	WHERE cart_id = $1 AND product_id = $2`

	if _, err := ext.ExecContext(ctx, q, cartID, productID); err != nil {
		return fmt.Errorf("deleting item[%s] of cart[%s]: %w", productID, cartID, err)
	}

	return nil
}

// Delete removes every cart of the user regardless of status; items go
// with them through the cascade. Callers wrap it in a transaction.
func Delete(ctx context.Context, ext sqlx.ExtContext, userID string) error {
	const q = `
	DELETE FROM carts
	WHERE user_id = $1`

	if _, err := ext.ExecContext(ctx, q, userID); err != nil {
		return fmt.Errorf("deleting carts of user[%s]: %w", userID, err)
	}

	return nil
}

// UpdateStatus flips the cart status inside the caller-supplied transaction
// and returns the persisted value. Checkout runs it in the same transaction
// as the order insert so both commit or roll back together.
func UpdateStatus(ctx context.Context, ext sqlx.ExtContext, cartID string, status Status) (Status, error) {
	const q = `
	UPDATE carts
	SET status = $2, updated_at = now()
	WHERE cart_id = $1
	RETURNING status`

	var persisted Status
	row := ext.QueryRowxContext(ctx, q, cartID, status)
	if err := row.Scan(&persisted); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("updating status of cart[%s]: %w", cartID, err)
	}

	return persisted, nil
}

// Update applies one item delta to the user's open cart, creating the cart
// when absent. The returned cart carries the refreshed updated_at and the
// item list rebuilt from the pre-write snapshot (see mergeItems).
func Update(ctx context.Context, ext sqlx.ExtContext, userID string, upd ItemUpdate) (Cart, error) {
	c, err := FetchOrCreate(ctx, ext, userID)
	if err != nil {
		return Cart{}, err
	}
	if c.ID == "" {
		return Cart{}, ErrNotFound
	}

	if upd.Count > 0 {
		err = UpsertItem(ctx, ext, c.ID, upd.Product.ID, upd.Count)
	} else {
		err = DeleteItem(ctx, ext, c.ID, upd.Product.ID)
	}
	if err != nil {
		return Cart{}, err
	}

	if c.UpdatedAt, err = touch(ctx, ext, c.ID); err != nil {
		return Cart{}, err
	}

	c.Items = mergeItems(c.Items, upd)

	return c, nil
}

func touch(ctx context.Context, ext sqlx.ExtContext, cartID string) (time.Time, error) {
	const q = `
	UPDATE carts
	SET updated_at = now()
	WHERE cart_id = $1
	RETURNING updated_at`

	var ts time.Time
	row := ext.QueryRowxContext(ctx, q, cartID)
	if err := row.Scan(&ts); err != nil {
		return time.Time{}, fmt.Errorf("refreshing cart[%s]: %w", cartID, err)
	}

	return ts, nil
}

func isUniqueViolation(err error) bool {
	var pqerr *pq.Error
	return errors.As(err, &pqerr) && pqerr.Code == "23505"
}
