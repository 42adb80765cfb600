package product

import "time"

// Product is a read-only catalog row; the cart joins its display fields
// into line items but never mutates it.
type Product struct {
	ID          string    `json:"id" db:"product_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Price       int       `json:"price" db:"price"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

type ProductNew struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Price       int    `json:"price" validate:"gte=0"`
}
