package order

import "time"

type Status string

const (
	Placed Status = "placed"
)

type Order struct {
	ID        string    `json:"id" db:"order_id"`
	UserID    string    `json:"userId" db:"user_id"`
	CartID    string    `json:"cartId" db:"cart_id"`
	FirstName string    `json:"firstName" db:"first_name"`
	LastName  string    `json:"lastName" db:"last_name"`
	Address   string    `json:"address" db:"address"`
	Comment   string    `json:"comment" db:"comment"`
	Status    Status    `json:"status" db:"status"`
	Total     int       `json:"total" db:"total"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type Address struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Address   string `json:"address" validate:"required"`
	Comment   string `json:"comment"`
}

// Checkout is the pre-validated payload finalizing the open cart.
type Checkout struct {
	Address Address `json:"address" validate:"required"`
}
