package cart

import (
	"time"
)

type Status string

const (
	Open    Status = "open"
	Ordered Status = "ordered"
)

type Cart struct {
	ID        string    `json:"id" db:"cart_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Status    Status    `json:"status" db:"status"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
	Items     []Item    `json:"items" db:"-"`
}

// ItemProduct is the catalog view joined into a line item. The cart never
// owns these fields, it only displays them.
type ItemProduct struct {
	ID          string `json:"id" db:"product_id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	Price       int    `json:"price" db:"price"`
}

type Item struct {
	Product ItemProduct `json:"product"`
	Count   int         `json:"count"`
}

type ProductUpdate struct {
	ID          string `json:"id" validate:"required,uuid"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       int    `json:"price" validate:"gte=0"`
}

// ItemUpdate sets the absolute count of one product in the open cart.
// A count of zero or less removes the line item.
type ItemUpdate struct {
	Product ProductUpdate `json:"product" validate:"required"`
	Count   int           `json:"count"`
}

// mergeItems rebuilds the item list returned after an update: the delta is
// prepended (when it survives) and any prior line for the same product is
// dropped. Other items come from the snapshot read before the write, so
// concurrent updates to other products may not be visible in the result.
func mergeItems(prev []Item, upd ItemUpdate) []Item {
	items := make([]Item, 0, len(prev)+1)

	if upd.Count > 0 {
		items = append(items, Item{
			Product: ItemProduct{
				ID:          upd.Product.ID,
				Title:       upd.Product.Title,
				Description: upd.Product.Description,
				Price:       upd.Product.Price,
			},
			Count: upd.Count,
		})
	}

	for _, it := range prev {
		if it.Product.ID != upd.Product.ID {
			items = append(items, it)
		}
	}

	return items
}
