package order

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alexej1900/cart-api/api/web"
	"github.com/alexej1900/cart-api/api/weberr"
	"github.com/alexej1900/cart-api/core/cart"
	"github.com/alexej1900/cart-api/core/claims"
	"github.com/alexej1900/cart-api/database"
	"github.com/alexej1900/cart-api/validate"
	"github.com/jmoiron/sqlx"
)

// HandleCheckout places an order for the caller's open cart. The order
// insert and the cart status flip share one transaction: either the order
// exists and the cart is closed, or neither happened.
func HandleCheckout(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var chk Checkout
		if err := web.Decode(w, r, &chk); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(chk); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		crt, err := cart.FetchByUser(ctx, db, clm.UserID)
		if err != nil {
			if errors.Is(err, cart.ErrNotFound) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching cart of user[%s]: %w", clm.UserID, err)
		}

		if len(crt.Items) == 0 {
			err := errors.New("no items to checkout")
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		var tot int
		for _, it := range crt.Items {
			tot += it.Product.Price * it.Count
		}

		now := time.Now().UTC()
		ord := Order{
			ID:        validate.GenerateID(),
			UserID:    clm.UserID,
			CartID:    crt.ID,
			FirstName: chk.Address.FirstName,
			LastName:  chk.Address.LastName,
			Address:   chk.Address.Address,
			Comment:   chk.Address.Comment,
			Status:    Placed,
			Total:     tot,
			CreatedAt: now,
			UpdatedAt: now,
		}

		err = database.Transaction(db, func(tx sqlx.ExtContext) error {
			if err := Create(ctx, tx, ord); err != nil {
				return fmt.Errorf("creating order: %w", err)
			}

			if _, err := cart.UpdateStatus(ctx, tx, crt.ID, cart.Ordered); err != nil {
				return fmt.Errorf("closing cart: %w", err)
			}

			return nil
		})
		if err != nil {
			return fmt.Errorf("placing order for cart[%s] of user[%s]: %w", crt.ID, clm.UserID, err)
		}

		return web.Respond(ctx, w, ord, http.StatusCreated)
	}
}

func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		ords, err := FetchByUser(ctx, db, clm.UserID)
		if err != nil {
			return fmt.Errorf("fetching orders of user[%s]: %w", clm.UserID, err)
		}

		return web.Respond(ctx, w, ords, http.StatusOK)
	}
}
