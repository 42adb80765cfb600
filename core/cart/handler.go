package cart

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/alexej1900/cart-api/api/web"
	"github.com/alexej1900/cart-api/api/weberr"
	"github.com/alexej1900/cart-api/core/claims"
	"github.com/alexej1900/cart-api/database"
	"github.com/alexej1900/cart-api/validate"
	"github.com/jmoiron/sqlx"
)

// HandleShow returns the caller's open cart, creating an empty one when
// none exists so clients always receive a cart with a valid id.
func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		c, err := FetchOrCreate(ctx, db, clm.UserID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("resolving cart of user[%s]: %w", clm.UserID, err)
		}

		return web.Respond(ctx, w, c, http.StatusOK)
	}
}

func HandleUpdateItem(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var upd ItemUpdate
		if err := web.Decode(w, r, &upd); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(upd); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		c, err := Update(ctx, db, clm.UserID, upd)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("updating cart of user[%s]: %w", clm.UserID, err)
		}

		return web.Respond(ctx, w, c, http.StatusOK)
	}
}

func HandleDelete(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		err = database.Transaction(db, func(tx sqlx.ExtContext) error {
			return Delete(ctx, tx, clm.UserID)
		})
		if err != nil {
			return fmt.Errorf("deleting carts of user[%s]: %w", clm.UserID, err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
