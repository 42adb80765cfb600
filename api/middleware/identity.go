package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/alexej1900/cart-api/api/web"
	"github.com/alexej1900/cart-api/api/weberr"
	"github.com/alexej1900/cart-api/core/claims"
)

// UserIDHeader carries the identity resolved by the upstream gateway.
// Authentication itself happens before requests reach this service.
const UserIDHeader = "X-User-Id"

func Identity() web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			userID := r.Header.Get(UserIDHeader)
			if userID == "" {
				return weberr.NotAuthorized(errors.New("user not authenticated"))
			}

			ctx = claims.Set(ctx, claims.Claims{UserID: userID})

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
