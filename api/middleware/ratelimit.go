package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/alexej1900/cart-api/api/web"
	"github.com/alexej1900/cart-api/api/weberr"
	"github.com/alexej1900/cart-api/core/claims"
	"github.com/alexej1900/cart-api/rate"
)

// RateLimit rejects callers mutating their cart faster than the limiter
// allows. Clients are keyed by user when identity is available, by remote
// address otherwise.
func RateLimit(lim *rate.Limiter) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			id := r.RemoteAddr
			if clm, err := claims.Get(ctx); err == nil {
				id = clm.UserID
			}

			if !lim.Check(id) {
				return weberr.TooManyRequests(errors.New("client rate limit exceeded"))
			}

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
