package middleware

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/alexej1900/cart-api/api/web"
	"github.com/alexej1900/cart-api/api/weberr"
)

// Panics recovers from handler panics and converts them into errors so
// the chain above can log and render them instead of killing the server.
func Panics() web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) (err error) {

			defer func() {
				if rec := recover(); rec != nil {
					trace := debug.Stack()
					err = weberr.InternalError(
						fmt.Errorf("PANIC [%v] TRACE[%s]", rec, string(trace)),
					)
				}
			}()

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
