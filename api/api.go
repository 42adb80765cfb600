package api

import (
	"context"
	"net/http"

	"github.com/alexej1900/cart-api/api/middleware"
	"github.com/alexej1900/cart-api/api/web"
	"github.com/alexej1900/cart-api/core/cart"
	"github.com/alexej1900/cart-api/core/order"
	"github.com/alexej1900/cart-api/core/product"
	"github.com/alexej1900/cart-api/rate"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type APIConfig struct {
	CorsOrigin string
	Log        logrus.FieldLogger
	DB         *sqlx.DB
	Limiter    *rate.Limiter
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

func APIMux(cfg APIConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())

	if cfg.CorsOrigin != "" {
		a.mw = append(a.mw, middleware.Cors(cfg.CorsOrigin))

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}

		a.Handle(http.MethodOptions, "/{path:.*}", h)
	}

	identity := middleware.Identity()
	limited := middleware.RateLimit(cfg.Limiter)

	a.Handle(http.MethodGet, "/cart", cart.HandleShow(cfg.DB), identity)
	a.Handle(http.MethodPut, "/cart", cart.HandleUpdateItem(cfg.DB), identity, limited)
	a.Handle(http.MethodDelete, "/cart", cart.HandleDelete(cfg.DB), identity)

	a.Handle(http.MethodGet, "/products/{id}", product.HandleShow(cfg.DB))
	a.Handle(http.MethodGet, "/products", product.HandleList(cfg.DB))
	a.Handle(http.MethodPost, "/products", product.HandleCreate(cfg.DB), identity)

	a.Handle(http.MethodPost, "/orders/checkout", order.HandleCheckout(cfg.DB), identity, limited)
	a.Handle(http.MethodGet, "/orders", order.HandleList(cfg.DB), identity)

	return a.Router
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {

	handler = web.WrapMiddleware(mw, handler)

	handler = web.WrapMiddleware(a.mw, handler)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {

			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})

	a.Router.Handle(path, h).Methods(method)
}
