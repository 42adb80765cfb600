package test

import (
	"net/http"
	"testing"

	"github.com/alexej1900/cart-api/core/cart"
	"github.com/alexej1900/cart-api/core/order"
	"github.com/alexej1900/cart-api/validate"
)

type orderTest struct {
	*TestEnv
}

func (ot *orderTest) checkout(t *testing.T, userID string, out *order.Order) int {
	t.Helper()

	return ot.request(t, userID, http.MethodPost, "/orders/checkout", map[string]any{
		"address": map[string]any{
			"firstName": "Jane",
			"lastName":  "Doe",
			"address":   "42 Main St",
			"comment":   "leave at the door",
		},
	}, out)
}

func (ot *orderTest) cartStatus(t *testing.T, cartID string) string {
	t.Helper()

	var status string
	err := ot.DB.QueryRow(`SELECT status FROM carts WHERE cart_id = $1`, cartID).Scan(&status)
	if err != nil {
		t.Fatalf("reading cart status: %v", err)
	}

	return status
}

func TestCheckout(t *testing.T) {
	env := Env(t)
	ot := &orderTest{env}
	ct := &cartTest{env}
	userID := validate.GenerateID()

	p1 := ct.createProductOK(t, "desk", 250)
	p2 := ct.createProductOK(t, "lamp", 35)

	ct.updateItemOK(t, userID, p1, 2)
	open := ct.updateItemOK(t, userID, p2, 1)

	var ord order.Order
	if status := ot.checkout(t, userID, &ord); status != http.StatusCreated {
		t.Fatalf("checking out: status code %d", status)
	}

	if ord.CartID != open.ID {
		t.Fatalf("order bound to cart %s, expected %s", ord.CartID, open.ID)
	}
	if want := 2*p1.Price + p2.Price; ord.Total != want {
		t.Fatalf("expected total %d, got %d", want, ord.Total)
	}
	if ord.Status != order.Placed {
		t.Fatalf("expected order status %q, got %q", order.Placed, ord.Status)
	}

	// The ordered cart is closed for mutation: the next resolution of
	// "the open cart" yields a fresh one.
	if got := ot.cartStatus(t, open.ID); got != string(cart.Ordered) {
		t.Fatalf("expected the cart to be ordered, got %q", got)
	}

	fresh := ct.showCartOK(t, userID)
	if fresh.ID == open.ID {
		t.Fatal("expected a fresh open cart after checkout")
	}
	if len(fresh.Items) != 0 {
		t.Fatalf("expected the fresh cart to be empty, got %+v", fresh.Items)
	}

	var ords []order.Order
	if status := ot.request(t, userID, http.MethodGet, "/orders", nil, &ords); status != http.StatusOK {
		t.Fatalf("listing orders: status code %d", status)
	}
	if len(ords) != 1 || ords[0].ID != ord.ID {
		t.Fatalf("expected the placed order to be listed, got %+v", ords)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	env := Env(t)
	ot := &orderTest{env}
	ct := &cartTest{env}
	userID := validate.GenerateID()

	ct.showCartOK(t, userID)

	if status := ot.checkout(t, userID, nil); status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for an empty cart, got %d", status)
	}
}

func TestCheckoutWithoutCart(t *testing.T) {
	env := Env(t)
	ot := &orderTest{env}
	userID := validate.GenerateID()

	if status := ot.checkout(t, userID, nil); status != http.StatusNotFound {
		t.Fatalf("expected 404 without an open cart, got %d", status)
	}
}

func TestCheckoutValidation(t *testing.T) {
	env := Env(t)
	ot := &orderTest{env}
	userID := validate.GenerateID()

	status := ot.request(t, userID, http.MethodPost, "/orders/checkout", map[string]any{
		"address": map[string]any{
			"lastName": "Doe",
			"address":  "42 Main St",
		},
	}, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for a missing first name, got %d", status)
	}
}
