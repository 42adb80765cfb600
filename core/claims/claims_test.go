package claims

import (
	"context"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	ctx := Set(context.Background(), Claims{UserID: "u1"})

	clm, err := Get(ctx)
	if err != nil {
		t.Fatalf("expected claims, got error: %v", err)
	}
	if clm.UserID != "u1" {
		t.Fatalf("expected user u1, got %q", clm.UserID)
	}
}

func TestMissing(t *testing.T) {
	if _, err := Get(context.Background()); err == nil {
		t.Fatal("expected an error when no claims are set")
	}
}
