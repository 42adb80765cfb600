package cart

import (
	"testing"

	"github.com/alexej1900/cart-api/validate"
	"github.com/google/go-cmp/cmp"
)

func item(productID string, count int) Item {
	return Item{
		Product: ItemProduct{
			ID:    productID,
			Title: "title-" + productID,
			Price: 10,
		},
		Count: count,
	}
}

func TestMergeItemsInsert(t *testing.T) {
	prev := []Item{item("p1", 2), item("p2", 1)}

	upd := ItemUpdate{
		Product: ProductUpdate{ID: "p3", Title: "title-p3", Price: 10},
		Count:   4,
	}

	got := mergeItems(prev, upd)
	want := []Item{item("p3", 4), item("p1", 2), item("p2", 1)}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected items (-want +got):\n%s", diff)
	}
}

func TestMergeItemsOverwrite(t *testing.T) {
	prev := []Item{item("p1", 2), item("p2", 1)}

	upd := ItemUpdate{
		Product: ProductUpdate{ID: "p1", Title: "title-p1", Price: 10},
		Count:   5,
	}

	got := mergeItems(prev, upd)
	want := []Item{item("p1", 5), item("p2", 1)}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected items (-want +got):\n%s", diff)
	}

	if len(got) != len(prev) {
		t.Fatalf("overwriting must not add a line: got %d items", len(got))
	}
}

func TestMergeItemsRemove(t *testing.T) {
	prev := []Item{item("p1", 2)}

	for _, count := range []int{0, -3} {
		upd := ItemUpdate{
			Product: ProductUpdate{ID: "p1"},
			Count:   count,
		}

		got := mergeItems(prev, upd)
		if len(got) != 0 {
			t.Fatalf("count %d: expected empty items, got %+v", count, got)
		}
	}
}

func TestMergeItemsRemoveAbsent(t *testing.T) {
	prev := []Item{item("p1", 2)}

	upd := ItemUpdate{
		Product: ProductUpdate{ID: "p9"},
		Count:   0,
	}

	got := mergeItems(prev, upd)
	want := []Item{item("p1", 2)}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected items (-want +got):\n%s", diff)
	}
}

func TestItemUpdateValidation(t *testing.T) {
	valid := ItemUpdate{
		Product: ProductUpdate{ID: validate.GenerateID(), Price: 10},
		Count:   1,
	}
	if err := validate.Check(valid); err != nil {
		t.Fatalf("expected valid update, got: %v", err)
	}

	// Negative counts are legal input, they mean removal.
	valid.Count = -1
	if err := validate.Check(valid); err != nil {
		t.Fatalf("expected valid removal update, got: %v", err)
	}

	invalid := []ItemUpdate{
		{Count: 1},
		{Product: ProductUpdate{ID: "not-a-uuid", Price: 10}, Count: 1},
		{Product: ProductUpdate{ID: validate.GenerateID(), Price: -5}, Count: 1},
	}
	for i, upd := range invalid {
		if err := validate.Check(upd); err == nil {
			t.Fatalf("case %d: expected a validation error for %+v", i, upd)
		}
	}
}

func TestMergeItemsEmptySnapshot(t *testing.T) {
	upd := ItemUpdate{
		Product: ProductUpdate{ID: "p1", Title: "title-p1", Price: 10},
		Count:   1,
	}

	got := mergeItems(nil, upd)
	want := []Item{item("p1", 1)}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected items (-want +got):\n%s", diff)
	}
}
