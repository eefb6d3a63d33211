package catalog

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/blackmouth-booking/internal/model"
)

func TestNew_RejectsDuplicates(t *testing.T) {
	_, err := New([]model.CatalogItem{
		{Name: "A", Price: decimal.NewFromInt(1)},
		{Name: "A", Price: decimal.NewFromInt(2)},
	})
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestNew_RejectsNegativePrice(t *testing.T) {
	_, err := New([]model.CatalogItem{{Name: "A", Price: decimal.NewFromInt(-1)}})
	if !errors.Is(err, ErrInvalidItem) {
		t.Fatalf("expected ErrInvalidItem, got %v", err)
	}
}

func TestLookupAndPosition(t *testing.T) {
	c := Default()
	it, ok := c.Lookup("PEPPERONI CLÁSICA")
	if !ok {
		t.Fatal("expected PEPPERONI CLÁSICA to exist")
	}
	if !it.Price.Equal(decimal.NewFromInt(149)) {
		t.Errorf("expected price 149, got %s", it.Price)
	}
	if c.Position("SALMÓN CLÁSICA") != 0 {
		t.Errorf("expected first position for SALMÓN CLÁSICA")
	}
	if _, ok := c.Lookup("CALZONE"); ok {
		t.Error("unexpected item CALZONE")
	}
	if c.Position("CALZONE") != -1 {
		t.Error("expected -1 for unknown item")
	}
}

func TestPopular(t *testing.T) {
	got := names(Default().Popular())
	want := []string{"JAMÓN SERRANO CLÁSICA", "PEPPERONI CLÁSICA", "NUTELLA CLÁSICA", "MARGARITA CLÁSICA"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	c := Default()
	items := c.Items()
	items[0].Name = "changed"
	if c.Items()[0].Name == "changed" {
		t.Fatal("Items must not expose internal storage")
	}
}

func TestCheckFilter(t *testing.T) {
	c := Default()
	for _, f := range []FilterState{
		DefaultFilter(),
		{Size: SizeIndividual, Ingredient: "pepperoni"},
		{Size: " Clásica ", Ingredient: "JAMÓN", Search: "anything"},
	} {
		if err := c.CheckFilter(f.Normalized()); err != nil {
			t.Errorf("%+v: unexpected error %v", f, err)
		}
	}
	for _, f := range []FilterState{{Size: "xl"}, {Ingredient: "anchoa"}} {
		if err := c.CheckFilter(f.Normalized()); !errors.Is(err, ErrUnknownFilter) {
			t.Errorf("%+v: expected ErrUnknownFilter, got %v", f, err)
		}
	}
}
