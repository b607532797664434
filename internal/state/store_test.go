package state

import (
	"testing"

	"github.com/JaiSanthosh66/folio/internal/api"
)

func TestNewStore_StartsWithDefaultFilters(t *testing.T) {
	s := NewStore()
	f := s.Filters()
	if f.Category != api.DefaultCategory {
		t.Fatalf("Category = %q, want %q", f.Category, api.DefaultCategory)
	}
	if f.SortBy != api.SortTitle {
		t.Fatalf("SortBy = %q, want %q", f.SortBy, api.SortTitle)
	}
	if s.Snapshot().HasCart {
		t.Fatal("fresh store must not claim a fetched cart")
	}
}

func TestSetCart_MarksCartFetched(t *testing.T) {
	s := NewStore()
	s.SetCart(api.Cart{Items: []api.CartItem{{ID: "i1", Quantity: 2}}})

	snap := s.Snapshot()
	if !snap.HasCart {
		t.Fatal("HasCart = false after SetCart")
	}
	if len(snap.Cart.Items) != 1 || snap.Cart.Items[0].ID != "i1" {
		t.Fatalf("Cart.Items = %#v, want the stored item", snap.Cart.Items)
	}

	s.ClearCart()
	snap = s.Snapshot()
	if snap.HasCart || len(snap.Cart.Items) != 0 {
		t.Fatalf("ClearCart left %#v behind", snap.Cart)
	}
}

func TestSnapshot_IsIndependentOfStore(t *testing.T) {
	s := NewStore()
	s.SetBooks([]api.Book{{ID: "b1", Title: "Dune"}})
	s.SetCategories([]string{"Fiction"})

	snap := s.Snapshot()
	snap.Books[0].Title = "mutated"
	snap.Categories[0] = "mutated"

	fresh := s.Snapshot()
	if fresh.Books[0].Title != "Dune" {
		t.Fatalf("store books mutated through snapshot: %q", fresh.Books[0].Title)
	}
	if fresh.Categories[0] != "Fiction" {
		t.Fatalf("store categories mutated through snapshot: %q", fresh.Categories[0])
	}
}

func TestSetFilters_NormalizesEmptyFields(t *testing.T) {
	s := NewStore()
	s.SetFilters(Filters{Search: "dune"})

	f := s.Filters()
	if f.Category != api.DefaultCategory || f.SortBy != api.SortTitle {
		t.Fatalf("Filters = %#v, want defaults filled in", f)
	}
	if f.Search != "dune" {
		t.Fatalf("Search = %q, want dune", f.Search)
	}
}

func TestFiltersQuery_CarriesAllFields(t *testing.T) {
	f := Filters{Category: "Sci-Fi", Search: "dune", SortBy: api.SortPriceAsc, MinPrice: "5", MaxPrice: "40"}
	q := f.Query()
	if q.Category != "Sci-Fi" || q.Search != "dune" || q.SortBy != api.SortPriceAsc || q.MinPrice != "5" || q.MaxPrice != "40" {
		t.Fatalf("Query = %#v, want all filter fields carried", q)
	}
}
