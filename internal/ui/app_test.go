package ui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JaiSanthosh66/folio/internal/api"
	"github.com/JaiSanthosh66/folio/internal/session"
	"github.com/JaiSanthosh66/folio/internal/state"
)

// fakeBookstore satisfies both the api.Bookstore and session.Backend
// interfaces with canned data, so model logic can be driven without a
// server.
type fakeBookstore struct {
	books  []api.Book
	cart   api.Cart
	orders []api.Order
}

func (f *fakeBookstore) Register(ctx context.Context, username, email, password string) (api.Credentials, error) {
	return api.Credentials{Token: "tok", User: api.User{Username: username}}, nil
}

func (f *fakeBookstore) Login(ctx context.Context, email, password string) (api.Credentials, error) {
	return api.Credentials{Token: "tok", User: api.User{Username: "ana"}}, nil
}

func (f *fakeBookstore) Me(ctx context.Context) (api.User, error) {
	return api.User{Username: "ana"}, nil
}

func (f *fakeBookstore) Categories(ctx context.Context) ([]string, error) {
	return []string{"Fiction"}, nil
}

func (f *fakeBookstore) ListBooks(ctx context.Context, query api.BookQuery) ([]api.Book, error) {
	return f.books, nil
}

func (f *fakeBookstore) AddToCart(ctx context.Context, bookID string, quantity int) error {
	return nil
}

func (f *fakeBookstore) FetchCart(ctx context.Context) (api.Cart, error) {
	return f.cart, nil
}

func (f *fakeBookstore) UpdateCartItem(ctx context.Context, itemID string, quantity int) error {
	return nil
}

func (f *fakeBookstore) RemoveCartItem(ctx context.Context, itemID string) error {
	return nil
}

func (f *fakeBookstore) Checkout(ctx context.Context, address api.ShippingAddress) (api.Order, error) {
	return api.Order{ID: "order-1"}, nil
}

func (f *fakeBookstore) ListOrders(ctx context.Context) ([]api.Order, error) {
	return f.orders, nil
}

func newTestModel(t *testing.T, authenticated bool) Model {
	t.Helper()

	backend := &fakeBookstore{
		books: []api.Book{
			{ID: "b1", Title: "Dune", Author: "Frank Herbert", Price: 12.99, Inventory: 3},
			{ID: "b2", Title: "Hyperion", Author: "Dan Simmons", Price: 9.50, Inventory: 0},
		},
	}
	store := state.NewStore()
	store.SetBooks(backend.books)

	sess := session.New(backend, filepath.Join(t.TempDir(), "prefs.toml"), "")
	if authenticated {
		if _, err := sess.Login(context.Background(), "a@b.c", "pw"); err != nil {
			t.Fatalf("Login: %v", err)
		}
	}

	m := New(Options{
		Client:    backend,
		Session:   sess,
		Store:     store,
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	})

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model)
}

func key(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAddToCart_GuestOpensAuthWithoutRequest(t *testing.T) {
	m := newTestModel(t, false)

	updated, cmd := m.Update(key("enter"))
	m = updated.(Model)

	if m.overlay != overlayAuth {
		t.Fatalf("overlay = %v, want auth form", m.overlay)
	}
	if cmd != nil {
		t.Fatal("guest add-to-cart must not issue a backend command")
	}
}

func TestAddToCart_OutOfStockShowsToastWithoutRequest(t *testing.T) {
	m := newTestModel(t, true)
	m.selectedBook = 1 // Hyperion, inventory 0

	updated, cmd := m.Update(key("enter"))
	m = updated.(Model)

	if cmd != nil {
		t.Fatal("out-of-stock add must not issue a backend command")
	}
	if len(m.activeToasts()) != 1 {
		t.Fatalf("toasts = %d, want out-of-stock notice", len(m.activeToasts()))
	}
}

func TestSwitchToCart_AlwaysRefetches(t *testing.T) {
	m := newTestModel(t, true)

	updated, cmd := m.Update(key("c"))
	m = updated.(Model)

	if m.currentView != ViewCart {
		t.Fatalf("currentView = %v, want cart", m.currentView)
	}
	if cmd == nil {
		t.Fatal("entering the cart view must trigger a cart fetch")
	}
}

func TestSwitchToCart_GuestSkipsFetch(t *testing.T) {
	m := newTestModel(t, false)

	updated, cmd := m.Update(key("c"))
	m = updated.(Model)

	if m.currentView != ViewCart {
		t.Fatalf("currentView = %v, want cart", m.currentView)
	}
	if cmd != nil {
		t.Fatal("guest cart view must not call the backend")
	}
}

func TestSortKey_CyclesSortAndReloads(t *testing.T) {
	m := newTestModel(t, false)

	updated, cmd := m.Update(key("s"))
	m = updated.(Model)

	if got := m.snapshot.Filters.SortBy; got != api.SortAuthor {
		t.Fatalf("SortBy = %q, want %q", got, api.SortAuthor)
	}
	if cmd == nil {
		t.Fatal("sort change must reload the book list")
	}
}

func TestCheckoutSuccess_SwitchesToOrdersAndReloads(t *testing.T) {
	m := newTestModel(t, true)
	m.currentView = ViewCart
	m.overlay = overlayCheckout

	updated, cmd := m.Update(checkoutMsg{order: api.Order{ID: "abcdef123456"}})
	m = updated.(Model)

	if m.overlay != overlayNone {
		t.Fatal("checkout overlay should close on success")
	}
	if m.currentView != ViewOrders {
		t.Fatalf("currentView = %v, want orders", m.currentView)
	}
	if cmd == nil {
		t.Fatal("successful checkout must refresh cart and orders")
	}
}

func TestCheckoutFailure_KeepsOverlayWithMessage(t *testing.T) {
	m := newTestModel(t, true)
	m.overlay = overlayCheckout
	m.checkout.submitting = true

	updated, _ := m.Update(checkoutMsg{err: &api.Error{Status: 400, Message: "Cart is empty"}})
	m = updated.(Model)

	if m.overlay != overlayCheckout {
		t.Fatal("failed checkout must keep the form open")
	}
	if m.checkout.errMsg != "Cart is empty" {
		t.Fatalf("errMsg = %q, want backend message", m.checkout.errMsg)
	}
	if m.checkout.submitting {
		t.Fatal("submitting flag must reset after a failure")
	}
}

func TestAuthFailure_KeepsFormOpen(t *testing.T) {
	m := newTestModel(t, false)
	m.overlay = overlayAuth
	m.auth.submitting = true

	updated, _ := m.Update(authMsg{err: &api.Error{Status: 401, Message: "Invalid credentials"}})
	m = updated.(Model)

	if m.overlay != overlayAuth {
		t.Fatal("failed auth must keep the form open")
	}
	if m.auth.errMsg != "Invalid credentials" {
		t.Fatalf("errMsg = %q, want backend message", m.auth.errMsg)
	}
}

func TestLogout_ClearsSessionAndCart(t *testing.T) {
	m := newTestModel(t, true)
	m.store.SetCart(api.Cart{Items: []api.CartItem{{ID: "i1", Quantity: 1}}})
	m.refreshSnapshot()
	m.currentView = ViewCart

	updated, _ := m.Update(key("L"))
	m = updated.(Model)

	if m.authenticated() {
		t.Fatal("session should be gone after logout")
	}
	if m.snapshot.HasCart {
		t.Fatal("cart must be dropped on logout")
	}
	if m.currentView != ViewHome {
		t.Fatalf("currentView = %v, want home after logout", m.currentView)
	}
}

func TestToasts_ExpireAfterTTL(t *testing.T) {
	m := newTestModel(t, false)
	m.pushToast("hello", toastInfo)

	if len(m.activeToasts()) != 1 {
		t.Fatalf("active toasts = %d, want 1", len(m.activeToasts()))
	}

	m.toasts[0].expires = time.Now().Add(-time.Second)
	m.pruneToasts()

	if len(m.toasts) != 0 {
		t.Fatalf("toasts after prune = %d, want 0", len(m.toasts))
	}
}

func TestToasts_StackWithoutDeduplication(t *testing.T) {
	m := newTestModel(t, false)
	m.pushToast("Added to cart", toastSuccess)
	m.pushToast("Added to cart", toastSuccess)

	if len(m.activeToasts()) != 2 {
		t.Fatalf("active toasts = %d, want both copies", len(m.activeToasts()))
	}
}

func TestCategoryKey_CyclesThroughAll(t *testing.T) {
	m := newTestModel(t, false)
	m.store.SetCategories([]string{"Fiction", "Sci-Fi"})
	m.refreshSnapshot()

	updated, cmd := m.Update(key("f"))
	m = updated.(Model)
	if got := m.snapshot.Filters.Category; got != "Fiction" {
		t.Fatalf("Category = %q, want Fiction", got)
	}
	if cmd == nil {
		t.Fatal("category change must reload the book list")
	}

	updated, _ = m.Update(key("f"))
	m = updated.(Model)
	updated, _ = m.Update(key("f"))
	m = updated.(Model)
	if got := m.snapshot.Filters.Category; got != api.DefaultCategory {
		t.Fatalf("Category = %q, want wrap back to %q", got, api.DefaultCategory)
	}
}
