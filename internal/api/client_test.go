package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestNormalizeBaseURL_DefaultsAndNormalizes(t *testing.T) {
	base, err := normalizeBaseURL("")
	if err != nil {
		t.Fatalf("normalizeBaseURL returned error: %v", err)
	}
	if base != defaultBaseURL {
		t.Fatalf("base = %q, want %q", base, defaultBaseURL)
	}

	base, err = normalizeBaseURL("example.com:9000/api/")
	if err != nil {
		t.Fatalf("normalizeBaseURL returned error: %v", err)
	}
	if base != "http://example.com:9000/api" {
		t.Fatalf("base = %q, want scheme added and trailing slash dropped", base)
	}
}

func TestClient_AttachesBearerOnlyWhenNeeded(t *testing.T) {
	t.Parallel()

	var gotAuth []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/books":
			_ = json.NewEncoder(w).Encode([]Book{})
		case "/cart":
			_ = json.NewEncoder(w).Encode(Cart{})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	c.SetTokenSource(func() string { return "tok-123" })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	if _, err := c.ListBooks(ctx, BookQuery{}); err != nil {
		t.Fatalf("ListBooks returned error: %v", err)
	}
	if _, err := c.FetchCart(ctx); err != nil {
		t.Fatalf("FetchCart returned error: %v", err)
	}

	if gotAuth[0] != "" {
		t.Fatalf("public request carried Authorization %q, want none", gotAuth[0])
	}
	if gotAuth[1] != "Bearer tok-123" {
		t.Fatalf("authenticated request Authorization = %q, want Bearer tok-123", gotAuth[1])
	}
}

func TestClient_NoTokenMeansNoHeader(t *testing.T) {
	t.Parallel()

	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Cart{})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	c.SetTokenSource(func() string { return "" })

	if _, err := c.FetchCart(context.Background()); err != nil {
		t.Fatalf("FetchCart returned error: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("Authorization = %q, want empty when no token", gotAuth)
	}
}

func TestClient_BookQueryOmitsDefaults(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]Book{})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.ListBooks(context.Background(), BookQuery{
		Category: DefaultCategory,
		Search:   "",
		SortBy:   SortRating,
	})
	if err != nil {
		t.Fatalf("ListBooks returned error: %v", err)
	}
	if len(gotQuery) != 1 || gotQuery.Get("sortBy") != "rating" {
		t.Fatalf("query = %v, want only sortBy=rating", gotQuery)
	}

	_, err = c.ListBooks(context.Background(), BookQuery{
		Category: "Fiction",
		Search:   "dune",
		MinPrice: "5",
		MaxPrice: "30",
		SortBy:   SortPriceAsc,
	})
	if err != nil {
		t.Fatalf("ListBooks returned error: %v", err)
	}
	if gotQuery.Get("category") != "Fiction" ||
		gotQuery.Get("search") != "dune" ||
		gotQuery.Get("minPrice") != "5" ||
		gotQuery.Get("maxPrice") != "30" ||
		gotQuery.Get("sortBy") != "price_asc" {
		t.Fatalf("query = %v, want all filter params encoded", gotQuery)
	}
}

func TestClient_UpdateBelowOneIssuesRemoval(t *testing.T) {
	t.Parallel()

	type call struct{ method, path string }
	var calls []call
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.Path})
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	if err := c.UpdateCartItem(context.Background(), "item-1", 0); err != nil {
		t.Fatalf("UpdateCartItem returned error: %v", err)
	}
	if err := c.UpdateCartItem(context.Background(), "item-1", -3); err != nil {
		t.Fatalf("UpdateCartItem returned error: %v", err)
	}
	if err := c.UpdateCartItem(context.Background(), "item-1", 2); err != nil {
		t.Fatalf("UpdateCartItem returned error: %v", err)
	}

	want := []call{
		{http.MethodDelete, "/cart/remove/item-1"},
		{http.MethodDelete, "/cart/remove/item-1"},
		{http.MethodPut, "/cart/update/item-1"},
	}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("call[%d] = %v, want %v", i, calls[i], want[i])
		}
	}
}

func TestClient_ErrorMessageFromBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cart/add":
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Not enough inventory"})
		case "/orders":
			w.WriteHeader(http.StatusUnauthorized)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	err = c.AddToCart(context.Background(), "b1", 1)
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("AddToCart error = %v, want *Error", err)
	}
	if apiErr.Status != http.StatusConflict || apiErr.Message != "Not enough inventory" {
		t.Fatalf("error = %#v, want backend message with status 409", apiErr)
	}

	_, err = c.ListOrders(context.Background())
	if !errors.As(err, &apiErr) {
		t.Fatalf("ListOrders error = %v, want *Error", err)
	}
	if apiErr.Message != "Unauthorized" {
		t.Fatalf("message = %q, want generic fallback when body has none", apiErr.Message)
	}
}

func TestClient_TransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listening anymore

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.FetchCart(context.Background())
	if !IsNetwork(err) {
		t.Fatalf("FetchCart error = %v, want network error", err)
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		t.Fatalf("transport failure classified as api error: %v", err)
	}
}

func TestClient_AuthFlowPayloads(t *testing.T) {
	t.Parallel()

	var gotRegister, gotLogin map[string]string
	var gotCheckout map[string]ShippingAddress
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/auth/register":
			_ = json.NewDecoder(r.Body).Decode(&gotRegister)
			_ = json.NewEncoder(w).Encode(Credentials{Token: "t1", User: User{Username: "ana"}})
		case "/auth/login":
			_ = json.NewDecoder(r.Body).Decode(&gotLogin)
			_ = json.NewEncoder(w).Encode(Credentials{Token: "t2", User: User{Username: "ana"}})
		case "/auth/me":
			_ = json.NewEncoder(w).Encode(map[string]User{"user": {Username: "ana"}})
		case "/orders/checkout":
			_ = json.NewDecoder(r.Body).Decode(&gotCheckout)
			_ = json.NewEncoder(w).Encode(Order{ID: "order-1", Status: "pending"})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	creds, err := c.Register(context.Background(), "ana", "a@b.c", "pw")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if creds.Token != "t1" || gotRegister["username"] != "ana" || gotRegister["email"] != "a@b.c" {
		t.Fatalf("register payload = %v creds = %#v", gotRegister, creds)
	}

	creds, err = c.Login(context.Background(), "a@b.c", "pw")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if creds.Token != "t2" || gotLogin["email"] != "a@b.c" {
		t.Fatalf("login payload = %v creds = %#v", gotLogin, creds)
	}

	user, err := c.Me(context.Background())
	if err != nil {
		t.Fatalf("Me returned error: %v", err)
	}
	if user.Username != "ana" {
		t.Fatalf("Me user = %#v, want ana", user)
	}

	order, err := c.Checkout(context.Background(), ShippingAddress{Street: "1 Main St", City: "Springfield", ZipCode: "12345", Country: "US"})
	if err != nil {
		t.Fatalf("Checkout returned error: %v", err)
	}
	if order.ID != "order-1" {
		t.Fatalf("order = %#v, want order-1", order)
	}
	addr := gotCheckout["shippingAddress"]
	if addr.Street != "1 Main St" || addr.ZipCode != "12345" {
		t.Fatalf("checkout payload = %#v, want shippingAddress wrapper", gotCheckout)
	}
	if strings.Contains(addr.Street, "items") {
		t.Fatalf("checkout payload unexpectedly carries cart contents")
	}
}
