package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Bookstore defines the backend operations the UI depends on. Implemented
// by *Client; useful for testing view logic without a server.
type Bookstore interface {
	Register(ctx context.Context, username, email, password string) (Credentials, error)
	Login(ctx context.Context, email, password string) (Credentials, error)
	Me(ctx context.Context) (User, error)
	Categories(ctx context.Context) ([]string, error)
	ListBooks(ctx context.Context, query BookQuery) ([]Book, error)
	AddToCart(ctx context.Context, bookID string, quantity int) error
	FetchCart(ctx context.Context) (Cart, error)
	UpdateCartItem(ctx context.Context, itemID string, quantity int) error
	RemoveCartItem(ctx context.Context, itemID string) error
	Checkout(ctx context.Context, address ShippingAddress) (Order, error)
	ListOrders(ctx context.Context) ([]Order, error)
}

var _ Bookstore = (*Client)(nil)

// Client talks to the bookstore HTTP API.
type Client struct {
	baseURL   string
	http      *http.Client
	userAgent string
	token     func() string
}

const (
	defaultBaseURL   = "http://localhost:3000/api"
	defaultUserAgent = "folio/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client for the given base URL (scheme optional,
// empty uses the default local backend).
func NewClient(baseURL string) (*Client, error) {
	base, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// SetTokenSource installs the callback consulted for the bearer token on
// authenticated requests. A nil source or empty token means anonymous.
func (c *Client) SetTokenSource(source func() string) {
	c.token = source
}

// Register creates an account and returns the fresh session credentials.
func (c *Client) Register(ctx context.Context, username, email, password string) (Credentials, error) {
	payload := map[string]string{"username": username, "email": email, "password": password}
	var creds Credentials
	if err := c.do(ctx, http.MethodPost, "/auth/register", payload, false, &creds); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

// Login authenticates and returns the session credentials.
func (c *Client) Login(ctx context.Context, email, password string) (Credentials, error) {
	payload := map[string]string{"email": email, "password": password}
	var creds Credentials
	if err := c.do(ctx, http.MethodPost, "/auth/login", payload, false, &creds); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

// Me validates the current token and returns the account it belongs to.
func (c *Client) Me(ctx context.Context) (User, error) {
	var payload struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, true, &payload); err != nil {
		return User{}, err
	}
	return payload.User, nil
}

// Categories retrieves the list of catalog categories.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.do(ctx, http.MethodGet, "/books/categories/list", nil, false, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ListBooks retrieves books matching the query.
func (c *Client) ListBooks(ctx context.Context, query BookQuery) ([]Book, error) {
	path := "/books"
	if encoded := query.Values().Encode(); encoded != "" {
		path += "?" + encoded
	}
	var books []Book
	if err := c.do(ctx, http.MethodGet, path, nil, false, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// AddToCart puts quantity copies of a book into the caller's cart.
func (c *Client) AddToCart(ctx context.Context, bookID string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	payload := map[string]any{"bookId": bookID, "quantity": quantity}
	return c.do(ctx, http.MethodPost, "/cart/add", payload, true, nil)
}

// FetchCart retrieves the caller's cart.
func (c *Client) FetchCart(ctx context.Context) (Cart, error) {
	var cart Cart
	if err := c.do(ctx, http.MethodGet, "/cart", nil, true, &cart); err != nil {
		return Cart{}, err
	}
	return cart, nil
}

// UpdateCartItem sets the quantity of a cart line. A quantity below 1 is
// redirected to a removal; the wire never carries a non-positive quantity.
func (c *Client) UpdateCartItem(ctx context.Context, itemID string, quantity int) error {
	if quantity < 1 {
		return c.RemoveCartItem(ctx, itemID)
	}
	payload := map[string]int{"quantity": quantity}
	return c.do(ctx, http.MethodPut, "/cart/update/"+url.PathEscape(itemID), payload, true, nil)
}

// RemoveCartItem deletes a cart line.
func (c *Client) RemoveCartItem(ctx context.Context, itemID string) error {
	return c.do(ctx, http.MethodDelete, "/cart/remove/"+url.PathEscape(itemID), nil, true, nil)
}

// Checkout creates an order from the server-held cart. Only the address
// travels; the backend owns the cart contents.
func (c *Client) Checkout(ctx context.Context, address ShippingAddress) (Order, error) {
	payload := map[string]ShippingAddress{"shippingAddress": address}
	var order Order
	if err := c.do(ctx, http.MethodPost, "/orders/checkout", payload, true, &order); err != nil {
		return Order{}, err
	}
	return order, nil
}

// ListOrders retrieves the caller's order history.
func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, true, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any, needsAuth bool, dest any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if needsAuth && c.token != nil {
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		var errPayload struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errPayload)
		message := strings.TrimSpace(errPayload.Message)
		if message == "" {
			message = statusMessage(resp.StatusCode)
		}
		return &Error{Status: resp.StatusCode, Message: message}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func normalizeBaseURL(base string) (string, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("parse api base %q: %w", base, err)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return strings.TrimRight(u.String(), "/"), nil
}
