package api

import "time"

// User identifies the authenticated account.
type User struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Book mirrors a catalog entry as returned by /books. Read-only on the
// client; the backend owns pricing and inventory.
type Book struct {
	ID          string  `json:"_id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Rating      float64 `json:"rating"`
	Reviews     int     `json:"reviews"`
	Inventory   int     `json:"inventory"`
	ISBN        string  `json:"isbn,omitempty"`
	Image       string  `json:"image,omitempty"`
	Description string  `json:"description,omitempty"`
}

// InStock reports whether the book can currently be added to a cart.
func (b Book) InStock() bool {
	return b.Inventory > 0
}

// CartItem is a cart line with a denormalized book snapshot.
type CartItem struct {
	ID       string `json:"_id"`
	Book     Book   `json:"book"`
	Quantity int    `json:"quantity"`
}

// Cart mirrors GET /cart. Item order is whatever the server returned.
type Cart struct {
	Items []CartItem `json:"items"`
}

// Total sums price*quantity over all items. Always recomputed from the
// items so a freshly fetched cart can never show a stale total.
func (c Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Book.Price * float64(item.Quantity)
	}
	return total
}

// Count sums the quantities over all items.
func (c Cart) Count() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// OrderLine is a purchased line item inside an order.
type OrderLine struct {
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Order mirrors an entry of GET /orders. Immutable once created.
type Order struct {
	ID          string      `json:"_id"`
	Items       []OrderLine `json:"items"`
	TotalAmount float64     `json:"totalAmount"`
	Status      string      `json:"status"`
	CreatedAt   string      `json:"createdAt"`
}

// ShortID returns the trailing portion of the order id for display.
func (o Order) ShortID() string {
	const n = 8
	if len(o.ID) <= n {
		return o.ID
	}
	return o.ID[len(o.ID)-n:]
}

// ParsedCreatedAt returns the creation timestamp as time.Time when possible.
func (o Order) ParsedCreatedAt() time.Time {
	return parseTime(o.CreatedAt)
}

// ShippingAddress is the checkout form payload. Transient; not retained
// after submission.
type ShippingAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// Credentials is the payload returned by the register and login endpoints.
type Credentials struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
