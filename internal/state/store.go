// Package state provides the owned application-state container shared
// between the UI loop and the command goroutines that fetch data. All
// mutation goes through update methods; readers get cloned snapshots.
package state

import (
	"sync"
	"time"

	"github.com/JaiSanthosh66/folio/internal/api"
)

// Filters is the user's current catalog request intent. It describes the
// next query, not the displayed books; nothing ties it to a result set.
type Filters struct {
	Category string
	Search   string
	SortBy   api.SortBy
	MinPrice string
	MaxPrice string
}

// DefaultFilters returns the unconstrained filter state.
func DefaultFilters() Filters {
	return Filters{
		Category: api.DefaultCategory,
		SortBy:   api.SortTitle,
	}
}

// Query converts the filter state into the outgoing book-list query.
func (f Filters) Query() api.BookQuery {
	return api.BookQuery{
		Category: f.Category,
		Search:   f.Search,
		MinPrice: f.MinPrice,
		MaxPrice: f.MaxPrice,
		SortBy:   f.SortBy,
	}
}

// Snapshot is the latest data available to the UI.
type Snapshot struct {
	Books       []api.Book
	Categories  []string
	Cart        api.Cart
	HasCart     bool
	Orders      []api.Order
	Filters     Filters
	LastUpdated time.Time
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// NewStore returns a Store with default filters and no data.
func NewStore() *Store {
	return &Store{snapshot: Snapshot{Filters: DefaultFilters()}}
}

// SetBooks replaces the fetched book list.
func (s *Store) SetBooks(books []api.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Books = cloneSlice(books)
	s.snapshot.LastUpdated = time.Now()
}

// SetCategories replaces the category list.
func (s *Store) SetCategories(categories []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Categories = cloneSlice(categories)
}

// SetCart replaces the cart with a freshly fetched copy.
func (s *Store) SetCart(cart api.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Cart = api.Cart{Items: cloneSlice(cart.Items)}
	s.snapshot.HasCart = true
	s.snapshot.LastUpdated = time.Now()
}

// ClearCart drops the cart, e.g. on logout or session invalidation.
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Cart = api.Cart{}
	s.snapshot.HasCart = false
}

// SetOrders replaces the order history.
func (s *Store) SetOrders(orders []api.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Orders = cloneSlice(orders)
	s.snapshot.LastUpdated = time.Now()
}

// SetFilters replaces the catalog filter state.
func (s *Store) SetFilters(filters Filters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if filters.Category == "" {
		filters.Category = api.DefaultCategory
	}
	if filters.SortBy == "" {
		filters.SortBy = api.SortTitle
	}
	s.snapshot.Filters = filters
}

// Filters returns the current filter state.
func (s *Store) Filters() Filters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Filters
}

// Snapshot returns a copy of the current snapshot, independent of the
// stored one.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Books = cloneSlice(s.snapshot.Books)
	snap.Categories = cloneSlice(s.snapshot.Categories)
	snap.Orders = cloneSlice(s.snapshot.Orders)
	snap.Cart = api.Cart{Items: cloneSlice(s.snapshot.Cart.Items)}
	return snap
}

func cloneSlice[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}
