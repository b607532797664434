package ui

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JaiSanthosh66/folio/internal/api"
	"github.com/JaiSanthosh66/folio/internal/state"
)

// Messages

type tickMsg time.Time

type booksMsg struct {
	books []api.Book
	err   error
}

type categoriesMsg struct {
	categories []string
	err        error
}

// cartMsg carries a freshly fetched cart. notice is a success toast to
// show when the preceding mutation worked.
type cartMsg struct {
	cart   api.Cart
	err    error
	notice string
}

type ordersMsg struct {
	orders []api.Order
	err    error
}

type authMsg struct {
	user       api.User
	err        error
	registered bool
}

type checkoutMsg struct {
	order api.Order
	err   error
}

type coverMsg struct {
	bookID string
	url    string
}

// Commands
//
// Responses are applied in arrival order with no request cancellation.
// Each fetch replaces the previous data wholesale, so a stale response
// can only ever be overwritten by a newer fetch, never merged.

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) loadBooksCmd(filters state.Filters) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		books, err := client.ListBooks(ctx, filters.Query())
		return booksMsg{books: books, err: err}
	}
}

func (m Model) loadCategoriesCmd() tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		categories, err := client.Categories(ctx)
		return categoriesMsg{categories: categories, err: err}
	}
}

func (m Model) loadCartCmd() tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		cart, err := client.FetchCart(ctx)
		return cartMsg{cart: cart, err: err}
	}
}

// addToCartCmd mutates then re-fetches in one command so the UI only
// ever renders server-confirmed cart state.
func (m Model) addToCartCmd(bookID string, quantity int) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		if err := client.AddToCart(ctx, bookID, quantity); err != nil {
			return cartMsg{err: err}
		}
		cart, err := client.FetchCart(ctx)
		return cartMsg{cart: cart, err: err, notice: "Added to cart"}
	}
}

func (m Model) updateCartItemCmd(itemID string, quantity int) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		if err := client.UpdateCartItem(ctx, itemID, quantity); err != nil {
			return cartMsg{err: err}
		}
		cart, err := client.FetchCart(ctx)
		return cartMsg{cart: cart, err: err}
	}
}

func (m Model) removeCartItemCmd(itemID string) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		if err := client.RemoveCartItem(ctx, itemID); err != nil {
			return cartMsg{err: err}
		}
		cart, err := client.FetchCart(ctx)
		return cartMsg{cart: cart, err: err, notice: "Removed from cart"}
	}
}

func (m Model) loginCmd(email, password string) tea.Cmd {
	ctx, sess := m.ctx, m.session
	return func() tea.Msg {
		user, err := sess.Login(ctx, email, password)
		return authMsg{user: user, err: err}
	}
}

func (m Model) registerCmd(username, email, password string) tea.Cmd {
	ctx, sess := m.ctx, m.session
	return func() tea.Msg {
		user, err := sess.Register(ctx, username, email, password)
		return authMsg{user: user, err: err, registered: true}
	}
}

func (m Model) checkoutCmd(address api.ShippingAddress) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		order, err := client.Checkout(ctx, address)
		return checkoutMsg{order: order, err: err}
	}
}

func (m Model) loadOrdersCmd() tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		orders, err := client.ListOrders(ctx)
		return ordersMsg{orders: orders, err: err}
	}
}

// resolveCoverCmd probes cover sources off the UI loop. Failures degrade
// to the placeholder inside the resolver, so the message always carries
// a usable URL.
func (m Model) resolveCoverCmd(book api.Book) tea.Cmd {
	ctx, covers := m.ctx, m.covers
	return func() tea.Msg {
		url := covers.Resolve(ctx, book)
		slog.Debug("resolved cover", "book", book.ID, "url", url)
		return coverMsg{bookID: book.ID, url: url}
	}
}
