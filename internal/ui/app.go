package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/JaiSanthosh66/folio/internal/api"
	"github.com/JaiSanthosh66/folio/internal/catalog"
	"github.com/JaiSanthosh66/folio/internal/prefs"
	"github.com/JaiSanthosh66/folio/internal/session"
	"github.com/JaiSanthosh66/folio/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewHome View = iota
	ViewCart
	ViewOrders
)

// overlay identifies the modal layered over the current view, if any.
type overlay int

const (
	overlayNone overlay = iota
	overlayAuth
	overlayCheckout
	overlayPrice
	overlayHelp
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    api.Bookstore
	Session   *session.Manager
	Store     *state.Store
	Covers    *catalog.Resolver
	ThemeName string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	client    api.Bookstore
	session   *session.Manager
	store     *state.Store
	covers    *catalog.Resolver
	prefsPath string

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool

	// Data state
	snapshot state.Snapshot

	// Home state
	selectedBook int
	searching    bool
	searchInput  searchField
	coverURLs    map[string]string

	// Cart state
	selectedItem int

	// Orders state
	selectedOrder  int
	ordersViewport viewport.Model

	// Overlays
	overlay  overlay
	auth     authForm
	checkout checkoutForm
	price    priceForm

	// Notifications
	toasts []toast
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	covers := opts.Covers
	if covers == nil {
		covers = catalog.NewResolver()
	}

	m := Model{
		ctx:         ctx,
		client:      opts.Client,
		session:     opts.Session,
		store:       opts.Store,
		covers:      covers,
		prefsPath:   prefsPath,
		theme:       GetTheme(themeName),
		currentView: ViewHome,
		coverURLs:   make(map[string]string),
		searchInput: newSearchField(),
		auth:        newAuthForm(),
		checkout:    newCheckoutForm(),
		price:       newPriceForm(),
	}
	if opts.Store != nil {
		m.snapshot = opts.Store.Snapshot()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(),
		m.loadCategoriesCmd(),
		m.loadBooksCmd(m.snapshot.Filters),
	}
	if m.authenticated() {
		cmds = append(cmds, m.loadCartCmd())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.ordersViewport.Width = max(m.width-2, 10)
		m.ordersViewport.Height = max(m.contentHeight()-2, 2)
		return m, nil

	case tickMsg:
		m.pruneToasts()
		return m, tickCmd()

	case booksMsg:
		return m.handleBooks(msg)

	case categoriesMsg:
		return m.handleCategories(msg)

	case cartMsg:
		return m.handleCart(msg)

	case ordersMsg:
		return m.handleOrders(msg)

	case authMsg:
		return m.handleAuth(msg)

	case checkoutMsg:
		return m.handleCheckout(msg)

	case coverMsg:
		m.coverURLs[msg.bookID] = msg.url
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	switch m.overlay {
	case overlayHelp:
		return m.renderHelp()
	case overlayAuth:
		return m.renderAuth()
	case overlayCheckout:
		return m.renderCheckout()
	case overlayPrice:
		return m.renderPrice()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Overlays capture all input while open.
	switch m.overlay {
	case overlayHelp:
		// Any key closes help
		m.overlay = overlayNone
		return m, nil
	case overlayAuth:
		return m.handleAuthKey(msg)
	case overlayCheckout:
		return m.handleCheckoutKey(msg)
	case overlayPrice:
		return m.handlePriceKey(msg)
	}

	// Search input owns the keyboard while active.
	if m.searching {
		return m.handleSearchKey(msg)
	}

	// Global keys
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "?":
		m.overlay = overlayHelp
		return m, nil

	case "T":
		return m.cycleTheme()

	case "b", "esc":
		m.currentView = ViewHome
		return m, nil

	case "c":
		return m.switchToCart()

	case "o":
		return m.switchToOrders()

	case "r":
		return m.reloadCurrentView()

	case "l":
		if !m.authenticated() {
			m.auth = newAuthForm()
			m.overlay = overlayAuth
		}
		return m, nil

	case "L":
		return m.logout()
	}

	// View-specific keys
	switch m.currentView {
	case ViewHome:
		return m.handleHomeKey(msg)
	case ViewCart:
		return m.handleCartKey(msg)
	case ViewOrders:
		return m.handleOrdersKey(msg)
	}

	return m, nil
}

// switchToCart enters the cart view. The cart is always re-fetched on
// entry so the view renders server state, not a local projection.
func (m Model) switchToCart() (tea.Model, tea.Cmd) {
	m.currentView = ViewCart
	m.selectedItem = 0
	if !m.authenticated() {
		return m, nil
	}
	return m, m.loadCartCmd()
}

// switchToOrders enters the orders view with a fresh history fetch.
func (m Model) switchToOrders() (tea.Model, tea.Cmd) {
	m.currentView = ViewOrders
	m.selectedOrder = 0
	if !m.authenticated() {
		return m, nil
	}
	return m, m.loadOrdersCmd()
}

// reloadCurrentView re-fetches whatever the current view displays.
func (m Model) reloadCurrentView() (tea.Model, tea.Cmd) {
	switch m.currentView {
	case ViewCart:
		if m.authenticated() {
			return m, m.loadCartCmd()
		}
	case ViewOrders:
		if m.authenticated() {
			return m, m.loadOrdersCmd()
		}
	default:
		return m, tea.Batch(m.loadBooksCmd(m.snapshot.Filters), m.loadCategoriesCmd())
	}
	return m, nil
}

// cycleTheme advances to the next theme and persists the choice without
// touching the stored token.
func (m Model) cycleTheme() (tea.Model, tea.Cmd) {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	if m.prefsPath != "" {
		p := prefs.Load(m.prefsPath)
		p.Theme = m.theme.Name
		_ = prefs.Save(m.prefsPath, p)
	}
	return m, nil
}

// logout drops the session and all account-scoped data, then returns to
// the catalog.
func (m Model) logout() (tea.Model, tea.Cmd) {
	if !m.authenticated() {
		return m, nil
	}
	m.session.Logout()
	m.store.ClearCart()
	m.store.SetOrders(nil)
	m.refreshSnapshot()
	m.currentView = ViewHome
	m.pushToast("Logged out", toastInfo)
	return m, nil
}

func (m *Model) refreshSnapshot() {
	if m.store != nil {
		m.snapshot = m.store.Snapshot()
	}
}

func (m Model) authenticated() bool {
	return m.session != nil && m.session.Authenticated()
}

func (m Model) sessionUser() (api.User, bool) {
	if m.session == nil {
		return api.User{}, false
	}
	return m.session.User()
}

// Message handlers

func (m Model) handleBooks(msg booksMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// The catalog shows an explicit empty state rather than a list
		// the current filters never produced.
		m.store.SetBooks(nil)
		m.refreshSnapshot()
		m.selectedBook = 0
		m.pushToast(api.UserMessage(msg.err, "Failed to load books"), toastError)
		return m, nil
	}
	m.store.SetBooks(msg.books)
	m.refreshSnapshot()
	if m.selectedBook >= len(m.snapshot.Books) {
		m.selectedBook = max(len(m.snapshot.Books)-1, 0)
	}
	if book, ok := m.currentBook(); ok {
		return m, m.coverCmdFor(book)
	}
	return m, nil
}

func (m Model) handleCategories(msg categoriesMsg) (tea.Model, tea.Cmd) {
	// A missing category list degrades to the All-only filter bar.
	if msg.err != nil {
		return m, nil
	}
	m.store.SetCategories(msg.categories)
	m.refreshSnapshot()
	return m, nil
}

func (m Model) handleCart(msg cartMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.pushToast(api.UserMessage(msg.err, "Failed to load cart"), toastError)
		return m, nil
	}
	m.store.SetCart(msg.cart)
	m.refreshSnapshot()
	if m.selectedItem >= len(m.snapshot.Cart.Items) {
		m.selectedItem = max(len(m.snapshot.Cart.Items)-1, 0)
	}
	if msg.notice != "" {
		m.pushToast(msg.notice, toastSuccess)
	}
	return m, nil
}

func (m Model) handleOrders(msg ordersMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.pushToast(api.UserMessage(msg.err, "Failed to load orders"), toastError)
		return m, nil
	}
	m.store.SetOrders(msg.orders)
	m.refreshSnapshot()
	if m.selectedOrder >= len(m.snapshot.Orders) {
		m.selectedOrder = max(len(m.snapshot.Orders)-1, 0)
	}
	return m, nil
}

func (m Model) handleAuth(msg authMsg) (tea.Model, tea.Cmd) {
	m.auth.submitting = false
	if msg.err != nil {
		m.auth.errMsg = api.UserMessage(msg.err, "Authentication failed")
		return m, nil
	}

	m.overlay = overlayNone
	m.auth = newAuthForm()
	if msg.registered {
		m.pushToast("Account created. Welcome, "+msg.user.Username+"!", toastSuccess)
	} else {
		m.pushToast("Welcome back, "+msg.user.Username+"!", toastSuccess)
	}
	return m, m.loadCartCmd()
}

func (m Model) handleCheckout(msg checkoutMsg) (tea.Model, tea.Cmd) {
	m.checkout.submitting = false
	if msg.err != nil {
		m.checkout.errMsg = api.UserMessage(msg.err, "Checkout failed")
		return m, nil
	}

	m.overlay = overlayNone
	m.checkout = newCheckoutForm()
	m.currentView = ViewOrders
	m.selectedOrder = 0
	m.pushToast(fmt.Sprintf("Order #%s placed", msg.order.ShortID()), toastSuccess)
	return m, tea.Batch(m.loadCartCmd(), m.loadOrdersCmd())
}

// currentBook returns the highlighted catalog entry, if any.
func (m Model) currentBook() (api.Book, bool) {
	if m.selectedBook < 0 || m.selectedBook >= len(m.snapshot.Books) {
		return api.Book{}, false
	}
	return m.snapshot.Books[m.selectedBook], true
}

// coverCmdFor resolves a cover once per book and caches the result.
func (m Model) coverCmdFor(book api.Book) tea.Cmd {
	if _, ok := m.coverURLs[book.ID]; ok {
		return nil
	}
	return m.resolveCoverCmd(book)
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	if line := m.renderToasts(); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(m.renderContent())
	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewCart:
		return m.renderCart()
	case ViewOrders:
		return m.renderOrders()
	default:
		return m.renderHome()
	}
}

// contentHeight is the vertical space left for the active view.
func (m Model) contentHeight() int {
	h := m.height - 2 // header + command bar
	if len(m.activeToasts()) > 0 {
		h--
	}
	return max(h, 4)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
