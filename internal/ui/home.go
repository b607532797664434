package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/JaiSanthosh66/folio/internal/api"
	"github.com/JaiSanthosh66/folio/internal/state"
)

type searchField = textinput.Model

func newSearchField() searchField {
	input := textinput.New()
	input.Prompt = "/"
	input.Placeholder = "title or author"
	input.CharLimit = 80
	return input
}

// handleHomeKey processes keyboard input for the catalog view.
func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	books := m.snapshot.Books

	switch msg.String() {
	case "j", "down":
		if m.selectedBook < len(books)-1 {
			m.selectedBook++
			return m.selectionChanged()
		}
	case "k", "up":
		if m.selectedBook > 0 {
			m.selectedBook--
			return m.selectionChanged()
		}
	case "g", "home":
		m.selectedBook = 0
		return m.selectionChanged()
	case "G", "end":
		if len(books) > 0 {
			m.selectedBook = len(books) - 1
		}
		return m.selectionChanged()

	case "enter", "a":
		return m.addSelectedToCart()

	case "/":
		m.searching = true
		m.searchInput.SetValue(m.snapshot.Filters.Search)
		m.searchInput.Focus()
		return m, textinput.Blink

	case "f":
		return m.cycleCategory()

	case "s":
		filters := m.snapshot.Filters
		filters.SortBy = filters.SortBy.Next()
		return m.applyFilters(filters)

	case "p":
		m.price = newPriceForm()
		m.price.inputs[0].SetValue(m.snapshot.Filters.MinPrice)
		m.price.inputs[1].SetValue(m.snapshot.Filters.MaxPrice)
		m.price.inputs[0].Focus()
		m.overlay = overlayPrice
		return m, textinput.Blink
	}

	return m, nil
}

// selectionChanged kicks off a cover lookup for the newly selected book.
func (m Model) selectionChanged() (tea.Model, tea.Cmd) {
	if book, ok := m.currentBook(); ok {
		return m, m.coverCmdFor(book)
	}
	return m, nil
}

// addSelectedToCart adds the highlighted book. A guest gets the sign-in
// form instead; no request is made until a session exists.
func (m Model) addSelectedToCart() (tea.Model, tea.Cmd) {
	book, ok := m.currentBook()
	if !ok {
		return m, nil
	}
	if !m.authenticated() {
		m.auth = newAuthForm()
		m.overlay = overlayAuth
		return m, nil
	}
	if !book.InStock() {
		m.pushToast("Out of stock", toastError)
		return m, nil
	}
	return m, m.addToCartCmd(book.ID, 1)
}

// handleSearchKey routes input to the search field while it is active.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		filters := m.snapshot.Filters
		filters.Search = strings.TrimSpace(m.searchInput.Value())
		return m.applyFilters(filters)
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// cycleCategory advances through All plus the fetched category list.
func (m Model) cycleCategory() (tea.Model, tea.Cmd) {
	options := append([]string{api.DefaultCategory}, m.snapshot.Categories...)
	filters := m.snapshot.Filters

	next := options[0]
	for i, option := range options {
		if option == filters.Category {
			next = options[(i+1)%len(options)]
			break
		}
	}
	filters.Category = next
	return m.applyFilters(filters)
}

// applyFilters stores the new filter state and re-queries the catalog.
func (m Model) applyFilters(filters state.Filters) (tea.Model, tea.Cmd) {
	m.store.SetFilters(filters)
	m.refreshSnapshot()
	m.selectedBook = 0
	return m, m.loadBooksCmd(filters)
}

func sortLabel(sort api.SortBy) string {
	switch sort {
	case api.SortAuthor:
		return "Author"
	case api.SortPriceAsc:
		return "Price ↑"
	case api.SortPriceDesc:
		return "Price ↓"
	case api.SortRating:
		return "Rating"
	default:
		return "Title"
	}
}

// renderHome renders the catalog view: filter bar on top, book list and
// detail pane side by side.
func (m Model) renderHome() string {
	if len(m.snapshot.Books) == 0 {
		if m.snapshot.Filters == state.DefaultFilters() {
			return m.renderFilterBar() + "\n" + m.centeredNotice("No books available")
		}
		return m.renderFilterBar() + "\n" + m.centeredNotice("No books match your filters")
	}

	contentHeight := m.contentHeight() - 1 // filter bar

	var tableWidth int
	if m.width >= 160 {
		tableWidth = m.width * 40 / 100
	} else {
		tableWidth = m.width * 50 / 100
	}
	detailWidth := m.width - tableWidth

	tableTitle := fmt.Sprintf("Books (%d)", len(m.snapshot.Books))
	tableContent := m.renderBookTable(tableWidth - 2)
	tablePane := m.renderTitledBox(tableTitle, tableContent, tableWidth, contentHeight, true)

	var detailContent string
	if book, ok := m.currentBook(); ok {
		detailContent = m.renderBookDetail(book, detailWidth-4)
	}
	detailPane := m.renderTitledBox("Details", detailContent, detailWidth, contentHeight, false)

	return m.renderFilterBar() + "\n" +
		lipgloss.JoinHorizontal(lipgloss.Top, tablePane, detailPane)
}

// renderFilterBar shows the active catalog filters, or the live search
// input while searching.
func (m Model) renderFilterBar() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.SurfaceAlt)

	if m.searching {
		return bg.FillLine(m.searchInput.View(), m.width)
	}

	filters := m.snapshot.Filters
	parts := []string{
		bg.Render("Category:", styles.MutedText) + bg.Space() +
			bg.Render(filters.Category, styles.Text),
		bg.Render("Sort:", styles.MutedText) + bg.Space() +
			bg.Render(sortLabel(filters.SortBy), styles.Text),
	}

	if filters.Search != "" {
		parts = append(parts,
			bg.Render("Search:", styles.MutedText)+bg.Space()+
				bg.Render(truncate(filters.Search, 24), styles.AccentText))
	}
	if filters.MinPrice != "" || filters.MaxPrice != "" {
		low := ternary(filters.MinPrice != "", "$"+filters.MinPrice, "$0")
		high := ternary(filters.MaxPrice != "", "$"+filters.MaxPrice, "∞")
		parts = append(parts,
			bg.Render("Price:", styles.MutedText)+bg.Space()+
				bg.Render(low+"–"+high, styles.AccentText))
	}

	return bg.FillLine(bg.Join(parts, "   "), m.width)
}

// renderBookTable renders the catalog as styled rows.
func (m Model) renderBookTable(width int) string {
	books := m.snapshot.Books

	var lines []string
	for i, book := range books {
		selected := i == m.selectedBook
		content := m.formatBookRow(book, width, selected)
		bgColor := m.theme.SurfaceAlt
		if selected {
			bgColor = m.theme.SelectionBg
		}
		lines = append(lines, lipgloss.NewStyle().
			Background(lipgloss.Color(bgColor)).
			Width(width).
			Render(content))
	}
	return strings.Join(lines, "\n")
}

// formatBookRow formats one catalog row: "Title · Author  $price".
func (m Model) formatBookRow(book api.Book, width int, selected bool) string {
	bgColor := m.theme.SurfaceAlt
	if selected {
		bgColor = m.theme.SelectionBg
	}
	bg := NewBgStyle(bgColor)

	price := formatPrice(book.Price)
	marker := ""
	if !book.InStock() {
		marker = " ✗"
	}

	titleWidth := max(width-len([]rune(book.Author))-len(price)-len(marker)-7, 10)

	var titleStyle, authorStyle, priceStyle, markerStyle lipgloss.Style
	if selected {
		selText := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		titleStyle, authorStyle, priceStyle, markerStyle = selText, selText, selText, selText
	} else {
		styles := m.theme.Styles()
		titleStyle = styles.Text
		authorStyle = styles.MutedText
		priceStyle = styles.AccentText
		markerStyle = styles.DangerText
	}

	row := bg.Render(truncate(book.Title, titleWidth), titleStyle) +
		bg.Render(" · ", authorStyle) +
		bg.Render(book.Author, authorStyle) +
		bg.Spaces(2) +
		bg.Render(price, priceStyle)
	if marker != "" {
		row += bg.Render(marker, markerStyle)
	}
	return row
}

// renderBookDetail renders the detail pane for the selected book.
func (m Model) renderBookDetail(book api.Book, width int) string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.SurfaceAlt)

	var b strings.Builder
	b.WriteString(bg.Render(book.Title, styles.Text.Bold(true)))
	b.WriteString("\n")
	b.WriteString(bg.Render("by "+book.Author, styles.MutedText))
	b.WriteString("\n\n")

	b.WriteString(bg.Render("Category:", styles.MutedText) + bg.Space() +
		bg.Render(book.Category, styles.Text))
	b.WriteString("\n")
	b.WriteString(bg.Render("Price:", styles.MutedText) + bg.Space() +
		bg.Render(formatPrice(book.Price), styles.AccentText))
	b.WriteString("\n")
	b.WriteString(bg.Render("Rating:", styles.MutedText) + bg.Space() +
		bg.Render(fmt.Sprintf("%.1f (%d reviews)", book.Rating, book.Reviews), styles.Text))
	b.WriteString("\n")

	if book.InStock() {
		b.WriteString(bg.Render("Stock:", styles.MutedText) + bg.Space() +
			bg.Render(fmt.Sprintf("%d available", book.Inventory), styles.SuccessText))
	} else {
		b.WriteString(bg.Render("Out of Stock", styles.DangerText))
	}
	b.WriteString("\n")

	if book.ISBN != "" {
		b.WriteString(bg.Render("ISBN:", styles.MutedText) + bg.Space() +
			bg.Render(book.ISBN, styles.FaintText))
		b.WriteString("\n")
	}

	if url, ok := m.coverURLs[book.ID]; ok {
		b.WriteString(bg.Render("Cover:", styles.MutedText) + bg.Space() +
			bg.Render(truncate(url, max(width-8, 16)), styles.FaintText))
		b.WriteString("\n")
	}

	if book.Description != "" {
		b.WriteString("\n")
		desc := lipgloss.NewStyle().
			Width(width).
			Foreground(lipgloss.Color(m.theme.Text)).
			Background(lipgloss.Color(m.theme.SurfaceAlt)).
			Render(book.Description)
		b.WriteString(desc)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if book.InStock() {
		b.WriteString(bg.Render("enter", styles.AccentText) + bg.Space() +
			bg.Render("Add to cart", styles.MutedText))
	} else {
		b.WriteString(bg.Render("Currently unavailable", styles.FaintText))
	}

	return b.String()
}
