package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/JaiSanthosh66/folio/internal/api"
)

// handleCartKey processes keyboard input for the cart view.
func (m Model) handleCartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.snapshot.Cart.Items

	switch msg.String() {
	case "j", "down":
		if m.selectedItem < len(items)-1 {
			m.selectedItem++
		}
	case "k", "up":
		if m.selectedItem > 0 {
			m.selectedItem--
		}
	case "g", "home":
		m.selectedItem = 0
	case "G", "end":
		if len(items) > 0 {
			m.selectedItem = len(items) - 1
		}

	case "+", "=", "right":
		if item, ok := m.currentCartItem(); ok {
			return m, m.updateCartItemCmd(item.ID, item.Quantity+1)
		}

	case "-", "left":
		// Dropping to zero removes the line; the client never sends a
		// non-positive quantity.
		if item, ok := m.currentCartItem(); ok {
			return m, m.updateCartItemCmd(item.ID, item.Quantity-1)
		}

	case "d", "x":
		if item, ok := m.currentCartItem(); ok {
			return m, m.removeCartItemCmd(item.ID)
		}

	case "enter", "C":
		if !m.authenticated() || len(items) == 0 {
			return m, nil
		}
		m.checkout = newCheckoutForm()
		m.checkout.inputs[0].Focus()
		m.overlay = overlayCheckout
		return m, textinput.Blink

	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		// Direct quantity edit. Zero goes through the same path and
		// ends up as a removal.
		if item, ok := m.currentCartItem(); ok {
			qty, _ := strconv.Atoi(msg.String())
			return m, m.updateCartItemCmd(item.ID, qty)
		}
	}

	return m, nil
}

func (m Model) currentCartItem() (api.CartItem, bool) {
	items := m.snapshot.Cart.Items
	if m.selectedItem < 0 || m.selectedItem >= len(items) {
		return api.CartItem{}, false
	}
	return items[m.selectedItem], true
}

// renderCart renders the cart view.
func (m Model) renderCart() string {
	if !m.authenticated() {
		return m.centeredNotice("Sign in to view your cart (press l)")
	}
	if !m.snapshot.HasCart {
		return m.centeredNotice("Loading cart...")
	}
	if len(m.snapshot.Cart.Items) == 0 {
		return m.centeredNotice("Your cart is empty — press b to browse books")
	}

	contentHeight := m.contentHeight()
	summaryHeight := 5
	listHeight := contentHeight - summaryHeight

	title := fmt.Sprintf("Cart (%d)", m.snapshot.Cart.Count())
	listContent := m.renderCartItems(m.width - 2)
	listPane := m.renderTitledBox(title, listContent, m.width, listHeight, true)

	summaryPane := m.renderTitledBox("Summary", m.renderCartSummary(), m.width, summaryHeight, false)

	return listPane + "\n" + summaryPane
}

// renderCartItems renders cart lines: "qty × Title · Author  line total".
func (m Model) renderCartItems(width int) string {
	var lines []string
	for i, item := range m.snapshot.Cart.Items {
		selected := i == m.selectedItem
		bgColor := m.theme.SurfaceAlt
		if selected {
			bgColor = m.theme.SelectionBg
		}
		content := m.formatCartRow(item, width, selected)
		lines = append(lines, lipgloss.NewStyle().
			Background(lipgloss.Color(bgColor)).
			Width(width).
			Render(content))
	}
	return strings.Join(lines, "\n")
}

func (m Model) formatCartRow(item api.CartItem, width int, selected bool) string {
	bgColor := m.theme.SurfaceAlt
	if selected {
		bgColor = m.theme.SelectionBg
	}
	bg := NewBgStyle(bgColor)

	qty := fmt.Sprintf("%d×", item.Quantity)
	lineTotal := formatPrice(item.Book.Price * float64(item.Quantity))
	each := formatPrice(item.Book.Price) + " each"

	titleWidth := max(width-len(qty)-len(lineTotal)-len(each)-len([]rune(item.Book.Author))-10, 10)

	var qtyStyle, titleStyle, mutedStyle, totalStyle lipgloss.Style
	if selected {
		selText := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		qtyStyle, titleStyle, mutedStyle, totalStyle = selText, selText, selText, selText
	} else {
		styles := m.theme.Styles()
		qtyStyle = styles.AccentText
		titleStyle = styles.Text
		mutedStyle = styles.MutedText
		totalStyle = styles.AccentText
	}

	return bg.Render(qty, qtyStyle) + bg.Space() +
		bg.Render(truncate(item.Book.Title, titleWidth), titleStyle) +
		bg.Render(" · ", mutedStyle) +
		bg.Render(item.Book.Author, mutedStyle) +
		bg.Spaces(2) +
		bg.Render(each, mutedStyle) +
		bg.Spaces(2) +
		bg.Render(lineTotal, totalStyle)
}

// renderCartSummary renders the totals block. The total is always
// recomputed from the fetched items.
func (m Model) renderCartSummary() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.SurfaceAlt)
	cart := m.snapshot.Cart

	var b strings.Builder
	b.WriteString(bg.Render(fmt.Sprintf("%d items", cart.Count()), styles.MutedText))
	b.WriteString(bg.Spaces(4))
	b.WriteString(bg.Render("Total:", styles.MutedText) + bg.Space() +
		bg.Render(formatPrice(cart.Total()), styles.SuccessText))
	b.WriteString("\n")
	b.WriteString(bg.Render("enter", styles.AccentText) + bg.Space() +
		bg.Render("Checkout", styles.MutedText))
	return b.String()
}
