package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/JaiSanthosh66/folio/internal/api"
)

// handleOrdersKey processes keyboard input for the orders view.
func (m Model) handleOrdersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	orders := m.snapshot.Orders

	switch msg.String() {
	case "j", "down":
		if m.selectedOrder < len(orders)-1 {
			m.selectedOrder++
		}
	case "k", "up":
		if m.selectedOrder > 0 {
			m.selectedOrder--
		}
	case "g", "home":
		m.selectedOrder = 0
	case "G", "end":
		if len(orders) > 0 {
			m.selectedOrder = len(orders) - 1
		}
	case "ctrl+d":
		m.ordersViewport.HalfViewDown()
		return m, nil
	case "ctrl+u":
		m.ordersViewport.HalfViewUp()
		return m, nil
	}

	m.ensureOrderVisible()
	return m, nil
}

// ensureOrderVisible scrolls the viewport so the selected order's summary
// row is on screen. The expanded lines sit below the selection, so the
// summary row index equals the order index.
func (m *Model) ensureOrderVisible() {
	if m.selectedOrder < m.ordersViewport.YOffset {
		m.ordersViewport.SetYOffset(m.selectedOrder)
		return
	}
	bottom := m.ordersViewport.YOffset + m.ordersViewport.Height - 1
	if m.selectedOrder > bottom {
		m.ordersViewport.SetYOffset(m.selectedOrder - m.ordersViewport.Height + 1)
	}
}

// renderOrders renders the order history view.
func (m Model) renderOrders() string {
	if !m.authenticated() {
		return m.centeredNotice("Sign in to view your orders (press l)")
	}
	if len(m.snapshot.Orders) == 0 {
		return m.centeredNotice("No orders yet — your purchases will show up here")
	}

	title := fmt.Sprintf("Orders (%d)", len(m.snapshot.Orders))
	vp := m.ordersViewport
	vp.SetContent(m.renderOrderList(m.width - 2))
	return m.renderTitledBox(title, vp.View(), m.width, m.contentHeight(), true)
}

// renderOrderList renders order summaries, expanding the selected one
// with its line items.
func (m Model) renderOrderList(width int) string {
	var lines []string
	for i, order := range m.snapshot.Orders {
		selected := i == m.selectedOrder
		lines = append(lines, m.formatOrderRow(order, width, selected))
		if selected {
			lines = append(lines, m.formatOrderLines(order)...)
		}
	}
	return strings.Join(lines, "\n")
}

// formatOrderRow formats an order summary: "#id  date  status  total".
func (m Model) formatOrderRow(order api.Order, width int, selected bool) string {
	bgColor := m.theme.SurfaceAlt
	if selected {
		bgColor = m.theme.SelectionBg
	}
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()

	var idStyle, dateStyle, totalStyle lipgloss.Style
	if selected {
		selText := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		idStyle, dateStyle, totalStyle = selText, selText, selText
	} else {
		idStyle = styles.Text
		dateStyle = styles.MutedText
		totalStyle = styles.AccentText
	}

	date := "—"
	if t := order.ParsedCreatedAt(); !t.IsZero() {
		date = t.Format("Jan 2, 2006 15:04")
	}

	badge := styles.StatusStyle(strings.ToLower(order.Status)).Render(titleCase(order.Status))

	row := bg.Render("#"+order.ShortID(), idStyle) +
		bg.Spaces(2) +
		bg.Render(date, dateStyle) +
		bg.Spaces(2) +
		badge +
		bg.Spaces(2) +
		bg.Render(formatPrice(order.TotalAmount), totalStyle)

	return lipgloss.NewStyle().
		Background(lipgloss.Color(bgColor)).
		Width(width).
		Render(row)
}

// formatOrderLines formats the purchased lines of an expanded order.
func (m Model) formatOrderLines(order api.Order) []string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.SurfaceAlt)

	lines := make([]string, 0, len(order.Items))
	for _, line := range order.Items {
		lines = append(lines,
			bg.Spaces(4)+
				bg.Render(fmt.Sprintf("%d×", line.Quantity), styles.FaintText)+bg.Space()+
				bg.Render(line.Title, styles.Text)+
				bg.Render(" · ", styles.FaintText)+
				bg.Render(line.Author, styles.MutedText)+
				bg.Spaces(2)+
				bg.Render(formatPrice(line.Price*float64(line.Quantity)), styles.MutedText))
	}
	return lines
}
