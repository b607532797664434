package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	sections := []helpSection{
		{
			title: "Navigation",
			items: []helpItem{
				{"b/c/o", "Books/Cart/Orders"},
				{"esc", "Return to books"},
				{"j/k", "Move up/down"},
				{"g/G", "Go to top/bottom"},
				{"r", "Refresh view"},
			},
		},
		{
			title: "Books",
			items: []helpItem{
				{"enter", "Add to cart"},
				{"/", "Search title/author"},
				{"f", "Cycle category"},
				{"s", "Cycle sort order"},
				{"p", "Price range"},
			},
		},
		{
			title: "Cart",
			items: []helpItem{
				{"+/-", "Change quantity"},
				{"0-9", "Set quantity"},
				{"d", "Remove item"},
				{"enter", "Checkout"},
			},
		},
		{
			title: "Account",
			items: []helpItem{
				{"l", "Sign in / register"},
				{"L", "Logout"},
			},
		},
		{
			title: "General",
			items: []helpItem{
				{"T", "Cycle theme"},
				{"?", "Toggle help"},
				{"q/ctrl+c", "Quit"},
			},
		},
	}

	var b strings.Builder

	title := styles.Text.Bold(true).Render("Keyboard Shortcuts")
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	for i, section := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")

		for _, item := range section.items {
			keyStyle := lipgloss.NewStyle().
				Foreground(lipgloss.Color(m.theme.Warning)).
				Width(12)
			b.WriteString(keyStyle.Render(item.key))
			b.WriteString(styles.Text.Render(item.desc))
			b.WriteString("\n")
		}

		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	return m.renderModal(b.String(), 40)
}

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}
