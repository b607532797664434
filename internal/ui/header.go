package ui

import (
	"fmt"
	"strings"
)

// renderHeader renders the top status bar: logo, session state, cart badge.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{
		bg.Render("folio", styles.Logo),
	}

	if user, ok := m.sessionUser(); ok {
		parts = append(parts,
			bg.Render("●", styles.SuccessText)+bg.Space()+
				bg.Render(user.Username, styles.Text))
	} else {
		parts = append(parts,
			bg.Render("○", styles.FaintText)+bg.Space()+
				bg.Render("browsing as guest", styles.MutedText))
	}

	// Cart badge only means something once a cart has been fetched.
	if m.snapshot.HasCart {
		count := m.snapshot.Cart.Count()
		countStyle := styles.MutedText
		if count > 0 {
			countStyle = styles.AccentText
		}
		parts = append(parts,
			bg.Render("Cart:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", count), countStyle))
	}

	if m.snapshot.Filters.Search != "" {
		parts = append(parts,
			bg.Render("/"+truncate(m.snapshot.Filters.Search, 24), styles.AccentText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, sep))
}

// renderCommandBar renders the key hints for the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewCart:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"+/-", "Quantity"},
			{"d", "Remove"},
			{"enter", "Checkout"},
			{"b", "Books"},
			{"o", "Orders"},
			{"?", "More"},
		}
	case ViewOrders:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"r", "Refresh"},
			{"b", "Books"},
			{"c", "Cart"},
			{"?", "More"},
		}
	default: // ViewHome
		commands = []cmd{
			{"j/k", "Navigate"},
			{"enter", "Add to cart"},
			{"/", "Search"},
			{"f", m.categoryLabel()},
			{"s", sortLabel(m.snapshot.Filters.SortBy)},
			{"p", "Price"},
			{"c", "Cart"},
			{"o", "Orders"},
			{"?", "More"},
		}
	}

	if m.authenticated() {
		commands = append(commands, cmd{"L", "Logout"})
	} else {
		commands = append(commands, cmd{"l", "Sign in"})
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}

// categoryLabel shows the active category filter in the command bar.
func (m Model) categoryLabel() string {
	return truncate(m.snapshot.Filters.Category, 16)
}
