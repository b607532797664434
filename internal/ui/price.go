package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// priceForm is the price-range overlay state.
type priceForm struct {
	inputs [2]textinput.Model // min, max
	focus  int
	errMsg string
}

func newPriceForm() priceForm {
	minInput := textinput.New()
	minInput.Placeholder = "min"
	minInput.CharLimit = 10

	maxInput := textinput.New()
	maxInput.Placeholder = "max"
	maxInput.CharLimit = 10

	return priceForm{inputs: [2]textinput.Model{minInput, maxInput}}
}

func (f *priceForm) setFocus(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos >= len(f.inputs) {
		pos = len(f.inputs) - 1
	}
	f.focus = pos
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	f.inputs[pos].Focus()
}

// bounds returns the trimmed values. Empty means unbounded on that side.
func (f priceForm) bounds() (low, high string) {
	return strings.TrimSpace(f.inputs[0].Value()), strings.TrimSpace(f.inputs[1].Value())
}

func (f priceForm) validate() string {
	low, high := f.bounds()
	var lowVal, highVal float64
	var err error
	if low != "" {
		if lowVal, err = strconv.ParseFloat(low, 64); err != nil || lowVal < 0 {
			return "Min must be a non-negative number"
		}
	}
	if high != "" {
		if highVal, err = strconv.ParseFloat(high, 64); err != nil || highVal < 0 {
			return "Max must be a non-negative number"
		}
	}
	if low != "" && high != "" && lowVal > highVal {
		return "Min cannot exceed max"
	}
	return ""
}

// handlePriceKey processes keyboard input while the price overlay is open.
func (m Model) handlePriceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.overlay = overlayNone
		return m, nil

	case "tab", "down", "shift+tab", "up":
		m.price.setFocus((m.price.focus + 1) % len(m.price.inputs))
		return m, nil

	case "enter":
		if msg := m.price.validate(); msg != "" {
			m.price.errMsg = msg
			return m, nil
		}
		low, high := m.price.bounds()
		m.overlay = overlayNone
		filters := m.snapshot.Filters
		filters.MinPrice = low
		filters.MaxPrice = high
		return m.applyFilters(filters)
	}

	var cmd tea.Cmd
	m.price.inputs[m.price.focus], cmd = m.price.inputs[m.price.focus].Update(msg)
	return m, cmd
}

// renderPrice renders the price-range modal.
func (m Model) renderPrice() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Price Range"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Leave a field empty for no bound"))
	b.WriteString("\n\n")

	b.WriteString(styles.MutedText.Render("Min ($)"))
	b.WriteString("\n")
	b.WriteString(m.price.inputs[0].View())
	b.WriteString("\n\n")

	b.WriteString(styles.MutedText.Render("Max ($)"))
	b.WriteString("\n")
	b.WriteString(m.price.inputs[1].View())
	b.WriteString("\n\n")

	if m.price.errMsg != "" {
		b.WriteString(styles.DangerText.Render(m.price.errMsg))
		b.WriteString("\n\n")
	}

	b.WriteString(styles.AccentText.Render("enter") + styles.FaintText.Render(" apply  "))
	b.WriteString(styles.AccentText.Render("esc") + styles.FaintText.Render(" cancel"))

	return m.renderModal(b.String(), 36)
}
