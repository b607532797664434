package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/JaiSanthosh66/folio/internal/api"
)

// checkoutForm is the shipping-address overlay state. The address is
// transient: it lives only until the order is placed or the form closed.
type checkoutForm struct {
	inputs     [5]textinput.Model // street, city, state, zip, country
	focus      int
	submitting bool
	errMsg     string
}

var checkoutLabels = [5]string{"Street", "City", "State", "Zip Code", "Country"}

func newCheckoutForm() checkoutForm {
	var form checkoutForm
	placeholders := [5]string{"12 Main St", "Springfield", "IL", "62704", "USA"}
	for i := range form.inputs {
		input := textinput.New()
		input.Placeholder = placeholders[i]
		input.CharLimit = 80
		form.inputs[i] = input
	}
	return form
}

func (f *checkoutForm) setFocus(pos int) {
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

func (f checkoutForm) address() api.ShippingAddress {
	return api.ShippingAddress{
		Street:  strings.TrimSpace(f.inputs[0].Value()),
		City:    strings.TrimSpace(f.inputs[1].Value()),
		State:   strings.TrimSpace(f.inputs[2].Value()),
		ZipCode: strings.TrimSpace(f.inputs[3].Value()),
		Country: strings.TrimSpace(f.inputs[4].Value()),
	}
}

// validate requires every address field before the order goes out.
func (f checkoutForm) validate() string {
	addr := f.address()
	missing := []struct {
		value string
		label string
	}{
		{addr.Street, "Street"},
		{addr.City, "City"},
		{addr.State, "State"},
		{addr.ZipCode, "Zip code"},
		{addr.Country, "Country"},
	}
	for _, field := range missing {
		if field.value == "" {
			return field.label + " is required"
		}
	}
	return ""
}

// handleCheckoutKey processes keyboard input while the checkout overlay
// is open.
func (m Model) handleCheckoutKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.checkout.submitting {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.overlay = overlayNone
		m.checkout = newCheckoutForm()
		return m, nil

	case "tab", "down":
		m.checkout.setFocus(m.checkout.focus + 1)
		return m, nil

	case "shift+tab", "up":
		m.checkout.setFocus(m.checkout.focus - 1)
		return m, nil

	case "enter":
		if m.checkout.focus < len(m.checkout.inputs)-1 {
			m.checkout.setFocus(m.checkout.focus + 1)
			return m, nil
		}
		return m.submitCheckout()
	}

	var cmd tea.Cmd
	m.checkout.inputs[m.checkout.focus], cmd = m.checkout.inputs[m.checkout.focus].Update(msg)
	return m, cmd
}

func (m Model) submitCheckout() (tea.Model, tea.Cmd) {
	if msg := m.checkout.validate(); msg != "" {
		m.checkout.errMsg = msg
		return m, nil
	}

	m.checkout.errMsg = ""
	m.checkout.submitting = true
	return m, m.checkoutCmd(m.checkout.address())
}

// renderCheckout renders the shipping-address modal with the cart total.
func (m Model) renderCheckout() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Checkout"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("%d items", m.snapshot.Cart.Count())))
	b.WriteString(styles.FaintText.Render("  ·  "))
	b.WriteString(styles.SuccessText.Render(formatPrice(m.snapshot.Cart.Total())))
	b.WriteString("\n\n")

	for i := range m.checkout.inputs {
		b.WriteString(styles.MutedText.Render(checkoutLabels[i]))
		b.WriteString("\n")
		b.WriteString(m.checkout.inputs[i].View())
		b.WriteString("\n\n")
	}

	if m.checkout.errMsg != "" {
		b.WriteString(styles.DangerText.Render(m.checkout.errMsg))
		b.WriteString("\n\n")
	}
	if m.checkout.submitting {
		b.WriteString(styles.MutedText.Render("Placing order..."))
		b.WriteString("\n\n")
	}

	b.WriteString(styles.AccentText.Render("enter") + styles.FaintText.Render(" place order  "))
	b.WriteString(styles.AccentText.Render("esc") + styles.FaintText.Render(" cancel"))

	return m.renderModal(b.String(), 44)
}
