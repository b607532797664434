package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type authMode int

const (
	modeLogin authMode = iota
	modeRegister
)

// authForm is the sign-in / registration overlay state.
type authForm struct {
	mode       authMode
	inputs     [3]textinput.Model // username, email, password
	focus      int
	submitting bool
	errMsg     string
}

func newAuthForm() authForm {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 40

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 80

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 80
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	form := authForm{inputs: [3]textinput.Model{username, email, password}}
	form.inputs[form.fields()[0]].Focus()
	return form
}

// fields returns the input indices visible in the current mode. The
// username field only exists on registration.
func (f authForm) fields() []int {
	if f.mode == modeRegister {
		return []int{0, 1, 2}
	}
	return []int{1, 2}
}

func (f *authForm) setFocus(pos int) {
	fields := f.fields()
	if pos < 0 {
		pos = 0
	}
	if pos >= len(fields) {
		pos = len(fields) - 1
	}
	f.focus = pos
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	f.inputs[fields[pos]].Focus()
}

func (f *authForm) toggleMode() {
	if f.mode == modeLogin {
		f.mode = modeRegister
	} else {
		f.mode = modeLogin
	}
	f.errMsg = ""
	f.setFocus(0)
}

func (f authForm) values() (username, email, password string) {
	return strings.TrimSpace(f.inputs[0].Value()),
		strings.TrimSpace(f.inputs[1].Value()),
		f.inputs[2].Value()
}

// validate returns a user-facing message for the first problem found.
func (f authForm) validate() string {
	username, email, password := f.values()
	if f.mode == modeRegister && username == "" {
		return "Username is required"
	}
	if email == "" || !strings.Contains(email, "@") {
		return "Enter a valid email address"
	}
	if password == "" {
		return "Password is required"
	}
	if f.mode == modeRegister && len(password) < 6 {
		return "Password must be at least 6 characters"
	}
	return ""
}

// handleAuthKey processes keyboard input while the auth overlay is open.
func (m Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.auth.submitting {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.overlay = overlayNone
		m.auth = newAuthForm()
		return m, nil

	case "ctrl+r":
		m.auth.toggleMode()
		return m, nil

	case "tab", "down":
		m.auth.setFocus(m.auth.focus + 1)
		return m, nil

	case "shift+tab", "up":
		m.auth.setFocus(m.auth.focus - 1)
		return m, nil

	case "enter":
		if m.auth.focus < len(m.auth.fields())-1 {
			m.auth.setFocus(m.auth.focus + 1)
			return m, nil
		}
		return m.submitAuth()
	}

	idx := m.auth.fields()[m.auth.focus]
	var cmd tea.Cmd
	m.auth.inputs[idx], cmd = m.auth.inputs[idx].Update(msg)
	return m, cmd
}

func (m Model) submitAuth() (tea.Model, tea.Cmd) {
	if msg := m.auth.validate(); msg != "" {
		m.auth.errMsg = msg
		return m, nil
	}

	m.auth.errMsg = ""
	m.auth.submitting = true
	username, email, password := m.auth.values()
	if m.auth.mode == modeRegister {
		return m, m.registerCmd(username, email, password)
	}
	return m, m.loginCmd(email, password)
}

// renderAuth renders the sign-in / registration modal.
func (m Model) renderAuth() string {
	styles := m.theme.Styles()

	title := "Sign In"
	switchHint := "create an account"
	if m.auth.mode == modeRegister {
		title = "Create Account"
		switchHint = "sign in instead"
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(title))
	b.WriteString("\n\n")

	labels := [3]string{"Username", "Email", "Password"}
	for _, idx := range m.auth.fields() {
		b.WriteString(styles.MutedText.Render(labels[idx]))
		b.WriteString("\n")
		b.WriteString(m.auth.inputs[idx].View())
		b.WriteString("\n\n")
	}

	if m.auth.errMsg != "" {
		b.WriteString(styles.DangerText.Render(m.auth.errMsg))
		b.WriteString("\n\n")
	}
	if m.auth.submitting {
		b.WriteString(styles.MutedText.Render("Submitting..."))
		b.WriteString("\n\n")
	}

	b.WriteString(styles.AccentText.Render("enter") + styles.FaintText.Render(" submit  "))
	b.WriteString(styles.AccentText.Render("ctrl+r") + styles.FaintText.Render(" "+switchHint+"  "))
	b.WriteString(styles.AccentText.Render("esc") + styles.FaintText.Render(" cancel"))

	return m.renderModal(b.String(), 44)
}
