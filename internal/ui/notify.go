package ui

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// toastTTL is how long a notification stays on screen.
const toastTTL = 3 * time.Second

type toastKind int

const (
	toastInfo toastKind = iota
	toastSuccess
	toastError
)

// toast is a transient notification. Toasts stack in arrival order and
// expire independently; duplicates are not collapsed.
type toast struct {
	text    string
	kind    toastKind
	expires time.Time
}

func (m *Model) pushToast(text string, kind toastKind) {
	if text == "" {
		return
	}
	m.toasts = append(m.toasts, toast{
		text:    text,
		kind:    kind,
		expires: time.Now().Add(toastTTL),
	})
}

// pruneToasts drops expired notifications. Called on every tick.
func (m *Model) pruneToasts() {
	now := time.Now()
	kept := m.toasts[:0]
	for _, t := range m.toasts {
		if t.expires.After(now) {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
}

func (m Model) activeToasts() []toast {
	now := time.Now()
	var active []toast
	for _, t := range m.toasts {
		if t.expires.After(now) {
			active = append(active, t)
		}
	}
	return active
}

// renderToasts renders the active notifications as a single line under
// the command bar. Empty when nothing is pending.
func (m Model) renderToasts() string {
	active := m.activeToasts()
	if len(active) == 0 {
		return ""
	}

	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	parts := make([]string, 0, len(active))
	for _, t := range active {
		var style lipgloss.Style
		var marker string
		switch t.kind {
		case toastSuccess:
			style, marker = styles.SuccessText, "✓"
		case toastError:
			style, marker = styles.DangerText, "✗"
		default:
			style, marker = styles.InfoText, "•"
		}
		parts = append(parts, bg.Render(marker+" "+t.text, style))
	}

	return bg.FillLine(bg.Join(parts, "   "), m.width)
}
