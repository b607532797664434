package ui

import "testing"

var orderStatuses = []string{"pending", "processing", "shipped", "delivered", "cancelled"}

func TestGetTheme_UnknownFallsBackToNightfox(t *testing.T) {
	theme := GetTheme("NoSuchTheme")
	if theme.Name != "Nightfox" {
		t.Fatalf("Name = %q, want Nightfox", theme.Name)
	}
}

func TestNextTheme_Cycles(t *testing.T) {
	seen := map[string]bool{}
	current := themeOrder[0]
	for range themeOrder {
		seen[current] = true
		current = NextTheme(current)
	}
	if current != themeOrder[0] {
		t.Fatalf("cycle did not wrap: ended at %q", current)
	}
	if len(seen) != len(themeOrder) {
		t.Fatalf("visited %d themes, want %d", len(seen), len(themeOrder))
	}
}

func TestThemes_CoverAllOrderStatuses(t *testing.T) {
	for _, name := range ThemeNames() {
		theme := GetTheme(name)
		for _, status := range orderStatuses {
			if theme.StatusColors[status] == "" {
				t.Errorf("theme %s missing color for status %q", name, status)
			}
		}
	}
}

func TestStatusStyle_UnknownStatusUsesMuted(t *testing.T) {
	styles := GetTheme("Nightfox").Styles()
	// Render must not panic and should fall back to the muted color.
	out := styles.StatusStyle("mystery").Render("Mystery")
	if out == "" {
		t.Fatal("StatusStyle render is empty")
	}
}
