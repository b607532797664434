package ui

import "testing"

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		limit int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"a long book title that keeps going", 12, "a long bo..."},
		{"abc", 2, "ab"},
		{"no limit", 0, "no limit"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.limit); got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
	}
}

func TestFormatPrice(t *testing.T) {
	if got := formatPrice(12.5); got != "$12.50" {
		t.Fatalf("formatPrice(12.5) = %q, want $12.50", got)
	}
	if got := formatPrice(0); got != "$0.00" {
		t.Fatalf("formatPrice(0) = %q, want $0.00", got)
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 5); got != "ab   " {
		t.Fatalf("padRight = %q", got)
	}
	if got := padRight("abcdef", 3); got != "abcdef" {
		t.Fatalf("padRight should not shorten: %q", got)
	}
}

func TestTitleCase(t *testing.T) {
	if got := titleCase("pending"); got != "Pending" {
		t.Fatalf("titleCase = %q, want Pending", got)
	}
	if got := titleCase(""); got != "" {
		t.Fatalf("titleCase(\"\") = %q, want empty", got)
	}
}
