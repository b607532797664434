package prefs

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	p := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
	if p.Token != "" {
		t.Fatalf("Token = %q, want empty", p.Token)
	}
}

func TestSaveLoad_RoundTripsTokenAndTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")

	if err := Save(path, Prefs{Theme: "Slate", Token: "tok-abc"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	p := Load(path)
	if p.Theme != "Slate" || p.Token != "tok-abc" {
		t.Fatalf("Load = %#v, want Slate/tok-abc", p)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("Stat: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0o600 {
			t.Fatalf("prefs file mode = %o, want 0600", perm)
		}
	}
}

func TestSaveToken_PreservesTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := Save(path, Prefs{Theme: "Slate"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	if err := SaveToken(path, "  tok-xyz  "); err != nil {
		t.Fatalf("SaveToken returned error: %v", err)
	}
	p := Load(path)
	if p.Theme != "Slate" || p.Token != "tok-xyz" {
		t.Fatalf("Load = %#v, want theme kept and token trimmed", p)
	}

	if err := SaveToken(path, ""); err != nil {
		t.Fatalf("SaveToken returned error: %v", err)
	}
	p = Load(path)
	if p.Token != "" {
		t.Fatalf("Token = %q, want cleared", p.Token)
	}
	if p.Theme != "Slate" {
		t.Fatalf("Theme = %q, want preserved across token clear", p.Theme)
	}
}

func TestLoad_CorruptFileDegradesGracefully(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("theme = ["), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p := Load(path)
	if p.Theme != defaultTheme || p.Token != "" {
		t.Fatalf("Load = %#v, want defaults for corrupt file", p)
	}
}

func TestSave_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "prefs.toml")
	if err := Save(path, Prefs{Theme: "Nightfox"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "Nightfox") {
		t.Fatalf("prefs content = %q, want theme written", data)
	}
}
