// Package app wires configuration, the API client, the session, and the
// UI together and runs the program.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/JaiSanthosh66/folio/internal/api"
	"github.com/JaiSanthosh66/folio/internal/catalog"
	"github.com/JaiSanthosh66/folio/internal/config"
	"github.com/JaiSanthosh66/folio/internal/prefs"
	"github.com/JaiSanthosh66/folio/internal/session"
	"github.com/JaiSanthosh66/folio/internal/state"
	"github.com/JaiSanthosh66/folio/internal/ui"
)

// Options configure the Folio application.
type Options struct {
	ConfigPath string // empty uses default ~/.config/folio/config.toml
	PrefsPath  string // empty uses default ~/.config/folio/prefs.toml
	APIBase    string // overrides the configured backend when set
}

// Run boots the Folio TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.APIBase != "" {
		cfg.APIBase = opts.APIBase
	}

	// The TUI owns the terminal, so logs go to a file.
	closeLogs := setupLogging(cfg.LogPath)
	defer closeLogs()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs := prefs.Load(prefsPath)

	client, err := api.NewClient(cfg.APIBase)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	sess := session.New(client, prefsPath, userPrefs.Token)
	client.SetTokenSource(sess.Token)

	store := state.NewStore()

	// A failed restore silently falls back to an anonymous session.
	if sess.Restore(ctx) {
		if user, ok := sess.User(); ok {
			slog.Info("session restored", "user", user.Username)
		}
	}

	uiOpts := ui.Options{
		Context:   ctx,
		Client:    client,
		Session:   sess,
		Store:     store,
		Covers:    catalog.NewResolver(),
		ThemeName: userPrefs.Theme,
		PrefsPath: prefsPath,
	}
	return ui.Run(uiOpts)
}

// setupLogging installs a file-backed slog default handler. When the log
// file cannot be opened, logging is discarded rather than written to the
// terminal the UI is drawing on.
func setupLogging(path string) func() {
	var writer io.Writer = io.Discard
	closer := func() {}

	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			if file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
				writer = file
				closer = func() { _ = file.Close() }
			}
		}
	}

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{Level: slog.LevelDebug})
	slog.SetDefault(slog.New(handler))
	return closer
}
