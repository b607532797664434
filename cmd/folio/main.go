package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JaiSanthosh66/folio/internal/app"
)

const version = "0.1.0"

func main() {
	root := newRootCmd()

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	cmd := &cobra.Command{
		Use:   "folio",
		Short: "Terminal client for the bookstore",
		Long: `Folio is a terminal client for the bookstore backend.

Browse the catalog, manage a cart, and place orders without leaving
the terminal. Settings live in ~/.config/folio/config.toml and the
FOLIO_API_BASE environment variable overrides the backend address.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "config file path (optional)")
	cmd.Flags().StringVar(&opts.APIBase, "api", "", "backend base URL (overrides config)")

	return cmd
}
