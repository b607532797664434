// Package catalog resolves cover images for books through a fixed
// fallback chain: the record's own image URL, then an Open Library
// lookup by ISBN, then a generated placeholder.
package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/JaiSanthosh66/folio/internal/api"
)

const (
	openLibraryCoverURL = "https://covers.openlibrary.org/b/isbn/%s-L.jpg"
	placeholderURL      = "https://via.placeholder.com/300x400/2563eb/ffffff?text=%s+by+%s"

	placeholderTitleLimit  = 30
	placeholderAuthorLimit = 20

	// Open Library serves a tiny stub image for unknown ISBNs; anything
	// under this size is treated as a miss.
	minCoverBytes = 1000
)

// CleanISBN strips hyphens and surrounding whitespace from an ISBN.
func CleanISBN(isbn string) string {
	return strings.ReplaceAll(strings.TrimSpace(isbn), "-", "")
}

// PlaceholderURL builds the generated cover encoding title and author.
// This source always exists, so every fallback chain terminates here.
func PlaceholderURL(title, author string) string {
	return fmt.Sprintf(placeholderURL,
		url.QueryEscape(truncateRunes(title, placeholderTitleLimit)),
		url.QueryEscape(truncateRunes(author, placeholderAuthorLimit)))
}

// Sources returns the cover candidates for a book in fallback order.
// Sources without data (no explicit image, no ISBN) are skipped entirely
// rather than attempted; the placeholder is always last.
func Sources(book api.Book) []string {
	var sources []string
	if image := strings.TrimSpace(book.Image); image != "" {
		sources = append(sources, image)
	}
	if isbn := CleanISBN(book.ISBN); isbn != "" {
		sources = append(sources, fmt.Sprintf(openLibraryCoverURL, isbn))
	}
	return append(sources, PlaceholderURL(book.Title, book.Author))
}

// CoverSource returns the cover URL for the given attempt index. ok is
// false once the chain is exhausted; attempts advance monotonically, so
// a failed stage can never be retried.
func CoverSource(book api.Book, attempt int) (string, bool) {
	sources := Sources(book)
	if attempt < 0 || attempt >= len(sources) {
		return "", false
	}
	return sources[attempt], true
}

// Resolver probes cover sources over HTTP, advancing the attempt index
// on each load failure.
type Resolver struct {
	client *http.Client
}

// NewResolver builds a Resolver with a bounded probe timeout.
func NewResolver() *Resolver {
	return &Resolver{
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

// Resolve returns the first cover URL that actually loads. The final
// placeholder stage is returned without probing since it is generated.
// Failures along the chain are logged, never surfaced.
func (r *Resolver) Resolve(ctx context.Context, book api.Book) string {
	sources := Sources(book)
	for attempt := 0; attempt < len(sources)-1; attempt++ {
		source := sources[attempt]
		if err := r.probe(ctx, source); err != nil {
			slog.Debug("cover source failed", "title", book.Title, "attempt", attempt, "error", err)
			continue
		}
		return source
	}
	return sources[len(sources)-1]
}

func (r *Resolver) probe(ctx context.Context, rawURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch cover: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cover returned status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, minCoverBytes))
	if err != nil {
		return fmt.Errorf("read cover: %w", err)
	}
	if len(data) < minCoverBytes {
		return fmt.Errorf("cover too small (likely placeholder stub)")
	}
	return nil
}

func truncateRunes(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit])
}
