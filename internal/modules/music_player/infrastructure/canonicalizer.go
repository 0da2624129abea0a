package infrastructure

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/itsmaat/tunebot/internal/modules/music_player/application/ports"
)

const canonicalizerTimeout = 10 * time.Second

var _ ports.LinkCanonicalizer = (*RedirectCanonicalizer)(nil)

// RedirectCanonicalizer resolves shortened links to their canonical form by
// following HTTP redirects and reporting the final request URL. It tries a
// HEAD request first and falls back to GET for hosts that reject HEAD.
//
// Resolution never fails: on any error the input is returned unchanged and
// the caller classifies it as-is.
type RedirectCanonicalizer struct {
	http *http.Client
}

// NewRedirectCanonicalizer creates a canonicalizer. A nil client gets a
// default with a request timeout; redirects are followed either way.
func NewRedirectCanonicalizer(client *http.Client) *RedirectCanonicalizer {
	if client == nil {
		client = &http.Client{Timeout: canonicalizerTimeout}
	}
	return &RedirectCanonicalizer{http: client}
}

// ResolveFinalURL returns the URL the given link ultimately redirects to, or
// the input unchanged when resolution fails.
func (c *RedirectCanonicalizer) ResolveFinalURL(ctx context.Context, raw string) string {
	if final, ok := c.resolve(ctx, http.MethodHead, raw); ok {
		return final
	}
	if final, ok := c.resolve(ctx, http.MethodGet, raw); ok {
		return final
	}

	slog.Debug("link canonicalization failed, using link as-is", "url", raw)
	return raw
}

func (c *RedirectCanonicalizer) resolve(ctx context.Context, method, raw string) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, method, raw, nil)
	if err != nil {
		return "", false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", false
	}
	return resp.Request.URL.String(), true
}
