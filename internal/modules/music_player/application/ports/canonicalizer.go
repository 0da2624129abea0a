package ports

import "context"

// LinkCanonicalizer expands a shortened link to its final canonical form by
// following redirects. It never fails: on any transport error the input is
// returned unchanged.
type LinkCanonicalizer interface {
	ResolveFinalURL(ctx context.Context, raw string) string
}
