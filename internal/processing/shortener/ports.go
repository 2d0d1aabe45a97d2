package shortener

import (
	"context"
	"errors"
)

var (
	ErrInvalidURL          = errors.New("invalid url")
	ErrNotFound            = errors.New("link not found")
	ErrTokenTaken          = errors.New("short token taken")
	ErrTokenSpaceExhausted = errors.New("token space exhausted")
	ErrQuotaExceeded       = errors.New("daily link quota exceeded")
	ErrQuotaUnavailable    = errors.New("quota store unavailable")
	ErrUnknownTier         = errors.New("unknown subscription tier")
)

type LinkRepository interface {
	// Insert persists a new link. Returns ErrTokenTaken when the short
	// token already exists.
	Insert(ctx context.Context, link *Link) error
	FindByToken(ctx context.Context, token string) (*Link, error)
	FindByOwnerAndURL(ctx context.Context, ownerID, longURL string) (*Link, error)
	IncrementClicks(ctx context.Context, token string, delta int64) error
}

// QuotaStore is the shared per-owner creation counter. Consume must be a
// single atomic round trip: when the key is absent it initializes the counter
// to capacity-1 with the window's TTL (the initializing call consumes one
// unit), when present and positive it decrements, and when zero it returns
// ErrQuotaExceeded without mutating. Any infrastructure failure surfaces as
// ErrQuotaUnavailable.
type QuotaStore interface {
	Consume(ctx context.Context, key string, capacity int) (remaining int64, err error)
	Peek(ctx context.Context, key string) (remaining int64, ok bool, err error)
}

// TierCatalog resolves a tier name to its per-window creation entitlement.
// Implementations return ErrUnknownTier for names not in the catalog.
type TierCatalog interface {
	MaxURLs(ctx context.Context, tierName string) (int, error)
}

type TokenGenerator interface {
	Generate() (string, error)
}
