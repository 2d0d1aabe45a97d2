package shortener

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	links        LinkRepository
	quota        QuotaStore
	tiers        TierCatalog
	tokens       TokenGenerator
	quotaTimeout time.Duration
	now          func() time.Time
}

func NewService(links LinkRepository, quota QuotaStore, tiers TierCatalog, tokens TokenGenerator, quotaTimeout time.Duration) *Service {
	if quotaTimeout <= 0 {
		quotaTimeout = 2 * time.Second
	}

	return &Service{
		links:        links,
		quota:        quota,
		tiers:        tiers,
		tokens:       tokens,
		quotaTimeout: quotaTimeout,
		now:          time.Now,
	}
}

// QuotaKey builds the counter key shared by all requests of one owner within
// one tier.
func QuotaKey(ownerID, tier string) string {
	return fmt.Sprintf("quota:%s:%s", ownerID, strings.ToLower(strings.TrimSpace(tier)))
}

// Shorten runs the creation pipeline: validate, idempotency check, quota
// consume, token generation with bounded collision retry, persist. Quota is
// consumed before the registry write and is not refunded when the write
// fails; a failed persist wastes one unit of the current window.
func (s *Service) Shorten(ctx context.Context, in ShortenInput) (*Link, error) {
	normalized, err := validateAndNormalizeURL(in.URL)
	if err != nil {
		return nil, ErrInvalidURL
	}

	existing, err := s.links.FindByOwnerAndURL(ctx, in.OwnerID, normalized)
	if err == nil {
		// Re-shortening the same URL is free and returns the original token.
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	capacity, err := s.tiers.MaxURLs(ctx, in.Tier)
	if err != nil {
		return nil, err
	}

	quotaCtx, cancel := context.WithTimeout(ctx, s.quotaTimeout)
	defer cancel()
	if _, err := s.quota.Consume(quotaCtx, QuotaKey(in.OwnerID, in.Tier), capacity); err != nil {
		if errors.Is(err, ErrQuotaExceeded) {
			return nil, ErrQuotaExceeded
		}
		// Fail closed: never grant creations while the counter store is down.
		return nil, ErrQuotaUnavailable
	}

	link := &Link{
		ID:        uuid.NewString(),
		OwnerID:   in.OwnerID,
		LongURL:   normalized,
		CreatedAt: s.now().UTC(),
	}

	const maxAttempts = 10
	for range maxAttempts {
		token, err := s.tokens.Generate()
		if err != nil {
			return nil, err
		}
		link.ShortToken = token

		if err := s.links.Insert(ctx, link); err != nil {
			if errors.Is(err, ErrTokenTaken) {
				continue
			}
			return nil, err
		}

		return link, nil
	}

	return nil, ErrTokenSpaceExhausted
}

// Resolve looks up a short token, tolerating surrounding slashes and
// whitespace in the incoming path component.
func (s *Service) Resolve(ctx context.Context, token string) (*Link, error) {
	token = strings.Trim(strings.TrimSpace(token), "/")
	if token == "" {
		return nil, ErrNotFound
	}

	return s.links.FindByToken(ctx, token)
}

// RemainingQuota reports the owner's counter for the current window without
// consuming anything. An absent counter means the full entitlement is still
// available.
func (s *Service) RemainingQuota(ctx context.Context, ownerID, tier string) (QuotaStatus, error) {
	quotaCtx, cancel := context.WithTimeout(ctx, s.quotaTimeout)
	defer cancel()

	remaining, ok, err := s.quota.Peek(quotaCtx, QuotaKey(ownerID, tier))
	if err != nil {
		return QuotaStatus{}, ErrQuotaUnavailable
	}
	if !ok {
		capacity, err := s.tiers.MaxURLs(ctx, tier)
		if err != nil {
			return QuotaStatus{}, err
		}
		return QuotaStatus{Tier: tier, Remaining: int64(capacity)}, nil
	}

	return QuotaStatus{Tier: tier, Remaining: remaining, Initialized: true}, nil
}

func validateAndNormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidURL
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", ErrInvalidURL
	}
	if strings.TrimSpace(u.Host) == "" {
		return "", ErrInvalidURL
	}

	u.Fragment = ""
	return u.String(), nil
}
