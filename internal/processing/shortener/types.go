package shortener

import "time"

type Link struct {
	ID         string
	OwnerID    string
	LongURL    string
	ShortToken string
	CreatedAt  time.Time
	Clicks     int64
}

type ShortenInput struct {
	OwnerID string
	Tier    string
	URL     string
}

// QuotaStatus reports the caller's remaining quota for the current window.
// Initialized is false when no counter exists yet, meaning the full tier
// entitlement is still available.
type QuotaStatus struct {
	Tier        string
	Remaining   int64
	Initialized bool
}
