package postgres

import (
	"context"
	"fmt"

	"github.com/shortlyhq/shortly/internal/infrastructure/db"
)

// schema is applied on startup. The unique index on short_token is the
// storage-level backstop for token collision races; the (owner_id, long_url)
// index serves the idempotency lookup on the create path.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            UUID PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	tier          TEXT NOT NULL DEFAULT 'free',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS subscription_tiers (
	id                  UUID PRIMARY KEY,
	name                TEXT NOT NULL UNIQUE,
	max_urls            INTEGER NOT NULL,
	price               NUMERIC(10,2) NOT NULL DEFAULT 0,
	total_subscriptions INTEGER NOT NULL DEFAULT 0,
	created_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS links (
	id          UUID PRIMARY KEY,
	owner_id    UUID NOT NULL,
	long_url    TEXT NOT NULL,
	short_token TEXT NOT NULL UNIQUE,
	clicks      BIGINT NOT NULL DEFAULT 0,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS links_owner_long_url_idx ON links (owner_id, long_url);

INSERT INTO subscription_tiers (id, name, max_urls, price)
VALUES ('00000000-0000-0000-0000-000000000001', 'free', 5, 0)
ON CONFLICT (name) DO NOTHING;
`

// EnsureSchema creates the tables and seeds the free tier.
func EnsureSchema(ctx context.Context, p *db.Postgres) error {
	if _, err := p.Pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
