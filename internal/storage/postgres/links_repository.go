package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shortlyhq/shortly/internal/infrastructure/db"
	"github.com/shortlyhq/shortly/internal/processing/shortener"
)

const uniqueViolation = "23505"

type LinksRepository struct {
	db *db.Postgres
}

func NewLinksRepository(p *db.Postgres) (*LinksRepository, error) {
	if p == nil || p.Pool == nil {
		return nil, errors.New("postgres pool is nil")
	}
	return &LinksRepository{db: p}, nil
}

func (r *LinksRepository) Insert(ctx context.Context, link *shortener.Link) error {
	if link == nil {
		return errors.New("link is nil")
	}

	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO links (id, owner_id, long_url, short_token, clicks, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		link.ID, link.OwnerID, link.LongURL, link.ShortToken, link.Clicks, link.CreatedAt.UTC(),
	)
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return shortener.ErrTokenTaken
	}
	return err
}

func (r *LinksRepository) FindByToken(ctx context.Context, token string) (*shortener.Link, error) {
	return r.scanLink(r.db.Pool.QueryRow(ctx,
		`SELECT id, owner_id, long_url, short_token, clicks, created_at
		 FROM links WHERE short_token = $1`,
		token,
	))
}

func (r *LinksRepository) FindByOwnerAndURL(ctx context.Context, ownerID, longURL string) (*shortener.Link, error) {
	// Oldest row wins so concurrent first-creates converge on one token.
	return r.scanLink(r.db.Pool.QueryRow(ctx,
		`SELECT id, owner_id, long_url, short_token, clicks, created_at
		 FROM links WHERE owner_id = $1 AND long_url = $2
		 ORDER BY created_at, id LIMIT 1`,
		ownerID, longURL,
	))
}

func (r *LinksRepository) IncrementClicks(ctx context.Context, token string, delta int64) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE links SET clicks = clicks + $2 WHERE short_token = $1`,
		token, delta,
	)
	return err
}

func (r *LinksRepository) scanLink(row pgx.Row) (*shortener.Link, error) {
	var link shortener.Link
	err := row.Scan(&link.ID, &link.OwnerID, &link.LongURL, &link.ShortToken, &link.Clicks, &link.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}
		return nil, err
	}
	link.CreatedAt = link.CreatedAt.UTC()
	return &link, nil
}
