package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shortlyhq/shortly/internal/infrastructure/db"
	"github.com/shortlyhq/shortly/internal/processing/billing"
)

type TiersRepository struct {
	db *db.Postgres
}

func NewTiersRepository(p *db.Postgres) (*TiersRepository, error) {
	if p == nil || p.Pool == nil {
		return nil, errors.New("postgres pool is nil")
	}
	return &TiersRepository{db: p}, nil
}

func (r *TiersRepository) Insert(ctx context.Context, pkg *billing.Package) error {
	if pkg == nil {
		return errors.New("package is nil")
	}

	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO subscription_tiers (id, name, max_urls, price, total_subscriptions, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		pkg.ID, pkg.Name, pkg.MaxURLs, pkg.Price, pkg.TotalSubscriptions, pkg.CreatedAt.UTC(),
	)
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return billing.ErrPackageExists
	}
	return err
}

func (r *TiersRepository) List(ctx context.Context) ([]*billing.Package, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, name, max_urls, price, total_subscriptions, created_at
		 FROM subscription_tiers ORDER BY price`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*billing.Package
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, pkg)
	}
	return out, rows.Err()
}

func (r *TiersRepository) FindByID(ctx context.Context, id string) (*billing.Package, error) {
	return scanPackage(r.db.Pool.QueryRow(ctx,
		`SELECT id, name, max_urls, price, total_subscriptions, created_at
		 FROM subscription_tiers WHERE id = $1`,
		id,
	))
}

func (r *TiersRepository) FindByName(ctx context.Context, name string) (*billing.Package, error) {
	return scanPackage(r.db.Pool.QueryRow(ctx,
		`SELECT id, name, max_urls, price, total_subscriptions, created_at
		 FROM subscription_tiers WHERE lower(name) = lower($1)`,
		name,
	))
}

func (r *TiersRepository) Update(ctx context.Context, pkg *billing.Package) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE subscription_tiers
		 SET name = $2, max_urls = $3, price = $4, total_subscriptions = $5
		 WHERE id = $1`,
		pkg.ID, pkg.Name, pkg.MaxURLs, pkg.Price, pkg.TotalSubscriptions,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return billing.ErrPackageNotFound
	}
	return nil
}

func scanPackage(row pgx.Row) (*billing.Package, error) {
	var pkg billing.Package
	err := row.Scan(&pkg.ID, &pkg.Name, &pkg.MaxURLs, &pkg.Price, &pkg.TotalSubscriptions, &pkg.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, billing.ErrPackageNotFound
		}
		return nil, err
	}
	pkg.CreatedAt = pkg.CreatedAt.UTC()
	return &pkg, nil
}
