package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shortlyhq/shortly/internal/infrastructure/db"
	"github.com/shortlyhq/shortly/internal/processing/users"
)

type UsersRepository struct {
	db *db.Postgres
}

func NewUsersRepository(p *db.Postgres) (*UsersRepository, error) {
	if p == nil || p.Pool == nil {
		return nil, errors.New("postgres pool is nil")
	}
	return &UsersRepository{db: p}, nil
}

func (r *UsersRepository) Insert(ctx context.Context, user *users.User) error {
	if user == nil {
		return errors.New("user is nil")
	}

	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO users (id, username, password_hash, tier, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Username, user.PasswordHash, user.Tier, user.CreatedAt.UTC(),
	)
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return users.ErrUserExists
	}
	return err
}

func (r *UsersRepository) FindByUsername(ctx context.Context, username string) (*users.User, error) {
	var user users.User
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id, username, password_hash, tier, created_at
		 FROM users WHERE username = $1`,
		username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Tier, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, users.ErrUserNotFound
		}
		return nil, err
	}
	user.CreatedAt = user.CreatedAt.UTC()
	return &user, nil
}
