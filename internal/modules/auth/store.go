// README: User store backed by PostgreSQL.
package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"wayfarer/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, u *User) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO users (id, email, password_hash, created_at)
        VALUES ($1, $2, $3, $4)`,
		string(u.ID), u.Email, u.PasswordHash, u.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
		return ErrEmailTaken
	}
	return err
}

func (s *Store) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.get(ctx, `
        SELECT id, email, password_hash, created_at
        FROM users WHERE email = $1`, email)
}

func (s *Store) GetByID(ctx context.Context, id types.ID) (*User, error) {
	return s.get(ctx, `
        SELECT id, email, password_hash, created_at
        FROM users WHERE id = $1`, string(id))
}

func (s *Store) get(ctx context.Context, query string, arg any) (*User, error) {
	row := s.db.QueryRow(ctx, query, arg)

	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
