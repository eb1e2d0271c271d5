package auth

import (
	"context"
	"database/sql"
	"errors"
)

// SQLStore keeps credentials in the users table. The password column holds
// the hex digest only.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) CreateUser(ctx context.Context, id, passwordHash string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (user_id, password) VALUES ($1,$2)`, id, passwordHash)
	return err
}

func (s *SQLStore) PasswordHash(ctx context.Context, id string) (string, error) {
	var hash string
	err := s.db.QueryRowContext(ctx,
		`SELECT password FROM users WHERE user_id=$1`, id).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	return hash, nil
}

func (s *SQLStore) UserExists(ctx context.Context, id string) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE user_id=$1`, id).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}
