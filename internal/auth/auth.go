// Package auth registers and authenticates learners. Passwords are stored as
// hex-encoded SHA-256 digests; comparison is exact equality over the digest,
// never over the raw secret.
package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
)

var (
	ErrInvalidFormat      = errors.New("identifier or password has invalid format")
	ErrDuplicateID        = errors.New("identifier already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Identifiers and passwords are 1-8 characters from a restricted set.
var validFormat = regexp.MustCompile(`^[A-Za-z0-9._-]{1,8}$`)

type User struct {
	ID string
}

type Store interface {
	CreateUser(ctx context.Context, id, passwordHash string) error
	PasswordHash(ctx context.Context, id string) (string, error)
	UserExists(ctx context.Context, id string) (bool, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Register validates both values, rejects a taken identifier, and stores the
// digest. Storage errors are wrapped and retryable by the caller.
func (s *Service) Register(ctx context.Context, id, rawPassword string) (User, error) {
	if !ValidFormat(id) || !ValidFormat(rawPassword) {
		return User{}, ErrInvalidFormat
	}
	exists, err := s.store.UserExists(ctx, id)
	if err != nil {
		return User{}, fmt.Errorf("register %q: %w", id, err)
	}
	if exists {
		return User{}, ErrDuplicateID
	}
	if err := s.store.CreateUser(ctx, id, HashPassword(rawPassword)); err != nil {
		return User{}, fmt.Errorf("register %q: %w", id, err)
	}
	return User{ID: id}, nil
}

// Authenticate compares the stored digest against the digest of the supplied
// password. A missing identifier and a wrong password are indistinguishable
// to the caller.
func (s *Service) Authenticate(ctx context.Context, id, rawPassword string) (User, error) {
	stored, err := s.store.PasswordHash(ctx, id)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, fmt.Errorf("authenticate %q: %w", id, err)
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(HashPassword(rawPassword))) != 1 {
		return User{}, ErrInvalidCredentials
	}
	return User{ID: id}, nil
}

// ValidFormat reports whether a value satisfies the identifier/password
// format predicate.
func ValidFormat(v string) bool {
	return validFormat.MatchString(v)
}

// HashPassword returns the hex-encoded SHA-256 digest of the raw password.
// Deterministic and unsalted, matching the stored 64-character column.
func HashPassword(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
