package metadata

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/fittrack/internal/common"
)

// TokenStore persists the single credential token under common.TokenMetadataKey.
// Storing a token replaces the previous one, so at most one exists at a time.
type TokenStore struct {
	db *sql.DB
}

func NewTokenStore(db *sql.DB) *TokenStore {
	return &TokenStore{db: db}
}

// Token returns the stored token, or "" when there is none.
func (s *TokenStore) Token(ctx context.Context) (string, error) {
	token, err := NewSQLiteRepository(s.db).Get(ctx, common.TokenMetadataKey)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

// SetToken stores token as-is, replacing any previous one.
func (s *TokenStore) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("refusing to store an empty token")
	}
	return NewSQLiteRepository(s.db).Set(ctx, common.TokenMetadataKey, token)
}

// ClearToken removes the token. Clearing an empty store is a no-op.
func (s *TokenStore) ClearToken(ctx context.Context) error {
	return NewSQLiteRepository(s.db).Delete(ctx, common.TokenMetadataKey)
}
