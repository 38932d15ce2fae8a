package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"courseconnect/internal/cache"
)

const sessionTokenKeyPrefix = "session_token:"

// TokenStoreInterface defines the interface for session token storage.
type TokenStoreInterface interface {
	StoreSessionToken(ctx context.Context, tokenID, studentID, email string, ttl time.Duration) error
	GetSessionToken(ctx context.Context, tokenID string) (studentID string, email string, err error)
	DeleteSessionToken(ctx context.Context, tokenID string) error
}

// TokenStore records issued session tokens in Redis so /api/me can tell a
// merely well-signed token from one that was actually issued here.
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// StoreSessionToken stores a session token in Redis with TTL.
func (s *TokenStore) StoreSessionToken(ctx context.Context, tokenID, studentID, email string, ttl time.Duration) error {
	data := map[string]string{
		"student_id": studentID,
		"email":      email,
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal token data: %w", err)
	}

	key := sessionTokenKeyPrefix + tokenID
	return s.cache.Set(ctx, key, payload, ttl)
}

// GetSessionToken retrieves session token data from Redis.
func (s *TokenStore) GetSessionToken(ctx context.Context, tokenID string) (studentID string, email string, err error) {
	key := sessionTokenKeyPrefix + tokenID
	data, err := s.cache.Get(ctx, key)
	if err != nil || data == nil {
		return "", "", fmt.Errorf("session token not found")
	}

	var tokenData map[string]string
	if err := json.Unmarshal(data, &tokenData); err != nil {
		return "", "", fmt.Errorf("unmarshal token data: %w", err)
	}

	return tokenData["student_id"], tokenData["email"], nil
}

// DeleteSessionToken removes a session token from Redis.
func (s *TokenStore) DeleteSessionToken(ctx context.Context, tokenID string) error {
	key := sessionTokenKeyPrefix + tokenID
	return s.cache.Delete(ctx, key)
}
