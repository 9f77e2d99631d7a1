package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"youthBanking/domain"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

type TokenRepository struct {
	client redis.UniversalClient
}

func NewTokenRepository(client redis.UniversalClient) *TokenRepository {
	return &TokenRepository{
		client: client,
	}
}

func userKey(userID string) string {
	return fmt.Sprintf("token:user:%s", userID)
}

func lookupKey(token string) string {
	return fmt.Sprintf("token:lookup:%s", token)
}

// StoreToken keeps one live session per user: a new login replaces the
// previous token.
func (r *TokenRepository) StoreToken(ctx context.Context, userID, token string, data domain.TokenData, ttl time.Duration) error {
	if prev, err := r.GetTokenData(ctx, userID); err == nil && prev.Token != token {
		_ = r.client.Del(ctx, lookupKey(prev.Token)).Err()
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal token data: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, userKey(userID), jsonData, ttl)
	pipe.Set(ctx, lookupKey(token), userID, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store token in Redis: %w", err)
	}

	return nil
}

// GetTokenData retrieve token data by user ID
func (r *TokenRepository) GetTokenData(ctx context.Context, userID string) (*domain.TokenData, error) {
	val, err := r.client.Get(ctx, userKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errors.New("token not found")
		}
		return nil, fmt.Errorf("failed to get token from Redis: %w", err)
	}

	var tokenData domain.TokenData
	if err := json.Unmarshal([]byte(val), &tokenData); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token data: %w", err)
	}

	return &tokenData, nil
}

// ValidateToken checks if a token exists and is valid
func (r *TokenRepository) ValidateToken(ctx context.Context, token string) (string, error) {
	userID, err := r.client.Get(ctx, lookupKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", errors.New("token not found or expired")
		}
		return "", fmt.Errorf("failed to validate token: %w", err)
	}

	return userID, nil
}

func (r *TokenRepository) DeleteToken(ctx context.Context, userID, token string) error {
	if err := r.client.Del(ctx, userKey(userID), lookupKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}

	return nil
}
