// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/informatics-lc/backend/internal/platform/constants"
)

// RedisRevocationStore implements [RevocationStore] using Redis.
//
// # Key Layout
//
// Revoked tokens are marked under "user:{id}:jwt:{jti}:logout_at" holding
// the logout timestamp. The mark's TTL equals the token's remaining
// lifetime, so storage self-cleans.
type RedisRevocationStore struct {
	client *redis.Client
}

// NewRevocationStore creates a new Redis-backed [RevocationStore].
func NewRevocationStore(client *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{client: client}
}

/*
Revoke marks a token id as logged out until it would have expired anyway.

Parameters:
  - ctx: context.Context
  - userID: int
  - tokenID: string (the token's jti claim)
  - ttl: time.Duration (remaining token lifetime)

Returns:
  - error: Execution errors
*/
func (store *RedisRevocationStore) Revoke(ctx context.Context, userID int, tokenID string, ttl time.Duration) error {
	key := fmt.Sprintf(constants.TokenRevocationKeyFormat, userID, tokenID)

	if ttl <= 0 {
		// Token already expired; nothing to mark.
		return nil
	}

	if err := store.client.Set(ctx, key, time.Now().UTC().Format(time.RFC3339), ttl).Err(); err != nil {
		return fmt.Errorf("redis_revocation_set_failed: %w", err)
	}

	return nil
}

/*
IsRevoked reports whether the token id carries a logout mark.

Returns:
  - bool: true when the token has been revoked
  - error: connectivity errors only (absence is not an error)
*/
func (store *RedisRevocationStore) IsRevoked(ctx context.Context, userID int, tokenID string) (bool, error) {
	key := fmt.Sprintf(constants.TokenRevocationKeyFormat, userID, tokenID)

	_, err := store.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis_revocation_get_failed: %w", err)
	}

	return true, nil
}
