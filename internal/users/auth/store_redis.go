// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/komik/internal/platform/apperr"
	"github.com/taibuivan/komik/internal/platform/constants"
)

// RedisSessionRepository implements [SessionRepository] using Redis.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a Redis-backed [SessionRepository].
func NewSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func sessionKey(tokenHash string) string {
	return constants.RedisPrefixSession + tokenHash
}

func (repository *RedisSessionRepository) Create(context context.Context, tokenHash string, session *Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return apperr.Internal(err)
	}

	if err := repository.client.Set(context, sessionKey(tokenHash), payload, ttl).Err(); err != nil {
		return apperr.Remote("session store", fmt.Errorf("redis: create auth session: %w", err))
	}
	return nil
}

/*
Consume reads and deletes the session with GETDEL.

Returns:
  - error: apperr.NotFound if the token is unknown, expired or already used
*/
func (repository *RedisSessionRepository) Consume(context context.Context, tokenHash string) (*Session, error) {
	payload, err := repository.client.GetDel(context, sessionKey(tokenHash)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("session")
		}
		return nil, apperr.Remote("session store", fmt.Errorf("redis: consume auth session: %w", err))
	}

	session := &Session{}
	if err := json.Unmarshal(payload, session); err != nil {
		return nil, apperr.Internal(fmt.Errorf("redis: corrupt auth session: %w", err))
	}
	return session, nil
}

func (repository *RedisSessionRepository) Delete(context context.Context, tokenHash string) error {
	if err := repository.client.Del(context, sessionKey(tokenHash)).Err(); err != nil {
		return apperr.Remote("session store", fmt.Errorf("redis: delete auth session: %w", err))
	}
	return nil
}
