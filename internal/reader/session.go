// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reader

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

const resourceSession = "reader session"

// SessionStore persists reading positions between requests.
type SessionStore interface {
	Create(context context.Context, position Position) error

	// Get returns NotFound for an unknown or expired session.
	Get(context context.Context, id string) (*Position, error)

	/*
		Save replaces the stored position if its generation still equals
		expected. The stored generation becomes position.Generation.

		Returns:
		  - error: Conflict when another request saved first, NotFound when expired
	*/
	Save(context context.Context, position Position, expected uint64) error

	Delete(context context.Context, id string) error
}

// # Redis Implementation

// RedisSessionStore keeps positions as JSON strings with a sliding TTL.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore constructs a session store; every write refreshes ttl.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return constants.RedisPrefixReaderSession + id
}

func (store *RedisSessionStore) Create(context context.Context, position Position) error {
	payload, err := json.Marshal(position)
	if err != nil {
		return apperr.Internal(err)
	}

	created, err := store.client.SetNX(context, sessionKey(position.SessionID), payload, store.ttl).Result()
	if err != nil {
		return apperr.Remote("session store", fmt.Errorf("redis: create session: %w", err))
	}
	if !created {
		return apperr.Conflict("reader session already exists")
	}
	return nil
}

func (store *RedisSessionStore) Get(context context.Context, id string) (*Position, error) {
	payload, err := store.client.Get(context, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound(resourceSession)
		}
		return nil, apperr.Remote("session store", fmt.Errorf("redis: get session: %w", err))
	}
	return decodePosition(payload)
}

/*
Save runs an optimistic check-and-set.

The key is WATCHed, its generation compared with expected, and the new value
written in a MULTI block. A concurrent write between WATCH and EXEC aborts the
transaction and surfaces as Conflict, the same as a generation mismatch.
*/
func (store *RedisSessionStore) Save(context context.Context, position Position, expected uint64) error {
	key := sessionKey(position.SessionID)

	payload, err := json.Marshal(position)
	if err != nil {
		return apperr.Internal(err)
	}

	err = store.client.Watch(context, func(transaction *redis.Tx) error {
		current, err := transaction.Get(context, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return apperr.NotFound(resourceSession)
			}
			return err
		}

		stored, err := decodePosition(current)
		if err != nil {
			return err
		}
		if stored.Generation != expected {
			return apperr.Conflict("reader session was moved by another request")
		}

		_, err = transaction.TxPipelined(context, func(pipe redis.Pipeliner) error {
			pipe.Set(context, key, payload, store.ttl)
			return nil
		})
		return err
	}, key)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, redis.TxFailedErr):
		return apperr.Conflict("reader session was moved by another request")
	case apperr.IsAppError(err):
		return err
	default:
		return apperr.Remote("session store", fmt.Errorf("redis: save session: %w", err))
	}
}

func (store *RedisSessionStore) Delete(context context.Context, id string) error {
	if err := store.client.Del(context, sessionKey(id)).Err(); err != nil {
		return apperr.Remote("session store", fmt.Errorf("redis: delete session: %w", err))
	}
	return nil
}

func decodePosition(payload []byte) (*Position, error) {
	position := &Position{}
	if err := json.Unmarshal(payload, position); err != nil {
		return nil, apperr.Internal(fmt.Errorf("redis: corrupt reader session: %w", err))
	}
	return position, nil
}
