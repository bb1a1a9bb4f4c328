// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis provides a managed client for volatile data storage.

Two stores live here: hashed refresh sessions for sign-in and reader
navigation sessions. Both expire by TTL and neither is the source of truth
for catalog data.
*/
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	dialTimeout  = 3 * time.Second
	readTimeout  = 2 * time.Second
	writeTimeout = 2 * time.Second
	pingTimeout  = 2 * time.Second

	clientName = "komik-api"
)

// Options configures [NewClient].
type Options struct {
	URL string

	// PoolSize caps open connections; zero keeps the URL's or go-redis' default.
	PoolSize int
}

// NewClient parses the URL, sizes the pool and pings once. A sized pool keeps
// a quarter of its connections idle.
func NewClient(context stdctx.Context, options Options, logger *slog.Logger) (*redis.Client, error) {
	parsed, err := redis.ParseURL(options.URL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	if options.PoolSize > 0 {
		parsed.PoolSize = options.PoolSize
		parsed.MinIdleConns = max(1, options.PoolSize/4)
		parsed.MaxIdleConns = max(2, options.PoolSize/2)
	}
	parsed.ClientName = clientName
	parsed.DialTimeout = dialTimeout
	parsed.ReadTimeout = readTimeout
	parsed.WriteTimeout = writeTimeout

	client := redis.NewClient(parsed)

	latency, err := measurePing(context, client)
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_client_connected",
		slog.String("addr", parsed.Addr),
		slog.Int("db", parsed.DB),
		slog.Int("pool_size", parsed.PoolSize),
		slog.Duration("ping", latency),
	)
	return client, nil
}

// Ping is the readiness probe.
func Ping(context stdctx.Context, client *redis.Client) error {
	_, err := measurePing(context, client)
	return err
}

func measurePing(context stdctx.Context, client *redis.Client) (time.Duration, error) {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	started := time.Now()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return 0, fmt.Errorf("redis: ping failed: %w", err)
	}
	return time.Since(started), nil
}
