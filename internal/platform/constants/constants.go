// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: JWT issuer and cookie configuration.
  - Storage: Bucket names, upload limits, and Redis key prefixes.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "komik-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	// Page uploads arrive as multipart bodies, so this is wider than a JSON API needs.
	DefaultReadTimeout = 60 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 60 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for a regular request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	DefaultRateLimitRPS      = 100.0
	DefaultRateLimitBurst    = 150
	RateLimitCleanupInterval = 1 * time.Minute
	RateLimitClientTTL       = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "komik.app"

	// RefreshTokenCookieName is the name of the cookie that stores the refresh token.
	RefreshTokenCookieName = "komik_session"

	// RefreshTokenCookiePath is the scoped path for the refresh token cookie.
	RefreshTokenCookiePath = "/api/v1/auth"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldChecks  = "checks"
)

// # Query Parameters

const (
	// QueryConfirm must be "true" on every admin DELETE.
	QueryConfirm = "confirm"
)

// # Object Storage

const (
	DefaultCoverBucket = "comic-covers"
	DefaultPageBucket  = "comic-pages"

	// MaxUploadBytes caps a single multipart request (cover or page batch).
	MaxUploadBytes = 64 << 20

	// MaxUploadMemory is the in-memory part of multipart parsing; the rest spills to disk.
	MaxUploadMemory = 16 << 20
)

// # Redis Prefixes

const (
	RedisPrefixSession       = "auth:session:"
	RedisPrefixReaderSession = "reader:session:"
)

// # Catalog

const (
	// GenreAll is the selector that disables genre filtering.
	GenreAll = "Semua"

	// LatestComicsLimit is the size of the landing page shelf.
	LatestComicsLimit = 8
)
