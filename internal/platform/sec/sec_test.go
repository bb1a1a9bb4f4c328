// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/komik/internal/platform/sec"
)

func newTokenService(t *testing.T, issuer string) *sec.TokenService {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return sec.NewTokenServiceFromKeys(key, &key.PublicKey, issuer)
}

/*
TestTokenService_RoundTrip signs and verifies an access token.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTokenService(t, "komik.test")

	token, err := service.GenerateAccessToken("user-1", "Rina", string(sec.RoleAdmin), time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "Rina", claims.FullName)
	assert.Equal(t, string(sec.RoleAdmin), claims.Role)
}

/*
TestTokenService_Rejects covers expiry, foreign keys, and foreign issuers.
*/
func TestTokenService_Rejects(t *testing.T) {
	service := newTokenService(t, "komik.test")

	expired, err := service.GenerateAccessToken("user-1", "Rina", "user", -time.Minute)
	require.NoError(t, err)
	_, err = service.VerifyToken(expired)
	assert.Error(t, err)

	otherKey := newTokenService(t, "komik.test")
	foreign, err := otherKey.GenerateAccessToken("user-1", "Rina", "user", time.Minute)
	require.NoError(t, err)
	_, err = service.VerifyToken(foreign)
	assert.Error(t, err)

	otherIssuer := newTokenService(t, "elsewhere")
	_, err = otherIssuer.VerifyToken(foreign)
	assert.Error(t, err)

	_, err = service.VerifyToken("not-a-jwt")
	assert.Error(t, err)
}

/*
TestPasswordHash verifies bcrypt round trips.
*/
func TestPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("rahasia123")
	require.NoError(t, err)

	assert.True(t, sec.CheckPasswordHash("rahasia123", hash))
	assert.False(t, sec.CheckPasswordHash("salah", hash))
}

/*
TestSecureToken checks token uniqueness and digest stability.
*/
func TestSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	second, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Len(t, first, 43)
	assert.Equal(t, sec.HashToken(first), sec.HashToken(first))
	assert.NotEqual(t, sec.HashToken(first), sec.HashToken(second))
	assert.Len(t, sec.HashToken(first), 64)
}

/*
TestUserRole_AtLeast checks the role hierarchy.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleUser))
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleAdmin))
	assert.False(t, sec.RoleUser.AtLeast(sec.RoleAdmin))
	assert.False(t, sec.UserRole("guest").AtLeast(sec.RoleUser))
	assert.False(t, sec.UserRole("guest").IsValid())
}
