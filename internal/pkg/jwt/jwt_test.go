package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/cossmil/asistencia-backend/internal/domain/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService("test-secret-key-for-jwt", "24h", "2h")
	require.NoError(t, err)
	return svc
}

func decodeClaims(t *testing.T, svc *JWTService, token string) map[string]interface{} {
	t.Helper()
	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	return claims
}

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc := newTestService(t)

	worker := auth.Principal{
		Kind:         auth.KindWorker,
		ID:           "0190f0a0-0000-7000-8000-000000000001",
		Username:     "jperez",
		AreaID:       "0190f0a0-0000-7000-8000-0000000000a1",
		SupervisorID: "0190f0a0-0000-7000-8000-0000000000b1",
	}

	token, expiresAt, err := svc.GenerateAccessToken(worker)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.InDelta(t, time.Now().Add(24*time.Hour).Unix(), expiresAt, 5)

	got, err := svc.PrincipalFromClaims(decodeClaims(t, svc, token))
	require.NoError(t, err)
	assert.Equal(t, worker, got)
}

func TestGenerateAccessToken_AdminExpiry(t *testing.T) {
	svc := newTestService(t)

	admin := auth.Principal{Kind: auth.KindAdmin, ID: "0190f0a0-0000-7000-8000-000000000002", Username: "root"}
	token, expiresAt, err := svc.GenerateAccessToken(admin)
	require.NoError(t, err)
	assert.InDelta(t, time.Now().Add(2*time.Hour).Unix(), expiresAt, 5)

	claims := decodeClaims(t, svc, token)
	assert.Equal(t, "admin", claims["role"])
	assert.Nil(t, claims["area_id"])

	got, err := svc.PrincipalFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, admin, got)
}

func TestPrincipalFromClaims_Rejects(t *testing.T) {
	svc := newTestService(t)

	tests := map[string]map[string]interface{}{
		"refresh token":         {"type": "refresh", "user_id": "u", "role": "admin"},
		"missing type":          {"user_id": "u", "role": "admin"},
		"unknown role":          {"type": "access", "user_id": "u", "role": "owner"},
		"missing user":          {"type": "access", "role": "admin"},
		"supervisor no area":    {"type": "access", "user_id": "u", "role": "supervisor"},
		"worker no supervisor":  {"type": "access", "user_id": "u", "role": "worker", "area_id": "a"},
		"role with wrong type":  {"type": "access", "user_id": "u", "role": 1},
		"user id with bad type": {"type": "access", "user_id": 42, "role": "admin"},
	}
	for name, claims := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.PrincipalFromClaims(claims)
			assert.ErrorIs(t, err, auth.ErrInvalidToken)
		})
	}
}

func TestGenerateAccessToken_ExpiredTokenFailsVerification(t *testing.T) {
	svc := newTestService(t)
	svc.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }

	token, _, err := svc.GenerateAccessToken(auth.Principal{Kind: auth.KindAdmin, ID: "x"})
	require.NoError(t, err)

	_, err = svc.JWTAuth().Decode(token)
	assert.Error(t, err)
}

func TestNewJWTService_InvalidDuration(t *testing.T) {
	_, err := NewJWTService("secret", "forever", "2h")
	assert.Error(t, err)
}
