//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"careserve/internal/pkg/sessiontoken"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// IssueToken signs a session token the way the external identity provider
// would, so middleware tests exercise the real verification path.
func IssueToken(t *testing.T, secret string, userID uuid.UUID, role string) string {
	t.Helper()
	return IssueTokenWithExpiry(t, secret, userID, role, time.Now().Add(time.Hour))
}

func IssueTokenWithExpiry(t *testing.T, secret string, userID uuid.UUID, role string, expiresAt time.Time) string {
	t.Helper()

	claims := sessiontoken.Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err, "failed to sign test session token")
	return signed
}
