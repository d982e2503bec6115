package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionClaims(subject string, expiresAt time.Time) SessionClaims {
	now := time.Now()

	return SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "dogcafe-api",
			Audience:  jwt.ClaimStrings{"dogcafe-api"},
		},
	}
}

func TestJWTAuthenticator_RoundTrip(t *testing.T) {
	authenticator := NewJWTAuthenticator("dogcafe-api", "dogcafe-api")

	token, err := authenticator.GenerateToken(sessionClaims("user-123", time.Now().Add(time.Hour)), "secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims := &SessionClaims{}
	_, err = authenticator.ValidateTokenWithClaims(token, "secret", claims)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
}

func TestJWTAuthenticator_RejectsWrongSecret(t *testing.T) {
	authenticator := NewJWTAuthenticator("dogcafe-api", "dogcafe-api")

	token, err := authenticator.GenerateToken(sessionClaims("user-123", time.Now().Add(time.Hour)), "secret")
	require.NoError(t, err)

	_, err = authenticator.ValidateTokenWithClaims(token, "other-secret", &SessionClaims{})
	assert.Error(t, err)
}

func TestJWTAuthenticator_RejectsExpiredToken(t *testing.T) {
	authenticator := NewJWTAuthenticator("dogcafe-api", "dogcafe-api")

	token, err := authenticator.GenerateToken(sessionClaims("user-123", time.Now().Add(-time.Hour)), "secret")
	require.NoError(t, err)

	_, err = authenticator.ValidateTokenWithClaims(token, "secret", &SessionClaims{})
	assert.Error(t, err)
}

func TestJWTAuthenticator_RejectsWrongIssuer(t *testing.T) {
	issuer := NewJWTAuthenticator("dogcafe-api", "someone-else")
	validator := NewJWTAuthenticator("dogcafe-api", "dogcafe-api")

	claims := sessionClaims("user-123", time.Now().Add(time.Hour))
	claims.Issuer = "someone-else"

	token, err := issuer.GenerateToken(claims, "secret")
	require.NoError(t, err)

	_, err = validator.ValidateTokenWithClaims(token, "secret", &SessionClaims{})
	assert.Error(t, err)
}
