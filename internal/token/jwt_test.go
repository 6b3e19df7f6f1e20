package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueRoundTrip(t *testing.T) {
	iss := NewIssuer("test-secret", time.Hour)

	raw, err := iss.Issue(42)
	require.NoError(t, err)

	tok, err := jwt.Parse(raw, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(42), claims["sub"])
	assert.Equal(t, "access", claims["typ"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp.Time, time.Minute)
}

func TestIssueRejectsWrongSecret(t *testing.T) {
	raw, err := NewIssuer("secret-a", time.Hour).Issue(1)
	require.NoError(t, err)

	_, err = jwt.Parse(raw, func(tok *jwt.Token) (interface{}, error) {
		return []byte("secret-b"), nil
	})
	assert.Error(t, err)
}
