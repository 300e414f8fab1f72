package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	Configure("test-secret")

	token, err := CreateToken(42)
	require.NoError(t, err)

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		uid, err := ExtractTokenID(req)
		require.NoError(t, err)
		assert.Equal(t, uint(42), uid)
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
		uid, err := ExtractTokenID(req)
		require.NoError(t, err)
		assert.Equal(t, uint(42), uid)
	})

	t.Run("query string is ignored", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?token="+token, nil)
		assert.ErrorIs(t, TokenValid(req), ErrMissingToken)
	})
}

func TestExtractTokenIDRejectsBadTokens(t *testing.T) {
	Configure("test-secret")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := ExtractTokenID(req)
	assert.ErrorIs(t, err, ErrMissingToken)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": 1})
	signed, err := forged.SignedString([]byte("another-secret"))
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	_, err = ExtractTokenID(req)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
