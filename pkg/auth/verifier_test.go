package auth_test

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hireable-backend/pkg/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func claims(email string, ttl time.Duration) auth.Claims {
	return auth.Claims{
		Name:  "Jane Doe",
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
}

func TestVerifierHS256(t *testing.T) {
	v := auth.NewVerifier("shared-secret", nil)

	t.Run("Valid token yields claims", func(t *testing.T) {
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims("jane@example.com", time.Hour)).SignedString([]byte("shared-secret"))
		require.NoError(t, err)

		got, err := v.Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", got.Email)
		assert.Equal(t, "user-1", got.Subject)
	})

	t.Run("Wrong secret, expiry and missing email are rejected", func(t *testing.T) {
		bad, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims("jane@example.com", time.Hour)).SignedString([]byte("other"))
		_, err := v.Parse(bad)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)

		expired, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims("jane@example.com", -time.Minute)).SignedString([]byte("shared-secret"))
		_, err = v.Parse(expired)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)

		anon, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims("", time.Hour)).SignedString([]byte("shared-secret"))
		_, err = v.Parse(anon)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestVerifierRS256(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_ = json.NewEncoder(w).Encode(auth.JWKS{Keys: []auth.JSONWebKey{{
			Kid: "k1",
			Kty: "RSA",
			Alg: "RS256",
			N:   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
		}}})
	}))
	defer srv.Close()

	v := auth.NewVerifier("", auth.NewProvider(srv.URL, srv.Client()))

	sign := func(kid string) string {
		tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims("rec@example.com", time.Hour))
		tok.Header["kid"] = kid
		raw, err := tok.SignedString(key)
		require.NoError(t, err)
		return raw
	}

	t.Run("Key is fetched once and cached", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			got, err := v.Parse(sign("k1"))
			require.NoError(t, err)
			assert.Equal(t, "rec@example.com", got.Email)
		}
		assert.Equal(t, 1, hits)
	})

	t.Run("Unknown kid is rejected", func(t *testing.T) {
		_, err := v.Parse(sign("k2"))
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("HS256 without a secret is rejected", func(t *testing.T) {
		raw, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims("x@example.com", time.Hour)).SignedString([]byte("s"))
		_, err := v.Parse(raw)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
