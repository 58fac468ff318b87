package tokens

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret-32-bytes-should-be-long-enough"

func TestGenerateAccessToken_ValidAndClaims(t *testing.T) {
	tokenStr, err := GenerateAccessToken(secret, "user-123", 2*time.Minute)
	require.NoError(t, err)

	parsed, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, "user-123", claims["sub"])
}

func TestGenerateAccessToken_EmptySecret(t *testing.T) {
	_, err := GenerateAccessToken("", "u", time.Minute)
	require.ErrorIs(t, err, ErrEmptySecret)

	_, err = NewHMACVerifier("")
	require.ErrorIs(t, err, ErrEmptySecret)
}

func TestHMACVerifier_RoundTrip(t *testing.T) {
	v, err := NewHMACVerifier(secret)
	require.NoError(t, err)

	tokenStr, err := GenerateAccessToken(secret, "user-9", time.Minute)
	require.NoError(t, err)

	tok, err := v.Verify(context.Background(), tokenStr)
	require.NoError(t, err)

	var claims map[string]interface{}
	require.NoError(t, tok.Claims(&claims))
	require.Equal(t, "user-9", claims["sub"])

	var typed struct {
		Sub string `json:"sub"`
		Exp int64  `json:"exp"`
	}
	require.NoError(t, tok.Claims(&typed))
	require.Equal(t, "user-9", typed.Sub)
	require.Greater(t, typed.Exp, time.Now().Unix())
}

func TestHMACVerifier_Expired(t *testing.T) {
	v, err := NewHMACVerifier(secret)
	require.NoError(t, err)

	tokenStr, err := GenerateAccessToken(secret, "u2", -time.Minute)
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), tokenStr)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestHMACVerifier_WrongSecret(t *testing.T) {
	v, err := NewHMACVerifier("different-secret-xxxxxxxxxxxxxxxx")
	require.NoError(t, err)

	tokenStr, err := GenerateAccessToken(secret, "u3", 2*time.Minute)
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), tokenStr)
	require.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestHMACVerifier_Malformed(t *testing.T) {
	v, err := NewHMACVerifier(secret)
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), "not.a.jwt")
	require.Error(t, err)
}

func TestHMACVerifier_AlgNoneRejected(t *testing.T) {
	v, err := NewHMACVerifier(secret)
	require.NoError(t, err)

	headerEnc := (*jwt.Token)(nil).EncodeSegment([]byte(`{"alg":"none"}`))
	payloadEnc := (*jwt.Token)(nil).EncodeSegment([]byte(`{"sub":"u-none","exp":9999999999}`))
	_, err = v.Verify(context.Background(), headerEnc+"."+payloadEnc+".")
	require.Error(t, err)
}

func TestHMACVerifier_MissingExpiry(t *testing.T) {
	v, err := NewHMACVerifier(secret)
	require.NoError(t, err)

	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "forever"}).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), tokenStr)
	require.ErrorIs(t, err, ErrNoExpiry)
}

func TestHMACVerifier_TamperedPayload(t *testing.T) {
	v, err := NewHMACVerifier(secret)
	require.NoError(t, err)

	tokenStr, err := GenerateAccessToken(secret, "user-t", 5*time.Minute)
	require.NoError(t, err)

	parts := strings.Split(tokenStr, ".")
	require.Len(t, parts, 3)
	payloadBytes, err := jwt.NewParser().DecodeSegment(parts[1])
	require.NoError(t, err)
	parts[1] = (*jwt.Token)(nil).EncodeSegment([]byte(strings.Replace(string(payloadBytes), "user-t", "attacker", 1)))

	_, err = v.Verify(context.Background(), strings.Join(parts, "."))
	require.Error(t, err)
}
