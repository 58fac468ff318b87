package oidc

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const clientID = "sleepr-api"

// fakeRealm serves discovery and JWKS for a single realm, the way Keycloak lays them out.
func fakeRealm(t *testing.T, key *rsa.PrivateKey) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	g := gin.New()
	var issuer string
	g.GET("/realms/sleepr/.well-known/openid-configuration", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"issuer":                                issuer,
			"jwks_uri":                              issuer + "/protocol/openid-connect/certs",
			"authorization_endpoint":                issuer + "/protocol/openid-connect/auth",
			"token_endpoint":                        issuer + "/protocol/openid-connect/token",
			"id_token_signing_alg_values_supported": []string{"RS256"},
		})
	})
	g.GET("/realms/sleepr/protocol/openid-connect/certs", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"keys": []gin.H{{
			"kty": "RSA",
			"kid": "k1",
			"alg": "RS256",
			"use": "sig",
			"n":   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
		}}})
	})
	srv := httptest.NewServer(g)
	t.Cleanup(srv.Close)
	issuer = IssuerURL(srv.URL+"/", "sleepr")
	return issuer
}

func sign(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tok.Header["kid"] = "k1"
	s, err := tok.SignedString(key)
	require.NoError(t, err)
	return s
}

func TestIssuerURL(t *testing.T) {
	require.Equal(t, "http://keycloak:8080/realms/sleepr", IssuerURL("http://keycloak:8080/", "sleepr"))
	require.Equal(t, "http://keycloak:8080/realms/sleepr", IssuerURL("http://keycloak:8080", "sleepr"))
}

func TestVerifier(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	issuer := fakeRealm(t, key)
	ctx := context.Background()

	v, err := NewVerifier(ctx, issuer, clientID)
	require.NoError(t, err)

	now := time.Now()
	good := sign(t, key, jwt.MapClaims{
		"iss": issuer, "aud": clientID, "sub": "user-1",
		"iat": now.Unix(), "exp": now.Add(time.Minute).Unix(),
	})
	tok, err := v.Verify(ctx, good)
	require.NoError(t, err)
	var claims map[string]interface{}
	require.NoError(t, tok.Claims(&claims))
	require.Equal(t, "user-1", claims["sub"])

	otherAudience := sign(t, key, jwt.MapClaims{
		"iss": issuer, "aud": "someone-else", "sub": "user-1",
		"iat": now.Unix(), "exp": now.Add(time.Minute).Unix(),
	})
	_, err = v.Verify(ctx, otherAudience)
	require.Error(t, err)

	expired := sign(t, key, jwt.MapClaims{
		"iss": issuer, "aud": clientID, "sub": "user-1",
		"iat": now.Add(-time.Hour).Unix(), "exp": now.Add(-time.Minute).Unix(),
	})
	_, err = v.Verify(ctx, expired)
	require.Error(t, err)

	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	forged := sign(t, otherKey, jwt.MapClaims{
		"iss": issuer, "aud": clientID, "sub": "user-1",
		"iat": now.Unix(), "exp": now.Add(time.Minute).Unix(),
	})
	_, err = v.Verify(ctx, forged)
	require.Error(t, err)
}

func TestNewVerifier_DiscoveryFails(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewVerifier(context.Background(), IssuerURL(srv.URL, "missing"), clientID)
	require.ErrorContains(t, err, "failed to discover OIDC provider")
}
