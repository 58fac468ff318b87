package tokens

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sleepr/sleepr/backend/go-services/pkg/middleware"
)

var (
	ErrEmptySecret = errors.New("jwt secret is empty")
	ErrNoExpiry    = errors.New("token has no exp claim")
)

// GenerateAccessToken creates an HS256 access token for sub that expires after ttl.
func GenerateAccessToken(secret, sub string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": sub,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(secret))
}

// HMACVerifier validates HS256 bearer tokens signed with a shared secret.
type HMACVerifier struct {
	secret []byte
	parser *jwt.Parser
}

var _ middleware.Verifier = (*HMACVerifier)(nil)

func NewHMACVerifier(secret string) (*HMACVerifier, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &HMACVerifier{
		secret: []byte(secret),
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}, nil
}

func (v *HMACVerifier) Verify(_ context.Context, raw string) (middleware.Token, error) {
	claims := jwt.MapClaims{}
	if _, err := v.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}); err != nil {
		return nil, err
	}
	// the parser only checks exp when present
	if exp, err := claims.GetExpirationTime(); err != nil || exp == nil {
		return nil, ErrNoExpiry
	}
	return mapToken(claims), nil
}

type mapToken jwt.MapClaims

// Claims decodes the verified claims into v the way *oidc.IDToken does.
func (t mapToken) Claims(v interface{}) error {
	b, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
