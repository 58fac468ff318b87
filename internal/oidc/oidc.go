package oidc

import (
	"context"
	"fmt"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/sleepr/sleepr/backend/go-services/pkg/middleware"
)

// Verifier checks bearer tokens issued by a Keycloak realm.
type Verifier struct {
	provider *oidc.Provider
	verifier *oidc.IDTokenVerifier
}

var _ middleware.Verifier = (*Verifier)(nil)

// IssuerURL returns the issuer for a Keycloak realm, e.g. http://keycloak:8080/realms/sleepr.
func IssuerURL(baseURL, realm string) string {
	return strings.TrimRight(baseURL, "/") + "/realms/" + realm
}

// NewVerifier discovers the provider at issuer and returns a verifier for tokens issued to clientID.
func NewVerifier(ctx context.Context, issuer, clientID string) (*Verifier, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to discover OIDC provider: %w", err)
	}
	return &Verifier{
		provider: provider,
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

func (v *Verifier) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	idToken, err := v.verifier.Verify(ctx, raw)
	if err != nil {
		return nil, err
	}
	return idToken, nil
}
