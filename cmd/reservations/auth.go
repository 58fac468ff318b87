package main

import (
	"context"
	"fmt"

	"github.com/sleepr/sleepr/backend/go-services/internal/config"
	"github.com/sleepr/sleepr/backend/go-services/internal/oidc"
	"github.com/sleepr/sleepr/backend/go-services/internal/tokens"
	"github.com/sleepr/sleepr/backend/go-services/pkg/logger"
	"github.com/sleepr/sleepr/backend/go-services/pkg/middleware"
)

// newVerifier picks Keycloak when it is configured, otherwise an HS256 verifier for JWT_SECRET.
// A configured verifier that cannot start is an error; (nil, nil) means nothing is configured.
func newVerifier(ctx context.Context, cfg *config.Config) (middleware.Verifier, error) {
	kc := cfg.Keycloak
	if kc.URL != "" || kc.Realm != "" || kc.ClientID != "" {
		if kc.URL == "" || kc.Realm == "" || kc.ClientID == "" {
			return nil, fmt.Errorf("keycloak needs KEYCLOAK_URL, KEYCLOAK_REALM and KEYCLOAK_CLIENT_ID")
		}
		ver, err := oidc.NewVerifier(ctx, oidc.IssuerURL(kc.URL, kc.Realm), kc.ClientID)
		if err != nil {
			return nil, err
		}
		logger.Infof("using Keycloak realm %s for authentication", kc.Realm)
		return ver, nil
	}
	if cfg.JWT.Secret != "" {
		ver, err := tokens.NewHMACVerifier(cfg.JWT.Secret)
		if err != nil {
			return nil, err
		}
		logger.Infof("using HS256 shared secret for authentication")
		return ver, nil
	}
	return nil, nil
}
