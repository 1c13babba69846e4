// Copyright 2026 The OpenTrusty Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package session

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/opentrusty/licensehub/internal/audit"
)

// Domain errors
var (
	ErrMissingToken     = errors.New("session token missing")
	ErrInvalidToken     = errors.New("session token invalid")
	ErrNotPlatformAdmin = errors.New("platform admin access required")
)

// CookieName is the cookie the identity provider stores its session token in
const CookieName = "__session"

// metadataClaims are the nested claim objects searched for the admin flag
// after the top level.
var metadataClaims = []string{"metadata", "public_metadata"}

// Principal is the verified admin behind a request
type Principal struct {
	UserID        string
	Email         string
	SessionID     string
	PlatformAdmin bool
}

// Actor returns the identity recorded in the admin log
func (p *Principal) Actor() string {
	if p == nil {
		return audit.ActorUnknown
	}
	return audit.ResolveActor(p.Email, p.UserID)
}

// Verifier validates identity provider session tokens
type Verifier struct {
	key        *rsa.PublicKey
	adminClaim string
	leeway     time.Duration
	now        func() time.Time
}

// NewVerifier creates a verifier from a PEM encoded RSA public key
func NewVerifier(publicKeyPEM, adminClaim string, leeway time.Duration) (*Verifier, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicKeyPEM))
	if err != nil {
		return nil, fmt.Errorf("failed to parse session public key: %w", err)
	}
	return &Verifier{
		key:        key,
		adminClaim: adminClaim,
		leeway:     leeway,
		now:        time.Now,
	}, nil
}

// Verify checks signature, expiry and not-before of raw and returns the principal.
// ErrNotPlatformAdmin is returned with the principal when the admin claim is absent.
func (v *Verifier) Verify(raw string) (*Principal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrMissingToken
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return v.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	sub, _ := claims.GetSubject()
	if sub == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	p := &Principal{
		UserID:        sub,
		Email:         stringClaim(claims, "email"),
		SessionID:     stringClaim(claims, "sid"),
		PlatformAdmin: v.isAdmin(claims),
	}
	if !p.PlatformAdmin {
		return p, ErrNotPlatformAdmin
	}
	return p, nil
}

func (v *Verifier) isAdmin(claims jwt.MapClaims) bool {
	if truthy(claims[v.adminClaim]) {
		return true
	}
	for _, name := range metadataClaims {
		if nested, ok := claims[name].(map[string]any); ok && truthy(nested[v.adminClaim]) {
			return true
		}
	}
	return false
}

func truthy(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b == "true"
	}
	return false
}

func stringClaim(claims jwt.MapClaims, name string) string {
	s, _ := claims[name].(string)
	return s
}
