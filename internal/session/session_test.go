package session

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func newKeyPair(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	return key, string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
}

func sign(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return raw
}

func newTestVerifier(t *testing.T, pub string) *Verifier {
	t.Helper()
	v, err := NewVerifier(pub, "platform_admin", 5*time.Second)
	require.NoError(t, err)
	v.now = func() time.Time { return testNow }
	return v
}

func baseClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub": "user_2abc",
		"sid": "sess_1",
		"iat": testNow.Add(-time.Minute).Unix(),
		"nbf": testNow.Add(-time.Minute).Unix(),
		"exp": testNow.Add(time.Minute).Unix(),
	}
}

// TestPurpose: Validates that a signed session token with the admin claim yields a platform admin principal.
// Scope: Unit Test
// Security: Admin API authentication
// Expected: Principal with user id, email and admin flag.
// Test Case ID: SES-01
func TestVerify_PlatformAdmin(t *testing.T) {
	key, pub := newKeyPair(t)
	v := newTestVerifier(t, pub)

	claims := baseClaims()
	claims["email"] = "ops@example.com"
	claims["platform_admin"] = true

	p, err := v.Verify(sign(t, key, claims))
	require.NoError(t, err)
	assert.Equal(t, "user_2abc", p.UserID)
	assert.Equal(t, "sess_1", p.SessionID)
	assert.True(t, p.PlatformAdmin)
	assert.Equal(t, "ops@example.com", p.Actor())
}

// TestPurpose: Validates admin flag lookup inside metadata claims and string encodings.
// Scope: Unit Test
// Expected: Nested metadata and the string "true" are accepted.
// Test Case ID: SES-02
func TestVerify_NestedAdminClaim(t *testing.T) {
	key, pub := newKeyPair(t)
	v := newTestVerifier(t, pub)

	claims := baseClaims()
	claims["metadata"] = map[string]any{"platform_admin": "true"}

	p, err := v.Verify(sign(t, key, claims))
	require.NoError(t, err)
	assert.True(t, p.PlatformAdmin)
	assert.Equal(t, "user_2abc", p.Actor())
}

// TestPurpose: Validates that authenticated users without the admin claim are refused.
// Scope: Unit Test
// Security: Privilege check (CWE-285)
// Expected: ErrNotPlatformAdmin with the principal still returned.
// Test Case ID: SES-03
func TestVerify_NotAdmin(t *testing.T) {
	key, pub := newKeyPair(t)
	v := newTestVerifier(t, pub)

	claims := baseClaims()
	claims["platform_admin"] = false

	p, err := v.Verify(sign(t, key, claims))
	assert.ErrorIs(t, err, ErrNotPlatformAdmin)
	require.NotNil(t, p)
	assert.False(t, p.PlatformAdmin)
}

// TestPurpose: Validates rejection of expired, foreign-signed, unsigned and empty tokens.
// Scope: Unit Test
// Security: Token forgery and replay (CWE-347, CWE-613)
// Expected: ErrInvalidToken or ErrMissingToken.
// Test Case ID: SES-04
func TestVerify_Rejections(t *testing.T) {
	key, pub := newKeyPair(t)
	otherKey, _ := newKeyPair(t)
	v := newTestVerifier(t, pub)

	expired := baseClaims()
	expired["exp"] = testNow.Add(-time.Minute).Unix()
	expired["platform_admin"] = true

	noExp := baseClaims()
	delete(noExp, "exp")
	noExp["platform_admin"] = true

	forged := baseClaims()
	forged["platform_admin"] = true

	hs := jwt.NewWithClaims(jwt.SigningMethodHS256, forged)
	hsRaw, err := hs.SignedString([]byte("shared-secret"))
	require.NoError(t, err)

	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"expired", sign(t, key, expired), ErrInvalidToken},
		{"no expiry", sign(t, key, noExp), ErrInvalidToken},
		{"wrong key", sign(t, otherKey, forged), ErrInvalidToken},
		{"wrong algorithm", hsRaw, ErrInvalidToken},
		{"garbage", "not-a-jwt", ErrInvalidToken},
		{"empty", "  ", ErrMissingToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(tt.raw)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestNewVerifier_BadKey(t *testing.T) {
	_, err := NewVerifier("not a pem", "platform_admin", 0)
	assert.Error(t, err)
}

func TestPrincipal_ActorFallback(t *testing.T) {
	var p *Principal
	assert.Equal(t, "Unknown Admin", p.Actor())
	assert.Equal(t, "Unknown Admin", (&Principal{}).Actor())
	assert.Equal(t, "user_1", (&Principal{UserID: "user_1", Email: "  "}).Actor())
}
