package license

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var fixedNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

// TestPurpose: Validates the seat ceiling and expiry issued with a new organization for every tier.
// Scope: Unit Test
// Expected: Starter 10, Pro 100, Enterprise 500 seats expiring after the requested months; Lifetime 9999 seats for 100 years.
// Test Case ID: LIC-01
func TestOnboardingEntitlement(t *testing.T) {
	tests := []struct {
		plan     Plan
		months   int
		maxUsers int
		expiry   time.Time
	}{
		{PlanStarter, 12, 10, fixedNow.AddDate(0, 12, 0)},
		{PlanPro, 12, 100, fixedNow.AddDate(0, 12, 0)},
		{PlanEnterprise, 24, 500, fixedNow.AddDate(0, 24, 0)},
		{PlanLifetime, 12, 9999, fixedNow.AddDate(100, 0, 0)},
		{PlanLifetime, 0, 9999, fixedNow.AddDate(100, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(string(tt.plan), func(t *testing.T) {
			e := OnboardingEntitlement(tt.plan, tt.months, fixedNow)
			assert.Equal(t, tt.maxUsers, e.MaxUsers)
			assert.True(t, tt.expiry.Equal(e.ExpiryDate), "expiry %s, want %s", e.ExpiryDate, tt.expiry)
		})
	}
}

// TestPurpose: Validates the entitlement applied when an organization changes tier.
// Scope: Unit Test
// Expected: Starter 5, Pro 50, Enterprise 500 seats renewed for one year; Lifetime 9999 seats for 100 years.
// Test Case ID: LIC-02
func TestPlanChangeEntitlement(t *testing.T) {
	tests := []struct {
		plan     Plan
		maxUsers int
		expiry   time.Time
	}{
		{PlanStarter, 5, fixedNow.AddDate(1, 0, 0)},
		{PlanPro, 50, fixedNow.AddDate(1, 0, 0)},
		{PlanEnterprise, 500, fixedNow.AddDate(1, 0, 0)},
		{PlanLifetime, 9999, fixedNow.AddDate(100, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(string(tt.plan), func(t *testing.T) {
			e := PlanChangeEntitlement(tt.plan, fixedNow)
			assert.Equal(t, tt.maxUsers, e.MaxUsers)
			assert.True(t, tt.expiry.Equal(e.ExpiryDate), "expiry %s, want %s", e.ExpiryDate, tt.expiry)
		})
	}
}

// TestPurpose: Validates the feature flags attached to each tier.
// Scope: Unit Test
// Expected: Branding always; API and analytics above Starter; SSO for Enterprise only.
// Test Case ID: LIC-03
func TestFeatures(t *testing.T) {
	starter := Features(PlanStarter)
	assert.True(t, starter["custom_branding"])
	assert.False(t, starter["api_access"])
	assert.False(t, starter["advanced_analytics"])
	assert.False(t, starter["sso_integration"])

	enterprise := Features(PlanEnterprise)
	assert.True(t, enterprise["api_access"])
	assert.True(t, enterprise["sso_integration"])

	lifetime := Features(PlanLifetime)
	assert.True(t, lifetime["advanced_analytics"])
	assert.False(t, lifetime["sso_integration"])
}

func TestParsePlan(t *testing.T) {
	p, err := ParsePlan("Enterprise")
	assert.NoError(t, err)
	assert.Equal(t, PlanEnterprise, p)

	_, err = ParsePlan("enterprise")
	assert.Error(t, err)
}
