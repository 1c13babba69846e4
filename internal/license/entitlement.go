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

package license

import "time"

// LifetimeYears is the expiry horizon of a Lifetime license
const LifetimeYears = 100

// Entitlement is the seat ceiling and expiry granted by a plan tier
type Entitlement struct {
	MaxUsers   int
	ExpiryDate time.Time
}

// OnboardingEntitlement returns the entitlement of a license issued when an
// organization is created. months is ignored for Lifetime.
//
// The seat table differs from PlanChangeEntitlement for Starter and Pro. Both
// tables are kept as issued to customers; see DESIGN.md.
func OnboardingEntitlement(plan Plan, months int, now time.Time) Entitlement {
	if plan == PlanLifetime {
		return Entitlement{MaxUsers: 9999, ExpiryDate: now.AddDate(LifetimeYears, 0, 0)}
	}

	maxUsers := 10
	switch plan {
	case PlanEnterprise:
		maxUsers = 500
	case PlanPro:
		maxUsers = 100
	}
	return Entitlement{MaxUsers: maxUsers, ExpiryDate: now.AddDate(0, months, 0)}
}

// PlanChangeEntitlement returns the entitlement applied when an existing
// organization moves to plan. Non-lifetime tiers renew for one year.
func PlanChangeEntitlement(plan Plan, now time.Time) Entitlement {
	e := Entitlement{MaxUsers: 5, ExpiryDate: now.AddDate(1, 0, 0)}
	switch plan {
	case PlanPro:
		e.MaxUsers = 50
	case PlanEnterprise:
		e.MaxUsers = 500
	case PlanLifetime:
		e.MaxUsers = 9999
		e.ExpiryDate = now.AddDate(LifetimeYears, 0, 0)
	}
	return e
}
