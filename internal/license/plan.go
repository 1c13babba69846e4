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

import "fmt"

// Plan is a subscription tier
type Plan string

// Plan tiers
const (
	PlanStarter    Plan = "Starter"
	PlanPro        Plan = "Pro"
	PlanEnterprise Plan = "Enterprise"
	PlanLifetime   Plan = "Lifetime"
)

// Valid reports whether p is a known tier
func (p Plan) Valid() bool {
	switch p {
	case PlanStarter, PlanPro, PlanEnterprise, PlanLifetime:
		return true
	}
	return false
}

func (p Plan) String() string {
	return string(p)
}

// ParsePlan converts a tier name into a Plan
func ParsePlan(s string) (Plan, error) {
	p := Plan(s)
	if !p.Valid() {
		return "", fmt.Errorf("unknown plan %q", s)
	}
	return p, nil
}

// Features returns the feature flags granted by a plan tier
func Features(p Plan) map[string]bool {
	return map[string]bool{
		"custom_branding":    true,
		"api_access":         p != PlanStarter,
		"advanced_analytics": p != PlanStarter,
		"sso_integration":    p == PlanEnterprise,
	}
}
