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

import (
	"time"
)

// License is a time-boxed entitlement for one organization. The most recently
// created license of an organization is authoritative.
type License struct {
	ID             int64          `json:"id"`
	OrganizationID int64          `json:"organization_id"`
	Key            string         `json:"license_key"`
	Status         string         `json:"status"`
	ExpiryDate     time.Time      `json:"expiry_date"`
	MaxUsers       int            `json:"max_users"`
	Features       map[string]any `json:"features"`
	CreatedAt      time.Time      `json:"created_at"`
}

// Holder is the organization side of a license lookup
type Holder struct {
	ID     int64
	Name   string
	Code   string
	Status string
	Plan   Plan
}

// KeyMatch is an active license found by key, joined with its organization
type KeyMatch struct {
	License License
	Holder  Holder
}

// Listing is a license joined with the name and plan of its organization
type Listing struct {
	License
	OrganizationName string `json:"organization_name"`
	OrganizationPlan Plan   `json:"organization_plan"`
}
