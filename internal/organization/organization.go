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

package organization

import (
	"time"

	"github.com/opentrusty/licensehub/internal/license"
)

// Status constants
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

// Organization is a customer tenant
type Organization struct {
	ID int64 `json:"id"`
	// ExternalID is the identity provider organization id, nil until linked
	ExternalID *string      `json:"clerk_org_id,omitempty"`
	Name       string       `json:"name"`
	Code       string       `json:"code"`
	Status     string       `json:"status"`
	Plan       license.Plan `json:"plan"`
	AdminEmail string       `json:"admin_email"`
	CreatedAt  time.Time    `json:"created_at"`
}

// Linked reports whether the organization exists in the identity provider
func (o *Organization) Linked() bool {
	return o.ExternalID != nil && *o.ExternalID != ""
}
