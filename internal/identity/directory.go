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

package identity

import (
	"context"
	"errors"
)

// RoleOrgAdmin is the membership role granted to the onboarding admin contact
const RoleOrgAdmin = "org:admin"

// Organization is an organization as known to the identity provider
type Organization struct {
	ID   string
	Name string
}

// User is an end-user account in the identity provider
type User struct {
	ID    string
	Email string
}

// Directory is the identity provider surface used by provisioning.
// Implementations return *ProviderError for failures reported by the provider.
type Directory interface {
	CreateOrganization(ctx context.Context, name string) (*Organization, error)
	ListUsersByEmail(ctx context.Context, email string) ([]User, error)
	CreateMembership(ctx context.Context, orgID, userID, role string) error
	DeleteOrganization(ctx context.Context, orgID string) error
}

// ProviderError carries the identity provider's own message for an operation.
// Error returns that message unchanged so it can be shown to the operator.
type ProviderError struct {
	Op      string
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsProviderError reports whether err originated in the identity provider
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}
