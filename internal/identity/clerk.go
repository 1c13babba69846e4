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
	"log/slog"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/organization"
	"github.com/clerk/clerk-sdk-go/v2/organizationmembership"
	"github.com/clerk/clerk-sdk-go/v2/user"

	"github.com/opentrusty/licensehub/internal/observability/logger"
)

type organizationAPI interface {
	Create(ctx context.Context, params *organization.CreateParams) (*clerk.Organization, error)
	Delete(ctx context.Context, id string) (*clerk.DeletedResource, error)
}

type userAPI interface {
	List(ctx context.Context, params *user.ListParams) (*clerk.UserList, error)
}

type membershipAPI interface {
	Create(ctx context.Context, params *organizationmembership.CreateParams) (*clerk.OrganizationMembership, error)
}

// ClerkDirectory implements Directory with the Clerk Backend API
type ClerkDirectory struct {
	orgs        organizationAPI
	users       userAPI
	memberships membershipAPI
}

// NewClerkDirectory creates a directory authenticated with a Clerk secret key
func NewClerkDirectory(secretKey string) *ClerkDirectory {
	cfg := &clerk.ClientConfig{}
	cfg.Key = clerk.String(secretKey)

	return &ClerkDirectory{
		orgs:        organization.NewClient(cfg),
		users:       user.NewClient(cfg),
		memberships: organizationmembership.NewClient(cfg),
	}
}

// CreateOrganization creates an organization in Clerk
func (d *ClerkDirectory) CreateOrganization(ctx context.Context, name string) (*Organization, error) {
	org, err := d.orgs.Create(ctx, &organization.CreateParams{
		Name: clerk.String(name),
	})
	if err != nil {
		return nil, providerError("create_organization", err)
	}
	slog.InfoContext(ctx, "identity provider organization created", logger.ExternalOrgID(org.ID))
	return &Organization{ID: org.ID, Name: org.Name}, nil
}

// ListUsersByEmail returns the accounts registered with email
func (d *ClerkDirectory) ListUsersByEmail(ctx context.Context, email string) ([]User, error) {
	list, err := d.users.List(ctx, &user.ListParams{
		EmailAddresses: []string{email},
	})
	if err != nil {
		return nil, providerError("list_users", err)
	}

	users := make([]User, 0, len(list.Users))
	for _, u := range list.Users {
		users = append(users, User{ID: u.ID, Email: email})
	}
	return users, nil
}

// CreateMembership adds a user to an organization with role
func (d *ClerkDirectory) CreateMembership(ctx context.Context, orgID, userID, role string) error {
	_, err := d.memberships.Create(ctx, &organizationmembership.CreateParams{
		OrganizationID: orgID,
		UserID:         clerk.String(userID),
		Role:           clerk.String(role),
	})
	if err != nil {
		return providerError("create_membership", err)
	}
	return nil
}

// DeleteOrganization deletes an organization from Clerk
func (d *ClerkDirectory) DeleteOrganization(ctx context.Context, orgID string) error {
	if _, err := d.orgs.Delete(ctx, orgID); err != nil {
		return providerError("delete_organization", err)
	}
	slog.InfoContext(ctx, "identity provider organization deleted", logger.ExternalOrgID(orgID))
	return nil
}

// providerError extracts the human-readable message from a Clerk API error
func providerError(op string, err error) error {
	msg := err.Error()
	var apiErr *clerk.APIErrorResponse
	if errors.As(err, &apiErr) && len(apiErr.Errors) > 0 {
		first := apiErr.Errors[0]
		switch {
		case first.LongMessage != "":
			msg = first.LongMessage
		case first.Message != "":
			msg = first.Message
		}
	}
	return &ProviderError{Op: op, Message: msg, Err: err}
}
