package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/organization"
	"github.com/clerk/clerk-sdk-go/v2/organizationmembership"
	"github.com/clerk/clerk-sdk-go/v2/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockOrgs struct {
	mock.Mock
}

func (m *mockOrgs) Create(ctx context.Context, params *organization.CreateParams) (*clerk.Organization, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clerk.Organization), args.Error(1)
}

func (m *mockOrgs) Delete(ctx context.Context, id string) (*clerk.DeletedResource, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clerk.DeletedResource), args.Error(1)
}

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) List(ctx context.Context, params *user.ListParams) (*clerk.UserList, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clerk.UserList), args.Error(1)
}

type mockMemberships struct {
	mock.Mock
}

func (m *mockMemberships) Create(ctx context.Context, params *organizationmembership.CreateParams) (*clerk.OrganizationMembership, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clerk.OrganizationMembership), args.Error(1)
}

func newTestDirectory() (*ClerkDirectory, *mockOrgs, *mockUsers, *mockMemberships) {
	orgs, users, members := new(mockOrgs), new(mockUsers), new(mockMemberships)
	return &ClerkDirectory{orgs: orgs, users: users, memberships: members}, orgs, users, members
}

// TestPurpose: Validates organization creation through the Clerk client.
// Scope: Unit Test
// Expected: The provider id and name are returned.
// Test Case ID: IDP-01
func TestClerkDirectory_CreateOrganization(t *testing.T) {
	d, orgs, _, _ := newTestDirectory()
	ctx := context.Background()

	orgs.On("Create", ctx, mock.MatchedBy(func(p *organization.CreateParams) bool {
		return p.Name != nil && *p.Name == "Acme Corp"
	})).Return(&clerk.Organization{ID: "org_123", Name: "Acme Corp"}, nil)

	org, err := d.CreateOrganization(ctx, "Acme Corp")
	require.NoError(t, err)
	assert.Equal(t, &Organization{ID: "org_123", Name: "Acme Corp"}, org)
}

// TestPurpose: Validates that Clerk API errors surface with the provider's own message.
// Scope: Unit Test
// Expected: ProviderError whose message is the long message of the first API error.
// Test Case ID: IDP-02
func TestClerkDirectory_ProviderMessage(t *testing.T) {
	d, orgs, _, _ := newTestDirectory()
	ctx := context.Background()

	apiErr := &clerk.APIErrorResponse{Errors: []clerk.Error{{
		Code:        "form_param_exceeds_allowed_size",
		Message:     "is too long",
		LongMessage: "Name must be at most 256 characters",
	}}}
	orgs.On("Create", ctx, mock.Anything).Return(nil, apiErr)

	_, err := d.CreateOrganization(ctx, "Acme Corp")
	require.Error(t, err)
	assert.Equal(t, "Name must be at most 256 characters", err.Error())
	assert.True(t, IsProviderError(err))
	assert.ErrorIs(t, err, apiErr)
}

// TestPurpose: Validates user lookup by email and membership creation.
// Scope: Unit Test
// Expected: Matching user ids are returned and the membership carries org, user and role.
// Test Case ID: IDP-03
func TestClerkDirectory_ListUsersAndMembership(t *testing.T) {
	d, _, users, members := newTestDirectory()
	ctx := context.Background()

	users.On("List", ctx, mock.MatchedBy(func(p *user.ListParams) bool {
		return len(p.EmailAddresses) == 1 && p.EmailAddresses[0] == "a@acme.com"
	})).Return(&clerk.UserList{Users: []*clerk.User{{ID: "user_1"}}}, nil)
	members.On("Create", ctx, mock.MatchedBy(func(p *organizationmembership.CreateParams) bool {
		return p.OrganizationID == "org_123" && *p.UserID == "user_1" && *p.Role == RoleOrgAdmin
	})).Return(&clerk.OrganizationMembership{}, nil)

	found, err := d.ListUsersByEmail(ctx, "a@acme.com")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "user_1", found[0].ID)

	require.NoError(t, d.CreateMembership(ctx, "org_123", "user_1", RoleOrgAdmin))
	members.AssertExpectations(t)
}

func TestClerkDirectory_DeleteOrganization(t *testing.T) {
	d, orgs, _, _ := newTestDirectory()
	ctx := context.Background()

	orgs.On("Delete", ctx, "org_ok").Return(&clerk.DeletedResource{ID: "org_ok", Deleted: true}, nil)
	orgs.On("Delete", ctx, "org_fail").Return(nil, errors.New("dial tcp: connection refused"))

	assert.NoError(t, d.DeleteOrganization(ctx, "org_ok"))

	err := d.DeleteOrganization(ctx, "org_fail")
	require.Error(t, err)
	assert.Equal(t, "dial tcp: connection refused", err.Error())
}
