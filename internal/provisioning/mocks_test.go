package provisioning

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/opentrusty/licensehub/internal/audit"
	"github.com/opentrusty/licensehub/internal/identity"
	"github.com/opentrusty/licensehub/internal/license"
	"github.com/opentrusty/licensehub/internal/organization"
)

type mockOrgRepo struct {
	mock.Mock
}

func (m *mockOrgRepo) Create(ctx context.Context, org *organization.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *mockOrgRepo) GetByID(ctx context.Context, id int64) (*organization.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*organization.Organization), args.Error(1)
}

func (m *mockOrgRepo) List(ctx context.Context) ([]*organization.Organization, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*organization.Organization), args.Error(1)
}

func (m *mockOrgRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *mockOrgRepo) UpdatePlan(ctx context.Context, id int64, plan license.Plan) error {
	args := m.Called(ctx, id, plan)
	return args.Error(0)
}

func (m *mockOrgRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockOrgRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockOrgRepo) DeleteWithLicenses(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockLicenseRepo struct {
	mock.Mock
}

func (m *mockLicenseRepo) Create(ctx context.Context, l *license.License) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *mockLicenseRepo) KeyExists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *mockLicenseRepo) LatestForOrganization(ctx context.Context, orgID int64) (*license.License, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*license.License), args.Error(1)
}

func (m *mockLicenseRepo) UpdateEntitlement(ctx context.Context, id int64, e license.Entitlement) error {
	args := m.Called(ctx, id, e)
	return args.Error(0)
}

func (m *mockLicenseRepo) FindActiveByKey(ctx context.Context, key string) (*license.KeyMatch, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*license.KeyMatch), args.Error(1)
}

func (m *mockLicenseRepo) MergeFeatures(ctx context.Context, id int64, values map[string]any) error {
	args := m.Called(ctx, id, values)
	return args.Error(0)
}

func (m *mockLicenseRepo) ListWithOrganizations(ctx context.Context) ([]*license.Listing, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*license.Listing), args.Error(1)
}

type mockDirectory struct {
	mock.Mock
}

func (m *mockDirectory) CreateOrganization(ctx context.Context, name string) (*identity.Organization, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Organization), args.Error(1)
}

func (m *mockDirectory) ListUsersByEmail(ctx context.Context, email string) ([]identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *mockDirectory) CreateMembership(ctx context.Context, orgID, userID, role string) error {
	args := m.Called(ctx, orgID, userID, role)
	return args.Error(0)
}

func (m *mockDirectory) DeleteOrganization(ctx context.Context, orgID string) error {
	args := m.Called(ctx, orgID)
	return args.Error(0)
}

type mockProductStore struct {
	mock.Mock
}

func (m *mockProductStore) ListUserIDs(ctx context.Context, orgID int64) ([]string, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockProductStore) DeleteUserData(ctx context.Context, userIDs []string) error {
	args := m.Called(ctx, userIDs)
	return args.Error(0)
}

func (m *mockProductStore) DeleteUsers(ctx context.Context, orgID int64) error {
	args := m.Called(ctx, orgID)
	return args.Error(0)
}

func (m *mockProductStore) DeleteInstanceSettings(ctx context.Context, orgID int64) error {
	args := m.Called(ctx, orgID)
	return args.Error(0)
}

type recordingAudit struct {
	mu      sync.Mutex
	entries []audit.Entry
}

func (r *recordingAudit) Record(_ context.Context, e audit.Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
}

func (r *recordingAudit) Entries() []audit.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]audit.Entry(nil), r.entries...)
}
