package organization

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/opentrusty/licensehub/internal/license"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, org *Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Organization), args.Error(1)
}

func (m *mockRepo) List(ctx context.Context) ([]*Organization, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*Organization), args.Error(1)
}

func (m *mockRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) UpdatePlan(ctx context.Context, id int64, plan license.Plan) error {
	args := m.Called(ctx, id, plan)
	return args.Error(0)
}

func (m *mockRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockRepo) DeleteWithLicenses(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockLicenses struct {
	mock.Mock
}

func (m *mockLicenses) LatestForOrganization(ctx context.Context, orgID int64) (*license.License, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*license.License), args.Error(1)
}

type stubSeats struct {
	n   int
	err error
}

func (s stubSeats) CountUsers(context.Context, int64) (int, error) {
	return s.n, s.err
}

// TestPurpose: Validates organization code derivation from the organization name.
// Scope: Unit Test
// Expected: Upper-cased first three letters or digits followed by two digits in 10..99.
// Test Case ID: ORG-01
func TestGenerateCode(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
	}{
		{"Acme Corp", "ACM"},
		{"ab", "AB"},
		{"  globex", "GLO"},
		{"A.B.C. Industries", "ABC"},
		{"3M", "3M"},
		{"!!!", "ORG"},
		{"", "ORG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.prefix, CodePrefix(tt.name))
			pattern := regexp.MustCompile("^" + regexp.QuoteMeta(tt.prefix) + `[1-9]\d$`)
			for i := 0; i < 50; i++ {
				assert.Regexp(t, pattern, GenerateCode(tt.name))
			}
		})
	}
}

// TestPurpose: Validates the console detail view of an organization.
// Scope: Unit Test
// Expected: Latest license with derived status, seat usage and plan features.
// Test Case ID: ORG-02
func TestService_Detail(t *testing.T) {
	repo := new(mockRepo)
	lics := new(mockLicenses)
	svc := NewService(repo, lics, stubSeats{n: 12})
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	org := &Organization{ID: 9, Name: "Acme Corp", Code: "ACM42", Status: StatusActive, Plan: license.PlanPro}
	repo.On("GetByID", ctx, int64(9)).Return(org, nil)
	lics.On("LatestForOrganization", ctx, int64(9)).Return(&license.License{
		ID: 1, Status: license.StatusActive, ExpiryDate: now.AddDate(0, 0, 10), MaxUsers: 100,
	}, nil)

	d, err := svc.Detail(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, org, d.Organization)
	assert.Equal(t, license.StatusExpiringSoon, d.DisplayStatus)
	assert.Equal(t, 10, d.DaysLeft)
	require.NotNil(t, d.SeatsUsed)
	assert.Equal(t, 12, *d.SeatsUsed)
	assert.True(t, d.Features["api_access"])
	assert.False(t, d.Features["sso_integration"])
}

// TestPurpose: Validates that detail degrades gracefully without a license or seat count.
// Scope: Unit Test
// Expected: No license fields and nil seat usage, no error.
// Test Case ID: ORG-03
func TestService_Detail_Partial(t *testing.T) {
	repo := new(mockRepo)
	lics := new(mockLicenses)
	svc := NewService(repo, lics, stubSeats{err: errors.New("main store down")})
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(4)).Return(&Organization{ID: 4, Plan: license.PlanStarter}, nil)
	lics.On("LatestForOrganization", ctx, int64(4)).Return(nil, license.ErrNotFound)

	d, err := svc.Detail(ctx, 4)
	require.NoError(t, err)
	assert.Nil(t, d.License)
	assert.Nil(t, d.SeatsUsed)
	assert.True(t, d.Features["custom_branding"])
}

func TestService_Detail_NotFound(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, new(mockLicenses), nil)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(404)).Return(nil, ErrNotFound)

	_, err := svc.Detail(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}
