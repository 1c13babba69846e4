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

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/opentrusty/licensehub/internal/audit"
	"github.com/opentrusty/licensehub/internal/license"
	"github.com/opentrusty/licensehub/internal/monitoring"
	"github.com/opentrusty/licensehub/internal/organization"
	"github.com/opentrusty/licensehub/internal/provisioning"
	"github.com/opentrusty/licensehub/internal/session"
)

type mockLicenseService struct {
	mock.Mock
}

func (m *mockLicenseService) Verify(ctx context.Context, req license.VerifyRequest) (*license.Verification, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*license.Verification), args.Error(1)
}

func (m *mockLicenseService) Overview(ctx context.Context) (*license.Overview, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*license.Overview), args.Error(1)
}

type mockOrganizationService struct {
	mock.Mock
}

func (m *mockOrganizationService) List(ctx context.Context) ([]*organization.Organization, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*organization.Organization), args.Error(1)
}

func (m *mockOrganizationService) Detail(ctx context.Context, id int64) (*organization.Detail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*organization.Detail), args.Error(1)
}

type mockProvisioningService struct {
	mock.Mock
}

func (m *mockProvisioningService) Onboard(ctx context.Context, req provisioning.OnboardRequest, actor string) (*provisioning.OnboardResult, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provisioning.OnboardResult), args.Error(1)
}

func (m *mockProvisioningService) ChangePlan(ctx context.Context, orgID int64, plan string, actor string) (*provisioning.PlanChangeResult, error) {
	args := m.Called(ctx, orgID, plan, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provisioning.PlanChangeResult), args.Error(1)
}

func (m *mockProvisioningService) Suspend(ctx context.Context, orgID int64, actor string) (*organization.Organization, error) {
	args := m.Called(ctx, orgID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*organization.Organization), args.Error(1)
}

func (m *mockProvisioningService) Activate(ctx context.Context, orgID int64, actor string) (*organization.Organization, error) {
	args := m.Called(ctx, orgID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*organization.Organization), args.Error(1)
}

func (m *mockProvisioningService) Delete(ctx context.Context, orgID int64, actor string) error {
	args := m.Called(ctx, orgID, actor)
	return args.Error(0)
}

type mockMonitoringService struct {
	mock.Mock
}

func (m *mockMonitoringService) Dashboard(ctx context.Context) (*monitoring.Dashboard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*monitoring.Dashboard), args.Error(1)
}

func (m *mockMonitoringService) Services(ctx context.Context) ([]monitoring.ServiceStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]monitoring.ServiceStatus), args.Error(1)
}

func (m *mockMonitoringService) Instances(ctx context.Context) ([]monitoring.InstanceHealth, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]monitoring.InstanceHealth), args.Error(1)
}

type mockAuditLog struct {
	mock.Mock
}

func (m *mockAuditLog) Search(ctx context.Context, query string, limit int) ([]*audit.Entry, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*audit.Entry), args.Error(1)
}

// stubVerifier accepts the token "admin-token" as a platform admin and
// "member-token" as a signed-in non-admin
type stubVerifier struct{}

func (stubVerifier) Verify(raw string) (*session.Principal, error) {
	switch raw {
	case "":
		return nil, session.ErrMissingToken
	case "admin-token":
		return &session.Principal{UserID: "user_admin", Email: "ops@example.com", PlatformAdmin: true}, nil
	case "member-token":
		return &session.Principal{UserID: "user_member", Email: "member@example.com"}, session.ErrNotPlatformAdmin
	}
	return nil, session.ErrInvalidToken
}

type testServer struct {
	licenses     *mockLicenseService
	orgs         *mockOrganizationService
	provisioning *mockProvisioningService
	monitoring   *mockMonitoringService
	auditLog     *mockAuditLog
	router       http.Handler
}

func newTestServer(t *testing.T, limiter *RateLimiter) *testServer {
	t.Helper()
	return newTestServerWithOptions(t, limiter, RouterOptions{})
}

func newTestServerWithOptions(t *testing.T, limiter *RateLimiter, opts RouterOptions) *testServer {
	t.Helper()
	if limiter == nil {
		limiter = NewRateLimiter(1000, 1000)
	}
	t.Cleanup(limiter.Stop)

	s := &testServer{
		licenses:     new(mockLicenseService),
		orgs:         new(mockOrganizationService),
		provisioning: new(mockProvisioningService),
		monitoring:   new(mockMonitoringService),
		auditLog:     new(mockAuditLog),
	}
	h := NewHandler(Services{
		Licenses:      s.licenses,
		Organizations: s.orgs,
		Provisioning:  s.provisioning,
		Monitoring:    s.monitoring,
		AuditLog:      s.auditLog,
		Verifier:      stubVerifier{},
	}, "licensehub")
	s.router = NewRouter(h, limiter, opts)
	return s
}

func (s *testServer) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func requireErrorBody(t *testing.T, w *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	require.JSONEq(t, `{"error":`+quote(message)+`}`, w.Body.String())
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
