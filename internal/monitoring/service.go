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

package monitoring

import (
	"context"
	"fmt"
	"time"

	"github.com/opentrusty/licensehub/internal/license"
)

// Dashboard is the landing page summary of the admin console
type Dashboard struct {
	TotalOrganizations int             `json:"total_organizations"`
	TotalLicenses      int             `json:"total_licenses"`
	ExpiringSoon       int             `json:"expiring_soon"`
	ServiceIssues      int             `json:"service_issues"`
	Services           []ServiceStatus `json:"services"`
}

// Service provides monitoring read operations
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new monitoring service
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Services lists the platform status board
func (s *Service) Services(ctx context.Context) ([]ServiceStatus, error) {
	return s.repo.ListServices(ctx)
}

// Instances lists deployed instance heartbeats
func (s *Service) Instances(ctx context.Context) ([]InstanceHealth, error) {
	return s.repo.ListInstances(ctx)
}

// Dashboard aggregates organization, license and service counts
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	orgs, err := s.repo.CountOrganizations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count organizations: %w", err)
	}
	licenses, err := s.repo.CountLicenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count licenses: %w", err)
	}

	now := s.now()
	expiring, err := s.repo.CountExpiringLicenses(ctx, now, now.Add(license.ExpiringWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to count expiring licenses: %w", err)
	}

	services, err := s.repo.ListServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	d := &Dashboard{
		TotalOrganizations: orgs,
		TotalLicenses:      licenses,
		ExpiringSoon:       expiring,
		Services:           services,
	}
	for _, svc := range services {
		if !svc.Operational() {
			d.ServiceIssues++
		}
	}
	return d, nil
}
