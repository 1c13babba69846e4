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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/opentrusty/licensehub/internal/license"
	"github.com/opentrusty/licensehub/internal/observability/logger"
)

// LicenseReader reads the authoritative license of an organization
type LicenseReader interface {
	LatestForOrganization(ctx context.Context, orgID int64) (*license.License, error)
}

// SeatCounter counts end-user accounts of an organization in the product store
type SeatCounter interface {
	CountUsers(ctx context.Context, orgID int64) (int, error)
}

// Detail is the organization view used by the admin console
type Detail struct {
	Organization  *Organization    `json:"organization"`
	License       *license.License `json:"license,omitempty"`
	DisplayStatus string           `json:"license_status,omitempty"`
	DaysLeft      int              `json:"days_left"`
	// SeatsUsed is nil when the product store is not configured or unreachable
	SeatsUsed *int            `json:"seats_used"`
	Features  map[string]bool `json:"features"`
}

// Service provides organization read operations
type Service struct {
	repo     Repository
	licenses LicenseReader
	seats    SeatCounter
	now      func() time.Time
}

// NewService creates a new organization service. seats may be nil.
func NewService(repo Repository, licenses LicenseReader, seats SeatCounter) *Service {
	return &Service{
		repo:     repo,
		licenses: licenses,
		seats:    seats,
		now:      time.Now,
	}
}

// List lists organizations, newest first
func (s *Service) List(ctx context.Context) ([]*Organization, error) {
	return s.repo.List(ctx)
}

// Detail assembles an organization with its latest license, seat usage and plan features
func (s *Service) Detail(ctx context.Context, id int64) (*Detail, error) {
	org, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	d := &Detail{
		Organization: org,
		Features:     license.Features(org.Plan),
	}

	lic, err := s.licenses.LatestForOrganization(ctx, id)
	switch {
	case err == nil:
		now := s.now()
		d.License = lic
		d.DisplayStatus = license.DisplayStatus(lic.Status, lic.ExpiryDate, now)
		d.DaysLeft = license.DaysLeft(lic.ExpiryDate, now)
	case errors.Is(err, license.ErrNotFound):
	default:
		return nil, fmt.Errorf("failed to load license: %w", err)
	}

	if s.seats != nil {
		n, err := s.seats.CountUsers(ctx, id)
		if err != nil {
			slog.WarnContext(ctx, "failed to count seats", logger.OrganizationID(id), logger.Error(err))
		} else {
			d.SeatsUsed = &n
		}
	}

	return d, nil
}
