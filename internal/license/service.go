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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/opentrusty/licensehub/internal/observability/logger"
)

// Verification failures. The messages are returned to callers as-is.
var (
	ErrMissingFields        = errors.New("Missing license_key or org_code")
	ErrInvalidLicense       = errors.New("Invalid or inactive license key")
	ErrOrgCodeMismatch      = errors.New("Organization code does not match license")
	ErrOrganizationInactive = errors.New("Organization is not active")
)

// Verification outcomes reported to the Observer
const (
	OutcomeVerified             = "verified"
	OutcomeMissingFields        = "missing_fields"
	OutcomeInvalidLicense       = "invalid_license"
	OutcomeOrgCodeMismatch      = "org_code_mismatch"
	OutcomeOrganizationInactive = "organization_inactive"
	OutcomeError                = "error"
)

// Observer receives verification outcomes
type Observer interface {
	VerificationCompleted(ctx context.Context, outcome string)
}

type nopObserver struct{}

func (nopObserver) VerificationCompleted(context.Context, string) {}

// VerifyRequest is a license activation check from a deployed instance
type VerifyRequest struct {
	LicenseKey string `json:"license_key"`
	OrgCode    string `json:"org_code"`
	ServerID   string `json:"server_id,omitempty"`
	AppVersion string `json:"app_version,omitempty"`
}

// Verification is the successful result of Verify
type Verification struct {
	Status     string `json:"status"`
	OrgID      int64  `json:"org_id"`
	OrgName    string `json:"org_name"`
	OrgCode    string `json:"org_code"`
	Plan       Plan   `json:"plan"`
	LicenseKey string `json:"license_key"`
}

// Summary counts licenses by display status
type Summary struct {
	Total        int `json:"total"`
	Active       int `json:"active"`
	ExpiringSoon int `json:"expiring_soon"`
	Expired      int `json:"expired"`
}

// Row is a listing with its derived status
type Row struct {
	*Listing
	DisplayStatus string `json:"display_status"`
	DaysLeft      int    `json:"days_left"`
}

// Overview is the license registry with summary counts
type Overview struct {
	Licenses []Row   `json:"licenses"`
	Summary  Summary `json:"summary"`
}

// Service provides license verification and reporting
type Service struct {
	repo     Repository
	observer Observer
	now      func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithObserver reports verification outcomes to o
func WithObserver(o Observer) Option {
	return func(s *Service) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new license service
func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		observer: nopObserver{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Verify checks a license key against an organization code and records the
// activation on success.
func (s *Service) Verify(ctx context.Context, req VerifyRequest) (*Verification, error) {
	v, outcome, err := s.verify(ctx, req)
	s.observer.VerificationCompleted(ctx, outcome)
	return v, err
}

func (s *Service) verify(ctx context.Context, req VerifyRequest) (*Verification, string, error) {
	if req.LicenseKey == "" || req.OrgCode == "" {
		return nil, OutcomeMissingFields, ErrMissingFields
	}
	if !ValidKeyFormat(req.LicenseKey) {
		slog.InfoContext(ctx, "license verification rejected", logger.LicenseKey(req.LicenseKey), logger.ErrorType(OutcomeInvalidLicense))
		return nil, OutcomeInvalidLicense, ErrInvalidLicense
	}

	match, err := s.repo.FindActiveByKey(ctx, req.LicenseKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			slog.InfoContext(ctx, "license verification rejected", logger.LicenseKey(req.LicenseKey), logger.ErrorType(OutcomeInvalidLicense))
			return nil, OutcomeInvalidLicense, ErrInvalidLicense
		}
		return nil, OutcomeError, fmt.Errorf("failed to look up license: %w", err)
	}

	holder := match.Holder
	if holder.Code != req.OrgCode {
		slog.WarnContext(ctx, "license verification rejected", logger.LicenseKey(req.LicenseKey), logger.OrganizationCode(req.OrgCode), logger.ErrorType(OutcomeOrgCodeMismatch))
		return nil, OutcomeOrgCodeMismatch, ErrOrgCodeMismatch
	}
	if holder.Status != StatusActive {
		slog.InfoContext(ctx, "license verification rejected", logger.OrganizationID(holder.ID), logger.ErrorType(OutcomeOrganizationInactive))
		return nil, OutcomeOrganizationInactive, ErrOrganizationInactive
	}

	// activation bookkeeping is informational only
	if err := s.repo.MergeFeatures(ctx, match.License.ID, s.activation(req)); err != nil {
		slog.WarnContext(ctx, "failed to record license activation", logger.OrganizationID(holder.ID), logger.Error(err))
	}

	slog.InfoContext(ctx, "license verified", logger.OrganizationID(holder.ID), logger.ServerID(req.ServerID))
	return &Verification{
		Status:     OutcomeVerified,
		OrgID:      holder.ID,
		OrgName:    holder.Name,
		OrgCode:    holder.Code,
		Plan:       holder.Plan,
		LicenseKey: match.License.Key,
	}, OutcomeVerified, nil
}

func (s *Service) activation(req VerifyRequest) map[string]any {
	values := map[string]any{
		"last_activated_at": s.now().UTC().Format(time.RFC3339),
	}
	if req.ServerID != "" {
		values["activated_server"] = req.ServerID
	}
	if req.AppVersion != "" {
		values["app_version"] = req.AppVersion
	}
	return values
}

// Overview lists every license with its organization, derived status and summary counts
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	listings, err := s.repo.ListWithOrganizations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list licenses: %w", err)
	}

	now := s.now()
	out := &Overview{Licenses: make([]Row, 0, len(listings))}
	for _, l := range listings {
		status := DisplayStatus(l.Status, l.ExpiryDate, now)
		out.Licenses = append(out.Licenses, Row{
			Listing:       l,
			DisplayStatus: status,
			DaysLeft:      DaysLeft(l.ExpiryDate, now),
		})
		out.Summary.Total++
		switch status {
		case StatusActive:
			out.Summary.Active++
		case StatusExpiringSoon:
			out.Summary.ExpiringSoon++
		case StatusExpired:
			out.Summary.Expired++
		}
	}
	return out, nil
}
