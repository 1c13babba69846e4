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

package provisioning

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/opentrusty/licensehub/internal/audit"
	"github.com/opentrusty/licensehub/internal/identity"
	"github.com/opentrusty/licensehub/internal/license"
	"github.com/opentrusty/licensehub/internal/observability/logger"
	"github.com/opentrusty/licensehub/internal/organization"
)

// Operation names
const (
	OperationOnboard    = "onboard"
	OperationChangePlan = "change_plan"
	OperationDelete     = "delete"
)

// Step names
const (
	StepCreateIdentityOrg = "create_identity_organization"
	StepLinkAdminMember   = "link_admin_member"
	StepInsertOrg         = "insert_organization"
	StepInsertLicense     = "insert_license"
	StepUpdatePlan        = "update_plan"
	StepUpdateLicense     = "update_license"
	StepDeleteIdentityOrg = "delete_identity_organization"
	StepPurgeProductData  = "purge_product_data"
	StepDeleteLocal       = "delete_local_records"
)

// DefaultMaxIDAttempts bounds identifier regeneration on collision
const DefaultMaxIDAttempts = 5

// ProductStore is the main product database holding end-user data
type ProductStore interface {
	// ListUserIDs returns the end-user account ids of an organization
	ListUserIDs(ctx context.Context, orgID int64) ([]string, error)
	// DeleteUserData removes notifications, projects and processes owned by the users
	DeleteUserData(ctx context.Context, userIDs []string) error
	DeleteUsers(ctx context.Context, orgID int64) error
	DeleteInstanceSettings(ctx context.Context, orgID int64) error
}

// Service runs the license and plan provisioning workflows
type Service struct {
	orgs      organization.Repository
	licenses  license.Repository
	directory identity.Directory
	product   ProductStore
	audit     audit.Recorder
	observer  Observer
	tracer    trace.Tracer

	maxIDAttempts uint
	now           func() time.Time
	newCode       func(name string) string
	newKey        func() (string, error)
}

// Option configures a Service
type Option func(*Service)

// WithObserver reports step and operation outcomes to o
func WithObserver(o Observer) Option {
	return func(s *Service) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithTracer overrides the tracer used for workflow spans
func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithMaxIDAttempts bounds identifier regeneration
func WithMaxIDAttempts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxIDAttempts = uint(n)
		}
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithGenerators overrides code and key generation
func WithGenerators(code func(name string) string, key func() (string, error)) Option {
	return func(s *Service) {
		if code != nil {
			s.newCode = code
		}
		if key != nil {
			s.newKey = key
		}
	}
}

// NewService creates a new provisioning service. product may be nil when the
// main store is not configured; the deletion purge is then skipped.
func NewService(
	orgs organization.Repository,
	licenses license.Repository,
	directory identity.Directory,
	product ProductStore,
	recorder audit.Recorder,
	opts ...Option,
) *Service {
	if recorder == nil {
		recorder = audit.NopRecorder{}
	}
	s := &Service{
		orgs:          orgs,
		licenses:      licenses,
		directory:     directory,
		product:       product,
		audit:         recorder,
		observer:      nopObserver{},
		tracer:        otel.Tracer("github.com/opentrusty/licensehub/internal/provisioning"),
		maxIDAttempts: DefaultMaxIDAttempts,
		now:           time.Now,
		newCode:       organization.GenerateCode,
		newKey:        license.GenerateKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) saga(operation string) *Saga {
	return NewSaga(operation, s.observer, s.tracer)
}

// Onboard creates an organization in the identity provider and the admin
// store and issues its first license.
func (s *Service) Onboard(ctx context.Context, req OnboardRequest, actor string) (*OnboardResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	plan := license.Plan(req.Plan)

	code, err := s.uniqueCode(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	key, err := s.uniqueKey(ctx)
	if err != nil {
		return nil, err
	}

	ent := license.OnboardingEntitlement(plan, req.DurationMonths, s.now())
	org := &organization.Organization{
		Name:       req.Name,
		Code:       code,
		Status:     organization.StatusActive,
		Plan:       plan,
		AdminEmail: req.AdminEmail,
	}
	lic := &license.License{
		Key:        key,
		Status:     license.StatusActive,
		ExpiryDate: ent.ExpiryDate,
		MaxUsers:   ent.MaxUsers,
		Features:   map[string]any{},
	}

	var external *identity.Organization
	err = s.saga(OperationOnboard).Run(ctx,
		Step{
			Name: StepCreateIdentityOrg,
			Action: func(ctx context.Context) error {
				o, err := s.directory.CreateOrganization(ctx, req.Name)
				if err != nil {
					return err
				}
				external = o
				org.ExternalID = &o.ID
				return nil
			},
			Compensate: func(ctx context.Context) error {
				return s.directory.DeleteOrganization(ctx, external.ID)
			},
		},
		Step{
			Name: StepLinkAdminMember,
			Action: func(ctx context.Context) error {
				return s.linkAdmin(ctx, external.ID, req.AdminEmail)
			},
		},
		Step{
			Name: StepInsertOrg,
			Action: func(ctx context.Context) error {
				return s.orgs.Create(ctx, org)
			},
			Compensate: func(ctx context.Context) error {
				return s.orgs.Delete(ctx, org.ID)
			},
		},
		Step{
			Name: StepInsertLicense,
			Action: func(ctx context.Context) error {
				lic.OrganizationID = org.ID
				return s.licenses.Create(ctx, lic)
			},
		},
	)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "organization onboarded",
		logger.OrganizationID(org.ID),
		logger.OrganizationCode(org.Code),
		logger.Plan(string(plan)),
		logger.LicenseKey(lic.Key),
	)
	s.audit.Record(ctx, audit.Entry{
		Action:         audit.ActionCreateOrganization,
		Details:        fmt.Sprintf("Created organization %s (%s) on %s plan", org.Name, org.Code, plan),
		OrganizationID: audit.OrgID(org.ID),
		PerformedBy:    actor,
	})

	return &OnboardResult{Organization: org, License: lic}, nil
}

// linkAdmin adds the existing account registered with email as organization admin
func (s *Service) linkAdmin(ctx context.Context, externalOrgID, email string) error {
	users, err := s.directory.ListUsersByEmail(ctx, email)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		slog.InfoContext(ctx, "no identity provider account for admin email, skipping membership", logger.ExternalOrgID(externalOrgID))
		return nil
	}
	return s.directory.CreateMembership(ctx, externalOrgID, users[0].ID, identity.RoleOrgAdmin)
}

// ChangePlan moves an organization to a new tier and re-issues the entitlement
// of its latest license. Changing to the current tier is a no-op and succeeds
// even without a license; a real change requires one.
func (s *Service) ChangePlan(ctx context.Context, orgID int64, target string, actor string) (*PlanChangeResult, error) {
	plan, err := parsePlan(target)
	if err != nil {
		return nil, err
	}

	org, err := s.orgs.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	lic, err := s.licenses.LatestForOrganization(ctx, orgID)

	if org.Plan == plan {
		if err != nil && !errors.Is(err, license.ErrNotFound) {
			return nil, err
		}
		return &PlanChangeResult{Organization: org, License: lic}, nil
	}
	if err != nil {
		return nil, err
	}

	previous := org.Plan
	ent := license.PlanChangeEntitlement(plan, s.now())

	err = s.saga(OperationChangePlan).Run(ctx,
		Step{
			Name: StepUpdatePlan,
			Action: func(ctx context.Context) error {
				return s.orgs.UpdatePlan(ctx, orgID, plan)
			},
			Compensate: func(ctx context.Context) error {
				return s.orgs.UpdatePlan(ctx, orgID, previous)
			},
		},
		Step{
			Name: StepUpdateLicense,
			Action: func(ctx context.Context) error {
				return s.licenses.UpdateEntitlement(ctx, lic.ID, ent)
			},
		},
	)
	if err != nil {
		return nil, err
	}

	org.Plan = plan
	lic.MaxUsers = ent.MaxUsers
	lic.ExpiryDate = ent.ExpiryDate

	slog.InfoContext(ctx, "organization plan changed", logger.OrganizationID(orgID), logger.Plan(string(plan)), slog.String("previous_plan", string(previous)))
	s.audit.Record(ctx, audit.Entry{
		Action:         audit.ActionUpdatePlan,
		Details:        fmt.Sprintf("Changed plan of %s from %s to %s", org.Name, previous, plan),
		OrganizationID: audit.OrgID(orgID),
		PerformedBy:    actor,
	})

	return &PlanChangeResult{Organization: org, License: lic, Changed: true}, nil
}

// SetStatus suspends or activates an organization. Licenses are untouched.
func (s *Service) SetStatus(ctx context.Context, orgID int64, status string, actor string) (*organization.Organization, error) {
	status, err := parseStatus(status)
	if err != nil {
		return nil, err
	}

	org, err := s.orgs.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if err := s.orgs.UpdateStatus(ctx, orgID, status); err != nil {
		return nil, err
	}
	org.Status = status

	action, verb := audit.ActionActivateOrganization, "Activated"
	if status == organization.StatusSuspended {
		action, verb = audit.ActionSuspendOrganization, "Suspended"
	}
	slog.InfoContext(ctx, "organization status changed", logger.OrganizationID(orgID), slog.String("status", status))
	s.audit.Record(ctx, audit.Entry{
		Action:         action,
		Details:        fmt.Sprintf("%s organization %s", verb, org.Name),
		OrganizationID: audit.OrgID(orgID),
		PerformedBy:    actor,
	})

	return org, nil
}

// Suspend blocks license verification for an organization
func (s *Service) Suspend(ctx context.Context, orgID int64, actor string) (*organization.Organization, error) {
	return s.SetStatus(ctx, orgID, organization.StatusSuspended, actor)
}

// Activate re-enables a suspended organization
func (s *Service) Activate(ctx context.Context, orgID int64, actor string) (*organization.Organization, error) {
	return s.SetStatus(ctx, orgID, organization.StatusActive, actor)
}

// Delete removes an organization everywhere. The identity provider deletion
// cannot be undone, so it runs first and aborts everything on failure. The
// product-data purge is best effort. Licenses and the organization row go
// in one admin-store transaction.
func (s *Service) Delete(ctx context.Context, orgID int64, actor string) error {
	org, err := s.orgs.GetByID(ctx, orgID)
	if err != nil {
		return err
	}

	err = s.saga(OperationDelete).Run(ctx,
		Step{
			Name: StepDeleteIdentityOrg,
			Action: func(ctx context.Context) error {
				if !org.Linked() {
					return nil
				}
				return s.directory.DeleteOrganization(ctx, *org.ExternalID)
			},
		},
		Step{
			Name: StepPurgeProductData,
			Action: func(ctx context.Context) error {
				s.purgeProductData(ctx, orgID)
				return nil
			},
		},
		Step{
			Name: StepDeleteLocal,
			Action: func(ctx context.Context) error {
				return s.orgs.DeleteWithLicenses(ctx, orgID)
			},
		},
	)
	if err != nil {
		var stepErr *StepError
		if errors.As(err, &stepErr) && stepErr.Step == StepDeleteLocal && org.Linked() {
			slog.ErrorContext(ctx, "organization deleted in identity provider but not locally, manual reconciliation required",
				logger.OrganizationID(orgID),
				logger.ExternalOrgID(*org.ExternalID),
				logger.Error(err),
			)
		}
		return err
	}

	slog.InfoContext(ctx, "organization deleted", logger.OrganizationID(orgID), logger.OrganizationCode(org.Code))
	s.audit.Record(ctx, audit.Entry{
		Action:         audit.ActionDeleteOrganization,
		Details:        fmt.Sprintf("Deleted organization %s (%s)", org.Name, org.Code),
		OrganizationID: audit.OrgID(orgID),
		PerformedBy:    actor,
	})
	return nil
}

// purgeProductData removes end-user data of an organization from the main
// store. Every failure is logged and the purge continues.
func (s *Service) purgeProductData(ctx context.Context, orgID int64) {
	if s.product == nil {
		slog.WarnContext(ctx, "main store not configured, skipping product data purge", logger.OrganizationID(orgID))
		return
	}
	log := slog.With(logger.OrganizationID(orgID), logger.Store("main"))

	userIDs, err := s.product.ListUserIDs(ctx, orgID)
	if err != nil {
		log.WarnContext(ctx, "failed to list organization users", logger.Error(err))
	}
	if len(userIDs) > 0 {
		if err := s.product.DeleteUserData(ctx, userIDs); err != nil {
			log.WarnContext(ctx, "failed to delete user data", logger.Error(err))
		}
	}
	if err := s.product.DeleteUsers(ctx, orgID); err != nil {
		log.WarnContext(ctx, "failed to delete users", logger.Error(err))
	}
	if err := s.product.DeleteInstanceSettings(ctx, orgID); err != nil {
		log.WarnContext(ctx, "failed to delete instance settings", logger.Error(err))
	}
}
