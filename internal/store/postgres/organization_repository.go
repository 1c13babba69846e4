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

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/opentrusty/licensehub/internal/license"
	"github.com/opentrusty/licensehub/internal/organization"
)

const organizationColumns = `id, clerk_org_id, name, code, status, plan, admin_email, created_at`

// OrganizationRepository implements organization.Repository
type OrganizationRepository struct {
	db *DB
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(db *DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

func scanOrganization(row pgx.Row) (*organization.Organization, error) {
	var org organization.Organization
	var plan string
	if err := row.Scan(
		&org.ID, &org.ExternalID, &org.Name, &org.Code, &org.Status, &plan, &org.AdminEmail, &org.CreatedAt,
	); err != nil {
		return nil, err
	}
	org.Plan = license.Plan(plan)
	return &org, nil
}

// Create inserts an organization and fills its id and creation time
func (r *OrganizationRepository) Create(ctx context.Context, org *organization.Organization) error {
	err := r.db.pool.QueryRow(ctx, `
		INSERT INTO organizations (clerk_org_id, name, code, status, plan, admin_email)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`,
		org.ExternalID, org.Name, org.Code, org.Status, string(org.Plan), org.AdminEmail,
	).Scan(&org.ID, &org.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert organization: %w", mapPostgresError(err, organization.ErrDuplicateCode))
	}
	return nil
}

// GetByID retrieves an organization by id
func (r *OrganizationRepository) GetByID(ctx context.Context, id int64) (*organization.Organization, error) {
	org, err := scanOrganization(r.db.pool.QueryRow(ctx,
		`SELECT `+organizationColumns+` FROM organizations WHERE id = $1`, id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, organization.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", mapPostgresError(err, nil))
	}
	return org, nil
}

// List returns all organizations, newest first
func (r *OrganizationRepository) List(ctx context.Context) ([]*organization.Organization, error) {
	rows, err := r.db.pool.Query(ctx,
		`SELECT `+organizationColumns+` FROM organizations ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", mapPostgresError(err, nil))
	}
	defer rows.Close()

	var orgs []*organization.Organization
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan organization: %w", err)
		}
		orgs = append(orgs, org)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return orgs, nil
}

// CodeExists reports whether an organization already uses code
func (r *OrganizationRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM organizations WHERE code = $1)`, code,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check organization code: %w", mapPostgresError(err, nil))
	}
	return exists, nil
}

// UpdatePlan sets the plan of an organization
func (r *OrganizationRepository) UpdatePlan(ctx context.Context, id int64, plan license.Plan) error {
	result, err := r.db.pool.Exec(ctx, `UPDATE organizations SET plan = $2 WHERE id = $1`, id, string(plan))
	if err != nil {
		return fmt.Errorf("failed to update organization plan: %w", mapPostgresError(err, nil))
	}
	if result.RowsAffected() == 0 {
		return organization.ErrNotFound
	}
	return nil
}

// UpdateStatus sets the status of an organization
func (r *OrganizationRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	result, err := r.db.pool.Exec(ctx, `UPDATE organizations SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update organization status: %w", mapPostgresError(err, nil))
	}
	if result.RowsAffected() == 0 {
		return organization.ErrNotFound
	}
	return nil
}

// Delete removes an organization row. Licenses follow through the cascade.
func (r *OrganizationRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.pool.Exec(ctx, `DELETE FROM organizations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete organization: %w", mapPostgresError(err, nil))
	}
	if result.RowsAffected() == 0 {
		return organization.ErrNotFound
	}
	return nil
}

// DeleteWithLicenses removes the licenses and then the organization in one transaction
func (r *OrganizationRepository) DeleteWithLicenses(ctx context.Context, id int64) error {
	return r.db.withTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM licenses WHERE organization_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete licenses: %w", mapPostgresError(err, nil))
		}
		result, err := tx.Exec(ctx, `DELETE FROM organizations WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete organization: %w", mapPostgresError(err, nil))
		}
		if result.RowsAffected() == 0 {
			return organization.ErrNotFound
		}
		return nil
	})
}
