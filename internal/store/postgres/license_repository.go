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
)

const licenseColumns = `l.id, l.organization_id, l.license_key, l.status, l.expiry_date, l.max_users, l.features, l.created_at`

// LicenseRepository implements license.Repository
type LicenseRepository struct {
	db *DB
}

// NewLicenseRepository creates a new license repository
func NewLicenseRepository(db *DB) *LicenseRepository {
	return &LicenseRepository{db: db}
}

func licenseDest(l *license.License) []any {
	return []any{&l.ID, &l.OrganizationID, &l.Key, &l.Status, &l.ExpiryDate, &l.MaxUsers, &l.Features, &l.CreatedAt}
}

// Create inserts a license and fills its id and creation time
func (r *LicenseRepository) Create(ctx context.Context, l *license.License) error {
	features := l.Features
	if features == nil {
		features = map[string]any{}
	}
	err := r.db.pool.QueryRow(ctx, `
		INSERT INTO licenses (organization_id, license_key, status, expiry_date, max_users, features)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`,
		l.OrganizationID, l.Key, l.Status, l.ExpiryDate, l.MaxUsers, features,
	).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert license: %w", mapPostgresError(err, license.ErrDuplicateKey))
	}
	l.Features = features
	return nil
}

// KeyExists reports whether any license already uses key
func (r *LicenseRepository) KeyExists(ctx context.Context, key string) (bool, error) {
	var exists bool
	err := r.db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM licenses WHERE license_key = $1)`, key,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check license key: %w", mapPostgresError(err, nil))
	}
	return exists, nil
}

// LatestForOrganization returns the most recently created license of an organization
func (r *LicenseRepository) LatestForOrganization(ctx context.Context, orgID int64) (*license.License, error) {
	var l license.License
	err := r.db.pool.QueryRow(ctx, `
		SELECT `+licenseColumns+`
		FROM licenses l
		WHERE l.organization_id = $1
		ORDER BY l.created_at DESC, l.id DESC
		LIMIT 1
	`, orgID).Scan(licenseDest(&l)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, license.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get license: %w", mapPostgresError(err, nil))
	}
	return &l, nil
}

// UpdateEntitlement replaces the seat limit and expiry of a license
func (r *LicenseRepository) UpdateEntitlement(ctx context.Context, id int64, e license.Entitlement) error {
	result, err := r.db.pool.Exec(ctx,
		`UPDATE licenses SET max_users = $2, expiry_date = $3 WHERE id = $1`,
		id, e.MaxUsers, e.ExpiryDate,
	)
	if err != nil {
		return fmt.Errorf("failed to update license: %w", mapPostgresError(err, nil))
	}
	if result.RowsAffected() == 0 {
		return license.ErrNotFound
	}
	return nil
}

// FindActiveByKey returns the active license with key joined with its organization
func (r *LicenseRepository) FindActiveByKey(ctx context.Context, key string) (*license.KeyMatch, error) {
	var m license.KeyMatch
	var plan string
	dest := append(licenseDest(&m.License), &m.Holder.ID, &m.Holder.Name, &m.Holder.Code, &m.Holder.Status, &plan)

	err := r.db.pool.QueryRow(ctx, `
		SELECT `+licenseColumns+`, o.id, o.name, o.code, o.status, o.plan
		FROM licenses l
		JOIN organizations o ON o.id = l.organization_id
		WHERE l.license_key = $1 AND l.status = $2
	`, key, license.StatusActive).Scan(dest...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, license.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find license: %w", mapPostgresError(err, nil))
	}
	m.Holder.Plan = license.Plan(plan)
	return &m, nil
}

// MergeFeatures shallow-merges values into the features bag of a license
func (r *LicenseRepository) MergeFeatures(ctx context.Context, id int64, values map[string]any) error {
	result, err := r.db.pool.Exec(ctx,
		`UPDATE licenses SET features = COALESCE(features, '{}'::jsonb) || $2::jsonb WHERE id = $1`,
		id, values,
	)
	if err != nil {
		return fmt.Errorf("failed to merge license features: %w", mapPostgresError(err, nil))
	}
	if result.RowsAffected() == 0 {
		return license.ErrNotFound
	}
	return nil
}

// ListWithOrganizations returns every license with its organization name and plan, newest first
func (r *LicenseRepository) ListWithOrganizations(ctx context.Context) ([]*license.Listing, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT `+licenseColumns+`, o.name, o.plan
		FROM licenses l
		JOIN organizations o ON o.id = l.organization_id
		ORDER BY l.created_at DESC, l.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list licenses: %w", mapPostgresError(err, nil))
	}
	defer rows.Close()

	var listings []*license.Listing
	for rows.Next() {
		var item license.Listing
		var plan string
		dest := append(licenseDest(&item.License), &item.OrganizationName, &plan)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan license: %w", err)
		}
		item.OrganizationPlan = license.Plan(plan)
		listings = append(listings, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list licenses: %w", err)
	}
	return listings, nil
}
