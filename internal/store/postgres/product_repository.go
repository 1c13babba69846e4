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
	"fmt"
	"log/slog"

	"github.com/opentrusty/licensehub/internal/observability/logger"
)

// ProductRepository reads and purges end-user data in the main product store.
// It implements provisioning.ProductStore and organization.SeatCounter.
type ProductRepository struct {
	db *DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// userDataTables hold rows owned by end users, keyed by user_id
var userDataTables = []string{"notifications", "projects", "processes"}

// CountUsers counts the end-user accounts of an organization
func (r *ProductRepository) CountUsers(ctx context.Context, orgID int64) (int, error) {
	var n int
	err := r.db.pool.QueryRow(ctx, `SELECT count(*) FROM users WHERE organization_id = $1`, orgID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", mapPostgresError(err, nil))
	}
	return n, nil
}

// ListUserIDs returns the end-user account ids of an organization
func (r *ProductRepository) ListUserIDs(ctx context.Context, orgID int64) ([]string, error) {
	rows, err := r.db.pool.Query(ctx, `SELECT id::text FROM users WHERE organization_id = $1`, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", mapPostgresError(err, nil))
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return ids, nil
}

// DeleteUserData removes notifications, projects and processes owned by the
// users. Every table is attempted; the first failure is returned.
func (r *ProductRepository) DeleteUserData(ctx context.Context, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}

	var firstErr error
	for _, table := range userDataTables {
		result, err := r.db.pool.Exec(ctx,
			`DELETE FROM `+table+` WHERE user_id::text = ANY($1)`, userIDs,
		)
		if err != nil {
			err = fmt.Errorf("failed to delete %s: %w", table, mapPostgresError(err, nil))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		slog.DebugContext(ctx, "purged user data", logger.String("table", table), logger.RowsAffected(result.RowsAffected()))
	}
	return firstErr
}

// DeleteUsers removes the end-user accounts of an organization
func (r *ProductRepository) DeleteUsers(ctx context.Context, orgID int64) error {
	if _, err := r.db.pool.Exec(ctx, `DELETE FROM users WHERE organization_id = $1`, orgID); err != nil {
		return fmt.Errorf("failed to delete users: %w", mapPostgresError(err, nil))
	}
	return nil
}

// DeleteInstanceSettings removes the instance configuration of an organization
func (r *ProductRepository) DeleteInstanceSettings(ctx context.Context, orgID int64) error {
	if _, err := r.db.pool.Exec(ctx, `DELETE FROM instance_settings WHERE organization_id = $1`, orgID); err != nil {
		return fmt.Errorf("failed to delete instance settings: %w", mapPostgresError(err, nil))
	}
	return nil
}
