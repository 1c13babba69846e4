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
	"strings"

	"github.com/opentrusty/licensehub/internal/audit"
)

// DefaultAdminLogLimit bounds admin log reads when no limit is given
const DefaultAdminLogLimit = 100

// AdminLogRepository implements audit.Repository
type AdminLogRepository struct {
	db *DB
}

// NewAdminLogRepository creates a new admin log repository
func NewAdminLogRepository(db *DB) *AdminLogRepository {
	return &AdminLogRepository{db: db}
}

// Append inserts an entry and fills its id and creation time. Entries without
// an action are rejected with audit.ErrInvalidEntry.
func (r *AdminLogRepository) Append(ctx context.Context, e *audit.Entry) error {
	if strings.TrimSpace(e.Action) == "" {
		return audit.ErrInvalidEntry
	}

	err := r.db.pool.QueryRow(ctx, `
		INSERT INTO admin_logs (action, details, organization_id, performed_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, e.Action, e.Details, e.OrganizationID, e.PerformedBy).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert admin log: %w", mapPostgresError(err, nil))
	}
	return nil
}

// Search returns entries newest first with the name of their organization
// when it still exists
func (r *AdminLogRepository) Search(ctx context.Context, query string, limit int) ([]*audit.Entry, error) {
	if limit <= 0 {
		limit = DefaultAdminLogLimit
	}

	sql := `
		SELECT a.id, a.action, a.details, a.organization_id, a.performed_by, a.created_at, o.name
		FROM admin_logs a
		LEFT JOIN organizations o ON o.id = a.organization_id
	`
	args := []any{limit}
	if q := strings.TrimSpace(query); q != "" {
		sql += `
		WHERE a.action ILIKE $2 OR a.details ILIKE $2 OR a.performed_by ILIKE $2 OR o.name ILIKE $2
		`
		args = append(args, "%"+escapeLike(q)+"%")
	}
	sql += ` ORDER BY a.created_at DESC, a.id DESC LIMIT $1`

	rows, err := r.db.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search admin logs: %w", mapPostgresError(err, nil))
	}
	defer rows.Close()

	var entries []*audit.Entry
	for rows.Next() {
		var e audit.Entry
		if err := rows.Scan(
			&e.ID, &e.Action, &e.Details, &e.OrganizationID, &e.PerformedBy, &e.CreatedAt, &e.OrganizationName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan admin log: %w", err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to search admin logs: %w", err)
	}
	return entries, nil
}

// escapeLike escapes LIKE wildcards so the query matches literally
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
