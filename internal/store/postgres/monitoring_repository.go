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
	"time"

	"github.com/opentrusty/licensehub/internal/license"
	"github.com/opentrusty/licensehub/internal/monitoring"
)

// MonitoringRepository implements monitoring.Repository
type MonitoringRepository struct {
	db *DB
}

// NewMonitoringRepository creates a new monitoring repository
func NewMonitoringRepository(db *DB) *MonitoringRepository {
	return &MonitoringRepository{db: db}
}

// ListServices returns service rows ordered by service name
func (r *MonitoringRepository) ListServices(ctx context.Context) ([]monitoring.ServiceStatus, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT id, service_name, status, uptime, latency, updated_at
		FROM monitoring_status
		ORDER BY service_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", mapPostgresError(err, nil))
	}
	defer rows.Close()

	var services []monitoring.ServiceStatus
	for rows.Next() {
		var s monitoring.ServiceStatus
		if err := rows.Scan(&s.ID, &s.ServiceName, &s.Status, &s.Uptime, &s.Latency, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

// ListInstances returns instance rows, most recently seen first
func (r *MonitoringRepository) ListInstances(ctx context.Context) ([]monitoring.InstanceHealth, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT id, organization_id, server_id, status, app_version, last_seen_at
		FROM instance_health
		ORDER BY last_seen_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list instances: %w", mapPostgresError(err, nil))
	}
	defer rows.Close()

	var instances []monitoring.InstanceHealth
	for rows.Next() {
		var h monitoring.InstanceHealth
		if err := rows.Scan(&h.ID, &h.OrganizationID, &h.ServerID, &h.Status, &h.AppVersion, &h.LastSeenAt); err != nil {
			return nil, fmt.Errorf("failed to scan instance: %w", err)
		}
		instances = append(instances, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list instances: %w", err)
	}
	return instances, nil
}

// CountOrganizations counts every organization
func (r *MonitoringRepository) CountOrganizations(ctx context.Context) (int, error) {
	return r.count(ctx, "organizations", `SELECT count(*) FROM organizations`)
}

// CountLicenses counts every license
func (r *MonitoringRepository) CountLicenses(ctx context.Context) (int, error) {
	return r.count(ctx, "licenses", `SELECT count(*) FROM licenses`)
}

// CountExpiringLicenses counts active licenses expiring strictly between from and to
func (r *MonitoringRepository) CountExpiringLicenses(ctx context.Context, from, to time.Time) (int, error) {
	return r.count(ctx, "expiring licenses", `
		SELECT count(*) FROM licenses
		WHERE status = $1 AND expiry_date > $2 AND expiry_date < $3
	`, license.StatusActive, from, to)
}

func (r *MonitoringRepository) count(ctx context.Context, what, sql string, args ...any) (int, error) {
	var n int
	if err := r.db.pool.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", what, mapPostgresError(err, nil))
	}
	return n, nil
}
