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
	"time"
)

// StatusOperational is the only healthy service status
const StatusOperational = "operational"

// ServiceStatus is one row of the platform status board
type ServiceStatus struct {
	ID          int64     `json:"id"`
	ServiceName string    `json:"service_name"`
	Status      string    `json:"status"`
	Uptime      string    `json:"uptime"`
	Latency     string    `json:"latency"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Operational reports whether the service is healthy
func (s ServiceStatus) Operational() bool {
	return s.Status == StatusOperational
}

// InstanceHealth is the last heartbeat of a deployed customer instance
type InstanceHealth struct {
	ID             int64     `json:"id"`
	OrganizationID *int64    `json:"organization_id"`
	ServerID       string    `json:"server_id"`
	Status         string    `json:"status"`
	AppVersion     string    `json:"app_version"`
	LastSeenAt     time.Time `json:"last_seen_at"`
}

// Repository defines the interface for monitoring and dashboard queries
type Repository interface {
	// ListServices returns service rows ordered by service name
	ListServices(ctx context.Context) ([]ServiceStatus, error)
	// ListInstances returns instance rows, most recently seen first
	ListInstances(ctx context.Context) ([]InstanceHealth, error)
	CountOrganizations(ctx context.Context) (int, error)
	CountLicenses(ctx context.Context) (int, error)
	// CountExpiringLicenses counts active licenses expiring strictly between from and to
	CountExpiringLicenses(ctx context.Context, from, to time.Time) (int, error)
}
