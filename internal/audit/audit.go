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

package audit

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/opentrusty/licensehub/internal/observability/logger"
)

// Actions
const (
	ActionCreateOrganization   = "CREATE_ORGANIZATION"
	ActionUpdatePlan           = "UPDATE_PLAN"
	ActionSuspendOrganization  = "SUSPEND_ORGANIZATION"
	ActionActivateOrganization = "ACTIVATE_ORGANIZATION"
	ActionDeleteOrganization   = "DELETE_ORGANIZATION"
)

// Actors used when no admin identity is known
const (
	ActorSystem  = "System"
	ActorUnknown = "Unknown Admin"
)

// ErrInvalidEntry is returned by stores for entries without an action
var ErrInvalidEntry = errors.New("audit entry requires an action")

// Entry is one append-only admin log record
type Entry struct {
	ID             int64     `json:"id"`
	Action         string    `json:"action"`
	Details        string    `json:"details"`
	OrganizationID *int64    `json:"organization_id"`
	PerformedBy    string    `json:"performed_by"`
	CreatedAt      time.Time `json:"created_at"`
	// OrganizationName is filled on reads when the organization still exists
	OrganizationName *string `json:"organization_name,omitempty"`
}

// Recorder records admin actions. Record never fails its caller.
type Recorder interface {
	Record(ctx context.Context, e Entry)
}

// Repository defines the interface for admin log storage
type Repository interface {
	Append(ctx context.Context, e *Entry) error
	// Search returns entries newest first. An empty query matches everything;
	// otherwise action, details, actor and organization name are matched
	// case-insensitively.
	Search(ctx context.Context, query string, limit int) ([]*Entry, error)
}

// StoreRecorder writes entries to a Repository and mirrors them to the structured log
type StoreRecorder struct {
	repo Repository
}

// NewStoreRecorder creates a new audit recorder
func NewStoreRecorder(repo Repository) *StoreRecorder {
	return &StoreRecorder{repo: repo}
}

// Record appends an entry. Failures are logged and swallowed.
func (r *StoreRecorder) Record(ctx context.Context, e Entry) {
	if e.PerformedBy == "" {
		e.PerformedBy = ActorSystem
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	attrs := []any{
		logger.Component("audit"),
		slog.String("action", e.Action),
		logger.Actor(e.PerformedBy),
		slog.String("details", e.Details),
	}
	if e.OrganizationID != nil {
		attrs = append(attrs, logger.OrganizationID(*e.OrganizationID))
	}
	slog.InfoContext(ctx, "AUDIT_EVENT", attrs...)

	// the audit trail must survive a cancelled request
	if err := r.repo.Append(context.WithoutCancel(ctx), &e); err != nil {
		slog.ErrorContext(ctx, "failed to write admin log", append(attrs, logger.Error(err))...)
	}
}

// NopRecorder discards entries
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, Entry) {}

// ResolveActor picks the identity string stored as performed_by: the email
// when known, else the provider user id, else ActorUnknown.
func ResolveActor(email, userID string) string {
	if email = strings.TrimSpace(email); email != "" {
		return email
	}
	if userID = strings.TrimSpace(userID); userID != "" {
		return userID
	}
	return ActorUnknown
}

// OrgID is a helper for the optional organization reference
func OrgID(id int64) *int64 {
	return &id
}
