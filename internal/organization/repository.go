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

	"github.com/opentrusty/licensehub/internal/license"
)

var (
	ErrNotFound      = errors.New("organization not found")
	ErrDuplicateCode = errors.New("organization code already exists")
)

// Repository defines the interface for organization storage
type Repository interface {
	Create(ctx context.Context, org *Organization) error
	GetByID(ctx context.Context, id int64) (*Organization, error)
	List(ctx context.Context) ([]*Organization, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	UpdatePlan(ctx context.Context, id int64, plan license.Plan) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
	// DeleteWithLicenses removes the licenses of the organization and then the
	// organization itself in one transaction.
	DeleteWithLicenses(ctx context.Context, id int64) error
}
