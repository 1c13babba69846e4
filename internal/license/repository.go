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
)

var (
	ErrNotFound     = errors.New("license not found")
	ErrDuplicateKey = errors.New("license key already exists")
)

// Repository defines the interface for license storage
type Repository interface {
	Create(ctx context.Context, l *License) error
	KeyExists(ctx context.Context, key string) (bool, error)
	// LatestForOrganization returns the most recently created license of an organization
	LatestForOrganization(ctx context.Context, orgID int64) (*License, error)
	UpdateEntitlement(ctx context.Context, id int64, e Entitlement) error
	// FindActiveByKey returns ErrNotFound unless a license with key exists and is stored as active
	FindActiveByKey(ctx context.Context, key string) (*KeyMatch, error)
	// MergeFeatures shallow-merges values into the features bag
	MergeFeatures(ctx context.Context, id int64, values map[string]any) error
	ListWithOrganizations(ctx context.Context) ([]*Listing, error)
}
