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

	"github.com/cenkalti/backoff/v5"
)

var errIdentifierTaken = errors.New("identifier already in use")

// uniqueCode generates organization codes until one is unused
func (s *Service) uniqueCode(ctx context.Context, name string) (string, error) {
	generate := func() (string, error) {
		return s.newCode(name), nil
	}
	return s.uniqueIdentifier(ctx, "organization code", generate, s.orgs.CodeExists)
}

// uniqueKey generates license keys until one is unused
func (s *Service) uniqueKey(ctx context.Context) (string, error) {
	return s.uniqueIdentifier(ctx, "license key", s.newKey, s.licenses.KeyExists)
}

func (s *Service) uniqueIdentifier(
	ctx context.Context,
	kind string,
	generate func() (string, error),
	exists func(context.Context, string) (bool, error),
) (string, error) {
	attempts := 0
	id, err := backoff.Retry(ctx, func() (string, error) {
		attempts++
		candidate, err := generate()
		if err != nil {
			return "", backoff.Permanent(err)
		}
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", backoff.Permanent(fmt.Errorf("failed to check %s: %w", kind, err))
		}
		if taken {
			return "", errIdentifierTaken
		}
		return candidate, nil
	},
		backoff.WithBackOff(&backoff.ZeroBackOff{}),
		backoff.WithMaxTries(s.maxIDAttempts),
	)
	if errors.Is(err, errIdentifierTaken) {
		return "", fmt.Errorf("%w: %s still taken after %d attempts", ErrIdentifierExhausted, kind, attempts)
	}
	if err != nil {
		return "", err
	}
	return id, nil
}
