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
	"errors"

	"github.com/opentrusty/licensehub/internal/license"
)

var (
	// ErrLicenseNotFound is returned when an organization has no license to update
	ErrLicenseNotFound = license.ErrNotFound
	// ErrIdentifierExhausted is returned when no unused code or key was found within the attempt budget
	ErrIdentifierExhausted = errors.New("could not generate a unique identifier")
)

// ValidationError rejects input before any side effect
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StepError reports the workflow step that failed. Its message is the
// underlying cause unchanged.
type StepError struct {
	Operation string
	Step      string
	Err       error
}

func (e *StepError) Error() string {
	return e.Err.Error()
}

func (e *StepError) Unwrap() error {
	return e.Err
}
