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
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/opentrusty/licensehub/internal/license"
	"github.com/opentrusty/licensehub/internal/organization"
)

// MaxDurationMonths bounds the term of a non-lifetime license issued at onboarding
const MaxDurationMonths = 120

// OnboardRequest describes a new customer organization
type OnboardRequest struct {
	Name       string `json:"name" validate:"required,max=200"`
	AdminEmail string `json:"admin_email" validate:"required,email"`
	Plan       string `json:"plan" validate:"required,oneof=Starter Pro Enterprise Lifetime"`
	// DurationMonths is ignored for Lifetime
	DurationMonths int `json:"duration_months" validate:"gte=0,lte=120"`
}

// OnboardResult reports the created organization and its license. The code
// and key are distributed to the customer by the operator.
type OnboardResult struct {
	Organization *organization.Organization `json:"organization"`
	License      *license.License           `json:"license"`
}

// PlanChangeResult is the state of an organization after a plan change
type PlanChangeResult struct {
	Organization *organization.Organization `json:"organization"`
	License      *license.License           `json:"license"`
	Changed      bool                       `json:"changed"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// report fields by their wire names
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// normalize trims free-text input in place
func (r *OnboardRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.AdminEmail = strings.TrimSpace(r.AdminEmail)
	r.Plan = strings.TrimSpace(r.Plan)
}

// Validate checks the request and returns a *ValidationError for the first problem
func (r *OnboardRequest) Validate() error {
	r.normalize()

	if err := getValidator().Struct(r); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return formatFieldError(fieldErrs[0])
		}
		return &ValidationError{Message: err.Error()}
	}

	if license.Plan(r.Plan) != license.PlanLifetime && r.DurationMonths < 1 {
		return &ValidationError{
			Field:   "duration_months",
			Message: fmt.Sprintf("duration_months must be between 1 and %d", MaxDurationMonths),
		}
	}
	return nil
}

var fieldErrorFormatters = map[string]func(field, param string) string{
	"required": func(field, _ string) string {
		return field + " is required"
	},
	"email": func(field, _ string) string {
		return field + " must be a valid email address"
	},
	"oneof": func(field, param string) string {
		return fmt.Sprintf("%s must be one of [%s]", field, param)
	},
	"max": func(field, param string) string {
		return fmt.Sprintf("%s must be at most %s characters", field, param)
	},
	"gte": func(field, _ string) string {
		return fmt.Sprintf("%s must be between 1 and %d", field, MaxDurationMonths)
	},
	"lte": func(field, _ string) string {
		return fmt.Sprintf("%s must be between 1 and %d", field, MaxDurationMonths)
	},
}

func formatFieldError(fe validator.FieldError) error {
	field := fe.Field()
	if format, ok := fieldErrorFormatters[fe.Tag()]; ok {
		return &ValidationError{Field: field, Message: format(field, fe.Param())}
	}
	return &ValidationError{Field: field, Message: fmt.Sprintf("%s failed %s check", field, fe.Tag())}
}

// parsePlan validates a target tier
func parsePlan(s string) (license.Plan, error) {
	p, err := license.ParsePlan(strings.TrimSpace(s))
	if err != nil {
		return "", &ValidationError{
			Field:   "plan",
			Message: "plan must be one of [Starter Pro Enterprise Lifetime]",
		}
	}
	return p, nil
}

// parseStatus validates a target organization status
func parseStatus(s string) (string, error) {
	switch s {
	case organization.StatusActive, organization.StatusSuspended:
		return s, nil
	}
	return "", &ValidationError{Field: "status", Message: "status must be one of [active suspended]"}
}
