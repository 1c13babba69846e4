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

package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/opentrusty/licensehub/internal/license"
	"github.com/opentrusty/licensehub/internal/observability/logger"
)

// VerifyLicense checks a license key against an organization code
// @Summary Verify license
// @Description Called by deployed customer instances to validate their license
// @Tags Licenses
// @Accept json
// @Produce json
// @Param request body license.VerifyRequest true "License key and organization code"
// @Success 200 {object} license.Verification
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /licenses/verify [post]
func (h *Handler) VerifyLicense(w http.ResponseWriter, r *http.Request) {
	var req license.VerifyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.licenses.Verify(r.Context(), req)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, result)
	case errors.Is(err, license.ErrMissingFields):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, license.ErrInvalidLicense), errors.Is(err, license.ErrOrgCodeMismatch):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, license.ErrOrganizationInactive):
		respondError(w, http.StatusForbidden, err.Error())
	default:
		slog.ErrorContext(r.Context(), "license verification error",
			logger.RequestID(middleware.GetReqID(r.Context())),
			logger.Error(err),
		)
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// ListLicenses returns every license with its derived status and summary counts
// @Summary List licenses
// @Tags Licenses
// @Produce json
// @Security SessionAuth
// @Success 200 {object} license.Overview
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/licenses [get]
func (h *Handler) ListLicenses(w http.ResponseWriter, r *http.Request) {
	overview, err := h.licenses.Overview(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, overview)
}
