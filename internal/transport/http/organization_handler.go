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
	"context"
	"net/http"

	"github.com/opentrusty/licensehub/internal/organization"
	"github.com/opentrusty/licensehub/internal/provisioning"
)

// ChangePlanRequest selects the target tier of an organization
type ChangePlanRequest struct {
	Plan string `json:"plan"`
}

// ListOrganizations returns all organizations, newest first
// @Summary List organizations
// @Tags Organizations
// @Produce json
// @Security SessionAuth
// @Success 200 {array} organization.Organization
// @Router /admin/organizations [get]
func (h *Handler) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.organizations.List(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if orgs == nil {
		orgs = []*organization.Organization{}
	}
	respondJSON(w, http.StatusOK, orgs)
}

// CreateOrganization onboards a new customer organization and issues its license
// @Summary Onboard organization
// @Description Creates the organization in the identity provider and the admin store and issues its first license
// @Tags Organizations
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param request body provisioning.OnboardRequest true "Organization details"
// @Success 201 {object} provisioning.OnboardResult
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /admin/organizations [post]
func (h *Handler) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	var req provisioning.OnboardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.provisioning.Onboard(r.Context(), req, actorFrom(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

// GetOrganization returns an organization with its latest license, seat usage and plan features
// @Summary Organization detail
// @Tags Organizations
// @Produce json
// @Security SessionAuth
// @Param id path int true "Organization ID"
// @Success 200 {object} organization.Detail
// @Failure 404 {object} map[string]string
// @Router /admin/organizations/{id} [get]
func (h *Handler) GetOrganization(w http.ResponseWriter, r *http.Request) {
	id, ok := parseOrganizationID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid organization id")
		return
	}

	detail, err := h.organizations.Detail(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

// ChangePlan moves an organization to another tier
// @Summary Change plan
// @Tags Organizations
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path int true "Organization ID"
// @Param request body ChangePlanRequest true "Target plan"
// @Success 200 {object} provisioning.PlanChangeResult
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/organizations/{id}/plan [put]
func (h *Handler) ChangePlan(w http.ResponseWriter, r *http.Request) {
	id, ok := parseOrganizationID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid organization id")
		return
	}
	var req ChangePlanRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.provisioning.ChangePlan(r.Context(), id, req.Plan, actorFrom(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// SuspendOrganization blocks license verification for an organization
// @Summary Suspend organization
// @Tags Organizations
// @Produce json
// @Security SessionAuth
// @Param id path int true "Organization ID"
// @Success 200 {object} organization.Organization
// @Router /admin/organizations/{id}/suspend [post]
func (h *Handler) SuspendOrganization(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.provisioning.Suspend)
}

// ActivateOrganization re-enables a suspended organization
// @Summary Activate organization
// @Tags Organizations
// @Produce json
// @Security SessionAuth
// @Param id path int true "Organization ID"
// @Success 200 {object} organization.Organization
// @Router /admin/organizations/{id}/activate [post]
func (h *Handler) ActivateOrganization(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.provisioning.Activate)
}

type statusFunc = func(ctx context.Context, orgID int64, actor string) (*organization.Organization, error)

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request, apply statusFunc) {
	id, ok := parseOrganizationID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid organization id")
		return
	}

	org, err := apply(r.Context(), id, actorFrom(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, org)
}

// DeleteOrganization removes an organization from the identity provider and both stores
// @Summary Delete organization
// @Description Irreversible. Aborts without local changes when the identity provider deletion fails.
// @Tags Organizations
// @Produce json
// @Security SessionAuth
// @Param id path int true "Organization ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /admin/organizations/{id} [delete]
func (h *Handler) DeleteOrganization(w http.ResponseWriter, r *http.Request) {
	id, ok := parseOrganizationID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid organization id")
		return
	}

	if err := h.provisioning.Delete(r.Context(), id, actorFrom(r.Context())); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "deleted",
	})
}
