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
	"net/http"
	"strconv"

	"github.com/opentrusty/licensehub/internal/audit"
	"github.com/opentrusty/licensehub/internal/monitoring"
)

const (
	defaultLogLimit = 100
	maxLogLimit     = 500
)

// Dashboard returns platform-wide counts and service health
// @Summary Dashboard
// @Tags Console
// @Produce json
// @Security SessionAuth
// @Success 200 {object} monitoring.Dashboard
// @Router /admin/dashboard [get]
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.monitoring.Dashboard(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, dashboard)
}

// ListAdminLogs returns admin log entries, newest first
// @Summary Admin logs
// @Description Optional q matches action, details, actor and organization name case-insensitively
// @Tags Console
// @Produce json
// @Security SessionAuth
// @Param q query string false "Search text"
// @Param limit query int false "Maximum entries (default 100, max 500)"
// @Success 200 {array} audit.Entry
// @Router /admin/logs [get]
func (h *Handler) ListAdminLogs(w http.ResponseWriter, r *http.Request) {
	limit := defaultLogLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxLogLimit)
	}

	entries, err := h.auditLog.Search(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if entries == nil {
		entries = []*audit.Entry{}
	}
	respondJSON(w, http.StatusOK, entries)
}

// ListServiceHealth returns the monitored platform services
// @Summary Service health
// @Tags Console
// @Produce json
// @Security SessionAuth
// @Success 200 {array} monitoring.ServiceStatus
// @Router /admin/health/services [get]
func (h *Handler) ListServiceHealth(w http.ResponseWriter, r *http.Request) {
	services, err := h.monitoring.Services(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if services == nil {
		services = []monitoring.ServiceStatus{}
	}
	respondJSON(w, http.StatusOK, services)
}

// ListInstanceHealth returns the last heartbeat of deployed customer instances
// @Summary Instance health
// @Tags Console
// @Produce json
// @Security SessionAuth
// @Success 200 {array} monitoring.InstanceHealth
// @Router /admin/health/instances [get]
func (h *Handler) ListInstanceHealth(w http.ResponseWriter, r *http.Request) {
	instances, err := h.monitoring.Instances(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if instances == nil {
		instances = []monitoring.InstanceHealth{}
	}
	respondJSON(w, http.StatusOK, instances)
}
