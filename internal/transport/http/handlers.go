// @title LicenseHub API
// @version 1.0.0
// @description License issuing, verification and customer provisioning service
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@opentrusty.org

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey SessionAuth
// @in header
// @name Authorization

package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/swaggo/swag"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/opentrusty/licensehub/internal/audit"
	"github.com/opentrusty/licensehub/internal/identity"
	"github.com/opentrusty/licensehub/internal/license"
	"github.com/opentrusty/licensehub/internal/monitoring"
	"github.com/opentrusty/licensehub/internal/observability/logger"
	"github.com/opentrusty/licensehub/internal/organization"
	"github.com/opentrusty/licensehub/internal/provisioning"
)

const maxBodyBytes = 1 << 20

// LicenseService verifies and lists licenses
type LicenseService interface {
	Verify(ctx context.Context, req license.VerifyRequest) (*license.Verification, error)
	Overview(ctx context.Context) (*license.Overview, error)
}

// OrganizationService reads organizations
type OrganizationService interface {
	List(ctx context.Context) ([]*organization.Organization, error)
	Detail(ctx context.Context, id int64) (*organization.Detail, error)
}

// ProvisioningService runs the organization lifecycle workflows
type ProvisioningService interface {
	Onboard(ctx context.Context, req provisioning.OnboardRequest, actor string) (*provisioning.OnboardResult, error)
	ChangePlan(ctx context.Context, orgID int64, plan string, actor string) (*provisioning.PlanChangeResult, error)
	Suspend(ctx context.Context, orgID int64, actor string) (*organization.Organization, error)
	Activate(ctx context.Context, orgID int64, actor string) (*organization.Organization, error)
	Delete(ctx context.Context, orgID int64, actor string) error
}

// MonitoringService reads health and dashboard data
type MonitoringService interface {
	Dashboard(ctx context.Context) (*monitoring.Dashboard, error)
	Services(ctx context.Context) ([]monitoring.ServiceStatus, error)
	Instances(ctx context.Context) ([]monitoring.InstanceHealth, error)
}

// AuditLog searches admin log entries
type AuditLog interface {
	Search(ctx context.Context, query string, limit int) ([]*audit.Entry, error)
}

// Services bundles the handler dependencies
type Services struct {
	Licenses      LicenseService
	Organizations OrganizationService
	Provisioning  ProvisioningService
	Monitoring    MonitoringService
	AuditLog      AuditLog
	Verifier      TokenVerifier
}

// Handler holds HTTP handlers and dependencies
type Handler struct {
	licenses      LicenseService
	organizations OrganizationService
	provisioning  ProvisioningService
	monitoring    MonitoringService
	auditLog      AuditLog
	verifier      TokenVerifier
	serviceName   string
}

// NewHandler creates a new HTTP handler
func NewHandler(s Services, serviceName string) *Handler {
	return &Handler{
		licenses:      s.Licenses,
		organizations: s.Organizations,
		provisioning:  s.Provisioning,
		monitoring:    s.Monitoring,
		auditLog:      s.AuditLog,
		verifier:      s.Verifier,
		serviceName:   serviceName,
	}
}

// RouterOptions tunes the router middleware stack
type RouterOptions struct {
	RequestTimeout time.Duration
	// TrustProxyHeaders rewrites the client address from True-Client-IP,
	// X-Real-IP or X-Forwarded-For. Leave off unless a proxy overwrites them.
	TrustProxyHeaders bool
}

// NewRouter creates a new HTTP router. Only the public verification endpoint
// is rate limited.
func NewRouter(h *Handler, rateLimiter *RateLimiter, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	if opts.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}
	r.Use(middleware.RequestID)
	r.Use(func(handler http.Handler) http.Handler {
		return otelhttp.NewHandler(handler, "http_request",
			otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		)
	})
	r.Use(LoggingMiddleware())
	r.Use(middleware.Recoverer)
	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}

	r.Get("/health", h.HealthCheck)
	r.Get("/swagger/doc.json", h.SwaggerDoc)

	r.Route("/api/v1", func(r chi.Router) {
		// Public
		r.With(RateLimitMiddleware(rateLimiter)).Post("/licenses/verify", h.VerifyLicense)

		// Platform admin console
		r.Route("/admin", func(r chi.Router) {
			r.Use(AdminMiddleware(h.verifier))

			r.Get("/dashboard", h.Dashboard)
			r.Get("/licenses", h.ListLicenses)
			r.Get("/logs", h.ListAdminLogs)
			r.Get("/health/services", h.ListServiceHealth)
			r.Get("/health/instances", h.ListInstanceHealth)

			r.Route("/organizations", func(r chi.Router) {
				r.Get("/", h.ListOrganizations)
				r.Post("/", h.CreateOrganization)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.GetOrganization)
					r.Delete("/", h.DeleteOrganization)
					r.Put("/plan", h.ChangePlan)
					r.Post("/suspend", h.SuspendOrganization)
					r.Post("/activate", h.ActivateOrganization)
				})
			})
		})
	})

	return r
}

// HealthCheck returns the health status
// @Summary Health Check
// @Description Checks if the service is up and running
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": h.serviceName,
	})
}

// SwaggerDoc serves the registered OpenAPI document
func (h *Handler) SwaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		respondError(w, http.StatusNotFound, "API documentation not available")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
}

func parseOrganizationID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// respondServiceError maps workflow and store errors onto HTTP responses.
// Validation and identity provider messages are returned verbatim.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var validation *provisioning.ValidationError
	var provider *identity.ProviderError

	switch {
	case errors.As(err, &validation):
		respondError(w, http.StatusBadRequest, validation.Message)
	case errors.Is(err, organization.ErrNotFound):
		respondError(w, http.StatusNotFound, "Organization not found")
	case errors.Is(err, provisioning.ErrLicenseNotFound):
		respondError(w, http.StatusNotFound, "No license found for organization")
	case errors.Is(err, organization.ErrDuplicateCode),
		errors.Is(err, license.ErrDuplicateKey),
		errors.Is(err, provisioning.ErrIdentifierExhausted):
		respondError(w, http.StatusConflict, err.Error())
	case errors.As(err, &provider):
		slog.WarnContext(r.Context(), "identity provider request failed",
			logger.RequestID(middleware.GetReqID(r.Context())),
			logger.Error(err),
		)
		respondError(w, http.StatusBadGateway, err.Error())
	default:
		slog.ErrorContext(r.Context(), "request failed",
			logger.RequestID(middleware.GetReqID(r.Context())),
			logger.Path(r.URL.Path),
			logger.Error(err),
		)
		var step *provisioning.StepError
		if errors.As(err, &step) {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
