package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/opentrusty/licensehub/internal/audit"
	"github.com/opentrusty/licensehub/internal/config"
	"github.com/opentrusty/licensehub/internal/identity"
	"github.com/opentrusty/licensehub/internal/license"
	"github.com/opentrusty/licensehub/internal/monitoring"
	"github.com/opentrusty/licensehub/internal/observability/logger"
	"github.com/opentrusty/licensehub/internal/observability/metrics"
	"github.com/opentrusty/licensehub/internal/observability/tracing"
	"github.com/opentrusty/licensehub/internal/organization"
	"github.com/opentrusty/licensehub/internal/provisioning"
	"github.com/opentrusty/licensehub/internal/session"
	"github.com/opentrusty/licensehub/internal/store/postgres"
	transportHTTP "github.com/opentrusty/licensehub/internal/transport/http"
)

type ServeCmd struct {
	Migrate bool          `help:"Apply admin store migrations before serving" env:"MIGRATE_ON_START"`
	Config  config.Config `embed:""`
}

func (s *ServeCmd) Run(ctx context.Context, globals *Globals) error {
	cfg := &s.Config
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.InitLogger(logger.Config{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: cfg.Observability.ServiceName,
	})
	slog.InfoContext(ctx, "starting licensehub",
		logger.String("version", globals.Version),
		logger.String("addr", cfg.Server.Addr()),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracer, err := tracing.New(ctx, tracing.Config{
		Enabled:        cfg.Observability.OTELEnabled,
		ServiceName:    cfg.Observability.ServiceName,
		ServiceVersion: cfg.Observability.ServiceVersion,
		Environment:    cfg.Observability.Environment,
		SamplingRate:   cfg.Observability.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}

	meter, err := metrics.New(ctx, metrics.Config{
		Enabled:        cfg.Observability.OTELEnabled,
		ServiceName:    cfg.Observability.ServiceName,
		ServiceVersion: cfg.Observability.ServiceVersion,
		Environment:    cfg.Observability.Environment,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	recorder, err := metrics.NewRecorder(meter)
	if err != nil {
		return fmt.Errorf("failed to create metric instruments: %w", err)
	}

	adminDB, err := postgres.New(ctx, postgres.Config{
		URL:      cfg.Database.AdminURL,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to admin store: %w", err)
	}
	defer adminDB.Close()

	if s.Migrate {
		if err := adminDB.Migrate(ctx); err != nil {
			return err
		}
	}

	// The product store is optional. Interfaces stay nil when it is absent.
	var (
		seats   organization.SeatCounter
		product provisioning.ProductStore
	)
	if cfg.Database.MainURL != "" {
		mainDB, err := postgres.New(ctx, postgres.Config{
			URL:      cfg.Database.MainURL,
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to main store: %w", err)
		}
		defer mainDB.Close()

		productRepo := postgres.NewProductRepository(mainDB)
		seats = productRepo
		product = productRepo
	} else {
		slog.WarnContext(ctx, "MAIN_DB_URL not set, seat counts and product data purge are disabled")
	}

	orgRepo := postgres.NewOrganizationRepository(adminDB)
	licenseRepo := postgres.NewLicenseRepository(adminDB)
	adminLogRepo := postgres.NewAdminLogRepository(adminDB)
	monitoringRepo := postgres.NewMonitoringRepository(adminDB)

	verifier, err := session.NewVerifier(
		cfg.Identity.JWTPublicKey,
		cfg.Identity.AdminClaim,
		cfg.Identity.TokenLeeway,
	)
	if err != nil {
		return fmt.Errorf("failed to load session verification key: %w", err)
	}
	directory := identity.NewClerkDirectory(cfg.Identity.SecretKey)

	licenseService := license.NewService(licenseRepo, license.WithObserver(recorder))
	organizationService := organization.NewService(orgRepo, licenseRepo, seats)
	monitoringService := monitoring.NewService(monitoringRepo)
	provisioningService := provisioning.NewService(
		orgRepo,
		licenseRepo,
		directory,
		product,
		audit.NewStoreRecorder(adminLogRepo),
		provisioning.WithObserver(recorder),
		provisioning.WithTracer(tracer.GetTracer()),
		provisioning.WithMaxIDAttempts(cfg.Provisioning.MaxIDAttempts),
	)

	rateLimiter := transportHTTP.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	defer rateLimiter.Stop()

	handler := transportHTTP.NewHandler(transportHTTP.Services{
		Licenses:      licenseService,
		Organizations: organizationService,
		Provisioning:  provisioningService,
		Monitoring:    monitoringService,
		AuditLog:      adminLogRepo,
		Verifier:      verifier,
	}, cfg.Observability.ServiceName)
	router := transportHTTP.NewRouter(handler, rateLimiter, transportHTTP.RouterOptions{
		RequestTimeout:    cfg.Server.RequestTimeout,
		TrustProxyHeaders: cfg.Server.TrustProxyHeaders,
	})

	server := configureHTTPServer(cfg.Server, router)

	errCh := make(chan error, 1)
	go func() {
		slog.InfoContext(ctx, "http server listening", logger.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
	case <-ctx.Done():
	}

	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", logger.Error(err))
	}
	if err := meter.Shutdown(shutdownCtx); err != nil {
		slog.Error("metrics shutdown error", logger.Error(err))
	}
	if err := tracer.Shutdown(shutdownCtx); err != nil {
		slog.Error("tracer shutdown error", logger.Error(err))
	}

	slog.Info("server stopped")
	return nil
}
