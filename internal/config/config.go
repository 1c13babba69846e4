package config

import (
	"errors"
	"time"
)

// Config holds all server configuration. Values come from flags or the
// environment through kong; Validate covers the checks tags cannot express.
type Config struct {
	Server        ServerConfig        `embed:"" prefix:"server-"`
	Database      DatabaseConfig      `embed:"" prefix:"db-"`
	Identity      IdentityConfig      `embed:""`
	Provisioning  ProvisioningConfig  `embed:"" prefix:"provisioning-"`
	Observability ObservabilityConfig `embed:""`
	RateLimit     RateLimitConfig     `embed:"" prefix:"ratelimit-"`
}

// RateLimitConfig holds rate limiting configuration for the public verification endpoint
type RateLimitConfig struct {
	RequestsPerSecond float64 `name:"rps" help:"Verification requests per second per client" default:"5" env:"RATELIMIT_RPS"`
	Burst             int     `help:"Verification burst per client" default:"10" env:"RATELIMIT_BURST"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `help:"HTTP listen host" default:"0.0.0.0" env:"SERVER_HOST"`
	Port            string        `help:"HTTP listen port" default:"8080" env:"SERVER_PORT"`
	ReadTimeout     time.Duration `help:"HTTP read timeout" default:"15s" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `help:"HTTP write timeout" default:"30s" env:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `help:"HTTP idle timeout" default:"60s" env:"SERVER_IDLE_TIMEOUT"`
	RequestTimeout  time.Duration `help:"Per-request handler timeout" default:"25s" env:"SERVER_REQUEST_TIMEOUT"`
	ShutdownTimeout time.Duration `help:"Graceful shutdown timeout" default:"30s" env:"SERVER_SHUTDOWN_TIMEOUT"`
	// TrustProxyHeaders keys clients on X-Forwarded-For/X-Real-IP. Enable only behind a proxy that overwrites them.
	TrustProxyHeaders bool `help:"Derive client addresses from proxy headers" default:"false" env:"SERVER_TRUST_PROXY_HEADERS"`
}

// DatabaseConfig holds connection settings for the admin and main stores
type DatabaseConfig struct {
	AdminURL string `name:"admin-url" help:"Admin store connection URL" env:"ADMIN_DB_URL"`
	// MainURL is optional. Without it seat counts and the product-data purge are disabled.
	MainURL  string `name:"main-url" help:"Product store connection URL" env:"MAIN_DB_URL"`
	MaxConns int    `help:"Maximum pool connections" default:"10" env:"DB_MAX_CONNS"`
	MinConns int    `help:"Minimum pool connections" default:"1" env:"DB_MIN_CONNS"`
}

// IdentityConfig holds identity provider settings
type IdentityConfig struct {
	SecretKey    string        `name:"clerk-secret-key" help:"Clerk secret key" env:"CLERK_SECRET_KEY"`
	JWTPublicKey string        `name:"clerk-jwt-public-key" help:"PEM key verifying admin session tokens" env:"CLERK_JWT_PUBLIC_KEY"`
	AdminClaim   string        `name:"admin-claim" help:"Session claim marking platform admins" default:"platform_admin" env:"ADMIN_CLAIM"`
	TokenLeeway  time.Duration `name:"session-token-leeway" help:"Clock skew allowed on session tokens" default:"5s" env:"SESSION_TOKEN_LEEWAY"`
}

// ProvisioningConfig holds workflow tuning
type ProvisioningConfig struct {
	MaxIDAttempts int `name:"max-id-attempts" help:"Attempts to find an unused org code or license key" default:"5" env:"PROVISIONING_MAX_ID_ATTEMPTS"`
}

// ObservabilityConfig holds logging and telemetry configuration
type ObservabilityConfig struct {
	LogLevel       string  `name:"log-level" help:"Log level" default:"info" enum:"debug,info,warn,warning,error" env:"LOG_LEVEL"`
	LogFormat      string  `name:"log-format" help:"Log format" default:"json" enum:"json,text" env:"LOG_FORMAT"`
	OTELEnabled    bool    `name:"otel-enabled" help:"Export traces and metrics over OTLP" default:"false" env:"OTEL_ENABLED"`
	ServiceName    string  `name:"otel-service-name" help:"Reported service name" default:"licensehub" env:"OTEL_SERVICE_NAME"`
	ServiceVersion string  `name:"otel-service-version" help:"Reported service version" default:"0.1.0" env:"OTEL_SERVICE_VERSION"`
	Environment    string  `name:"deployment-environment" help:"Reported deployment environment" default:"production" env:"DEPLOYMENT_ENVIRONMENT"`
	SamplingRate   float64 `name:"trace-sampling-rate" help:"Ratio of root traces sampled" default:"1" env:"TRACE_SAMPLING_RATE"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []error
	if c.Database.AdminURL == "" {
		errs = append(errs, errors.New("ADMIN_DB_URL is required"))
	}
	if c.Identity.SecretKey == "" {
		errs = append(errs, errors.New("CLERK_SECRET_KEY is required"))
	}
	if c.Identity.JWTPublicKey == "" {
		errs = append(errs, errors.New("CLERK_JWT_PUBLIC_KEY is required"))
	}
	if c.Identity.AdminClaim == "" {
		errs = append(errs, errors.New("ADMIN_CLAIM must not be empty"))
	}
	if c.Database.MaxConns < 1 {
		errs = append(errs, errors.New("DB_MAX_CONNS must be at least 1"))
	}
	if c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
		errs = append(errs, errors.New("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS"))
	}
	if c.Provisioning.MaxIDAttempts < 1 {
		errs = append(errs, errors.New("PROVISIONING_MAX_ID_ATTEMPTS must be at least 1"))
	}
	if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst < 1 {
		errs = append(errs, errors.New("RATELIMIT_RPS and RATELIMIT_BURST must be positive"))
	}
	if c.Observability.SamplingRate <= 0 || c.Observability.SamplingRate > 1 {
		errs = append(errs, errors.New("TRACE_SAMPLING_RATE must be greater than 0 and at most 1"))
	}
	return errors.Join(errs...)
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}
