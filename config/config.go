package config

import (
	"crypto/ed25519"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/tracknest/tracknest/pkg/crypto"
)

const VERSION = "0.9"

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Mail        MailConfig
	MailGateway MailGatewayConfig
	OAuth       OAuthConfig
	Security    SecurityConfig
	Tracing     TracingConfig

	// Origin is the canonical root URL of the instance, without a
	// trailing slash. Ticket URLs and canonical mention detection both
	// derive from it.
	Origin string

	// WebhooksBroker is the endpoint of the external delivery worker that
	// drains the webhook queue. Empty disables the nudge, queued rows
	// still accumulate.
	WebhooksBroker string

	// TrackerUpdatedOnAdminEdits controls whether tracker settings edits
	// (name, visibility, ACLs, labels) touch the tracker's updated
	// timestamp. Off means the timestamp reflects ticket activity only.
	TrackerUpdatedOnAdminEdits bool

	Environment string
	LogLevel    string
	Version     string
}

type ServerConfig struct {
	Port int
	Host string
	SSL  SSLConfig
}

type SSLConfig struct {
	Enabled  bool
	CertFile string
	KeyFile  string
}

type DatabaseConfig struct {
	// URL wins over the individual settings when set.
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the lib/pq connection string.
func (d *DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type MailConfig struct {
	// PostingDomain is the mail domain tickets receive mail on, e.g.
	// "todo.example.org". Ticket addresses have the form
	// ~owner/tracker/id@posting-domain.
	PostingDomain string

	// NotifyFrom is the From address of outgoing notifications. The
	// display name is replaced per message with the acting
	// participant's name.
	NotifyFrom string

	// SMTPUser is the envelope Sender of outgoing notifications.
	SMTPUser string
}

type MailGatewayConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Domain   string
	Username string
	Password string
}

type OAuthConfig struct {
	ClientID     string
	ClientSecret string
}

type SecurityConfig struct {
	// Ed25519 keypair for dump signing. The private key is required, the
	// public key is derived from it when not given explicitly.
	SigningKey       ed25519.PrivateKey
	VerifyKey        ed25519.PublicKey
	SigningKeyBase64 string

	// JWTSecret validates bearer tokens minted by the identity service.
	JWTSecret string

	// WebhookSecret signs webhook payloads. Falls back to the signing
	// key when not set, same key material either way.
	WebhookSecret string
}

type TracingConfig struct {
	Enabled             bool
	ServiceName         string
	SamplingProbability float64

	// "jaeger", "zipkin", "none"
	TraceExporter  string
	JaegerEndpoint string
	ZipkinEndpoint string

	// "prometheus" or "none"
	MetricsExporter string
	PrometheusPort  int
}

// LoadOptions contains options for loading configuration
type LoadOptions struct {
	EnvFile string // Optional environment file to load (e.g., ".env", ".env.test")
}

// Load loads the configuration with default options
func Load() (*Config, error) {
	// Try to load .env file but don't require it
	return LoadWithOptions(LoadOptions{EnvFile: ".env"})
}

// LoadWithOptions loads the configuration with the specified options
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "tracknest")
	v.SetDefault("DB_SSLMODE", "require")
	v.SetDefault("ENVIRONMENT", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("VERSION", VERSION)

	v.SetDefault("ORIGIN", "http://localhost:8080")
	v.SetDefault("TRACKER_UPDATED_ON_ADMIN_EDITS", false)

	// Mail defaults
	v.SetDefault("NOTIFY_FROM", "notifications@localhost")
	v.SetDefault("SMTP_USER", "tracknest")

	// Inbound mail gateway defaults
	v.SetDefault("MAILGW_ENABLED", false)
	v.SetDefault("MAILGW_HOST", "0.0.0.0")
	v.SetDefault("MAILGW_PORT", 2525)

	// Default tracing config
	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("TRACING_SERVICE_NAME", "tracknest-api")
	v.SetDefault("TRACING_SAMPLING_PROBABILITY", 0.1)
	v.SetDefault("TRACING_TRACE_EXPORTER", "none")
	v.SetDefault("TRACING_JAEGER_ENDPOINT", "http://localhost:14268/api/traces")
	v.SetDefault("TRACING_ZIPKIN_ENDPOINT", "http://localhost:9411/api/v2/spans")
	v.SetDefault("TRACING_METRICS_EXPORTER", "none")
	v.SetDefault("TRACING_PROMETHEUS_PORT", 9464)

	// Load environment file if specified
	if opts.EnvFile != "" {
		v.SetConfigName(opts.EnvFile)
		v.SetConfigType("env")

		currentPath, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("error getting current directory: %w", err)
		}

		v.AddConfigPath(currentPath)

		if err := v.ReadInConfig(); err != nil {
			// It's okay if config file doesn't exist
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	// Read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	signingKeyBase64 := v.GetString("SIGNING_KEY")
	if signingKeyBase64 == "" {
		return nil, fmt.Errorf("SIGNING_KEY is required")
	}
	signingKey, err := crypto.DecodePrivateKey(signingKeyBase64)
	if err != nil {
		return nil, fmt.Errorf("error decoding SIGNING_KEY: %w", err)
	}
	verifyKey := signingKey.Public().(ed25519.PublicKey)

	jwtSecret := v.GetString("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// Same fallback the signing key already covers
	webhookSecret := v.GetString("WEBHOOK_SECRET")
	if webhookSecret == "" {
		webhookSecret = signingKeyBase64
	}

	origin := strings.TrimSuffix(v.GetString("ORIGIN"), "/")
	originURL, err := url.Parse(origin)
	if err != nil || originURL.Scheme == "" || originURL.Host == "" {
		return nil, fmt.Errorf("ORIGIN must be an absolute URL, got %q", origin)
	}

	postingDomain := v.GetString("POSTING_DOMAIN")
	if postingDomain == "" {
		postingDomain = originURL.Hostname()
	}

	gatewayDomain := v.GetString("MAILGW_DOMAIN")
	if gatewayDomain == "" {
		gatewayDomain = postingDomain
	}

	config := &Config{
		Server: ServerConfig{
			Port: v.GetInt("SERVER_PORT"),
			Host: v.GetString("SERVER_HOST"),
			SSL: SSLConfig{
				Enabled:  v.GetBool("SSL_ENABLED"),
				CertFile: v.GetString("SSL_CERT_FILE"),
				KeyFile:  v.GetString("SSL_KEY_FILE"),
			},
		},
		Database: DatabaseConfig{
			URL:      v.GetString("DATABASE_URL"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Mail: MailConfig{
			PostingDomain: postingDomain,
			NotifyFrom:    v.GetString("NOTIFY_FROM"),
			SMTPUser:      v.GetString("SMTP_USER"),
		},
		MailGateway: MailGatewayConfig{
			Enabled:  v.GetBool("MAILGW_ENABLED"),
			Host:     v.GetString("MAILGW_HOST"),
			Port:     v.GetInt("MAILGW_PORT"),
			Domain:   gatewayDomain,
			Username: v.GetString("MAILGW_USERNAME"),
			Password: v.GetString("MAILGW_PASSWORD"),
		},
		OAuth: OAuthConfig{
			ClientID:     v.GetString("OAUTH_CLIENT_ID"),
			ClientSecret: v.GetString("OAUTH_CLIENT_SECRET"),
		},
		Security: SecurityConfig{
			SigningKey:       signingKey,
			VerifyKey:        verifyKey,
			SigningKeyBase64: signingKeyBase64,
			JWTSecret:        jwtSecret,
			WebhookSecret:    webhookSecret,
		},
		Tracing: TracingConfig{
			Enabled:             v.GetBool("TRACING_ENABLED"),
			ServiceName:         v.GetString("TRACING_SERVICE_NAME"),
			SamplingProbability: v.GetFloat64("TRACING_SAMPLING_PROBABILITY"),
			TraceExporter:       v.GetString("TRACING_TRACE_EXPORTER"),
			JaegerEndpoint:      v.GetString("TRACING_JAEGER_ENDPOINT"),
			ZipkinEndpoint:      v.GetString("TRACING_ZIPKIN_ENDPOINT"),
			MetricsExporter:     v.GetString("TRACING_METRICS_EXPORTER"),
			PrometheusPort:      v.GetInt("TRACING_PROMETHEUS_PORT"),
		},

		Origin:                     origin,
		WebhooksBroker:             v.GetString("WEBHOOKS_BROKER"),
		TrackerUpdatedOnAdminEdits: v.GetBool("TRACKER_UPDATED_ON_ADMIN_EDITS"),
		Environment:                v.GetString("ENVIRONMENT"),
		LogLevel:                   v.GetString("LOG_LEVEL"),
		Version:                    v.GetString("VERSION"),
	}

	return config, nil
}

// IsDevelopment returns true if the environment is set to development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
