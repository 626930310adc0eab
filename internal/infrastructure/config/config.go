package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Session   SessionConfig
	Log       LogConfig
	HTTP      HTTPConfig
	Telemetry TelemetryConfig
	Storage   StorageConfig
	Mail      MailConfig
	Notify    NotifyConfig
	Slack     SlackConfig
	Pipedrive PipedriveConfig
	Kafka     KafkaConfig
	Scheduler SchedulerConfig
	Reminder  ReminderConfig
	Cron      CronConfig
	Printing  PrintingConfig
	Swagger   SwaggerConfig
	Geo       GeoConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// IsProduction reports whether the app runs with production safeguards.
func (a AppConfig) IsProduction() bool {
	return a.Env == "production"
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
	LogLevel        string
}

// RedisConfig holds Redis connection settings. Redis is optional; without it
// the catalog cache and token blacklist are disabled.
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// JWTConfig holds bearer token settings
type JWTConfig struct {
	Secret                string
	AccessTokenExpiration time.Duration
	Issuer                string
}

// SessionConfig holds the browser session cookie settings
type SessionConfig struct {
	Name     string
	Secret   string
	MaxAge   time.Duration
	Domain   string
	Path     string
	Secure   bool
	SameSite string // strict, lax, none
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout           time.Duration
	WriteTimeout          time.Duration
	IdleTimeout           time.Duration
	MaxHeaderBytes        int
	MaxBodySize           int64
	MaxUploadSize         int64
	AuthRateLimitEnabled  bool
	AuthRateLimitRequests int
	AuthRateLimitWindow   time.Duration
	CORSAllowOrigins      []string
	CORSAllowMethods      []string
	CORSAllowHeaders      []string
	TrustedProxies        []string
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled           bool
	CollectorEndpoint string
	SamplingRatio     float64
	ServiceName       string
	Insecure          bool
	MetricsEnabled    bool // OTLP push of metrics
	MetricsInterval   time.Duration
	PrometheusEnabled bool // /metrics scrape endpoint
	LogsEnabled       bool // zap -> OTLP log bridge
	DBTraceEnabled    bool
	DBLogFullSQL      bool
	DBSlowQueryThresh time.Duration
	ProfilingEnabled  bool
	PyroscopeURL      string
}

// StorageConfig holds S3-compatible object storage settings for exports
type StorageConfig struct {
	Enabled           bool
	Endpoint          string
	Region            string
	Bucket            string
	AccessKeyID       string
	SecretAccessKey   string
	UsePathStyle      bool
	PresignExpiration time.Duration
	Prefix            string
}

// MailConfig holds SES settings
type MailConfig struct {
	Enabled bool
	Region  string
	From    string
	// Fallback recipient when neither assignee nor region office has an email.
	DefaultTo string
}

// NotifyConfig holds SNS settings
type NotifyConfig struct {
	Enabled  bool
	Region   string
	TopicARN string
}

// SlackConfig holds the incoming webhook
type SlackConfig struct {
	Enabled    bool
	WebhookURL string
	Timeout    time.Duration
}

// PipedriveConfig holds Pipedrive API settings
type PipedriveConfig struct {
	Enabled  bool
	BaseURL  string
	APIToken string
	Timeout  time.Duration
}

// KafkaConfig holds domain event forwarding settings
type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
}

// SchedulerConfig holds the in-process daily reminder trigger
type SchedulerConfig struct {
	Enabled bool
	Hour    int
	Minute  int
	// CheckInterval is how often the trigger looks at the clock.
	CheckInterval time.Duration
	Timezone      string
}

// ReminderConfig controls which records are reminded about
type ReminderConfig struct {
	Window time.Duration
}

// CronConfig protects the externally triggered cron endpoints
type CronConfig struct {
	Secret string
}

// PrintingConfig holds headless Chrome settings for PDF output
type PrintingConfig struct {
	Enabled   bool
	RemoteURL string
	NoSandbox bool
	Timeout   time.Duration
}

// SwaggerConfig holds Swagger documentation endpoint configuration
type SwaggerConfig struct {
	Enabled     bool
	RequireAuth bool
	AllowedIPs  []string
}

// GeoConfig controls the region/area catalog cache
type GeoConfig struct {
	CatalogCacheTTL time.Duration
}

// Load loads configuration from a .env file, config.toml and environment
// variables. Priority (highest to lowest):
//  1. Environment variables with KIOSK_ prefix (e.g. KIOSK_DATABASE_PASSWORD)
//  2. .env entries (never override variables already set)
//  3. config.toml
//  4. Built-in defaults
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./backend")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("KIOSK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
			LogLevel:        v.GetString("database.log_level"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			Secret:                v.GetString("jwt.secret"),
			AccessTokenExpiration: v.GetDuration("jwt.access_token_expiration"),
			Issuer:                v.GetString("jwt.issuer"),
		},
		Session: SessionConfig{
			Name:     v.GetString("session.name"),
			Secret:   v.GetString("session.secret"),
			MaxAge:   v.GetDuration("session.max_age"),
			Domain:   v.GetString("session.domain"),
			Path:     v.GetString("session.path"),
			Secure:   v.GetBool("session.secure"),
			SameSite: v.GetString("session.same_site"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:           v.GetDuration("http.read_timeout"),
			WriteTimeout:          v.GetDuration("http.write_timeout"),
			IdleTimeout:           v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:        v.GetInt("http.max_header_bytes"),
			MaxBodySize:           v.GetInt64("http.max_body_size"),
			MaxUploadSize:         v.GetInt64("http.max_upload_size"),
			AuthRateLimitEnabled:  v.GetBool("http.auth_rate_limit_enabled"),
			AuthRateLimitRequests: v.GetInt("http.auth_rate_limit_requests"),
			AuthRateLimitWindow:   v.GetDuration("http.auth_rate_limit_window"),
			CORSAllowOrigins:      v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods:      v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders:      v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:        v.GetStringSlice("http.trusted_proxies"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),
			MetricsEnabled:    v.GetBool("telemetry.metrics_enabled"),
			MetricsInterval:   v.GetDuration("telemetry.metrics_interval"),
			PrometheusEnabled: v.GetBool("telemetry.prometheus_enabled"),
			LogsEnabled:       v.GetBool("telemetry.logs_enabled"),
			DBTraceEnabled:    v.GetBool("telemetry.db_trace_enabled"),
			DBLogFullSQL:      v.GetBool("telemetry.db_log_full_sql"),
			DBSlowQueryThresh: v.GetDuration("telemetry.db_slow_query_threshold"),
			ProfilingEnabled:  v.GetBool("telemetry.profiling_enabled"),
			PyroscopeURL:      v.GetString("telemetry.pyroscope_url"),
		},
		Storage: StorageConfig{
			Enabled:           v.GetBool("storage.enabled"),
			Endpoint:          v.GetString("storage.endpoint"),
			Region:            v.GetString("storage.region"),
			Bucket:            v.GetString("storage.bucket"),
			AccessKeyID:       v.GetString("storage.access_key_id"),
			SecretAccessKey:   v.GetString("storage.secret_access_key"),
			UsePathStyle:      v.GetBool("storage.use_path_style"),
			PresignExpiration: v.GetDuration("storage.presign_expiration"),
			Prefix:            v.GetString("storage.prefix"),
		},
		Mail: MailConfig{
			Enabled:   v.GetBool("mail.enabled"),
			Region:    v.GetString("mail.region"),
			From:      v.GetString("mail.from"),
			DefaultTo: v.GetString("mail.default_to"),
		},
		Notify: NotifyConfig{
			Enabled:  v.GetBool("notify.enabled"),
			Region:   v.GetString("notify.region"),
			TopicARN: v.GetString("notify.topic_arn"),
		},
		Slack: SlackConfig{
			Enabled:    v.GetBool("slack.enabled"),
			WebhookURL: v.GetString("slack.webhook_url"),
			Timeout:    v.GetDuration("slack.timeout"),
		},
		Pipedrive: PipedriveConfig{
			Enabled:  v.GetBool("pipedrive.enabled"),
			BaseURL:  v.GetString("pipedrive.base_url"),
			APIToken: v.GetString("pipedrive.api_token"),
			Timeout:  v.GetDuration("pipedrive.timeout"),
		},
		Kafka: KafkaConfig{
			Enabled: v.GetBool("kafka.enabled"),
			Brokers: v.GetStringSlice("kafka.brokers"),
			Topic:   v.GetString("kafka.topic"),
		},
		Scheduler: SchedulerConfig{
			Enabled:       v.GetBool("scheduler.enabled"),
			Hour:          v.GetInt("scheduler.hour"),
			Minute:        v.GetInt("scheduler.minute"),
			CheckInterval: v.GetDuration("scheduler.check_interval"),
			Timezone:      v.GetString("scheduler.timezone"),
		},
		Reminder: ReminderConfig{
			Window: v.GetDuration("reminder.window"),
		},
		Cron: CronConfig{
			Secret: v.GetString("cron.secret"),
		},
		Printing: PrintingConfig{
			Enabled:   v.GetBool("printing.enabled"),
			RemoteURL: v.GetString("printing.remote_url"),
			NoSandbox: v.GetBool("printing.no_sandbox"),
			Timeout:   v.GetDuration("printing.timeout"),
		},
		Swagger: SwaggerConfig{
			Enabled:     v.GetBool("swagger.enabled"),
			RequireAuth: v.GetBool("swagger.require_auth"),
			AllowedIPs:  v.GetStringSlice("swagger.allowed_ips"),
		},
		Geo: GeoConfig{
			CatalogCacheTTL: v.GetDuration("geo.catalog_cache_ttl"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

const (
	devJWTSecret     = "dev-jwt-secret-change-me"
	devSessionSecret = "dev-session-secret-change-me"
)

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "kiosk-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}

	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "kiosk"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.Database.LogLevel == "" {
		cfg.Database.LogLevel = "warn"
	}

	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}

	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = devJWTSecret
	}
	if cfg.JWT.AccessTokenExpiration == 0 {
		cfg.JWT.AccessTokenExpiration = 12 * time.Hour
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "kiosk-backend"
	}

	if cfg.Session.Name == "" {
		cfg.Session.Name = "kiosk_session"
	}
	if cfg.Session.Secret == "" {
		cfg.Session.Secret = devSessionSecret
	}
	if cfg.Session.MaxAge == 0 {
		cfg.Session.MaxAge = 7 * 24 * time.Hour
	}
	if cfg.Session.Path == "" {
		cfg.Session.Path = "/"
	}
	if cfg.Session.SameSite == "" {
		cfg.Session.SameSite = "lax"
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}

	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 60 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 20 << 20
	}
	if cfg.HTTP.MaxUploadSize == 0 {
		cfg.HTTP.MaxUploadSize = 50 << 20
	}
	if cfg.HTTP.AuthRateLimitRequests == 0 {
		cfg.HTTP.AuthRateLimitRequests = 5
	}
	if cfg.HTTP.AuthRateLimitWindow == 0 {
		cfg.HTTP.AuthRateLimitWindow = time.Minute
	}
	// CORS origins have no wildcard default; an empty list allows none.
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "Authorization", "X-Request-ID", "X-Tenant-ID"}
	}

	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = cfg.App.Name
	}
	if cfg.Telemetry.MetricsInterval == 0 {
		cfg.Telemetry.MetricsInterval = 60 * time.Second
	}
	if cfg.Telemetry.DBSlowQueryThresh == 0 {
		cfg.Telemetry.DBSlowQueryThresh = 200 * time.Millisecond
	}
	if cfg.Telemetry.PyroscopeURL == "" {
		cfg.Telemetry.PyroscopeURL = "http://localhost:4040"
	}

	if cfg.Storage.Region == "" {
		cfg.Storage.Region = "ap-northeast-1"
	}
	if cfg.Storage.Bucket == "" {
		cfg.Storage.Bucket = "kiosk-exports"
	}
	if cfg.Storage.PresignExpiration == 0 {
		cfg.Storage.PresignExpiration = 15 * time.Minute
	}
	if cfg.Storage.Prefix == "" {
		cfg.Storage.Prefix = "exports"
	}

	if cfg.Mail.Region == "" {
		cfg.Mail.Region = "ap-northeast-1"
	}
	if cfg.Notify.Region == "" {
		cfg.Notify.Region = "ap-northeast-1"
	}
	if cfg.Slack.Timeout == 0 {
		cfg.Slack.Timeout = 10 * time.Second
	}
	if cfg.Pipedrive.BaseURL == "" {
		cfg.Pipedrive.BaseURL = "https://api.pipedrive.com/v1"
	}
	if cfg.Pipedrive.Timeout == 0 {
		cfg.Pipedrive.Timeout = 15 * time.Second
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "kiosk.domain-events"
	}

	if cfg.Scheduler.Hour == 0 && cfg.Scheduler.Minute == 0 {
		cfg.Scheduler.Hour = 8
	}
	if cfg.Scheduler.CheckInterval == 0 {
		cfg.Scheduler.CheckInterval = time.Minute
	}
	if cfg.Scheduler.Timezone == "" {
		cfg.Scheduler.Timezone = "Asia/Tokyo"
	}
	if cfg.Reminder.Window == 0 {
		cfg.Reminder.Window = 72 * time.Hour
	}
	if cfg.Printing.Timeout == 0 {
		cfg.Printing.Timeout = 30 * time.Second
	}
	if cfg.Geo.CatalogCacheTTL == 0 {
		cfg.Geo.CatalogCacheTTL = 10 * time.Minute
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}
	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}
	if c.Scheduler.Hour < 0 || c.Scheduler.Hour > 23 || c.Scheduler.Minute < 0 || c.Scheduler.Minute > 59 {
		return fmt.Errorf("scheduler.hour/minute out of range: %02d:%02d", c.Scheduler.Hour, c.Scheduler.Minute)
	}
	if c.Storage.Enabled && c.Storage.Bucket == "" {
		return fmt.Errorf("storage.bucket is required when storage is enabled")
	}
	if c.Mail.Enabled && c.Mail.From == "" {
		return fmt.Errorf("mail.from is required when mail is enabled")
	}
	if c.Notify.Enabled && c.Notify.TopicARN == "" {
		return fmt.Errorf("notify.topic_arn is required when notify is enabled")
	}
	if c.Slack.Enabled && c.Slack.WebhookURL == "" {
		return fmt.Errorf("slack.webhook_url is required when slack is enabled")
	}
	if c.Pipedrive.Enabled && c.Pipedrive.APIToken == "" {
		return fmt.Errorf("pipedrive.api_token is required when pipedrive is enabled")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers is required when kafka is enabled")
	}

	if c.App.IsProduction() {
		if c.JWT.Secret == devJWTSecret || len(c.JWT.Secret) < 32 {
			return fmt.Errorf("jwt.secret must be set to at least 32 characters in production")
		}
		if c.Session.Secret == devSessionSecret || len(c.Session.Secret) < 32 {
			return fmt.Errorf("session.secret must be set to at least 32 characters in production")
		}
		if c.Cron.Secret == "" {
			return fmt.Errorf("cron.secret is required in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if !c.Session.Secure {
			return fmt.Errorf("session.secure must be true in production")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
		if c.Swagger.Enabled && !c.Swagger.RequireAuth && len(c.Swagger.AllowedIPs) == 0 {
			return fmt.Errorf("swagger endpoint must be disabled, require authentication, or have IP restriction in production")
		}
		if c.Telemetry.DBLogFullSQL {
			return fmt.Errorf("telemetry.db_log_full_sql must be false in production")
		}
	}

	return nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
