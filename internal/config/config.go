package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	LLM    LLMConfig
	CORS   CORSConfig
	Audit  AuditConfig
	S3     S3Config
	DB     DBConfig
	Sentry SentryConfig
	Log    LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// IsProduction reports whether the server runs in production mode.
func (s *ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

// LLMConfig holds settings for the language model provider.
type LLMConfig struct {
	Provider        string `mapstructure:"provider"`
	BaseURL         string `mapstructure:"base_url"`
	Model           string `mapstructure:"model"`
	APIKey          string `mapstructure:"api_key"`
	TimeoutSecs     int    `mapstructure:"timeout_secs"`
	ValidateOnStart bool   `mapstructure:"validate_on_start"`
}

// Timeout returns the HTTP timeout for model calls, defaulting to 120s.
func (l *LLMConfig) Timeout() time.Duration {
	if l.TimeoutSecs <= 0 {
		return 120 * time.Second
	}
	return time.Duration(l.TimeoutSecs) * time.Second
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AuditConfig selects where ingested prompts are recorded.
type AuditConfig struct {
	Sink     string `mapstructure:"sink"`
	Path     string `mapstructure:"path"`
	S3Prefix string `mapstructure:"s3_prefix"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`

	// MigrationsURL locates the SQL migrations; AutoMigrate applies them
	// when the postgres audit sink starts.
	MigrationsURL string `mapstructure:"migrations_url"`
	AutoMigrate   bool   `mapstructure:"auto_migrate"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// SentryConfig holds error reporting settings. An empty DSN disables reporting.
type SentryConfig struct {
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

// LogConfig holds logging settings. Format "console" prefixes every line with
// a UTC timestamp; "plain" leaves timestamps to the log collector.
type LogConfig struct {
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the PIIGUARD_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PIIGUARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8000")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "180s")
	v.SetDefault("server.environment", "development")

	// LLM defaults (local Ollama)
	v.SetDefault("llm.provider", "ollama")
	v.SetDefault("llm.base_url", "http://localhost:11434")
	v.SetDefault("llm.model", "gemma3:4b")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.timeout_secs", 120)
	v.SetDefault("llm.validate_on_start", true)

	// The browser extension calls from arbitrary page origins.
	v.SetDefault("cors.allowed_origins", "*")

	// Audit defaults
	v.SetDefault("audit.sink", "file")
	v.SetDefault("audit.path", "ingested_prompts.log")
	v.SetDefault("audit.s3_prefix", "ingested-prompts")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "piiguard-audit")
	v.SetDefault("s3.endpoint", "")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "piiguard")
	v.SetDefault("db.password", "piiguard_secret")
	v.SetDefault("db.name", "piiguard_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)
	v.SetDefault("db.migrations_url", "file://db/migrations")
	v.SetDefault("db.auto_migrate", true)

	// Sentry defaults
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "")
	v.SetDefault("sentry.sample_rate", 1.0)

	// Log defaults
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":           "PIIGUARD_SERVER_PORT",
		"server.read_timeout":   "PIIGUARD_SERVER_READ_TIMEOUT",
		"server.write_timeout":  "PIIGUARD_SERVER_WRITE_TIMEOUT",
		"server.environment":    "PIIGUARD_SERVER_ENVIRONMENT",
		"llm.provider":          "PIIGUARD_LLM_PROVIDER",
		"llm.base_url":          "PIIGUARD_LLM_BASE_URL",
		"llm.model":             "PIIGUARD_LLM_MODEL",
		"llm.api_key":           "PIIGUARD_LLM_API_KEY",
		"llm.timeout_secs":      "PIIGUARD_LLM_TIMEOUT_SECS",
		"llm.validate_on_start": "PIIGUARD_LLM_VALIDATE_ON_START",
		"cors.allowed_origins":  "PIIGUARD_CORS_ALLOWED_ORIGINS",
		"audit.sink":            "PIIGUARD_AUDIT_SINK",
		"audit.path":            "PIIGUARD_AUDIT_PATH",
		"audit.s3_prefix":       "PIIGUARD_AUDIT_S3_PREFIX",
		"s3.region":             "PIIGUARD_S3_REGION",
		"s3.bucket":             "PIIGUARD_S3_BUCKET",
		"s3.endpoint":           "PIIGUARD_S3_ENDPOINT",
		"s3.access_key":         "PIIGUARD_S3_ACCESS_KEY",
		"s3.secret_key":         "PIIGUARD_S3_SECRET_KEY",
		"db.host":               "PIIGUARD_DB_HOST",
		"db.port":               "PIIGUARD_DB_PORT",
		"db.user":               "PIIGUARD_DB_USER",
		"db.password":           "PIIGUARD_DB_PASSWORD",
		"db.name":               "PIIGUARD_DB_NAME",
		"db.sslmode":            "PIIGUARD_DB_SSLMODE",
		"db.max_open":           "PIIGUARD_DB_MAX_OPEN",
		"db.max_idle":           "PIIGUARD_DB_MAX_IDLE",
		"db.migrations_url":     "PIIGUARD_DB_MIGRATIONS_URL",
		"db.auto_migrate":       "PIIGUARD_DB_AUTO_MIGRATE",
		"sentry.dsn":            "PIIGUARD_SENTRY_DSN",
		"sentry.environment":    "PIIGUARD_SENTRY_ENVIRONMENT",
		"sentry.sample_rate":    "PIIGUARD_SENTRY_SAMPLE_RATE",
		"log.format":            "PIIGUARD_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Container platforms set a PORT env var. Use it if PIIGUARD_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("PIIGUARD_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.LLM = LLMConfig{
		Provider:        strings.ToLower(v.GetString("llm.provider")),
		BaseURL:         strings.TrimRight(v.GetString("llm.base_url"), "/"),
		Model:           v.GetString("llm.model"),
		APIKey:          v.GetString("llm.api_key"),
		TimeoutSecs:     v.GetInt("llm.timeout_secs"),
		ValidateOnStart: v.GetBool("llm.validate_on_start"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Audit = AuditConfig{
		Sink:     strings.ToLower(v.GetString("audit.sink")),
		Path:     v.GetString("audit.path"),
		S3Prefix: strings.Trim(v.GetString("audit.s3_prefix"), "/"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),

		MigrationsURL: v.GetString("db.migrations_url"),
		AutoMigrate:   v.GetBool("db.auto_migrate"),
	}
	cfg.Sentry = SentryConfig{
		DSN:         v.GetString("sentry.dsn"),
		Environment: v.GetString("sentry.environment"),
		SampleRate:  v.GetFloat64("sentry.sample_rate"),
	}
	if cfg.Sentry.Environment == "" {
		cfg.Sentry.Environment = cfg.Server.Environment
	}
	cfg.Log = LogConfig{
		Format: strings.ToLower(v.GetString("log.format")),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Audit.Sink {
	case "file", "s3", "postgres", "none":
	default:
		return fmt.Errorf("unknown audit sink: %s", c.Audit.Sink)
	}
	if c.Audit.Sink == "file" && c.Audit.Path == "" {
		return fmt.Errorf("audit.path is required for the file sink")
	}
	switch c.Log.Format {
	case "console", "plain":
	default:
		return fmt.Errorf("unknown log format: %s", c.Log.Format)
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("llm.model is required")
	}
	return nil
}

// splitList parses a comma-separated string, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
