package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config is the root application configuration, populated from environment
// variables with the CVFORGE_ prefix.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	S3     S3Config
	AI     AIConfig
	Upload UploadConfig
	Worker WorkerConfig
	Email  EmailConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port    string
	GinMode string
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxOpen  int
	MaxIdle  int
}

// DSN returns the PostgreSQL connection string.
func (c *DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

// S3Config holds object storage settings. Endpoint is set for S3-compatible
// stores (MinIO, localstack) and left empty for AWS.
type S3Config struct {
	Region            string
	Bucket            string
	AccessKey         string
	SecretKey         string
	Endpoint          string
	PresignExpirySecs int64
}

// ProviderConfig holds the settings for a single AI provider. A provider is
// available when its APIKey is non-empty.
type ProviderConfig struct {
	APIKey      string
	Model       string
	TimeoutSecs int
}

// Available reports whether the provider is configured for use.
func (c *ProviderConfig) Available() bool {
	return c.APIKey != ""
}

// AIConfig holds the per-provider settings for the transformation chain,
// in fallback order.
type AIConfig struct {
	OpenAI    ProviderConfig
	Anthropic ProviderConfig
	Google    ProviderConfig
}

// UploadConfig holds upload validation settings.
type UploadConfig struct {
	MaxSizeBytes int64
}

// WorkerConfig holds settings for the background processing worker that
// re-dispatches documents stranded in the uploaded state.
type WorkerConfig struct {
	Enabled        bool
	IntervalSecs   int
	Concurrency    int
	StaleAfterSecs int
}

// EmailConfig holds notification email settings. Provider is "ses" or "noop".
type EmailConfig struct {
	Provider    string
	Region      string
	FromAddress string
	FromName    string
}

// Load reads configuration from environment variables, applying defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CVFORGE")
	v.AutomaticEnv()

	// Server
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.gin_mode", "release")

	// Database
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.name", "cvforge")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 5)

	// Object storage
	v.SetDefault("s3.region", "eu-west-1")
	v.SetDefault("s3.bucket", "cvforge-uploads")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry_secs", 900)

	// AI providers, in fallback order
	v.SetDefault("ai.openai.api_key", "")
	v.SetDefault("ai.openai.model", "gpt-4o")
	v.SetDefault("ai.openai.timeout_secs", 60)
	v.SetDefault("ai.anthropic.api_key", "")
	v.SetDefault("ai.anthropic.model", "claude-sonnet-4-20250514")
	v.SetDefault("ai.anthropic.timeout_secs", 60)
	v.SetDefault("ai.google.api_key", "")
	v.SetDefault("ai.google.model", "gemini-2.0-flash")
	v.SetDefault("ai.google.timeout_secs", 60)

	// Uploads
	v.SetDefault("upload.max_size_bytes", 10*1024*1024)

	// Worker
	v.SetDefault("worker.enabled", true)
	v.SetDefault("worker.interval_secs", 30)
	v.SetDefault("worker.concurrency", 2)
	v.SetDefault("worker.stale_after_secs", 300)

	// Email
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "eu-west-1")
	v.SetDefault("email.from_address", "noreply@cvforge.local")
	v.SetDefault("email.from_name", "CVForge")

	envBindings := map[string]string{
		"server.port":               "CVFORGE_SERVER_PORT",
		"server.gin_mode":           "CVFORGE_SERVER_GIN_MODE",
		"db.host":                   "CVFORGE_DB_HOST",
		"db.port":                   "CVFORGE_DB_PORT",
		"db.user":                   "CVFORGE_DB_USER",
		"db.password":               "CVFORGE_DB_PASSWORD",
		"db.name":                   "CVFORGE_DB_NAME",
		"db.sslmode":                "CVFORGE_DB_SSLMODE",
		"db.max_open":               "CVFORGE_DB_MAX_OPEN",
		"db.max_idle":               "CVFORGE_DB_MAX_IDLE",
		"s3.region":                 "CVFORGE_S3_REGION",
		"s3.bucket":                 "CVFORGE_S3_BUCKET",
		"s3.access_key":             "CVFORGE_S3_ACCESS_KEY",
		"s3.secret_key":             "CVFORGE_S3_SECRET_KEY",
		"s3.endpoint":               "CVFORGE_S3_ENDPOINT",
		"s3.presign_expiry_secs":    "CVFORGE_S3_PRESIGN_EXPIRY_SECS",
		"ai.openai.api_key":         "CVFORGE_AI_OPENAI_API_KEY",
		"ai.openai.model":           "CVFORGE_AI_OPENAI_MODEL",
		"ai.openai.timeout_secs":    "CVFORGE_AI_OPENAI_TIMEOUT_SECS",
		"ai.anthropic.api_key":      "CVFORGE_AI_ANTHROPIC_API_KEY",
		"ai.anthropic.model":        "CVFORGE_AI_ANTHROPIC_MODEL",
		"ai.anthropic.timeout_secs": "CVFORGE_AI_ANTHROPIC_TIMEOUT_SECS",
		"ai.google.api_key":         "CVFORGE_AI_GOOGLE_API_KEY",
		"ai.google.model":           "CVFORGE_AI_GOOGLE_MODEL",
		"ai.google.timeout_secs":    "CVFORGE_AI_GOOGLE_TIMEOUT_SECS",
		"upload.max_size_bytes":     "CVFORGE_UPLOAD_MAX_SIZE_BYTES",
		"worker.enabled":            "CVFORGE_WORKER_ENABLED",
		"worker.interval_secs":      "CVFORGE_WORKER_INTERVAL_SECS",
		"worker.concurrency":        "CVFORGE_WORKER_CONCURRENCY",
		"worker.stale_after_secs":   "CVFORGE_WORKER_STALE_AFTER_SECS",
		"email.provider":            "CVFORGE_EMAIL_PROVIDER",
		"email.region":              "CVFORGE_EMAIL_REGION",
		"email.from_address":        "CVFORGE_EMAIL_FROM_ADDRESS",
		"email.from_name":           "CVFORGE_EMAIL_FROM_NAME",
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding env %s: %w", env, err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:    v.GetString("server.port"),
			GinMode: v.GetString("server.gin_mode"),
		},
		DB: DBConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetInt("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			Name:     v.GetString("db.name"),
			SSLMode:  v.GetString("db.sslmode"),
			MaxOpen:  v.GetInt("db.max_open"),
			MaxIdle:  v.GetInt("db.max_idle"),
		},
		S3: S3Config{
			Region:            v.GetString("s3.region"),
			Bucket:            v.GetString("s3.bucket"),
			AccessKey:         v.GetString("s3.access_key"),
			SecretKey:         v.GetString("s3.secret_key"),
			Endpoint:          v.GetString("s3.endpoint"),
			PresignExpirySecs: v.GetInt64("s3.presign_expiry_secs"),
		},
		AI: AIConfig{
			OpenAI: ProviderConfig{
				APIKey:      v.GetString("ai.openai.api_key"),
				Model:       v.GetString("ai.openai.model"),
				TimeoutSecs: v.GetInt("ai.openai.timeout_secs"),
			},
			Anthropic: ProviderConfig{
				APIKey:      v.GetString("ai.anthropic.api_key"),
				Model:       v.GetString("ai.anthropic.model"),
				TimeoutSecs: v.GetInt("ai.anthropic.timeout_secs"),
			},
			Google: ProviderConfig{
				APIKey:      v.GetString("ai.google.api_key"),
				Model:       v.GetString("ai.google.model"),
				TimeoutSecs: v.GetInt("ai.google.timeout_secs"),
			},
		},
		Upload: UploadConfig{
			MaxSizeBytes: v.GetInt64("upload.max_size_bytes"),
		},
		Worker: WorkerConfig{
			Enabled:        v.GetBool("worker.enabled"),
			IntervalSecs:   v.GetInt("worker.interval_secs"),
			Concurrency:    v.GetInt("worker.concurrency"),
			StaleAfterSecs: v.GetInt("worker.stale_after_secs"),
		},
		Email: EmailConfig{
			Provider:    v.GetString("email.provider"),
			Region:      v.GetString("email.region"),
			FromAddress: v.GetString("email.from_address"),
			FromName:    v.GetString("email.from_name"),
		},
	}

	// Railway/Heroku style platforms inject the listen port as PORT.
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}

	return cfg, nil
}
