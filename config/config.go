package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Mongo     MongoConfig
	Auth      AuthConfig
	Storage   StorageConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Log       LogConfig
	Mail      MailConfig
	Jobs      JobsConfig
	SentryDSN string
	AppEnv    string
}

type ServerConfig struct {
	Port        string
	Mode        string
	CORSOrigins []string
	Timezone    string // dates in exports
}

type MongoConfig struct {
	URI      string
	Database string
}

type AuthConfig struct {
	Provider       string // "firebase" or "local"
	FirebaseAPIKey string
	AdminEmails    []string
	JWTSecret      string
	JWTExpire      time.Duration
	CookieSecure   bool
}

type StorageConfig struct {
	Type      string // gcs, s3, minio, local
	MaxBytes  int64
	Folder    string
	LocalPath string
	PublicURL string

	GCSBucket          string
	GCSCredentialsFile string

	S3Bucket string
	S3Region string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

type RedisConfig struct {
	URL string
}

type RateLimitConfig struct {
	PerMinute int
}

type LogConfig struct {
	File  string
	Level string
}

type MailConfig struct {
	Host         string
	Port         string
	From         string
	Password     string
	NotifyEmails []string
}

type JobsConfig struct {
	BackfillSchedule string
	DigestSchedule   string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file loaded:", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Server: ServerConfig{
			Port:        v.GetString("PORT"),
			Mode:        v.GetString("GIN_MODE"),
			CORSOrigins: parseCSV(v.GetString("CORS_ORIGINS")),
			Timezone:    v.GetString("EXPORT_TIMEZONE"),
		},
		Mongo: MongoConfig{
			URI:      v.GetString("MONGODB_URI"),
			Database: v.GetString("MONGODB_DB"),
		},
		Auth: AuthConfig{
			Provider:       strings.ToLower(v.GetString("AUTH_PROVIDER")),
			FirebaseAPIKey: v.GetString("FIREBASE_API_KEY"),
			AdminEmails:    parseCSV(strings.ToLower(v.GetString("ADMIN_EMAILS"))),
			JWTSecret:      v.GetString("JWT_SECRET"),
			JWTExpire:      time.Duration(v.GetInt("JWT_EXPIRE_HOURS")) * time.Hour,
			CookieSecure:   v.GetBool("COOKIE_SECURE"),
		},
		Storage: StorageConfig{
			Type:               strings.ToLower(v.GetString("STORAGE_TYPE")),
			MaxBytes:           v.GetInt64("UPLOAD_MAX_BYTES"),
			Folder:             v.GetString("UPLOAD_FOLDER"),
			LocalPath:          v.GetString("UPLOAD_LOCAL_PATH"),
			PublicURL:          v.GetString("UPLOAD_PUBLIC_URL"),
			GCSBucket:          v.GetString("GCS_BUCKET"),
			GCSCredentialsFile: v.GetString("GOOGLE_APPLICATION_CREDENTIALS"),
			S3Bucket:           v.GetString("S3_BUCKET"),
			S3Region:           v.GetString("AWS_REGION"),
			MinioEndpoint:      v.GetString("MINIO_ENDPOINT"),
			MinioAccessKey:     v.GetString("MINIO_ACCESS_KEY"),
			MinioSecretKey:     v.GetString("MINIO_SECRET_KEY"),
			MinioBucket:        v.GetString("MINIO_BUCKET"),
			MinioUseSSL:        v.GetBool("MINIO_USE_SSL"),
		},
		Redis: RedisConfig{URL: v.GetString("REDIS_URL")},
		RateLimit: RateLimitConfig{
			PerMinute: v.GetInt("SUBMIT_RATE_PER_MINUTE"),
		},
		Log: LogConfig{
			File:  v.GetString("LOG_FILE"),
			Level: v.GetString("LOG_LEVEL"),
		},
		Mail: MailConfig{
			Host:         v.GetString("SMTP_HOST"),
			Port:         v.GetString("SMTP_PORT"),
			From:         v.GetString("EMAIL_FROM"),
			Password:     v.GetString("EMAIL_PASS"),
			NotifyEmails: parseCSV(v.GetString("NOTIFY_EMAILS")),
		},
		Jobs: JobsConfig{
			BackfillSchedule: v.GetString("JOB_BACKFILL_SCHEDULE"),
			DigestSchedule:   v.GetString("JOB_DIGEST_SCHEDULE"),
		},
		SentryDSN: v.GetString("SENTRY_DSN"),
		AppEnv:    v.GetString("APP_ENV"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	v.SetDefault("EXPORT_TIMEZONE", "UTC")
	v.SetDefault("MONGODB_DB", "campusshield")
	v.SetDefault("AUTH_PROVIDER", "local")
	v.SetDefault("JWT_EXPIRE_HOURS", 24)
	v.SetDefault("COOKIE_SECURE", true)
	v.SetDefault("STORAGE_TYPE", "local")
	v.SetDefault("UPLOAD_MAX_BYTES", 10<<20)
	v.SetDefault("UPLOAD_FOLDER", "evidence")
	v.SetDefault("UPLOAD_LOCAL_PATH", "uploads")
	v.SetDefault("UPLOAD_PUBLIC_URL", "/uploads")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("SUBMIT_RATE_PER_MINUTE", 10)
	v.SetDefault("LOG_FILE", "logs/app.log")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", "587")
	v.SetDefault("JOB_BACKFILL_SCHEDULE", "@daily")
	v.SetDefault("JOB_DIGEST_SCHEDULE", "0 8 * * *")
	v.SetDefault("APP_ENV", "development")
}

func (c *Config) Validate() error {
	if c.Mongo.URI == "" {
		return errors.New("MONGODB_URI not set")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET not set")
	}
	if c.Server.Mode == "release" && len(c.Auth.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters in release mode")
	}
	switch c.Auth.Provider {
	case "local":
	case "firebase":
		if c.Auth.FirebaseAPIKey == "" {
			return errors.New("FIREBASE_API_KEY required when AUTH_PROVIDER=firebase")
		}
	default:
		return errors.New("AUTH_PROVIDER must be firebase or local")
	}
	if _, err := time.LoadLocation(c.Server.Timezone); err != nil {
		return fmt.Errorf("EXPORT_TIMEZONE: %w", err)
	}
	switch c.Storage.Type {
	case "local", "gcs", "s3", "minio":
	default:
		return errors.New("STORAGE_TYPE must be one of local, gcs, s3, minio")
	}
	return nil
}

// Location falls back to UTC for an invalid zone name.
func (s ServerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// MailEnabled reports whether SMTP credentials are present.
func (m MailConfig) MailEnabled() bool {
	return m.From != "" && m.Password != ""
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
