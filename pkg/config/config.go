package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Document store drivers.
const (
	DocstorePostgres  = "postgres"
	DocstoreFirestore = "firestore"
	DocstoreMemory    = "memory"
)

// Session store drivers.
const (
	SessionRedis  = "redis"
	SessionMemory = "memory"
)

const (
	devSessionSecret = "dev_session_secret"
	devBlobSecret    = "dev_blob_secret"
)

type Config struct {
	Env      string
	Port     int
	Timezone string

	Docstore   DocstoreConfig
	Database   DatabaseConfig
	Firestore  FirestoreConfig
	Redis      RedisConfig
	Session    SessionConfig
	Blob       BlobConfig
	HallTicket HallTicketConfig
	CORS       CORSConfig
	Log        LogConfig
}

type DocstoreConfig struct {
	Driver string
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

// FirestoreConfig points the Firestore document store at a project.
type FirestoreConfig struct {
	ProjectID       string
	CredentialsFile string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// SessionConfig controls session lifetime and the signing secret shared by cookies and bearer tokens.
type SessionConfig struct {
	Driver       string
	Secret       string
	TTL          time.Duration
	CookieName   string
	CookieSecure bool
}

// BlobConfig configures evidence uploads.
type BlobConfig struct {
	StorageDir       string
	SignedURLSecret  string
	SignedURLTTL     time.Duration
	MaxFileSizeBytes int64
}

// HallTicketConfig toggles hall-ticket rendering options.
type HallTicketConfig struct {
	EmbedQR bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.Timezone = v.GetString("APP_TIMEZONE")

	cfg.Docstore = DocstoreConfig{Driver: strings.ToLower(v.GetString("DOCSTORE_DRIVER"))}

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Firestore = FirestoreConfig{
		ProjectID:       v.GetString("FIRESTORE_PROJECT_ID"),
		CredentialsFile: v.GetString("FIRESTORE_CREDENTIALS_FILE"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Session = SessionConfig{
		Driver:       strings.ToLower(v.GetString("SESSION_DRIVER")),
		Secret:       v.GetString("SESSION_SECRET"),
		TTL:          parseDuration(v.GetString("SESSION_TTL"), 24*time.Hour),
		CookieName:   v.GetString("SESSION_COOKIE_NAME"),
		CookieSecure: v.GetBool("SESSION_COOKIE_SECURE"),
	}

	maxBlobSize := v.GetInt64("BLOB_MAX_FILE_SIZE")
	if maxBlobSize <= 0 {
		maxBlobSize = 10 * 1024 * 1024
	}
	cfg.Blob = BlobConfig{
		StorageDir:       v.GetString("BLOB_STORAGE_DIR"),
		SignedURLSecret:  v.GetString("BLOB_SIGNED_URL_SECRET"),
		SignedURLTTL:     parseDuration(v.GetString("BLOB_SIGNED_URL_TTL"), 7*24*time.Hour),
		MaxFileSizeBytes: maxBlobSize,
	}

	cfg.HallTicket = HallTicketConfig{EmbedQR: v.GetBool("HALLTICKET_EMBED_QR")}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects configurations that would run production with development secrets or volatile storage.
func (c *Config) Validate() error {
	switch c.Docstore.Driver {
	case DocstorePostgres, DocstoreFirestore, DocstoreMemory:
	default:
		return fmt.Errorf("unsupported DOCSTORE_DRIVER %q", c.Docstore.Driver)
	}
	switch c.Session.Driver {
	case SessionRedis, SessionMemory:
	default:
		return fmt.Errorf("unsupported SESSION_DRIVER %q", c.Session.Driver)
	}
	if c.Docstore.Driver == DocstoreFirestore && c.Firestore.ProjectID == "" {
		return errors.New("FIRESTORE_PROJECT_ID is required for the firestore driver")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}

	if c.Env != EnvProduction {
		return nil
	}
	if c.Session.Secret == "" || c.Session.Secret == devSessionSecret {
		return errors.New("SESSION_SECRET must be set in production")
	}
	if c.Blob.SignedURLSecret == "" || c.Blob.SignedURLSecret == devBlobSecret {
		return errors.New("BLOB_SIGNED_URL_SECRET must be set in production")
	}
	if c.Docstore.Driver == DocstoreMemory {
		return errors.New("memory document store is not allowed in production")
	}
	return nil
}

// Location resolves the configured time zone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("APP_TIMEZONE", "UTC")

	v.SetDefault("DOCSTORE_DRIVER", DocstoreMemory)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "exam_portal")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("FIRESTORE_PROJECT_ID", "")
	v.SetDefault("FIRESTORE_CREDENTIALS_FILE", "")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("SESSION_DRIVER", SessionMemory)
	v.SetDefault("SESSION_SECRET", devSessionSecret)
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("SESSION_COOKIE_NAME", "exam_portal_session")
	v.SetDefault("SESSION_COOKIE_SECURE", false)

	v.SetDefault("BLOB_STORAGE_DIR", "./uploads")
	v.SetDefault("BLOB_SIGNED_URL_SECRET", devBlobSecret)
	v.SetDefault("BLOB_SIGNED_URL_TTL", "168h")
	v.SetDefault("BLOB_MAX_FILE_SIZE", 10*1024*1024)

	v.SetDefault("HALLTICKET_EMBED_QR", false)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
