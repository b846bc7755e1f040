package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageDriverDisk = "disk"
	StorageDriverS3   = "s3"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	AppURL  string
	Port    string

	// AppKey is the root secret. Album tokens and session JWTs each derive their own key from it (HKDF).
	AppKey string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Sessions
	JWTExpiry time.Duration

	// Uploads: per photo, and for a whole upload request
	UploadMaxKB        int64
	UploadMaxRequestMB int64

	// Observability (optional)
	SentryDSN string

	// Storage: "disk" serves blobs from /storage/, "s3" uses any S3-compatible bucket
	StorageDriver    string
	StorageDiskPath  string
	StoragePublicURL string

	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3Endpoint      string        // Optional: for S3-compatible services (MinIO, R2, etc.)
	S3PresignExpiry time.Duration // Expiry for presigned photo URLs
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "Galeri"),
		AppEnv:  envRequired("APP_ENV"), // Required: 'development' or 'production'
		AppURL:  envRequired("APP_URL"),
		Port:    envString("PORT", "8090"),
		AppKey:  envRequired("APP_KEY"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/galeri.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		JWTExpiry: envDuration("JWT_EXPIRY", 168*time.Hour), // 7 days

		UploadMaxKB:        envInt("UPLOAD_MAX_KB", 5120),
		UploadMaxRequestMB: envInt("UPLOAD_MAX_REQUEST_MB", 100),

		SentryDSN: envString("SENTRY_DSN", ""),

		// Storage
		StorageDriver:    envString("STORAGE_DRIVER", StorageDriverDisk),
		StorageDiskPath:  envString("STORAGE_DISK_PATH", "./data/public"),
		StoragePublicURL: envString("STORAGE_PUBLIC_URL", "/storage"),

		S3Region:        envString("S3_REGION", ""),
		S3Bucket:        envString("S3_BUCKET", ""),
		S3AccessKey:     envString("S3_ACCESS_KEY", ""),
		S3SecretKey:     envString("S3_SECRET_KEY", ""),
		S3Endpoint:      envString("S3_ENDPOINT", ""),
		S3PresignExpiry: envDuration("S3_PRESIGN_EXPIRY", 24*time.Hour),
	}

	if cfg.StorageDriver == StorageDriverS3 {
		validateS3(cfg)
	}

	return cfg
}

// validateS3 ensures the bucket settings are present when the s3 driver is selected.
func validateS3(cfg *Config) {
	if cfg.S3Region == "" || cfg.S3Bucket == "" {
		slog.Error("s3 storage driver requires S3_REGION and S3_BUCKET",
			"hint", "set STORAGE_DRIVER=disk to keep photos on the local filesystem")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int64) int64 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("config invalid integer, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Sanitized returns a copy of the config with only public/safe fields.
// AppKey, S3 credentials and the DB connection string are excluded.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName:            c.AppName,
		AppEnv:             c.AppEnv,
		AppURL:             c.AppURL,
		Port:               c.Port,
		UploadMaxKB:        c.UploadMaxKB,
		UploadMaxRequestMB: c.UploadMaxRequestMB,
		StorageDriver:      c.StorageDriver,
		StoragePublicURL:   c.StoragePublicURL,
		S3Endpoint:         c.S3Endpoint,
	}
}
