package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Data modes
const (
	DataModeRemote = "remote"
	DataModeDemo   = "demo"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Redis    RedisConfig
	Logging  LoggingConfig
	Storage  StorageConfig
	Jobs     JobsConfig
	Invoice  InvoiceConfig
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	FrontendURL     string
	Environment     string
	RateLimitRPS    float64
	RateLimitBurst  int
}

// DatabaseConfig contains database configuration
type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// For SQLite
	Path string
}

// AuthConfig contains authentication configuration
type AuthConfig struct {
	JWTSecret          string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	BCryptCost         int
}

// RedisConfig contains Redis configuration. When enabled, tier usage
// counters live in Redis instead of the database.
type RedisConfig struct {
	Enabled   bool
	Host      string
	Port      int
	Password  string
	DB        int
	KeyPrefix string
}

// Addr returns host:port
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string
	Format     string // json or console
	OutputPath string
}

// StorageConfig selects the record store and the optional PDF archive.
type StorageConfig struct {
	// DataMode is "remote" for the SQL store or "demo" for seeded in-memory data.
	DataMode string
	// DemoPassword is the password of the seeded demo account.
	DemoPassword string

	// S3 archive for exported PDFs. Disabled when Bucket is empty.
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3Prefix    string
	S3PathStyle bool
	// Static credentials; the default AWS chain is used when empty.
	S3AccessKey string
	S3SecretKey string
}

// ArchiveEnabled reports whether exported PDFs are copied to object storage
func (s StorageConfig) ArchiveEnabled() bool {
	return s.S3Bucket != ""
}

// JobsConfig contains cron schedules for background jobs
type JobsConfig struct {
	Enabled              bool
	OverdueSweepSchedule string
	UsagePruneSchedule   string
	UsageRetentionMonths int
}

// InvoiceConfig holds invoice defaults
type InvoiceConfig struct {
	DefaultTaxRate float64
	NumberPrefix   string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors as it's optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:5173"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			RateLimitRPS:    getEnvAsFloat("RATE_LIMIT_RPS", 10),
			RateLimitBurst:  getEnvAsInt("RATE_LIMIT_BURST", 20),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "sqlite"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			Name:            getEnv("DB_NAME", "bizdesk"),
			User:            getEnv("DB_USER", ""),
			Password:        getEnv("DB_PASSWORD", ""),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			Path:            getEnv("DB_PATH", "./bizdesk.db"),
		},
		Auth: AuthConfig{
			JWTSecret:          getEnv("JWT_SECRET", "supersecretkey"),
			AccessTokenExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshTokenExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
			BCryptCost:         getEnvAsInt("BCRYPT_COST", 12),
		},
		Redis: RedisConfig{
			Enabled:   getEnvAsBool("REDIS_ENABLED", false),
			Host:      getEnv("REDIS_HOST", "localhost"),
			Port:      getEnvAsInt("REDIS_PORT", 6379),
			Password:  getEnv("REDIS_PASSWORD", ""),
			DB:        getEnvAsInt("REDIS_DB", 0),
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "bizdesk"),
		},
		Logging: LoggingConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			OutputPath: getEnv("LOG_OUTPUT", "stdout"),
		},
		Storage: StorageConfig{
			DataMode:     getEnv("DATA_MODE", DataModeRemote),
			DemoPassword: getEnv("DEMO_PASSWORD", "demo1234"),
			S3Bucket:     getEnv("S3_BUCKET", ""),
			S3Region:     getEnv("S3_REGION", "us-east-1"),
			S3Endpoint:   getEnv("S3_ENDPOINT", ""),
			S3Prefix:     getEnv("S3_PREFIX", "invoices/"),
			S3PathStyle:  getEnvAsBool("S3_PATH_STYLE", false),
			S3AccessKey:  getEnv("S3_ACCESS_KEY", ""),
			S3SecretKey:  getEnv("S3_SECRET_KEY", ""),
		},
		Jobs: JobsConfig{
			Enabled:              getEnvAsBool("JOBS_ENABLED", true),
			OverdueSweepSchedule: getEnv("JOBS_OVERDUE_SCHEDULE", "0 1 * * *"),
			UsagePruneSchedule:   getEnv("JOBS_USAGE_PRUNE_SCHEDULE", "30 2 1 * *"),
			UsageRetentionMonths: getEnvAsInt("JOBS_USAGE_RETENTION_MONTHS", 12),
		},
		Invoice: InvoiceConfig{
			DefaultTaxRate: getEnvAsFloat("INVOICE_DEFAULT_TAX_RATE", 10),
			NumberPrefix:   getEnv("INVOICE_NUMBER_PREFIX", "INV-"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// IsProduction reports whether the server runs in production
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	if c.IsProduction() && c.Auth.JWTSecret == "supersecretkey" {
		return fmt.Errorf("JWT_SECRET should not use default value in production")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.Storage.DataMode != DataModeRemote && c.Storage.DataMode != DataModeDemo {
		return fmt.Errorf("unsupported data mode: %s", c.Storage.DataMode)
	}

	if c.Invoice.DefaultTaxRate < 0 || c.Invoice.DefaultTaxRate > 100 {
		return fmt.Errorf("invalid default tax rate: %v", c.Invoice.DefaultTaxRate)
	}

	if c.Jobs.UsageRetentionMonths < 1 {
		return fmt.Errorf("usage retention must be at least one month")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
