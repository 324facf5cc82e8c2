package config

import (
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration for a catalog service instance.
// It supports environment-based initialization with sensible defaults;
// selected values can additionally be overlaid from an AWS Secrets Manager
// secret at startup (see ApplySecret).
type Config struct {
	ServiceName string // e.g. "catalog-api"
	Env         string // e.g. "dev", "uat", "prod"
	LogLevel    string // "debug", "info", etc.
	Port        int

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	HTTPBodyLimit    int

	AWSRegion      string
	TableName      string // DynamoDB table holding products
	DynamoEndpoint string // optional service URL override, e.g. DynamoDB Local
	StoreBackend   string // "dynamo" | "memory"

	StagePrefix  string // deployment stage segment stripped before routing, e.g. "/prod"
	CORSOrigin   string
	ScanPageSize int // page size for paginated listing; 0 means unbounded scan

	StaticDir string // directory served as the web frontend; empty disables it

	SecretName  string // AWS Secrets Manager secret with config overrides; empty disables
	CacheTTL    time.Duration
	CleanupFreq time.Duration
}

// Load loads configuration from environment variables and .env file if present.
func Load() *Config {
	// load .env silently (no error if missing)
	_ = godotenv.Load()

	return &Config{
		ServiceName: GetEnv("SERVICE_NAME", "catalog-api"),
		Env:         GetEnv("ENV", "dev"),
		LogLevel:    GetEnv("LOG_LEVEL", "info"),
		Port:        GetEnvInt("CATALOG_PORT", 9040),

		HTTPReadTimeout:  GetEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
		HTTPWriteTimeout: GetEnvDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
		HTTPIdleTimeout:  GetEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		HTTPBodyLimit:    GetEnvInt("HTTP_BODY_LIMIT", 1*1024*1024),

		AWSRegion:      GetEnv("AWS_REGION", "us-east-2"),
		TableName:      GetEnv("CATALOG_TABLE", "products"),
		DynamoEndpoint: GetEnv("DYNAMO_ENDPOINT", ""),
		StoreBackend:   GetEnv("CATALOG_STORE", "dynamo"),

		StagePrefix:  GetEnv("STAGE_PREFIX", ""),
		CORSOrigin:   GetEnv("CORS_ORIGIN", "*"),
		ScanPageSize: GetEnvInt("SCAN_PAGE_SIZE", 0),

		StaticDir: GetEnv("STATIC_DIR", "./web"),

		SecretName:  GetEnv("CATALOG_SECRET_NAME", ""),
		CacheTTL:    GetEnvDuration("CACHE_TTL", 24*time.Hour),
		CleanupFreq: GetEnvDuration("CACHE_CLEANUP_FREQ", 10*time.Minute),
	}
}

// ApplySecret overlays values resolved from a secrets manager secret onto the
// config. Only deployment-level keys are honored; anything else is ignored.
func (c *Config) ApplySecret(values map[string]string) {
	if v, ok := values["table_name"]; ok && v != "" {
		c.TableName = v
	}
	if v, ok := values["cors_origin"]; ok && v != "" {
		c.CORSOrigin = v
	}
	if v, ok := values["stage_prefix"]; ok && v != "" {
		c.StagePrefix = v
	}
}
