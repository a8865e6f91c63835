package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port          string `env:"PORT,      default=8080"`
	Env           string `env:"ENV,       default=development"`
	LogLevel      string `env:"LOG_LEVEL, default=info"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`

	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Storage StorageConfig
	Sentry  SentryConfig
}

type SessionConfig struct {
	Secret     string        `env:"SESSION_SECRET, required"`
	TTL        time.Duration `env:"SESSION_TTL,    default=720h"`
	CookieName string        `env:"SESSION_COOKIE, default=session_token"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=comedy_platform"`
}

// RedisConfig backs show submission dedup. The API still serves when Redis is
// disabled or unreachable; Idempotency-Key headers are then ignored.
type RedisConfig struct {
	Enabled  bool          `env:"REDIS_ENABLED,   default=true"`
	Addr     string        `env:"REDIS_ADDR,      default=localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,        default=0"`
	PoolSize int           `env:"REDIS_POOL_SIZE, default=10"`
	Timeout  time.Duration `env:"REDIS_TIMEOUT,   default=2s"`
}

type StorageConfig struct {
	Endpoint  string `env:"STORAGE_ENDPOINT,   default=localhost:9000"`
	AccessKey string `env:"STORAGE_ACCESS_KEY, default=minioadmin"`
	SecretKey string `env:"STORAGE_SECRET_KEY, default=minioadmin"`
	Bucket    string `env:"STORAGE_BUCKET,     default=comedy-platform"`
	Region    string `env:"STORAGE_REGION"`
	UseSSL    bool   `env:"STORAGE_USE_SSL,    default=false"`
}

type SentryConfig struct {
	DSN     string `env:"SENTRY_DSN"`
	Release string `env:"SENTRY_RELEASE"`
}

// IsDevelopment reports whether human-friendly logs should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig. A
// .env file in the working directory is applied first when present.
func Load() *Config {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith resolves the configuration from an arbitrary lookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if cfg.Session.TTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.Session.TTL)
	}
	return &cfg, nil
}
