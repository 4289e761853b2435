// internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
)

// Store backends selectable with GAME_STORE.
const (
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// RedisConfig is shared by the game server and the historian.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	Username string `env:"REDIS_USERNAME"`
	Password string `env:"REDIS_PASSWORD"`
}

// Config drives cmd/server.
type Config struct {
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Redis     RedisConfig
	GameStore string        `env:"GAME_STORE" envDefault:"redis"`
	GameTTL   time.Duration `env:"GAME_TTL" envDefault:"2h"`

	PublishActions bool   `env:"PUBLISH_ACTIONS" envDefault:"false"`
	QueueName      string `env:"HISTORIAN_QUEUE_NAME" envDefault:"uno_actions"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// HistorianConfig drives cmd/historian.
type HistorianConfig struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Redis     RedisConfig
	QueueName string `env:"HISTORIAN_QUEUE_NAME" envDefault:"uno_actions"`
	BatchSize int    `env:"HISTORIAN_BATCH_SIZE" envDefault:"20"`
	FlushMs   int    `env:"HISTORIAN_FLUSH_MS" envDefault:"500"`

	InactivityTimeout time.Duration `env:"GAME_INACTIVITY_TIMEOUT" envDefault:"2h"`

	DatabaseURL string `env:"DATABASE_URL"`
	DBHost      string `env:"DB_HOST" envDefault:"localhost"`
	DBPort      int    `env:"DB_PORT" envDefault:"5432"`
	DBUser      string `env:"DB_USER" envDefault:"postgres"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBName      string `env:"DB_NAME" envDefault:"uno"`
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// FlushInterval is how long the historian holds a partial batch.
func (c HistorianConfig) FlushInterval() time.Duration {
	return time.Duration(c.FlushMs) * time.Millisecond
}

// DSN returns DATABASE_URL when set, otherwise a URL assembled from the DB_* parts.
func (c HistorianConfig) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// Load reads the server configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.GameStore != StoreRedis && cfg.GameStore != StoreMemory {
		return Config{}, fmt.Errorf("GAME_STORE must be %q or %q, got %q", StoreRedis, StoreMemory, cfg.GameStore)
	}
	if cfg.GameTTL <= 0 {
		return Config{}, fmt.Errorf("GAME_TTL must be positive, got %s", cfg.GameTTL)
	}
	return cfg, nil
}

// LoadHistorian reads the historian configuration from the environment.
func LoadHistorian() (HistorianConfig, error) {
	var cfg HistorianConfig
	if err := ParseEnv(&cfg); err != nil {
		return HistorianConfig{}, err
	}
	if cfg.BatchSize < 1 {
		return HistorianConfig{}, fmt.Errorf("HISTORIAN_BATCH_SIZE must be at least 1, got %d", cfg.BatchSize)
	}
	if cfg.FlushMs < 1 {
		return HistorianConfig{}, fmt.Errorf("HISTORIAN_FLUSH_MS must be at least 1, got %d", cfg.FlushMs)
	}
	return cfg, nil
}

// ParseEnv fills target from environment variables using its env struct tags.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// NewLogger builds the process logger at the given level, falling back to info.
func NewLogger(level string) *logrus.Logger {
	logger := logrus.New()
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logger.Warnf("unknown LOG_LEVEL %q, using info", level)
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}
