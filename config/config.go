package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Queue    QueueConfig
	Composer ComposerConfig
	Topics   TopicConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port            string        `env:"SERVER_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" env-default:"30s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type DatabaseConfig struct {
	Host     string `env:"DB_HOST" env-default:"localhost"`
	Port     string `env:"DB_PORT" env-default:"5432"`
	User     string `env:"DB_USER" env-default:"postgres"`
	Password string `env:"DB_PASSWORD" env-default:"postgres"`
	DBName   string `env:"DB_NAME" env-default:"postgres"`
	SSLMode  string `env:"DB_SSL_MODE" env-default:"disable"`
}

type RedisConfig struct {
	Host     string `env:"REDIS_HOST" env-default:"localhost"`
	Port     string `env:"REDIS_PORT" env-default:"6379"`
	Password string `env:"REDIS_PASSWORD" env-default:""`
	DB       int    `env:"REDIS_DB" env-default:"0"`
}

// QueueConfig 投稿佇列設定；Driver 為 memory 時只在單一 process 內有效
type QueueConfig struct {
	Driver             string        `env:"QUEUE_DRIVER" env-default:"redis"`
	BufferSize         int           `env:"QUEUE_BUFFER_SIZE" env-default:"1024"`
	ConsumerID         string        `env:"QUEUE_CONSUMER_ID" env-default:""`
	ClaimMinIdleTime   time.Duration `env:"QUEUE_CLAIM_MIN_IDLE" env-default:"5s"`
	MaxRetryCount      int           `env:"QUEUE_MAX_RETRY" env-default:"5"`
	ReadGroupBlockTime time.Duration `env:"QUEUE_BLOCK_TIME" env-default:"2s"`
	RetryDelay         time.Duration `env:"QUEUE_RETRY_DELAY" env-default:"200ms"`
}

type ComposerConfig struct {
	DraftIdleTimeout   time.Duration `env:"DRAFT_IDLE_TIMEOUT" env-default:"2h"`
	DraftSweepInterval time.Duration `env:"DRAFT_SWEEP_INTERVAL" env-default:"5m"`
}

type TopicConfig struct {
	CacheTTL time.Duration `env:"TOPIC_CACHE_TTL" env-default:"10m"`
}

type LogConfig struct {
	Level string `env:"LOG_LEVEL" env-default:"info"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if cfg.Queue.Driver != "memory" && cfg.Queue.Driver != "redis" {
		return nil, fmt.Errorf("config: unknown queue driver %q", cfg.Queue.Driver)
	}

	return &cfg, nil
}

func LoadTestConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8081",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			ShutdownTimeout: time.Second,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5433", // 測試 DB 用 5433 port
			User:     "postgres",
			Password: "postgres",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		Redis: RedisConfig{
			Host:     "localhost",
			Port:     "6380", // 測試 Redis 用 6380 port
			Password: "",
			DB:       1,
		},
		Queue: QueueConfig{
			Driver:             "memory",
			BufferSize:         16,
			ClaimMinIdleTime:   500 * time.Millisecond,
			MaxRetryCount:      3,
			ReadGroupBlockTime: 200 * time.Millisecond,
			RetryDelay:         20 * time.Millisecond,
		},
		Composer: ComposerConfig{
			DraftIdleTimeout:   time.Minute,
			DraftSweepInterval: time.Second,
		},
		Topics: TopicConfig{CacheTTL: time.Minute},
		Log:    LogConfig{Level: "debug"},
	}
}
