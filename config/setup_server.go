package config

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const (
	DefaultLeaseTTL        = 15 * time.Minute
	DefaultLogWriteTimeout = 3 * time.Second
	DefaultStorageTimeout  = 30 * time.Second
	DefaultSchedulerPeriod = 2 * time.Minute
)

type AppConfig struct {
	DatabaseConfig DatabaseConfig  `yaml:"databaseConfig"`
	RedisConfig    RedisConfig     `yaml:"redisConfig"`
	ServerAddr     string          `yaml:"serverAddr"`
	S3Config       S3Config        `yaml:"s3Config"`
	JWT            JWTConfig       `yaml:"jwt"`
	Admin          AdminConfig     `yaml:"admin"`
	TTL            TTL             `yaml:"TTL"`
	Pipeline       PipelineConfig  `yaml:"pipeline"`
	Scheduler      SchedulerConfig `yaml:"scheduler"`
}

// ConfigPath : путь к конфигу, переопределяется через INSTASHARE_CONFIG
func ConfigPath() string {
	if path := os.Getenv("INSTASHARE_CONFIG"); path != "" {
		return path
	}
	return "config.yaml"
}

func LoadConfig(path string) (*AppConfig, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseConfig(file)
}

// ParseConfig : разбирает YAML, проставляет значения по умолчанию и проверяет длительности
func ParseConfig(data []byte) (*AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *AppConfig) applyDefaults() {
	if c.ServerAddr == "" {
		c.ServerAddr = ":8080"
	}
	if c.DatabaseConfig.MaxOpenConns <= 0 {
		c.DatabaseConfig.MaxOpenConns = 10
	}
	if c.RedisConfig.Addr == "" {
		c.RedisConfig.Addr = "127.0.0.1:6379"
	}
	if c.TTL.S3AndRedis <= 0 {
		c.TTL.S3AndRedis = 900
	}
	if c.S3Config.Bucket == "" {
		c.S3Config.Bucket = "documents"
	}
	if c.Pipeline.SystemActorUUID == "" {
		c.Pipeline.SystemActorUUID = DefaultSystemActorUUID
	}
	if c.Pipeline.LeaseBackend == "" {
		c.Pipeline.LeaseBackend = LeaseBackendPostgres
	}
	if c.Scheduler.OverlapPolicy == "" {
		c.Scheduler.OverlapPolicy = OverlapAllow
	}
}

func (c *AppConfig) validate() error {
	durations := map[string]string{
		"s3Config.timeout":           c.S3Config.Timeout,
		"pipeline.lease_ttl":         c.Pipeline.LeaseTTL,
		"pipeline.log_write_timeout": c.Pipeline.LogWriteTimeout,
		"scheduler.interval":         c.Scheduler.Interval,
	}
	for name, raw := range durations {
		if _, err := Duration(raw, time.Second); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	if _, err := uuid.Parse(c.Pipeline.SystemActorUUID); err != nil {
		return fmt.Errorf("pipeline.system_actor_uuid: %w", err)
	}

	switch c.Pipeline.LeaseBackend {
	case LeaseBackendPostgres, LeaseBackendRedis:
	default:
		return fmt.Errorf("pipeline.lease_backend: неизвестное значение %q", c.Pipeline.LeaseBackend)
	}

	switch c.Scheduler.OverlapPolicy {
	case OverlapAllow, OverlapSkip, OverlapDelay:
	default:
		return fmt.Errorf("scheduler.overlap_policy: неизвестное значение %q", c.Scheduler.OverlapPolicy)
	}

	return nil
}

func SetupServer(serverAddress string) (*http.Server, *chi.Mux) {
	router := chi.NewRouter()
	server := &http.Server{
		Addr:              serverAddress,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return server, router
}

func SetupDatabase(cfg *DatabaseConfig) (*Database, error) {
	database, err := NewDatabaseConnection("postgres", cfg.DSN)
	if err != nil {
		return nil, err
	}
	database.SetMaxOpenConns(cfg.MaxOpenConns)
	return database, nil
}

func SetupRedis(cfg *RedisConfig) (*RedisClient, error) {
	return NewRedisClient(cfg)
}
