package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	BasePath string `yaml:"base_path"`
}

type DatabaseConfig struct {
	DSN            string `yaml:"dsn"`
	MaxOpenConns   int    `yaml:"max_open_conns"`
	MigrateOnStart bool   `yaml:"migrate_on_start"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// S3Config : объектное хранилище (MinIO локально, S3 в проде)
type S3Config struct {
	Bucket        string `yaml:"bucket"`
	Region        string `yaml:"region"`
	Endpoint      string `yaml:"endpoint"`
	Local         bool   `yaml:"local"`
	AccessKey     string `yaml:"access_key"`
	SecretKey     string `yaml:"secret_key"`
	PublicBaseURL string `yaml:"public_base_url"`
	Timeout       string `yaml:"timeout"`
}

type JWTConfig struct {
	SecretKey string `yaml:"secret_key"`
}

type AdminConfig struct {
	AdminToken string `yaml:"admin_token"`
}

// TTL : время жизни кэша и pre-signed ссылок в секундах
type TTL struct {
	S3AndRedis int `yaml:"s3_and_redis"`
}

// PipelineConfig : настройки конвейера сжатия документов
type PipelineConfig struct {
	// SystemActorUUID : владелец записей журнала, пока ни один документ не был просмотрен
	SystemActorUUID string `yaml:"system_actor_uuid"`
	LeaseBackend    string `yaml:"lease_backend"`
	LeaseTTL        string `yaml:"lease_ttl"`
	LogWriteTimeout string `yaml:"log_write_timeout"`
}

type SchedulerConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Interval      string `yaml:"interval"`
	OverlapPolicy string `yaml:"overlap_policy"`
}

const (
	LeaseBackendPostgres = "postgres"
	LeaseBackendRedis    = "redis"

	OverlapAllow = "allow"
	OverlapSkip  = "skip"
	OverlapDelay = "delay"

	DefaultSystemActorUUID = "00000000-0000-0000-0000-000000000001"
)

// Duration : парсит строку длительности, пустая строка даёт fallback
func Duration(raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("неверный формат длительности %q: %w", raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("длительность должна быть положительной: %q", raw)
	}
	return d, nil
}

// MustDuration : для значений, уже проверенных в LoadConfig
func MustDuration(raw string, fallback time.Duration) time.Duration {
	d, err := Duration(raw, fallback)
	if err != nil {
		return fallback
	}
	return d
}
