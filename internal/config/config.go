package config

import (
	"github.com/maxviazov/fantasy-cricket-service/internal/logger"
)

type Config struct {
	App      AppConfig           `mapstructure:"app"`
	Logger   logger.LoggerConfig `mapstructure:"logger" validate:"-"`
	Postgres PostgresConfig      `mapstructure:"postgres"`
	Redis    RedisConfig         `mapstructure:"redis"`
	Fantasy  FantasyConfig       `mapstructure:"fantasy"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Env     string `mapstructure:"env"`
	Port    int    `mapstructure:"port" validate:"min=1,max=65535"`
	// ShutdownTimeout is in seconds.
	ShutdownTimeout int `mapstructure:"shutdown_timeout" validate:"min=1"`
}

// PostgresConfig holds connection and pool settings. Durations are in seconds.
// Credentials usually arrive via env (APP_POSTGRES_USER, POSTGRES_USER or DB_USER, and so on).
type PostgresConfig struct {
	Host              string `mapstructure:"host" validate:"required"`
	Port              int    `mapstructure:"port" validate:"min=1,max=65535"`
	User              string `mapstructure:"user" validate:"required"`
	Password          string `mapstructure:"password" validate:"required"`
	DBName            string `mapstructure:"db" validate:"required"`
	SSLMode           string `mapstructure:"sslmode"`
	MaxConns          int32  `mapstructure:"max_conns" validate:"min=1"`
	MinConns          int32  `mapstructure:"min_conns" validate:"min=0"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time"`
	HealthCheckPeriod int    `mapstructure:"health_check_period"`
	AutoMigrate       bool   `mapstructure:"auto_migrate"`
}

// RedisConfig controls the tournament summary cache. A disabled cache is a no-op.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr" validate:"required_if=Enabled true"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"min=0"`
	// SummaryTTL is in seconds.
	SummaryTTL int `mapstructure:"summary_ttl" validate:"min=1"`
}

// FantasyConfig holds game rules applied when quoting a squad.
type FantasyConfig struct {
	SquadBudget   int64 `mapstructure:"squad_budget" validate:"min=1"`
	SquadSize     int   `mapstructure:"squad_size" validate:"min=1"`
	ImportWorkers int   `mapstructure:"import_workers" validate:"min=0"`
}
