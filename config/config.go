// Package config loads application configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Port           string
	Environment    string
	LoggingConfig  LoggingConfig
	PostgresConfig PostgresConfig
	Neo4jConfig    Neo4jConfig
	RedisConfig    RedisConfig
	LoaderConfig   LoaderConfig
	StatsConfig    StatsConfig
	ReloadConfig   ReloadConfig
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string
	Format string
}

// PostgresConfig holds PostgreSQL connection configuration.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	Enabled  bool
}

// Neo4jConfig holds Neo4j connection configuration. Export is optional;
// when disabled the graph lives only in memory.
type Neo4jConfig struct {
	URI      string
	User     string
	Password string
	Enabled  bool
}

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Enabled  bool
}

// LoaderConfig holds dataset source configuration.
type LoaderConfig struct {
	AirportsURL  string
	RoutesURL    string
	AirportsFile string
	RoutesFile   string
}

// StatsConfig holds statistics computation configuration.
type StatsConfig struct {
	DiameterConcurrency int
	CacheTTL            time.Duration
}

// ReloadConfig holds the scheduled dataset reload configuration.
// SnapshotMaxAge bounds how old a snapshot may be before the health report
// flags it stale; zero disables the check.
type ReloadConfig struct {
	CronExpression string
	SnapshotMaxAge time.Duration
	Enabled        bool
}

// Load loads configuration from environment variables. A .env file in the
// working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LoggingConfig: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		PostgresConfig: PostgresConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "routegraph"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Enabled:  getEnvBool("DB_ENABLED", false),
		},
		Neo4jConfig: Neo4jConfig{
			URI:      getEnv("NEO4J_URI", "neo4j://localhost:7687"),
			User:     getEnv("NEO4J_USER", "neo4j"),
			Password: getEnv("NEO4J_PASSWORD", "password"),
			Enabled:  getEnvBool("NEO4J_ENABLED", false),
		},
		RedisConfig: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			Enabled:  getEnvBool("REDIS_ENABLED", false),
		},
		LoaderConfig: LoaderConfig{
			AirportsURL:  getEnv("AIRPORTS_URL", ""),
			RoutesURL:    getEnv("ROUTES_URL", ""),
			AirportsFile: getEnv("AIRPORTS_FILE", "data/airports.dat"),
			RoutesFile:   getEnv("ROUTES_FILE", "data/routes.dat"),
		},
		StatsConfig: StatsConfig{
			DiameterConcurrency: getEnvInt("DIAMETER_CONCURRENCY", 0),
			CacheTTL:            getEnvDuration("STATS_CACHE_TTL", time.Hour),
		},
		ReloadConfig: ReloadConfig{
			CronExpression: getEnv("RELOAD_CRON", "0 4 * * *"),
			SnapshotMaxAge: getEnvDuration("SNAPSHOT_MAX_AGE", 0),
			Enabled:        getEnvBool("RELOAD_ENABLED", false),
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
