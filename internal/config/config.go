package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"property-storefront/internal/apartments"
	"property-storefront/internal/seed"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Seed      SeedConfig      `yaml:"seed"`
	Orders    OrdersConfig    `yaml:"orders"`
	Search    SearchConfig    `yaml:"search"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Logging   LoggingConfig   `yaml:"logging"`
	Timezone  string          `yaml:"timezone"`
}

// ServerConfig contains HTTP listener settings
type ServerConfig struct {
	Port        string   `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// StorageConfig selects and configures the persistence backend
type StorageConfig struct {
	// Backend is one of memory, file, sqlite, postgres, mysql, redis, mongo.
	Backend  string         `yaml:"backend"`
	Dir      string         `yaml:"dir"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	MySQL    MySQLConfig    `yaml:"mysql"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	Mongo    MongoConfig    `yaml:"mongo"`
}

// SQLiteConfig contains the database file location
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// MySQLConfig contains MySQL connection settings
type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// DSN renders the go-sql-driver connection string.
func (c MySQLConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.Database)
}

// PostgresConfig contains PostgreSQL connection settings
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN renders the lib/pq connection string.
func (c PostgresConfig) DSN() string {
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, sslmode)
}

// RedisConfig contains Redis connection settings
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// MongoConfig contains MongoDB connection settings
type MongoConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

// SeedConfig sizes the generated datasets
type SeedConfig struct {
	Properties seed.Sizes       `yaml:"properties"`
	Apartments apartments.Sizes `yaml:"apartments"`
}

// OrdersConfig contains order lifecycle settings
type OrdersConfig struct {
	SigningDelayMillis int    `yaml:"signing_delay_ms"`
	ContractURLFormat  string `yaml:"contract_url_format"`
}

// SigningDelay returns the pause before a contract is signed.
func (c OrdersConfig) SigningDelay() time.Duration {
	return time.Duration(c.SigningDelayMillis) * time.Millisecond
}

// SearchConfig contains search engine settings
type SearchConfig struct {
	Meilisearch    MeilisearchConfig `yaml:"meilisearch"`
	ReindexEnabled bool              `yaml:"reindex_enabled"`
	ReindexTime    string            `yaml:"reindex_time"`
}

// Enabled reports whether a Meilisearch host is configured.
func (c SearchConfig) Enabled() bool {
	return c.Meilisearch.Host != ""
}

// MeilisearchConfig contains Meilisearch connection settings
type MeilisearchConfig struct {
	Host   string `yaml:"host"`
	APIKey string `yaml:"api_key"`
}

// RateLimitConfig limits how often one client may place orders
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requests_per_minute"`
	RequestsPerHour   int  `yaml:"requests_per_hour"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Environment string `yaml:"environment"`
	LogRequests bool   `yaml:"log_requests"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        "8084",
			CORSOrigins: []string{"http://localhost:5173", "http://localhost:3000"},
		},
		Storage: StorageConfig{
			Backend: "file",
			Dir:     "data",
			SQLite:  SQLiteConfig{Path: "data/storefront.db"},
			MySQL:   MySQLConfig{Host: "mysql", Port: 3306, User: "storefront", Database: "storefront"},
			Postgres: PostgresConfig{
				Host: "db", Port: 5432, User: "storefront", Database: "storefront", SSLMode: "disable",
			},
			Redis: RedisConfig{Addr: "localhost:6379", Prefix: "storefront:"},
			Mongo: MongoConfig{URI: "mongodb://localhost:27017", Database: "storefront", Collection: "store_entries"},
		},
		Seed: SeedConfig{
			Properties: seed.DefaultSizes,
			Apartments: apartments.DefaultSizes,
		},
		Orders: OrdersConfig{
			SigningDelayMillis: 1500,
			ContractURLFormat:  "/api/orders/%s/contract",
		},
		Search: SearchConfig{
			ReindexEnabled: false,
			ReindexTime:    "03:00",
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: 10,
			RequestsPerHour:   100,
		},
		Logging: LoggingConfig{
			Level:       "info",
			Environment: "production",
			LogRequests: true,
		},
		Timezone: "Asia/Kolkata",
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(filepath string) (*Config, error) {
	// Start with default config
	config := DefaultConfig()

	// If file doesn't exist, return default config
	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Load reads .env (when present), the YAML file named by CONFIG_PATH and then
// applies environment overrides.
func Load() (*Config, error) {
	// .env is optional; real environment variables win over it
	_ = godotenv.Load()

	cfg, err := LoadConfig(GetEnv("CONFIG_PATH", "config/storefront.yaml"))
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv overrides file settings with environment variables.
func (c *Config) ApplyEnv() {
	c.Server.Port = GetEnv("PORT", c.Server.Port)
	c.Storage.Backend = GetEnv("STORAGE_BACKEND", c.Storage.Backend)
	c.Storage.Dir = GetEnv("STORAGE_DIR", c.Storage.Dir)
	c.Storage.SQLite.Path = GetEnv("SQLITE_PATH", c.Storage.SQLite.Path)

	switch c.Storage.Backend {
	case "mysql":
		c.Storage.MySQL.Host = GetEnv("DB_HOST", c.Storage.MySQL.Host)
		c.Storage.MySQL.Port = getEnvInt("DB_PORT", c.Storage.MySQL.Port)
		c.Storage.MySQL.User = GetEnv("DB_USER", c.Storage.MySQL.User)
		c.Storage.MySQL.Password = GetEnv("DB_PASSWORD", c.Storage.MySQL.Password)
		c.Storage.MySQL.Database = GetEnv("DB_NAME", c.Storage.MySQL.Database)
	case "postgres":
		c.Storage.Postgres.Host = GetEnv("DB_HOST", c.Storage.Postgres.Host)
		c.Storage.Postgres.Port = getEnvInt("DB_PORT", c.Storage.Postgres.Port)
		c.Storage.Postgres.User = GetEnv("DB_USER", c.Storage.Postgres.User)
		c.Storage.Postgres.Password = GetEnv("DB_PASSWORD", c.Storage.Postgres.Password)
		c.Storage.Postgres.Database = GetEnv("DB_NAME", c.Storage.Postgres.Database)
	}

	c.Storage.Redis.Addr = GetEnv("REDIS_ADDR", c.Storage.Redis.Addr)
	c.Storage.Redis.Password = GetEnv("REDIS_PASSWORD", c.Storage.Redis.Password)
	c.Storage.Mongo.URI = GetEnv("MONGO_URI", c.Storage.Mongo.URI)

	// Meilisearch settings from the file take precedence over the environment
	c.Search.Meilisearch.Host = GetEnvOrConfig(c.Search.Meilisearch.Host, "MEILISEARCH_HOST", "")
	c.Search.Meilisearch.APIKey = GetEnvOrConfig(c.Search.Meilisearch.APIKey, "MEILISEARCH_KEY", "")

	c.Orders.SigningDelayMillis = getEnvInt("SIGNING_DELAY_MS", c.Orders.SigningDelayMillis)
	c.Logging.Level = GetEnv("LOG_LEVEL", c.Logging.Level)
	c.Logging.Environment = GetEnv("APP_ENV", c.Logging.Environment)
}

// GetEnv returns the environment variable or defaultValue when unset.
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvOrConfig returns config value if set, otherwise falls back to environment variable, then default
func GetEnvOrConfig(configValue, envKey, defaultValue string) string {
	if configValue != "" {
		return configValue
	}
	return GetEnv(envKey, defaultValue)
}

func getEnvInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return v
}
