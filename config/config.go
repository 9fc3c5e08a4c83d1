package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/yaml.v3"
)

const (
	CONFIG_PATH     = "./res/config.yaml"
	CONFIG_PATH_ENV = "SAKURA_CONFIG"

	DB_TYPE_FILE     = "file"
	DB_TYPE_MONGO    = "mongo"
	DB_TYPE_POSTGRES = "postgres"
	DB_TYPE_SQLITE   = "sqlite"
	DB_TYPE_S3       = "s3"
	DB_TYPE_REDIS    = "redis"
)

// envOverrides maps environment variables onto dotted config keys.
var envOverrides = map[string]string{
	"PORT":          "port",
	"API_KEY":       "api_key",
	"HOST":          "host",
	"LOG_LEVEL":     "loglevel",
	"DATABASE_TYPE": "database.type",
	"USERS_FILE":    "database.file.path",
}

// ServiceConfig holds the configuration for the service.
type ServiceConfig struct {
	ServiceName     string          `yaml:"service_name" validate:"required"`
	LogLevel        string          `yaml:"loglevel" validate:"required"`
	LogFile         string          `yaml:"log_file"`
	Host            string          `yaml:"host"`
	Port            string          `yaml:"port" validate:"required,numeric"`
	APIKey          string          `yaml:"api_key" validate:"required"`
	APIPrefix       string          `yaml:"api_prefix" validate:"omitempty,startswith=/,endsnotwith=/"`
	Hasher          HasherConfig    `yaml:"hasher"`
	RateLimit       RateLimitConfig `yaml:"rate_limit"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout" validate:"min=0"`
	Database        Database        `yaml:"database"`
}

type HasherConfig struct {
	// Cost of 0 selects the bcrypt default.
	Cost int `yaml:"cost" validate:"omitempty,min=4,max=31"`
}

// RateLimitConfig limits login attempts per client. Zero disables it.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" validate:"min=0"`
	Burst             int     `yaml:"burst" validate:"min=0"`
	// TrustedProxies lists addresses or CIDR ranges whose forwarding headers
	// identify the client. Empty means the peer address is always used.
	TrustedProxies []string `yaml:"trusted_proxies" validate:"omitempty,dive,ip|cidr"`
}

type Database struct {
	Type     string         `yaml:"type" validate:"required,oneof=file mongo postgres sqlite s3 redis"`
	File     FileConfig     `yaml:"file" validate:"-"`
	MongoDB  MongoDBConfig  `yaml:"mongodb" validate:"-"`
	Postgres PostgresConfig `yaml:"postgres" validate:"-"`
	SQLite   SQLiteConfig   `yaml:"sqlite" validate:"-"`
	S3       S3Config       `yaml:"s3" validate:"-"`
	Redis    RedisConfig    `yaml:"redis" validate:"-"`
}

type FileConfig struct {
	Path string `yaml:"path" validate:"required"`
}

type MongoDBConfig struct {
	DSN          string             `yaml:"dsn" validate:"required"`
	DatabaseName string             `yaml:"database_name" validate:"required"`
	Collection   string             `yaml:"collection" validate:"required"`
	DocumentID   string             `yaml:"document_id" validate:"required"`
	Timeout      time.Duration      `yaml:"timeout"`
	Options      MongoServerOptions `yaml:"mongo_server_options"`
}

type PostgresConfig struct {
	DSN     string      `yaml:"dsn" validate:"required"`
	Options PoolOptions `yaml:"pool"`
}

type SQLiteConfig struct {
	Path string `yaml:"path" validate:"required"`
}

type S3Config struct {
	Bucket       string `yaml:"bucket" validate:"required"`
	Key          string `yaml:"key" validate:"required"`
	Region       string `yaml:"region" validate:"required"`
	Endpoint     string `yaml:"endpoint" validate:"omitempty,url"`
	UsePathStyle bool   `yaml:"use_path_style"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" validate:"required,hostname_port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db" validate:"min=0"`
	Key      string `yaml:"key" validate:"required"`
}

type MongoServerOptions struct {
	APIVersion           string `yaml:"api_version"`
	SetStrict            bool   `yaml:"set_strict"`
	SetDeprecationErrors bool   `yaml:"set_deprecation_errors"`
}

type PoolOptions struct {
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

func defaultConfig() *ServiceConfig {
	return &ServiceConfig{
		ServiceName:     "sakura",
		LogLevel:        "info",
		ShutdownTimeout: 10 * time.Second,
		Database: Database{
			Type:  DB_TYPE_FILE,
			File:  FileConfig{Path: "users.json"},
			S3:    S3Config{Key: "users.json"},
			Redis: RedisConfig{Key: "sakura:users"},
			MongoDB: MongoDBConfig{
				DatabaseName: "sakura",
				Collection:   "users",
				DocumentID:   "users",
				Timeout:      10 * time.Second,
			},
		},
	}
}

// Path returns the config file location, taken from SAKURA_CONFIG when set.
func Path() string {
	if p := os.Getenv(CONFIG_PATH_ENV); p != "" {
		return p
	}
	return CONFIG_PATH
}

// ReadLocalConfig reads the service configuration from a YAML file at the specified path.
// Environment variables listed in envOverrides take precedence over the file.
// The result is validated; a missing api_key or port is an error.
func ReadLocalConfig(configPath string) (*ServiceConfig, error) {
	yamlFile, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	raw := map[string]interface{}{}
	if err := yaml.Unmarshal(yamlFile, &raw); err != nil {
		return nil, err
	}
	applyEnv(raw)

	config := defaultConfig()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		TagName:          "yaml",
		Result:           config,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the top level settings and the settings of the selected backend only.
func (c *ServiceConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	var backend interface{}
	switch c.Database.Type {
	case DB_TYPE_FILE:
		backend = c.Database.File
	case DB_TYPE_MONGO:
		backend = c.Database.MongoDB
	case DB_TYPE_POSTGRES:
		backend = c.Database.Postgres
	case DB_TYPE_SQLITE:
		backend = c.Database.SQLite
	case DB_TYPE_S3:
		backend = c.Database.S3
	case DB_TYPE_REDIS:
		backend = c.Database.Redis
	}
	if err := validate.Struct(backend); err != nil {
		return fmt.Errorf("invalid %s database config: %w", c.Database.Type, err)
	}
	return nil
}

func applyEnv(raw map[string]interface{}) {
	for env, key := range envOverrides {
		if value, ok := os.LookupEnv(env); ok && value != "" {
			setPath(raw, strings.Split(key, "."), value)
		}
	}
}

func setPath(m map[string]interface{}, path []string, value string) {
	if len(path) == 1 {
		m[path[0]] = value
		return
	}
	child, ok := m[path[0]].(map[string]interface{})
	if !ok {
		child = map[string]interface{}{}
		m[path[0]] = child
	}
	setPath(child, path[1:], value)
}

func BuildServerAPIOptions(cfg MongoServerOptions) *options.ServerAPIOptions {
	opts := options.ServerAPI(options.ServerAPIVersion(cfg.APIVersion))
	opts.SetStrict(cfg.SetStrict)
	opts.SetDeprecationErrors(cfg.SetDeprecationErrors)

	return opts
}
