package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Host string `yaml:"host" json:"host"`
		Port int    `yaml:"port" json:"port"`
	} `yaml:"server" json:"server"`
	Database struct {
		Driver          string `yaml:"driver" json:"driver"` // postgres or sqlite
		DSN             string `yaml:"dsn" json:"dsn"`
		SQLitePath      string `yaml:"sqlite_path" json:"sqlite_path"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime"` // seconds
	} `yaml:"database" json:"database"`
	Redis struct {
		Address  string `yaml:"address" json:"address"`
		Password string `yaml:"password" json:"password"`
		DB       int    `yaml:"db" json:"db"`
	} `yaml:"redis" json:"redis"`
	Kafka struct {
		Brokers []string `yaml:"brokers" json:"brokers"`
		Topic   string   `yaml:"topic" json:"topic"`
	} `yaml:"kafka" json:"kafka"`
	Telemetry struct {
		TracingEnabled bool `yaml:"tracing_enabled" json:"tracing_enabled"`
	} `yaml:"telemetry" json:"telemetry"`
	RateLimit string `yaml:"rate_limit" json:"rate_limit"` // limiter formatted rate, e.g. "100-M"
	LogLevel  string `yaml:"log_level" json:"log_level"`
}

// LoadConfig loads the application configuration from the environment with
// optional config.yaml overrides.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ROSTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.sqlite_path", "roster.db")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 3600)
	v.SetDefault("kafka.topic", "roster.records")
	v.SetDefault("rate_limit", "100-M")
	v.SetDefault("log_level", "info")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := &Config{}
	cfg.Server.Host = v.GetString("server.host")
	cfg.Server.Port = v.GetInt("server.port")
	cfg.Database.Driver = v.GetString("database.driver")
	cfg.Database.DSN = v.GetString("database.dsn")
	cfg.Database.SQLitePath = v.GetString("database.sqlite_path")
	cfg.Database.MaxOpenConns = v.GetInt("database.max_open_conns")
	cfg.Database.MaxIdleConns = v.GetInt("database.max_idle_conns")
	cfg.Database.ConnMaxLifetime = v.GetInt("database.conn_max_lifetime")
	cfg.Redis.Address = v.GetString("redis.address")
	cfg.Redis.Password = v.GetString("redis.password")
	cfg.Redis.DB = v.GetInt("redis.db")
	cfg.Kafka.Brokers = v.GetStringSlice("kafka.brokers")
	cfg.Kafka.Topic = v.GetString("kafka.topic")
	cfg.Telemetry.TracingEnabled = v.GetBool("telemetry.tracing_enabled")
	cfg.RateLimit = v.GetString("rate_limit")
	cfg.LogLevel = v.GetString("log_level")

	return cfg, nil
}
