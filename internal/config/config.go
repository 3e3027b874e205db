package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	Broker   BrokerConfig
}

type AppConfig struct {
	Name string
}

type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig holds postgres settings.
type DatabaseConfig struct {
	DSN string
}

type LogConfig struct {
	Level string
}

// BrokerConfig holds event relay settings for the broker-backed binaries.
type BrokerConfig struct {
	KafkaBrokers  []string `mapstructure:"kafka_brokers"`
	RedisAddr     string   `mapstructure:"redis_addr"`
	ConsumerGroup string   `mapstructure:"consumer_group"`
}

// Load reads configuration from file and env. Env var overrides use prefix
// MEDIATOR_, e.g. MEDIATOR_SERVER_ADDR.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("app.name", "mediator")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("database.dsn", "host=localhost user=postgres password=postgres dbname=mediator port=5432 sslmode=disable TimeZone=UTC")
	v.SetDefault("log.level", "info")
	v.SetDefault("broker.kafka_brokers", []string{"localhost:9092"})
	v.SetDefault("broker.redis_addr", "localhost:6379")
	v.SetDefault("broker.consumer_group", "mediator")

	v.SetConfigType("yaml")

	cfgPath := os.Getenv("MEDIATOR_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/mediator")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("MEDIATOR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
