package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Env  string `yaml:"env"`
	HTTP struct {
		Port string `yaml:"port"`
	} `yaml:"http"`
	GRPC struct {
		Port string `yaml:"port"`
	} `yaml:"grpc"`
	Database struct {
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslmode"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
	} `yaml:"redis"`
	Kafka struct {
		Brokers []string `yaml:"brokers"`
		Topic   string   `yaml:"topic"`
		GroupID string   `yaml:"group_id"`
	} `yaml:"kafka"`
	Rabbit struct {
		URL          string `yaml:"url"`
		Queue        string `yaml:"queue"`
		ConfirmQueue string `yaml:"confirm_queue"`
	} `yaml:"rabbit"`
	Mongo struct {
		URI      string `yaml:"uri"`
		Database string `yaml:"database"`
	} `yaml:"mongo"`
	Auth struct {
		Secret string `yaml:"secret"`
	} `yaml:"auth"`
	Otel struct {
		Endpoint    string `yaml:"endpoint"`
		ServiceName string `yaml:"service_name"`
	} `yaml:"otel"`
	Ledger struct {
		MaxAdjustment string `yaml:"max_adjustment"` // 0 - без ограничения
	} `yaml:"ledger"`
	Workers int `yaml:"workers"`
}

// Default - значения по умолчанию для локального запуска
func Default() *Config {
	cfg := &Config{Env: "development", Workers: 5}
	cfg.HTTP.Port = "8080"
	cfg.GRPC.Port = "9090"
	cfg.Database.Host = "localhost"
	cfg.Database.Port = "5432"
	cfg.Database.User = "postgres"
	cfg.Database.Name = "carbon"
	cfg.Database.SSLMode = "disable"
	cfg.Kafka.Topic = "eco-activities"
	cfg.Kafka.GroupID = "carbon_earnings"
	cfg.Rabbit.Queue = "carbon-spends"
	cfg.Rabbit.ConfirmQueue = "carbon-spend-confirms"
	cfg.Mongo.Database = "carbonDB"
	cfg.Otel.ServiceName = "carbon"
	cfg.Ledger.MaxAdjustment = "0"
	return cfg
}

// Load - значения по умолчанию, затем файл из CARBON_CONFIG, затем переменные окружения
func Load() (*Config, error) {
	cfg := Default()
	if path := os.Getenv("CARBON_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setStr(&c.Env, "CARBON_ENV")
	setStr(&c.HTTP.Port, "CARBON_HTTP_PORT")
	setStr(&c.GRPC.Port, "CARBON_GRPC_PORT")
	setStr(&c.Database.Host, "CARBON_DB_HOST")
	setStr(&c.Database.Port, "CARBON_DB_PORT")
	setStr(&c.Database.User, "CARBON_DB_USER")
	setStr(&c.Database.Password, "CARBON_DB_PASSWORD")
	setStr(&c.Database.Name, "CARBON_DB_NAME")
	setStr(&c.Database.SSLMode, "CARBON_DB_SSLMODE")
	setStr(&c.Redis.Addr, "CARBON_CACHE_URL")
	setStr(&c.Redis.User, "CARBON_CACHE_USER")
	setStr(&c.Redis.Password, "CARBON_CACHE_PWD")
	if v := os.Getenv("CARBON_KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	setStr(&c.Kafka.Topic, "CARBON_KAFKA_TOPIC")
	setStr(&c.Kafka.GroupID, "CARBON_KAFKA_GROUP")
	setStr(&c.Rabbit.URL, "CARBON_RABBIT_URL")
	setStr(&c.Rabbit.Queue, "CARBON_RABBIT_QUEUE")
	setStr(&c.Rabbit.ConfirmQueue, "CARBON_RABBIT_CONFIRM_QUEUE")
	setStr(&c.Mongo.URI, "CARBON_MONGO")
	setStr(&c.Mongo.Database, "CARBON_MONGO_DB")
	setStr(&c.Auth.Secret, "CARBON_AUTH_SECRET")
	setStr(&c.Otel.Endpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
	setStr(&c.Otel.ServiceName, "OTEL_SERVICE_NAME")
	setStr(&c.Ledger.MaxAdjustment, "CARBON_MAX_ADJUSTMENT")
	if v := os.Getenv("CARBON_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Workers = n
		}
	}
}

func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database name is required")
	}
	if _, err := c.MaxAdjustment(); err != nil {
		return err
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	return nil
}

// MaxAdjustment - ограничение суммы одного изменения, 0 - без ограничения
func (c *Config) MaxAdjustment() (decimal.Decimal, error) {
	if c.Ledger.MaxAdjustment == "" {
		return decimal.Zero, nil
	}
	limit, err := decimal.NewFromString(c.Ledger.MaxAdjustment)
	if err != nil || limit.IsNegative() {
		return decimal.Zero, fmt.Errorf("CARBON_MAX_ADJUSTMENT %q must be a non-negative decimal", c.Ledger.MaxAdjustment)
	}
	return limit, nil
}

// DSN - строка подключения к PostgreSQL
func (c *Config) DSN() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     net.JoinHostPort(c.Database.Host, c.Database.Port),
		Path:     "/" + c.Database.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.Database.SSLMode),
	}
	return dsn.String()
}

func (c *Config) Development() bool {
	return c.Env == "development"
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
