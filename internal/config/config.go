// Package config предоставляет структуры и функции для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env             string `yaml:"env" env-default:"local"`
	HTTPServer      `yaml:"http_server"`
	RedisConnection `yaml:"redis_connection"`
	RabbitMQ        `yaml:"rabbitmq"`
	Table           `yaml:"table"`
	Theme           `yaml:"theme"`
	RateLimit       `yaml:"rate_limit"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP     string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP     time.Duration `yaml:"timeouthttp" env-default:"5s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"15s"`
}

// RedisConnection структура для настройки подключения к redis.
// Пустой адрес означает хранение предпочтений в памяти процесса.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// RabbitMQ настройки публикации событий таблицы. Пустой URL отключает публикацию.
type RabbitMQ struct {
	URL        string        `yaml:"url"`
	Exchange   string        `yaml:"exchange" env-default:"users-table"`
	Retries    int           `yaml:"retries" env-default:"5"`
	RetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// Table настройки таблицы пользователей и генератора данных.
type Table struct {
	PageSize    int           `yaml:"page_size" env-default:"10"`
	UserCount   int           `yaml:"user_count" env-default:"100"`
	MaxBalance  float64       `yaml:"max_balance" env-default:"5000"`
	LoadDelay   time.Duration `yaml:"load_delay" env-default:"1s"`
	LoadTimeout time.Duration `yaml:"load_timeout" env-default:"10s"`
}

// Theme настройки темы оформления.
type Theme struct {
	Key         string `yaml:"key" env-default:"theme"`
	PrefersDark bool   `yaml:"prefers_dark"`
}

// RateLimit настройки ограничения запросов, изменяющих таблицу.
type RateLimit struct {
	RPS   float64 `yaml:"rps" env-default:"20"`
	Burst int     `yaml:"burst" env-default:"40"`
}

// MustLoad загружает конфиг из файла, указанного в CONFIG_PATH, и завершает процесс при ошибке.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Load читает и проверяет конфиг по указанному пути.
func Load(configPath string) (*Config, error) {
	const op = "config.Load"

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, configPath)
	}
	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.PageSize <= 0 {
		return fmt.Errorf("table.page_size must be positive, got %d", c.PageSize)
	}
	if c.UserCount < 0 {
		return fmt.Errorf("table.user_count must not be negative, got %d", c.UserCount)
	}
	if c.MaxBalance <= 0 {
		return fmt.Errorf("table.max_balance must be positive, got %v", c.MaxBalance)
	}
	if c.Key == "" {
		return fmt.Errorf("theme.key must not be empty")
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"Table:\n"+
			"  PageSize: %d\n"+
			"  UserCount: %d\n"+
			"  LoadDelay: %s\n"+
			"Theme:\n"+
			"  Key: %s\n",
		c.Env,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.AddressRedis,
		c.DB,
		c.PageSize,
		c.UserCount,
		c.LoadDelay,
		c.Key,
	)
}
