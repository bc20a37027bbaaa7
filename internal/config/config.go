// Package config предоставляет структуры и функции для загрузки конфигурации
// сервиса из YAML-файла и переменных окружения.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Окружения запуска.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

var (
	// ErrNoStorage возвращается, если не задана строка подключения к хранилищу.
	ErrNoStorage = errors.New("storage connection string is not set")
	// ErrNoJWTSecret возвращается, если не задан секрет подписи токенов.
	ErrNoJWTSecret = errors.New("jwt secret key is not set")
	// ErrTokenTTL возвращается, если время жизни токена отличается от SessionTTL.
	ErrTokenTTL = errors.New("token ttl must be 1h")
)

// SessionTTL время жизни сессионного токена. Обновления токена нет.
const SessionTTL = time.Hour

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"APP_ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"DATABASE_URL"`
	MigrationsEnabled       bool   `yaml:"migrations_enabled" env:"MIGRATIONS_ENABLED" env-default:"true"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	RedisConnection         `yaml:"redis_connection"`
	Generation              `yaml:"generation"`
	RabbitMQ                `yaml:"rabbitmq"`
	RateLimit               `yaml:"rate_limit"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeout" env-default:"15s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// JWTToken структура для работы с сессионным токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"1h"`
}

// RedisConnection структура для настройки подключения к redis.
// Пустой адрес отключает кеш.
type RedisConnection struct {
	AddressRedis string        `yaml:"address" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeout" env-default:"3s"`
}

// Generation структура для настройки сервиса генерации текста
type Generation struct {
	APIKey         string        `yaml:"api_key" env:"OPENAI_API_KEY"`
	BaseURL        string        `yaml:"base_url" env:"OPENAI_BASE_URL" env-default:"https://api.openai.com/v1"`
	QuestionsModel string        `yaml:"questions_model" env-default:"gpt-3.5-turbo"`
	InsightsModel  string        `yaml:"insights_model" env-default:"gpt-4-turbo"`
	Timeout        time.Duration `yaml:"timeout" env-default:"30s"`
	AnalyzeTimeout time.Duration `yaml:"analyze_timeout" env-default:"10s"`
}

// RabbitMQ структура для настройки публикации событий.
// Пустой URL отключает публикацию.
type RabbitMQ struct {
	URL      string `yaml:"url" env:"RABBITMQ_URL"`
	Exchange string `yaml:"exchange" env-default:"surveys"`
}

// RateLimit ограничивает частоту запросов к эндпоинтам генерации на пользователя.
type RateLimit struct {
	RPS   float64 `yaml:"rps" env-default:"1"`
	Burst int     `yaml:"burst" env-default:"5"`
}

// IsProduction сообщает, запущен ли сервис в production-окружении.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProd
}

// Validate проверяет обязательные параметры.
func (c *Config) Validate() error {
	if c.StorageConnectionString == "" {
		return ErrNoStorage
	}
	if c.JWTSecretKey == "" {
		return ErrNoJWTSecret
	}
	if c.TokenTTL != SessionTTL {
		return fmt.Errorf("%w, got %s", ErrTokenTTL, c.TokenTTL)
	}
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("unknown env %q", c.Env)
	}
	return nil
}

// Load читает конфиг по пути path, дополняет его переменными окружения
// и проверяет обязательные параметры.
func Load(path string) (*Config, error) {
	const op = "config.Load"
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad загружает конфиг по пути из CONFIG_PATH и завершает процесс при ошибке.
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

// String возвращает конфиг без секретов для вывода в лог.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"StorageConnectionString: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"JWTToken:\n"+
			"  JWTSecretKey: %s\n"+
			"  TokenTTL: %s\n"+
			"Redis:\n"+
			"  Addr: %s\n"+
			"Generation:\n"+
			"  BaseURL: %s\n"+
			"  APIKey: %s\n"+
			"  AnalyzeTimeout: %s\n"+
			"RabbitMQ:\n"+
			"  Exchange: %s\n",
		c.Env,
		mask(c.StorageConnectionString),
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		mask(c.JWTSecretKey),
		c.TokenTTL,
		c.AddressRedis,
		c.BaseURL,
		mask(c.APIKey),
		c.AnalyzeTimeout,
		c.Exchange,
	)
}

func mask(s string) string {
	if s == "" {
		return "<unset>"
	}
	return "***"
}
