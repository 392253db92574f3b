// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string   `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string   `yaml:"storage_connection_string" env:"DB_URL"`
	MigrationsPath          string   `yaml:"migrations_path" env-default:"./migrations"`
	AllowedOrigins          []string `yaml:"allowed_origins"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	Session                 `yaml:"session"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// Session структура с настройками сессий и сессионной куки.
// Атрибуты куки зависят от окружения: в проде Secure + SameSite=None,
// локально кука ходит по http с SameSite=Lax.
type Session struct {
	TTL             time.Duration `yaml:"ttl" env-default:"24h"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env-default:"1h"`
	CookieSecure    bool          `yaml:"cookie_secure" env-default:"false"`
	CookieDomain    string        `yaml:"cookie_domain"`
	SameSite        string        `yaml:"same_site" env-default:"lax"`
}

// SameSiteMode конвертирует строковое значение конфига в http.SameSite.
func (s Session) SameSiteMode() http.SameSite {
	switch s.SameSite {
	case "none":
		return http.SameSiteNoneMode
	case "strict":
		return http.SameSiteStrictMode
	default:
		return http.SameSiteLaxMode
	}
}

// MustLoad функция для загрузки конфига, путь к файлу берется из CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
