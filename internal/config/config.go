// Package config загружает настройки клиента и сервера через viper:
// значения по умолчанию, затем yaml файл, затем переменные окружения
// и флаги командной строки.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ClientEnvPrefix = "PORTAL"
	ServerEnvPrefix = "PORTAL_SERVER"
)

// Client настройки CLI клиента
type Client struct {
	Server    EndpointConfig  `mapstructure:"server"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Broadcast BroadcastConfig `mapstructure:"broadcast"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// EndpointConfig адрес portal API
type EndpointConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// StorageConfig локальный профиль (bbolt файл)
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

// BroadcastConfig канал рассылки между процессами.
// Пустой RedisURL ограничивает рассылку текущим процессом.
type BroadcastConfig struct {
	RedisURL string `mapstructure:"redis_url"`
	Channel  string `mapstructure:"channel"`
}

// LoggingConfig уровень и формат логов
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text, logfmt, json
}

// Server настройки reference сервера
type Server struct {
	JWT       JWTConfig       `mapstructure:"jwt"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Addr      string          `mapstructure:"addr"`
	DBPath    string          `mapstructure:"db_path"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// JWTConfig параметры access token
type JWTConfig struct {
	Secret    string        `mapstructure:"secret"`
	AccessTTL time.Duration `mapstructure:"access_ttl"`
}

// RateLimitConfig ограничение запросов на вход
type RateLimitConfig struct {
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// DefaultClient возвращает настройки клиента по умолчанию
func DefaultClient() *Client {
	return &Client{
		Server: EndpointConfig{
			URL:     "http://localhost:8080",
			Timeout: 15 * time.Second,
		},
		Storage: StorageConfig{
			Path: filepath.Join(defaultDataDir(), "profile.db"),
		},
		Broadcast: BroadcastConfig{
			Channel: "portalsync:drafts",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// DefaultServer возвращает настройки сервера по умолчанию
func DefaultServer() *Server {
	return &Server{
		Addr:   ":8080",
		DBPath: "portal.db",
		JWT: JWTConfig{
			AccessTTL: 15 * time.Minute,
		},
		RateLimit: RateLimitConfig{
			Requests: 10,
			Window:   time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// NewClientViper создает viper с умолчаниями клиента и префиксом PORTAL_
func NewClientViper() *viper.Viper {
	v := newViper(ClientEnvPrefix)
	d := DefaultClient()
	v.SetDefault("server.url", d.Server.URL)
	v.SetDefault("server.timeout", d.Server.Timeout)
	v.SetDefault("storage.path", d.Storage.Path)
	v.SetDefault("broadcast.redis_url", d.Broadcast.RedisURL)
	v.SetDefault("broadcast.channel", d.Broadcast.Channel)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	return v
}

// NewServerViper создает viper с умолчаниями сервера и префиксом PORTAL_SERVER_
func NewServerViper() *viper.Viper {
	v := newViper(ServerEnvPrefix)
	d := DefaultServer()
	v.SetDefault("addr", d.Addr)
	v.SetDefault("db_path", d.DBPath)
	v.SetDefault("jwt.secret", d.JWT.Secret)
	v.SetDefault("jwt.access_ttl", d.JWT.AccessTTL)
	v.SetDefault("rate_limit.requests", d.RateLimit.Requests)
	v.SetDefault("rate_limit.window", d.RateLimit.Window)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	return v
}

// LoadClient читает настройки клиента. configFile пустой: ищется
// portal.yaml в каталоге конфигурации и в текущем каталоге.
func LoadClient(v *viper.Viper, configFile string) (*Client, error) {
	cfg := &Client{}
	if err := load(v, configFile, "portal", cfg); err != nil {
		return nil, err
	}
	if cfg.Server.URL == "" {
		return nil, fmt.Errorf("server url is required")
	}
	if cfg.Storage.Path == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	return cfg, nil
}

// ReadServer читает настройки сервера из portal-server.yaml без проверки
// параметров HTTP части (нужно командам обслуживания БД)
func ReadServer(v *viper.Viper, configFile string) (*Server, error) {
	cfg := &Server{}
	if err := load(v, configFile, "portal-server", cfg); err != nil {
		return nil, err
	}
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("db_path is required")
	}
	return cfg, nil
}

// LoadServer читает и проверяет настройки для запуска сервера
func LoadServer(v *viper.Viper, configFile string) (*Server, error) {
	cfg, err := ReadServer(v, configFile)
	if err != nil {
		return nil, err
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required (set %s_JWT_SECRET)", ServerEnvPrefix)
	}
	if cfg.JWT.AccessTTL <= 0 {
		return nil, fmt.Errorf("jwt access_ttl must be positive")
	}
	if cfg.RateLimit.Requests <= 0 || cfg.RateLimit.Window <= 0 {
		return nil, fmt.Errorf("rate_limit requests and window must be positive")
	}
	return cfg, nil
}

func newViper(prefix string) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func load(v *viper.Viper, configFile, name string, out any) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(name)
		v.AddConfigPath(defaultConfigDir())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Файл конфигурации необязателен
	}

	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("error parsing config: %w", err)
	}
	return nil
}

func defaultConfigDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), "portalsync")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "portalsync")
}

func defaultDataDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), "portalsync")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "portalsync")
}
