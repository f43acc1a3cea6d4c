// Package config loads client and mock server settings with viper.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every setting of the client and the mock auth server.
type Config struct {
	// Client
	BackendURL       string
	ResourcesAPI     string
	Lang             string
	LogLevel         string
	SessionFile      string
	RequestTimeout   time.Duration
	PreviewCacheSize int
	PreviewCacheTTL  time.Duration

	// Mock auth server
	AppPort       string
	AppEnv        string
	UsersFile     string
	StoreDriver   string
	DatabaseDSN   string
	JWTSecret     string
	RabbitMQURL   string
	HashPasswords bool
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	v.SetDefault("BACKEND_URL", "http://127.0.0.1:8000")
	v.SetDefault("RESOURCES_API", "http://127.0.0.1:8000/api/resources")
	v.SetDefault("LANG", "en")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SESSION_FILE", filepath.Join(home, ".coursehub", "session.json"))
	v.SetDefault("REQUEST_TIMEOUT", "15s")

	v.SetDefault("APP_PORT", ":3000")
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("USERS_FILE", filepath.Join("data", "users.json"))
	v.SetDefault("AUTH_STORE_DRIVER", "json")
	v.SetDefault("DATABASE_DSN", "file:coursehub.db")
	v.SetDefault("JWT_SECRET", "changeme-secret")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("AUTH_HASH_PASSWORDS", false)
	v.SetDefault("PREVIEW_CACHE_SIZE", 64)
	v.SetDefault("PREVIEW_CACHE_TTL", "10m")
}

// New returns a viper instance with defaults, environment binding and the optional
// coursehub.yaml config file (working directory or ~/.coursehub).
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigName("coursehub")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".coursehub"))
	}
	v.AutomaticEnv()
	return v
}

// ReadFile reads the optional config file. A missing file is not an error.
func ReadFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}
	return nil
}

// Load builds a Config from v.
func Load(v *viper.Viper) *Config {
	return &Config{
		BackendURL:       strings.TrimRight(v.GetString("BACKEND_URL"), "/"),
		ResourcesAPI:     strings.TrimRight(v.GetString("RESOURCES_API"), "/"),
		Lang:             normalizeLang(v.GetString("LANG")),
		LogLevel:         v.GetString("LOG_LEVEL"),
		SessionFile:      v.GetString("SESSION_FILE"),
		RequestTimeout:   v.GetDuration("REQUEST_TIMEOUT"),
		AppPort:          v.GetString("APP_PORT"),
		AppEnv:           v.GetString("APP_ENV"),
		UsersFile:        v.GetString("USERS_FILE"),
		StoreDriver:      strings.ToLower(v.GetString("AUTH_STORE_DRIVER")),
		DatabaseDSN:      v.GetString("DATABASE_DSN"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		RabbitMQURL:      v.GetString("RABBITMQ_URL"),
		HashPasswords:    v.GetBool("AUTH_HASH_PASSWORDS"),
		PreviewCacheSize: v.GetInt("PREVIEW_CACHE_SIZE"),
		PreviewCacheTTL:  v.GetDuration("PREVIEW_CACHE_TTL"),
	}
}

// normalizeLang turns POSIX locales such as zh_CN.UTF-8 into BCP 47 tags.
func normalizeLang(lang string) string {
	if i := strings.IndexAny(lang, ".@"); i >= 0 {
		lang = lang[:i]
	}
	if lang == "C" || lang == "POSIX" {
		return "en"
	}
	return strings.ReplaceAll(lang, "_", "-")
}
