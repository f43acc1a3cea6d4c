package config_test

import (
	"testing"
	"time"

	"coursehub/internal/config"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)
	cfg := config.Load(v)

	assert.Equal(t, "http://127.0.0.1:8000", cfg.BackendURL)
	assert.Equal(t, "http://127.0.0.1:8000/api/resources", cfg.ResourcesAPI)
	assert.Equal(t, "json", cfg.StoreDriver)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.HashPasswords)
	assert.Equal(t, 64, cfg.PreviewCacheSize)
}

func TestLoadTrimsTrailingSlash(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)
	v.Set("BACKEND_URL", "http://backend:8000/")
	v.Set("AUTH_STORE_DRIVER", "SQLite")

	cfg := config.Load(v)
	assert.Equal(t, "http://backend:8000", cfg.BackendURL)
	assert.Equal(t, "sqlite", cfg.StoreDriver)
}

func TestLoadNormalizesPosixLocale(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)
	for in, want := range map[string]string{"zh_CN.UTF-8": "zh-CN", "C": "en", "en": "en", "de_DE@euro": "de-DE"} {
		v.Set("LANG", in)
		assert.Equal(t, want, config.Load(v).Lang, in)
	}
}
