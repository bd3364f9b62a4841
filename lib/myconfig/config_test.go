package myconfig

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	c := context.TODO()

	t.Run("Defaults", func(t *testing.T) {
		cfg, err := Load(c, New())
		assert.NoError(t, err)
		assert.Equal(t, "http://localhost:3333", cfg.APIBaseURL)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "data/basket.json", cfg.BasketFile)
		assert.Equal(t, time.Minute, cfg.CatalogCacheTTL)
		assert.Equal(t, 3, cfg.HTTPRetries)
	})

	t.Run("Environment", func(t *testing.T) {
		t.Setenv("STOREFRONT_API_BASE_URL", "https://api.example.com/")
		t.Setenv("PORT", "9090")
		t.Setenv("STOREFRONT_CATALOG_CACHE_TTL", "30s")

		cfg, err := Load(c, New())
		assert.NoError(t, err)
		assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
		assert.Equal(t, "9090", cfg.Port)
		assert.Equal(t, 30*time.Second, cfg.CatalogCacheTTL)
	})

	t.Run("Config file", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "storefront.yaml")
		err := os.WriteFile(filename, []byte("api_base_url: http://shop.local:3333\nhttp_retries: 5\n"), 0o644)
		assert.NoError(t, err)

		v := New()
		v.Set(KeyConfig, filename)

		cfg, err := Load(c, v)
		assert.NoError(t, err)
		assert.Equal(t, "http://shop.local:3333", cfg.APIBaseURL)
		assert.Equal(t, 5, cfg.HTTPRetries)
	})

	t.Run("Missing config file", func(t *testing.T) {
		v := New()
		v.Set(KeyConfig, filepath.Join(t.TempDir(), "absent.yaml"))

		_, err := Load(c, v)
		assert.Error(t, err)
	})

	t.Run("Flags win", func(t *testing.T) {
		t.Setenv("STOREFRONT_BASKET_FILE", "env.json")

		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.String("basket-file", "", "")
		assert.NoError(t, flags.Parse([]string{"--basket-file", "flag.json"}))

		v := New()
		assert.NoError(t, BindFlags(v, flags))

		cfg, err := Load(c, v)
		assert.NoError(t, err)
		assert.Equal(t, "flag.json", cfg.BasketFile)
	})

	t.Run("Invalid base url", func(t *testing.T) {
		t.Setenv("STOREFRONT_API_BASE_URL", "not a url")

		_, err := Load(c, New())
		assert.Error(t, err)
	})

	t.Run("Retries at least once", func(t *testing.T) {
		t.Setenv("STOREFRONT_HTTP_RETRIES", "0")

		cfg, err := Load(c, New())
		assert.NoError(t, err)
		assert.Equal(t, 1, cfg.HTTPRetries)
	})
}

func TestLoadDotEnv(t *testing.T) {
	filename := filepath.Join(t.TempDir(), ".env")
	err := os.WriteFile(filename, []byte("STOREFRONT_TEST_DOTENV=loaded\n"), 0o644)
	assert.NoError(t, err)
	t.Cleanup(func() { os.Unsetenv("STOREFRONT_TEST_DOTENV") })

	assert.NoError(t, loadDotEnv(context.TODO(), filename))
	assert.Equal(t, "loaded", os.Getenv("STOREFRONT_TEST_DOTENV"))

	assert.NoError(t, loadDotEnv(context.TODO(), filepath.Join(t.TempDir(), "absent.env")))
}
