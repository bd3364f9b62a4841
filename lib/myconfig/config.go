package myconfig

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/MarcGrol/storefront/lib/mylog"
)

const (
	envPrefix   = "STOREFRONT"
	dotEnvFile  = ".env"
	KeyConfig   = "config"
	KeyAPIBase  = "api_base_url"
	KeyPort     = "port"
	KeyBasket   = "basket_file"
	KeyCacheTTL = "catalog_cache_ttl"
	KeyRetries  = "http_retries"
)

type Config struct {
	APIBaseURL      string        `mapstructure:"api_base_url"`
	Port            string        `mapstructure:"port"`
	BasketFile      string        `mapstructure:"basket_file"`
	CatalogCacheTTL time.Duration `mapstructure:"catalog_cache_ttl"`
	HTTPRetries     int           `mapstructure:"http_retries"`
}

var logger = mylog.New("config")

// New returns a viper instance with defaults and environment bindings in place.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyAPIBase, "http://localhost:3333")
	v.SetDefault(KeyPort, "8080")
	v.SetDefault(KeyBasket, "data/basket.json")
	v.SetDefault(KeyCacheTTL, time.Minute)
	v.SetDefault(KeyRetries, 3)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// App Engine and Cloud Run dictate the port
	_ = v.BindEnv(KeyPort, envPrefix+"_PORT", "PORT")

	return v
}

// BindFlags makes command-line flags take precedence over file and environment.
// Flag names use dashes, config keys underscores.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		err = v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
	})
	return err
}

func Load(c context.Context, v *viper.Viper) (Config, error) {
	err := loadDotEnv(c, dotEnvFile)
	if err != nil {
		return Config{}, err
	}

	configFile := v.GetString(KeyConfig)
	if configFile != "" {
		v.SetConfigFile(configFile)
		err := v.ReadInConfig()
		if err != nil {
			return Config{}, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	cfg := Config{}
	err = v.Unmarshal(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}

	err = cfg.validate()
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadDotEnv(c context.Context, filename string) error {
	err := godotenv.Load(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error loading %s: %w", filename, err)
	}
	logger.Log(c, "", mylog.SeverityInfo, "Loaded environment from %s", filename)
	return nil
}

func (cfg *Config) validate() error {
	cfg.APIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")
	u, err := url.Parse(cfg.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid %s %q", KeyAPIBase, cfg.APIBaseURL)
	}
	if cfg.Port == "" {
		return fmt.Errorf("missing %s", KeyPort)
	}
	if cfg.HTTPRetries < 1 {
		cfg.HTTPRetries = 1
	}
	if cfg.CatalogCacheTTL < 0 {
		cfg.CatalogCacheTTL = 0
	}
	return nil
}
