package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/matzehuels/commitgraph/internal/server"
	"github.com/matzehuels/commitgraph/pkg/cache"
	"github.com/matzehuels/commitgraph/pkg/pipeline"
)

// envPrefix prefixes environment overrides, e.g. COMMITGRAPH_CACHE_BACKEND.
const envPrefix = "COMMITGRAPH"

// Config holds user settings from the config file and environment.
// Command-line flags take precedence over every field.
type Config struct {
	// Template overrides the preset named by scripts when set.
	Template string      `mapstructure:"template"`
	Formats  []string    `mapstructure:"formats"`
	Cache    CacheConfig `mapstructure:"cache"`
	Serve    ServeConfig `mapstructure:"serve"`
}

// CacheConfig selects the artifact cache backend.
type CacheConfig struct {
	Backend   string        `mapstructure:"backend"`
	RedisAddr string        `mapstructure:"redis_addr"`
	TTL       time.Duration `mapstructure:"ttl"`
}

// ServeConfig configures the serve command.
type ServeConfig struct {
	Addr string `mapstructure:"addr"`
}

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("template", "")
	v.SetDefault("formats", []string{pipeline.FormatSVG})
	v.SetDefault("cache.backend", cache.BackendFile)
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.ttl", pipeline.DefaultTTL)
	v.SetDefault("serve.addr", server.DefaultAddr)
}

// loadConfig reads path, or config.yaml in the config directory when path
// is empty. A missing default file is not an error; a missing explicit one
// is.
func loadConfig(path string) (Config, error) {
	v := viper.New()
	setConfigDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else if dir, err := configDir(); err == nil {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if err := pipeline.ValidateFormats(c.Formats); err != nil {
		return fmt.Errorf("config formats: %w", err)
	}
	if err := pipeline.ValidateTemplate(c.Template); err != nil {
		return fmt.Errorf("config template: %w", err)
	}
	switch c.Cache.Backend {
	case cache.BackendNone, cache.BackendFile, cache.BackendMemory, cache.BackendRedis:
	default:
		return fmt.Errorf("config cache.backend: unknown backend %q", c.Cache.Backend)
	}
	return nil
}

// configDir returns the config directory using XDG standard (~/.config/commitgraph/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
