// Package config loads the asset host configuration from defaults, an optional
// config file, a .env file and ASSETS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"kilometers.ai/assets/internal/core/asset"
)

const (
	// EnvPrefix prefixes every environment override, e.g. ASSETS_BASE_URL
	EnvPrefix = "ASSETS"
	// ConfigFileName is the config file looked up in the working directory
	ConfigFileName = "assets"
	// DefaultEnvFile is loaded when present
	DefaultEnvFile = ".env"
)

// Config holds the settings of the asset host
type Config struct {
	BaseURL      string `mapstructure:"base_url" json:"base_url" yaml:"base_url"`
	ManifestsDir string `mapstructure:"manifests_dir" json:"manifests_dir" yaml:"manifests_dir"`
	Strict       bool   `mapstructure:"strict" json:"strict" yaml:"strict"`
	LogLevel     string `mapstructure:"log_level" json:"log_level" yaml:"log_level"`
	LogFormat    string `mapstructure:"log_format" json:"log_format" yaml:"log_format"`
	ListenAddr   string `mapstructure:"listen_addr" json:"listen_addr" yaml:"listen_addr"`
	SiteTitle    string `mapstructure:"site_title" json:"site_title" yaml:"site_title"`
}

// DefaultConfig returns the configuration used when nothing is set
func DefaultConfig() *Config {
	return &Config{
		BaseURL:      "/",
		ManifestsDir: "./plugins",
		Strict:       false,
		LogLevel:     "info",
		LogFormat:    "text",
		ListenAddr:   ":8080",
		SiteTitle:    "Asset demo",
	}
}

// Policy returns the normalization policy selected by Strict
func (c *Config) Policy() asset.Policy {
	if c.Strict {
		return asset.PolicyStrict
	}
	return asset.PolicyPermissive
}

// LoadOptions controls where configuration is read from
type LoadOptions struct {
	// ConfigFile is used exclusively when set; it must exist
	ConfigFile string
	// EnvFile defaults to .env; a missing file is ignored
	EnvFile string
	// Overrides take precedence over every other source (command-line flags)
	Overrides map[string]interface{}
}

// Load resolves the configuration. Precedence, lowest first: defaults,
// config file, the .env file, the process environment, overrides. The .env
// file is read into the loader only; the process environment is left alone.
func Load(opts LoadOptions) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	dotenv, err := readEnvFile(envFile)
	if err != nil {
		return nil, err
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("base_url", defaults.BaseURL)
	v.SetDefault("manifests_dir", defaults.ManifestsDir)
	v.SetDefault("strict", defaults.Strict)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_format", defaults.LogFormat)
	v.SetDefault("listen_addr", defaults.ListenAddr)
	v.SetDefault("site_title", defaults.SiteTitle)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.SetConfigName(ConfigFileName)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	for key, value := range dotenv {
		v.Set(key, value)
	}
	for key, value := range opts.Overrides {
		v.Set(key, value)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.BaseURL = NormalizeBaseURL(cfg.BaseURL)

	if err := NewConfigValidator().Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// readEnvFile returns the ASSETS_* entries of path as config keys that are not
// already set in the process environment. A missing file yields nothing.
func readEnvFile(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load env file %s: %w", path, err)
	}

	keys := make(map[string]string, len(values))
	for name, value := range values {
		key, ok := strings.CutPrefix(name, EnvPrefix+"_")
		if !ok || key == "" {
			continue
		}
		if _, set := os.LookupEnv(name); set {
			continue
		}
		keys[strings.ToLower(key)] = value
	}
	return keys, nil
}

// NormalizeBaseURL makes sure the base URL ends with a slash so that
// <base>plugins/<source> is well formed
func NormalizeBaseURL(base string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return "/"
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base
}
