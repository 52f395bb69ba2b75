package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
)

// ConfigValidator validates configuration values
type ConfigValidator struct{}

// NewConfigValidator creates a new configuration validator
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// Validate checks every field and joins all problems into one error
func (v *ConfigValidator) Validate(cfg *Config) error {
	return errors.Join(
		v.ValidateBaseURL(cfg.BaseURL),
		v.ValidateManifestsDir(cfg.ManifestsDir),
		v.ValidateLogLevel(cfg.LogLevel),
		v.ValidateLogFormat(cfg.LogFormat),
		v.ValidateListenAddr(cfg.ListenAddr),
	)
}

// ValidateBaseURL accepts a site-relative path ("/", "/blog/") or an
// absolute http(s) URL
func (v *ConfigValidator) ValidateBaseURL(base string) error {
	if base == "" {
		return fmt.Errorf("base URL cannot be empty")
	}

	u, err := url.Parse(base)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}

	if u.Scheme == "" {
		if !strings.HasPrefix(base, "/") {
			return fmt.Errorf("relative base URL must start with /: %s", base)
		}
		return nil
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported base URL scheme: %s (must be http or https)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("base URL must include host")
	}
	return nil
}

// ValidateManifestsDir checks the manifests directory setting
func (v *ConfigValidator) ValidateManifestsDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("manifests directory cannot be empty")
	}
	return nil
}

// ValidateLogLevel checks the log level name
func (v *ConfigValidator) ValidateLogLevel(level string) error {
	if _, err := log.ParseLevel(strings.ToLower(level)); err != nil {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, error or fatal)", level)
	}
	return nil
}

// ValidateLogFormat checks the log format name
func (v *ConfigValidator) ValidateLogFormat(format string) error {
	switch format {
	case "text", "json", "logfmt":
		return nil
	}
	return fmt.Errorf("invalid log format: %s (must be text, json or logfmt)", format)
}

// ValidateListenAddr checks the HTTP listen address
func (v *ConfigValidator) ValidateListenAddr(addr string) error {
	if addr == "" {
		return fmt.Errorf("listen address cannot be empty")
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("invalid listen address %s: %w", addr, err)
	}
	return nil
}
