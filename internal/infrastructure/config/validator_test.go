package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidator_ValidateBaseURL(t *testing.T) {
	validator := NewConfigValidator()

	tests := []struct {
		name    string
		base    string
		wantErr bool
		errMsg  string
	}{
		{name: "root_path", base: "/"},
		{name: "sub_path", base: "/blog/"},
		{name: "https_url", base: "https://example.com/"},
		{name: "http_localhost", base: "http://localhost:8080/"},
		{name: "empty", base: "", wantErr: true, errMsg: "cannot be empty"},
		{name: "relative_without_slash", base: "blog/", wantErr: true, errMsg: "must start with /"},
		{name: "ftp_scheme", base: "ftp://example.com/", wantErr: true, errMsg: "unsupported base URL scheme"},
		{name: "missing_host", base: "https:///", wantErr: true, errMsg: "must include host"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateBaseURL(tt.base)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigValidator_ValidateLogSettings(t *testing.T) {
	validator := NewConfigValidator()

	for _, level := range []string{"debug", "info", "warn", "error", "INFO"} {
		assert.NoError(t, validator.ValidateLogLevel(level), level)
	}
	assert.Error(t, validator.ValidateLogLevel("verbose"))

	for _, format := range []string{"text", "json", "logfmt"} {
		assert.NoError(t, validator.ValidateLogFormat(format), format)
	}
	assert.Error(t, validator.ValidateLogFormat("xml"))
}

func TestConfigValidator_ValidateListenAddr(t *testing.T) {
	validator := NewConfigValidator()

	assert.NoError(t, validator.ValidateListenAddr(":8080"))
	assert.NoError(t, validator.ValidateListenAddr("127.0.0.1:0"))
	assert.Error(t, validator.ValidateListenAddr(""))
	assert.Error(t, validator.ValidateListenAddr("8080"))
}

func TestConfigValidator_Validate_JoinsErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseURL = "ftp://example.com/"
	cfg.LogFormat = "xml"

	err := NewConfigValidator().Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported base URL scheme")
	assert.Contains(t, err.Error(), "invalid log format")

	assert.NoError(t, NewConfigValidator().Validate(DefaultConfig()))
}
