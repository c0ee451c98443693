package config

import (
	"strings"
	"testing"
	"time"
)

func productionConfig() *Config {
	return &Config{
		Environment:          EnvProduction,
		SessionAuthKey:       strings.Repeat("a", 32),
		SessionEncryptionKey: strings.Repeat("b", 16),
		S3SecretAccessKey:    "s3cr3t",
		LogLevel:             "info",
		SessionMaxAge:        24 * time.Hour,
	}
}

func TestValidateForProduction(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"short auth key", func(c *Config) { c.SessionAuthKey = "short" }, "SESSION_AUTH_KEY"},
		{"short encryption key", func(c *Config) { c.SessionEncryptionKey = "short" }, "SESSION_ENCRYPTION_KEY"},
		{"unbounded session", func(c *Config) { c.SessionMaxAge = 90 * 24 * time.Hour }, "SESSION_MAX_AGE"},
		{"zero session age", func(c *Config) { c.SessionMaxAge = 0 }, "SESSION_MAX_AGE"},
		{"default s3 secret", func(c *Config) { c.S3SecretAccessKey = "minioadmin" }, "S3_SECRET_ACCESS_KEY"},
		{"debug logging", func(c *Config) { c.LogLevel = "debug" }, "LOG_LEVEL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := productionConfig()
			tt.mutate(cfg)
			err := ValidateForProduction(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error mentioning %s, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateForProduction_ReportsEveryProblem(t *testing.T) {
	cfg := productionConfig()
	cfg.SessionAuthKey = ""
	cfg.LogLevel = "debug"

	err := ValidateForProduction(cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"SESSION_AUTH_KEY", "LOG_LEVEL"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestValidateForProduction_SkipsOtherEnvironments(t *testing.T) {
	for _, env := range []string{EnvDevelopment, EnvTesting} {
		cfg := &Config{Environment: env, LogLevel: "debug"}
		if err := ValidateForProduction(cfg); err != nil {
			t.Errorf("%s: unexpected error: %v", env, err)
		}
	}
}
