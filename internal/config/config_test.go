package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server:   ServerConfig{Host: "0.0.0.0", Port: 8080},
		Database: DatabaseConfig{Host: "localhost", Port: 5432, User: "postgres", Database: "shopfront", MaxConnections: 25, MinConnections: 5},
		Redis:    RedisConfig{URL: "redis://localhost:6379/0"},
		Logger:   LoggerConfig{Level: "info", Format: "json"},
		Stripe:   StripeConfig{APIKey: "sk_test_123"},
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("STRIPE_API_KEY", "sk_test_123")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, "data/shipping_regions.json", cfg.Seed.RegionsFile)
	assert.False(t, cfg.Telemetry.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STRIPE_API_KEY", "sk_test_123")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("WHATSAPP_ENABLED", "true")
	t.Setenv("WHATSAPP_TOKEN", "tok")
	t.Setenv("WHATSAPP_PHONE_NUMBER_ID", "123")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.True(t, cfg.WhatsApp.Enabled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: "server port"},
		{name: "missing db host", mutate: func(c *Config) { c.Database.Host = "" }, wantErr: "database host"},
		{name: "min above max conns", mutate: func(c *Config) { c.Database.MinConnections = 50 }, wantErr: "min connections"},
		{name: "missing redis", mutate: func(c *Config) { c.Redis.URL = "" }, wantErr: "redis"},
		{name: "missing stripe key", mutate: func(c *Config) { c.Stripe.APIKey = "" }, wantErr: "stripe"},
		{name: "bad log level", mutate: func(c *Config) { c.Logger.Level = "verbose" }, wantErr: "log level"},
		{name: "bad log format", mutate: func(c *Config) { c.Logger.Format = "xml" }, wantErr: "log format"},
		{
			name:    "whatsapp enabled without token",
			mutate:  func(c *Config) { c.WhatsApp.Enabled = true },
			wantErr: "whatsapp",
		},
		{
			name:    "telemetry enabled without endpoint",
			mutate:  func(c *Config) { c.Telemetry.Enabled = true; c.Telemetry.Endpoint = "" },
			wantErr: "telemetry",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestConnectionString(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", Port: 5432, User: "app", Password: "secret", Database: "shopfront"}
	assert.Equal(t, "postgres://app:secret@db:5432/shopfront?sslmode=disable", cfg.ConnectionString())
}
