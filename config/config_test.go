package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		DatabaseDriver:       "memory",
		AuthMode:             "local",
		JWTSecret:            "secret",
		StorageBackend:       "cloudinary",
		PaymentWindowMinutes: 15,
		SessionTTLMinutes:    30,
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_MODE", "local")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("APP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, "mongo", cfg.DatabaseDriver)
	assert.Equal(t, 15, cfg.PaymentWindowMinutes)
	assert.Equal(t, 2, cfg.RedisSessionDB)
	assert.Equal(t, *cfg, AppConfig)
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	cases := map[string]func(*Config){
		"driver":          func(c *Config) { c.DatabaseDriver = "sqlite" },
		"local no secret": func(c *Config) { c.JWTSecret = "" },
		"auth mode":       func(c *Config) { c.AuthMode = "basic" },
		"storage":         func(c *Config) { c.StorageBackend = "s3" },
		"payment window":  func(c *Config) { c.PaymentWindowMinutes = 0 },
		"session ttl":     func(c *Config) { c.SessionTTLMinutes = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := validConfig()
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestSuperadminEmailList(t *testing.T) {
	c := Config{SuperadminEmails: " Root@Example.com, ,ops@example.com "}
	assert.Equal(t, []string{"root@example.com", "ops@example.com"}, c.SuperadminEmailList())
}

func TestProxies(t *testing.T) {
	assert.Empty(t, Config{}.Proxies())
	c := Config{TrustedProxies: "10.0.0.0/8, 192.0.2.1"}
	assert.Equal(t, []string{"10.0.0.0/8", "192.0.2.1"}, c.Proxies())
}
