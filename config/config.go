package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	AllowedOrigins    string `mapstructure:"ALLOWED_ORIGINS"`
	TrustedProxies    string `mapstructure:"TRUSTED_PROXIES"`

	// Database.
	DatabaseDriver string `mapstructure:"DATABASE_DRIVER"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	DatabaseName   string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB   int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB    int    `mapstructure:"REDIS_AUTH_DB"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// Identity.
	AuthMode                string `mapstructure:"AUTH_MODE"`
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	JWTSecret               string `mapstructure:"JWT_SECRET"`
	SuperadminEmails        string `mapstructure:"SUPERADMIN_EMAILS"`

	// Image storage.
	StorageBackend      string `mapstructure:"STORAGE_BACKEND"`
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
	GCSBucket           string `mapstructure:"GCS_BUCKET"`

	// Payments and mail.
	StripeKey      string `mapstructure:"STRIPE_KEY"`
	SendgridAPIKey string `mapstructure:"SENDGRID_API_KEY"`
	MailFrom       string `mapstructure:"MAIL_FROM"`

	// Booking.
	PaymentWindowMinutes int `mapstructure:"PAYMENT_WINDOW_MINUTES"`
	SessionTTLMinutes    int `mapstructure:"SESSION_TTL_MINUTES"`
}

var AppConfig Config

var keys = map[string]any{
	"APP_PORT":                  "8080",
	"ENV":                       "development",
	"LOG_LEVEL":                 "info",
	"MAX_REQUESTS_PER_MIN":      200,
	"ALLOWED_ORIGINS":           "*",
	"TRUSTED_PROXIES":           "",
	"DATABASE_DRIVER":           "mongo",
	"DATABASE_URL":              "mongodb://localhost:27017",
	"DATABASE_NAME":             "servicehub",
	"REDIS_ADDR":                "localhost:6379",
	"REDIS_PASSWORD":            "",
	"REDIS_CACHE_DB":            0,
	"REDIS_AUTH_DB":             1,
	"REDIS_SESSION_DB":          2,
	"REDIS_QUEUE_DB":            3,
	"AUTH_MODE":                 "firebase",
	"FIREBASE_CREDENTIALS_FILE": "",
	"JWT_SECRET":                "",
	"SUPERADMIN_EMAILS":         "",
	"STORAGE_BACKEND":           "cloudinary",
	"CLOUDINARY_CLOUD_NAME":     "",
	"CLOUDINARY_API_KEY":        "",
	"CLOUDINARY_API_SECRET":     "",
	"GCS_BUCKET":                "",
	"STRIPE_KEY":                "",
	"SENDGRID_API_KEY":          "",
	"MAIL_FROM":                 "no-reply@servicehub.local",
	"PAYMENT_WINDOW_MINUTES":    15,
	"SESSION_TTL_MINUTES":       30,
}

// Load reads config.yaml (from . or ./config) and the environment into AppConfig.
// A missing config file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	for k, def := range keys {
		v.SetDefault(k, def)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	AppConfig = cfg
	return &cfg, nil
}

// Validate checks the combinations that cannot work at runtime.
func (c Config) Validate() error {
	switch c.DatabaseDriver {
	case "mongo", "memory":
	default:
		return fmt.Errorf("config: unknown DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	switch c.AuthMode {
	case "firebase":
	case "local":
		if c.JWTSecret == "" {
			return errors.New("config: JWT_SECRET is required when AUTH_MODE=local")
		}
	default:
		return fmt.Errorf("config: unknown AUTH_MODE %q", c.AuthMode)
	}
	switch c.StorageBackend {
	case "cloudinary", "gcs", "memory":
	default:
		return fmt.Errorf("config: unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	if c.PaymentWindowMinutes < 1 {
		return errors.New("config: PAYMENT_WINDOW_MINUTES must be at least 1")
	}
	if c.SessionTTLMinutes < 1 {
		return errors.New("config: SESSION_TTL_MINUTES must be at least 1")
	}
	return nil
}

// SuperadminEmailList returns the configured superadmin emails, lower-cased.
func (c Config) SuperadminEmailList() []string {
	return splitList(strings.ToLower(c.SuperadminEmails))
}

// Origins returns the CORS allow list.
func (c Config) Origins() []string {
	return splitList(c.AllowedOrigins)
}

// Proxies returns the addresses or CIDRs allowed to set forwarding headers.
func (c Config) Proxies() []string {
	return splitList(c.TrustedProxies)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
