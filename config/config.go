package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values. It is built once at startup and
// passed by pointer to everything that needs it.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	ClientOrigin      string `mapstructure:"CLIENT_ORIGIN"`
	PublicURL         string `mapstructure:"PUBLIC_URL"`

	// MongoDB.
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	MongoTransactions bool   `mapstructure:"MONGO_TRANSACTIONS"`

	// Redis configuration.
	RedisAddr       string        `mapstructure:"REDIS_ADDR"`
	RedisPassword   string        `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB    int           `mapstructure:"REDIS_CACHE_DB"`
	GeocodeCacheTTL time.Duration `mapstructure:"GEOCODE_CACHE_TTL"`

	// Session cookie.
	CookieSecret     string `mapstructure:"COOKIE_SECRET"`
	CookieExpiryDays int    `mapstructure:"COOKIE_EXPIRY_DAYS"`
	GuestUserID      string `mapstructure:"GUEST_USER_ID"`

	// Google OAuth.
	GoogleClientID     string `mapstructure:"G_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"G_CLIENT_SECRET"`

	// Stripe Connect.
	StripeSecretKey string `mapstructure:"S_SECRET_KEY"`
	StripeClientID  string `mapstructure:"S_CLIENT_ID"`

	// Cloudinary.
	CloudinaryName   string `mapstructure:"CLOUDINARY_NAME"`
	CloudinaryKey    string `mapstructure:"CLOUDINARY_KEY"`
	CloudinarySecret string `mapstructure:"CLOUDINARY_SECRET"`

	// Nominatim compatible geocoder.
	GeocoderURL string `mapstructure:"GEOCODER_URL"`

	// NATS, optional. Events are dropped when empty.
	NatsURL string `mapstructure:"NATS_URL"`

	// Outbound call budgets.
	PaymentTimeout  time.Duration `mapstructure:"PAYMENT_TIMEOUT"`
	GeocoderTimeout time.Duration `mapstructure:"GEOCODER_TIMEOUT"`
	IdentityTimeout time.Duration `mapstructure:"IDENTITY_TIMEOUT"`
	UploadTimeout   time.Duration `mapstructure:"UPLOAD_TIMEOUT"`
}

const devCookieSecret = "dev-only-cookie-secret"

var keys = []string{
	"APP_PORT", "ENV", "LOG_LEVEL", "MAX_REQUESTS_PER_MIN", "CLIENT_ORIGIN", "PUBLIC_URL",
	"DATABASE_URL", "DATABASE_NAME", "MONGO_TRANSACTIONS",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_CACHE_DB", "GEOCODE_CACHE_TTL",
	"COOKIE_SECRET", "COOKIE_EXPIRY_DAYS", "GUEST_USER_ID",
	"G_CLIENT_ID", "G_CLIENT_SECRET",
	"S_SECRET_KEY", "S_CLIENT_ID",
	"CLOUDINARY_NAME", "CLOUDINARY_KEY", "CLOUDINARY_SECRET",
	"GEOCODER_URL", "NATS_URL",
	"PAYMENT_TIMEOUT", "GEOCODER_TIMEOUT", "IDENTITY_TIMEOUT", "UPLOAD_TIMEOUT",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "9000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	v.SetDefault("CLIENT_ORIGIN", "http://localhost:3000")
	v.SetDefault("PUBLIC_URL", "http://localhost:3000")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "homesweethome")
	v.SetDefault("MONGO_TRANSACTIONS", false)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("GEOCODE_CACHE_TTL", 24*time.Hour)
	v.SetDefault("COOKIE_SECRET", devCookieSecret)
	v.SetDefault("COOKIE_EXPIRY_DAYS", 30)
	v.SetDefault("GUEST_USER_ID", "5d378db94e84753160e08b55")
	v.SetDefault("GEOCODER_URL", "https://nominatim.openstreetmap.org")
	v.SetDefault("PAYMENT_TIMEOUT", 15*time.Second)
	v.SetDefault("GEOCODER_TIMEOUT", 5*time.Second)
	v.SetDefault("IDENTITY_TIMEOUT", 10*time.Second)
	v.SetDefault("UPLOAD_TIMEOUT", 20*time.Second)
}

// LoadConfig reads .env (if present), an optional config.yaml and the process
// environment, in increasing order of precedence.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables only")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	setDefaults(v)

	// AutomaticEnv only applies to keys viper already knows about when
	// unmarshalling, so bind the ones without defaults explicitly.
	for _, k := range keys {
		_ = v.BindEnv(k)
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
	return &cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.CookieSecret == "" {
		return errors.New("config: COOKIE_SECRET is required")
	}
	if c.IsProduction() && c.CookieSecret == devCookieSecret {
		return errors.New("config: COOKIE_SECRET must be set in production")
	}
	if c.CookieExpiryDays <= 0 {
		return fmt.Errorf("config: COOKIE_EXPIRY_DAYS must be positive, got %d", c.CookieExpiryDays)
	}
	if c.DatabaseName == "" {
		return errors.New("config: DATABASE_NAME is required")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// CookieMaxAge is the lifetime of the viewer cookie.
func (c *Config) CookieMaxAge() time.Duration {
	return time.Duration(c.CookieExpiryDays) * 24 * time.Hour
}
