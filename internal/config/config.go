package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	FirestoreProjectID       string `env:"FIRESTORE_PROJECT_ID,required" validate:"required"`
	FirestoreCredentialsFile string `env:"FIRESTORE_CREDENTIALS_FILE"`

	CloudinaryURL string `env:"CLOUDINARY_URL"`

	CacheProvider         string `env:"CACHE_PROVIDER" envDefault:"memory" validate:"omitempty,oneof=memory redis"`
	SessionStoreProvider  string `env:"SESSION_STORE_PROVIDER" envDefault:"memory" validate:"omitempty,oneof=memory redis"`
	RedisConnectionString string `env:"REDIS_CONNECTION_STRING" envDefault:"redis://localhost:6379/0" validate:"required_if=CacheProvider redis,required_if=SessionStoreProvider redis"`

	SentryDSN   string `env:"SENTRY_DSN"`
	Environment string `env:"ENVIRONMENT" envDefault:"production"`

	AdminEmail          string `env:"ADMIN_EMAIL" validate:"omitempty,email"`
	AdminPasswordSHA256 string `env:"ADMIN_PASSWORD_SHA256" validate:"omitempty,len=64,hexadecimal"`
	JWTSecret           string `env:"JWT_SECRET,required" validate:"required,min=32"`

	StoreName    string `env:"STORE_NAME" envDefault:"Senalmaq" validate:"required"`
	StoreAddress string `env:"STORE_ADDRESS" envDefault:"Cra 108a # 139-05 / Calle 139 # 103f 13, Suba, Bogota, Colombia."`
	StorePhone   string `env:"STORE_PHONE" envDefault:"+57 317 6693030"`
	StoreEmail   string `env:"STORE_EMAIL" envDefault:"Cosersenalmaq@gmail.com"`
	WhatsAppLink string `env:"STORE_WHATSAPP" envDefault:"https://wa.me/573176693030" validate:"required,url"`

	ShippingThresholdCents int64 `env:"SHIPPING_THRESHOLD" envDefault:"300000" validate:"min=0"`
	ShippingCostCents      int64 `env:"SHIPPING_COST" envDefault:"12000" validate:"min=0"`

	SecureCookies bool `env:"SECURE_COOKIES" envDefault:"true"`

	LogLevel  slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	LogFormat string     `env:"LOG_FORMAT" envDefault:"text" validate:"omitempty,oneof=text json"`
	Port      string     `env:"PORT" envDefault:"8080"`
}

var configValidator = validator.New()

func Load() (*Config, error) {
	var cfg Config

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if err := configValidator.Struct(c); err != nil {
		return err
	}

	hasAdminEmail := strings.TrimSpace(c.AdminEmail) != ""
	hasAdminPassword := strings.TrimSpace(c.AdminPasswordSHA256) != ""
	if hasAdminEmail != hasAdminPassword {
		return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD_SHA256 must be set together")
	}

	link := strings.TrimSpace(c.WhatsAppLink)
	parsed, err := url.Parse(link)
	if err != nil || parsed.Hostname() == "" {
		return fmt.Errorf("STORE_WHATSAPP must be a valid absolute URL")
	}
	if parsed.RawQuery != "" {
		return fmt.Errorf("STORE_WHATSAPP must not carry a query string")
	}

	return nil
}

// AdminEnabled reports whether admin credentials are configured. Without
// them every admin login is rejected.
func (c *Config) AdminEnabled() bool {
	return strings.TrimSpace(c.AdminEmail) != "" && strings.TrimSpace(c.AdminPasswordSHA256) != ""
}
