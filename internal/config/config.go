package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	pinTestAPIRoot = "https://test-api.pin.net.au/1"
	pinLiveAPIRoot = "https://api.pin.net.au/1"
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	Pin      *PinConfig      `mapstructure:"pin"`
	Event    *EventConfig    `mapstructure:"event"`
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	Port               string   `mapstructure:"port"`
	BaseURL            string   `mapstructure:"base_url"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
	JWTSigningKey      string   `mapstructure:"jwt_signing_key"`
	AdminEmail         string   `mapstructure:"admin_email"`
	AdminPasswordHash  string   `mapstructure:"admin_password_hash"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"db_name"`
}

// PinConfig selects the Pin Payments environment. Secret keys come from
// PIN_TEST_SECRET_KEY / PIN_LIVE_SECRET_KEY so live credentials never land
// in the config file.
type PinConfig struct {
	Environment        string `mapstructure:"environment"` // "test" or "live"
	TimeoutSeconds     int    `mapstructure:"timeout_seconds"`
	TestSecretKey      string `mapstructure:"test_secret_key"`
	TestPublishableKey string `mapstructure:"test_publishable_key"`
	LiveSecretKey      string `mapstructure:"live_secret_key"`
	LivePublishableKey string `mapstructure:"live_publishable_key"`
}

func (c *PinConfig) APIRoot() string {
	if c.Environment == "live" {
		return pinLiveAPIRoot
	}

	return pinTestAPIRoot
}

func (c *PinConfig) SecretKey() string {
	if c.Environment == "live" {
		return c.LiveSecretKey
	}

	return c.TestSecretKey
}

func (c *PinConfig) PublishableKey() string {
	if c.Environment == "live" {
		return c.LivePublishableKey
	}

	return c.TestPublishableKey
}

func (c *PinConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}

	return time.Duration(c.TimeoutSeconds) * time.Second
}

// EventConfig holds the per-event constants. It is built once at startup and
// handed to the services that need it; nothing reads these from globals.
type EventConfig struct {
	SubmissionDeadlineRaw string    `mapstructure:"submission_deadline"`
	SubmissionDeadline    time.Time `mapstructure:"-"`

	TicketPriceCents  int64  `mapstructure:"ticket_price_cents"`
	TicketCurrency    string `mapstructure:"ticket_currency"`
	TicketDescription string `mapstructure:"ticket_description"`

	TentTickets int64 `mapstructure:"tent_tickets"`

	BeddingPriceCents  int64  `mapstructure:"bedding_price_cents"`
	BeddingDescription string `mapstructure:"bedding_description"`
}

func Load(configPath string) (*AppConfig, error) {
	viper.SetConfigFile(configPath)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	bindEnvs := map[string]string{
		"api.jwt_signing_key":      "JWT_SIGNING_KEY",
		"api.admin_password_hash":  "ADMIN_PASSWORD_HASH",
		"postgres.password":        "POSTGRES_PASSWORD",
		"pin.test_secret_key":      "PIN_TEST_SECRET_KEY",
		"pin.test_publishable_key": "PIN_TEST_PUBLISHABLE_KEY",
		"pin.live_secret_key":      "PIN_LIVE_SECRET_KEY",
		"pin.live_publishable_key": "PIN_LIVE_PUBLISHABLE_KEY",
	}
	for key, env := range bindEnvs {
		if err := viper.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("viper.BindEnv(%v) -> %w", key, err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("viper.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{}
	if err := viper.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("viper.Unmarshal -> %w", err)
	}

	if err := conf.parseDeadline(); err != nil {
		return nil, err
	}

	if err := conf.validate(); err != nil {
		return nil, err
	}

	viper.WatchConfig()
	viper.OnConfigChange(func(e fsnotify.Event) {
		zap.L().Info("config file changed", zap.String("file", e.Name))

		if err := viper.Unmarshal(conf); err != nil {
			zap.L().Error("failed to reload config", zap.Error(err))
			return
		}
		if err := conf.parseDeadline(); err != nil {
			zap.L().Error("failed to reload config", zap.Error(err))
		}
	})

	return conf, nil
}

func (c *AppConfig) parseDeadline() error {
	deadline, err := time.Parse(time.RFC3339, c.Event.SubmissionDeadlineRaw)
	if err != nil {
		return fmt.Errorf("invalid event.submission_deadline %q -> %w", c.Event.SubmissionDeadlineRaw, err)
	}
	c.Event.SubmissionDeadline = deadline.UTC()

	return nil
}

func (c *AppConfig) validate() error {
	if c.Pin.Environment != "test" && c.Pin.Environment != "live" {
		return fmt.Errorf("pin.environment must be \"test\" or \"live\", got %q", c.Pin.Environment)
	}
	if c.Pin.SecretKey() == "" {
		return fmt.Errorf("missing Pin secret key for %v environment", c.Pin.Environment)
	}
	if c.Event.TicketPriceCents <= 0 {
		return fmt.Errorf("event.ticket_price_cents must be positive")
	}

	return nil
}
