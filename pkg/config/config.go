package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Commerce CommerceConfig
	Payouts  PayoutsConfig
	Redis    RedisConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Payouts.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Commerce.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ORDERDESK_APP_ENV" required:"true"`
	Port         string `envconfig:"ORDERDESK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ORDERDESK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ORDERDESK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// CommerceConfig points the service at the upstream commerce backend that owns
// orders, vendor sales summaries, and the product catalog.
type CommerceConfig struct {
	BaseURL  string        `envconfig:"ORDERDESK_COMMERCE_BASE_URL" required:"true"`
	APIToken string        `envconfig:"ORDERDESK_COMMERCE_API_TOKEN" required:"true"`
	Timeout  time.Duration `envconfig:"ORDERDESK_COMMERCE_TIMEOUT" default:"10s"`
}

func (c CommerceConfig) validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("%s must not be blank", EnvCommerceBaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%s must be positive", EnvCommerceTimeout)
	}
	return nil
}

// PayoutsConfig carries the platform commission rate applied uniformly to
// every vendor sales summary in a process lifetime.
type PayoutsConfig struct {
	CommissionRate float64 `envconfig:"ORDERDESK_PAYOUTS_COMMISSION_RATE" default:"0.15"`
}

func (p PayoutsConfig) validate() error {
	if p.CommissionRate <= 0 || p.CommissionRate >= 1 {
		return fmt.Errorf("%s must be between 0 and 1 exclusive", EnvCommissionRate)
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"ORDERDESK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"ORDERDESK_REDIS_ADDR"`
	Password     string        `envconfig:"ORDERDESK_REDIS_PASSWORD"`
	DB           int           `envconfig:"ORDERDESK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ORDERDESK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ORDERDESK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ORDERDESK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ORDERDESK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ORDERDESK_REDIS_WRITE_TIMEOUT" default:"5s"`
}
