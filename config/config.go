package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Store     StoreConfig     `mapstructure:"store"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Session   SessionConfig   `mapstructure:"session"`
	Processor ProcessorConfig `mapstructure:"processor"`
	Wallet    WalletConfig    `mapstructure:"wallet"`
	Ledger    LedgerConfig    `mapstructure:"ledger"`
	Checkout  CheckoutConfig  `mapstructure:"checkout"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

// StoreConfig selects the cart/session store backend.
type StoreConfig struct {
	Backend string `mapstructure:"backend"` // memory, redis
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// SessionConfig governs guest session tokens and session state lifetime.
type SessionConfig struct {
	Secret string        `mapstructure:"secret"` // HS256 signing key for session tokens
	TTL    time.Duration `mapstructure:"ttl"`    // session token + cart/session state lifetime
	Issuer string        `mapstructure:"issuer"`
}

// ProcessorConfig points at the card-payment processor API.
type ProcessorConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// WalletConfig points at the JSON-RPC wallet provider node.
// An empty RPCURL means no provider is available (wallet features degrade
// to a ProviderUnavailable error, never a crash).
type WalletConfig struct {
	RPCURL         string        `mapstructure:"rpc_url"`
	ApproveTimeout time.Duration `mapstructure:"approve_timeout"` // waiting-for-user-approval phase only
}

// LedgerConfig points at the settlement/ledger service.
type LedgerConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CheckoutConfig holds checkout business parameters.
type CheckoutConfig struct {
	ServiceFee string `mapstructure:"service_fee"` // decimal string, currency units
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: WHS_ (WeedHaven Storefront).
// Nested keys use underscore: WHS_REDIS_HOST, WHS_SESSION_SECRET, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("store.backend", "memory")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("session.secret", "")
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("session.issuer", "weedhaven-storefront")
	v.SetDefault("processor.base_url", "")
	v.SetDefault("processor.api_key", "")
	v.SetDefault("processor.timeout", "10s")
	v.SetDefault("wallet.rpc_url", "")
	v.SetDefault("wallet.approve_timeout", "2m")
	v.SetDefault("ledger.base_url", "")
	v.SetDefault("ledger.timeout", "10s")
	v.SetDefault("checkout.service_fee", "2.00")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: WHS_PROCESSOR_BASE_URL -> processor.base_url
	v.SetEnvPrefix("WHS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
