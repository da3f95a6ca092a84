package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort        string        `mapstructure:"SERVER_PORT"`
	Env               string        `mapstructure:"ENV"`
	HomeAPIBase       string        `mapstructure:"HOME_ASSIGNMENT_API_BASE"`
	UpstreamTimeout   time.Duration `mapstructure:"UPSTREAM_TIMEOUT"`
	HTTPClientTimeout time.Duration `mapstructure:"HTTP_CLIENT_TIMEOUT"`
	// FeeDivisor is the fee-per-distance divisor of the venue API's schedule version.
	FeeDivisor    int           `mapstructure:"FEE_DIVISOR"`
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB"`
	VenueCacheTTL time.Duration `mapstructure:"VENUE_CACHE_TTL"`
}

// Load reads path (a .env file, optional) and the environment, the
// environment winning.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("HOME_ASSIGNMENT_API_BASE", "https://consumer-api.development.dev.woltapi.com")
	v.SetDefault("UPSTREAM_TIMEOUT", 5*time.Second)
	v.SetDefault("HTTP_CLIENT_TIMEOUT", 8*time.Second)
	v.SetDefault("FEE_DIVISOR", 10)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("VENUE_CACHE_TTL", time.Minute)

	// a missing .env is fine, everything has a default or comes from the environment
	_ = v.ReadInConfig()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.FeeDivisor <= 0 {
		return errors.New("FEE_DIVISOR must be positive")
	}
	if c.UpstreamTimeout <= 0 || c.HTTPClientTimeout <= 0 {
		return errors.New("timeouts must be positive")
	}
	if c.HomeAPIBase == "" {
		return errors.New("HOME_ASSIGNMENT_API_BASE is required")
	}
	if c.RedisAddr != "" && c.VenueCacheTTL <= 0 {
		return errors.New("VENUE_CACHE_TTL must be positive when REDIS_ADDR is set")
	}
	return nil
}

// CacheEnabled reports whether venue documents should be cached in redis.
func (c Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}
