// Package config defines the data structures related to configuration and
// includes functions for loading it from a file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/iwvelando/house-price/pkg/constants"
	"github.com/iwvelando/house-price/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for house-price.
type Configuration struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Model   ModelConfig   `mapstructure:"model"`
	Cache   CacheConfig   `mapstructure:"cache"`
	History HistoryConfig `mapstructure:"history"`
	Client  ClientConfig  `mapstructure:"client"`
}

// ServerConfig defines runtime parameters for the HTTP server.
type ServerConfig struct {
	Address      string          `mapstructure:"address"`
	MaxBodySize  string          `mapstructure:"maxBodySize"`
	ReadTimeout  time.Duration   `mapstructure:"readTimeout"`
	WriteTimeout time.Duration   `mapstructure:"writeTimeout"`
	Compress     bool            `mapstructure:"compress"`
	RateLimit    RateLimitConfig `mapstructure:"rateLimit"`
	bodySize     int64
}

// RateLimitConfig bounds /predict requests per client IP. A zero rate
// disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requestsPerSecond"`
	Burst             int     `mapstructure:"burst"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level"`      // debug, info, warn, error
	Format     string `mapstructure:"format"`     // json, console
	OutputFile string `mapstructure:"outputFile"` // optional file output
}

// ModelConfig points at the fitted model. An empty path serves the fallback estimate.
type ModelConfig struct {
	Path string `mapstructure:"path"`
}

// CacheConfig selects where predictions are cached.
type CacheConfig struct {
	Driver       string        `mapstructure:"driver"` // none, memory, redis
	RedisAddress string        `mapstructure:"redisAddress"`
	TTL          time.Duration `mapstructure:"ttl"`
}

// HistoryConfig controls the prediction history database.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// ClientConfig configures the predict command.
type ClientConfig struct {
	BaseURL string        `mapstructure:"baseURL"`
	Timeout time.Duration `mapstructure:"timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", constants.DefaultServerAddress)
	v.SetDefault("server.maxBodySize", fmt.Sprintf("%d", constants.DefaultMaxBodySizeBytes))
	v.SetDefault("server.readTimeout", 15*time.Second)
	v.SetDefault("server.writeTimeout", 15*time.Second)
	v.SetDefault("server.compress", true)
	v.SetDefault("server.rateLimit.requestsPerSecond", constants.DefaultRateLimitPerSecond)
	v.SetDefault("server.rateLimit.burst", constants.DefaultRateLimitBurst)
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("model.path", "")
	v.SetDefault("cache.driver", constants.CacheDriverMemory)
	v.SetDefault("cache.redisAddress", "localhost:6379")
	v.SetDefault("cache.ttl", time.Hour)
	v.SetDefault("history.enabled", false)
	v.SetDefault("history.path", "predictions.db")
	v.SetDefault("client.baseURL", constants.DefaultClientBaseURL)
	v.SetDefault("client.timeout", 30*time.Second)
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. A missing file yields the defaults. Every key can be
// overridden by an environment variable such as HOUSE_PRICE_SERVER_ADDRESS.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			v.SetConfigType("yml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading config file, %s", err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file, %s", err)
		}
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	if err := configuration.normalize(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Configuration {
	cfg, err := LoadConfiguration("")
	if err != nil {
		panic(fmt.Sprintf("default configuration is invalid: %v", err))
	}
	return cfg
}

// BodySizeBytes returns the configured /predict body limit in bytes.
func (c *ServerConfig) BodySizeBytes() int64 {
	return c.bodySize
}

// SetBodySizeBytes overrides the configured body limit.
func (c *ServerConfig) SetBodySizeBytes(size int64) {
	if size > 0 {
		c.bodySize = size
		c.MaxBodySize = fmt.Sprintf("%d", size)
	}
}

func (c *Configuration) normalize() error {
	if c.Server.Address == "" {
		c.Server.Address = constants.DefaultServerAddress
	}

	size, err := ParseSize(c.Server.MaxBodySize)
	if err != nil {
		return err
	}
	if size <= 0 {
		size = constants.DefaultMaxBodySizeBytes
	}
	c.Server.bodySize = size

	if c.Server.RateLimit.RequestsPerSecond < 0 {
		return fmt.Errorf("invalid rate limit: %v requests per second", c.Server.RateLimit.RequestsPerSecond)
	}
	if c.Server.RateLimit.RequestsPerSecond > 0 && c.Server.RateLimit.Burst <= 0 {
		c.Server.RateLimit.Burst = 1
	}

	c.Cache.Driver = strings.ToLower(strings.TrimSpace(c.Cache.Driver))
	if c.Cache.Driver == "" {
		c.Cache.Driver = constants.CacheDriverNone
	}
	if err := validation.ValidateCacheDriver(c.Cache.Driver); err != nil {
		return err
	}

	if c.History.Enabled && c.History.Path == "" {
		return errors.New("history is enabled but history.path is empty")
	}
	return nil
}
