package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/iwvelando/house-price/pkg/constants"
	"github.com/iwvelando/house-price/pkg/testutil"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	return testutil.WriteTempFile(t, "config.yaml", contents)
}

func TestLoadConfigurationDefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadConfiguration(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Server.Address != constants.DefaultServerAddress {
		t.Fatalf("expected default address, got %s", cfg.Server.Address)
	}
	if cfg.Server.BodySizeBytes() != constants.DefaultMaxBodySizeBytes {
		t.Fatalf("expected default body size, got %d", cfg.Server.BodySizeBytes())
	}
	if cfg.Cache.Driver != constants.CacheDriverMemory {
		t.Fatalf("expected memory cache by default, got %s", cfg.Cache.Driver)
	}
	if cfg.History.Enabled {
		t.Fatal("expected history disabled by default")
	}
	if cfg.Client.BaseURL != constants.DefaultClientBaseURL {
		t.Fatalf("expected default client URL, got %s", cfg.Client.BaseURL)
	}
	if cfg.Client.Timeout != 30*time.Second {
		t.Fatalf("expected 30s client timeout, got %s", cfg.Client.Timeout)
	}
	if cfg.Logging.Level != "" || cfg.Logging.Format != "" || cfg.Logging.OutputFile != "" {
		t.Fatalf("expected empty logging defaults, got %+v", cfg.Logging)
	}
}

func TestLoadConfigurationOverrides(t *testing.T) {
	path := writeConfig(t, `server:
  address: 127.0.0.1:9000
  maxBodySize: 2M
  compress: false
  readTimeout: 5s
  rateLimit:
    requestsPerSecond: 0.5
    burst: 3
logging:
  level: debug
  format: console
  outputFile: /tmp/server.log
model:
  path: model.yaml
cache:
  driver: Redis
  redisAddress: cache:6379
  ttl: 10m
history:
  enabled: true
  path: /var/lib/house-price/history.db
client:
  baseURL: http://estimator:5110
  timeout: 3s
`)

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Server.Address != "127.0.0.1:9000" {
		t.Fatalf("expected address override, got %s", cfg.Server.Address)
	}
	if cfg.Server.BodySizeBytes() != 2*1024*1024 {
		t.Fatalf("expected body size override, got %d", cfg.Server.BodySizeBytes())
	}
	if cfg.Server.Compress {
		t.Fatal("expected compression disabled")
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Fatalf("expected read timeout 5s, got %s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.RateLimit.RequestsPerSecond != 0.5 || cfg.Server.RateLimit.Burst != 3 {
		t.Fatalf("unexpected rate limit %+v", cfg.Server.RateLimit)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Fatalf("unexpected logging %+v", cfg.Logging)
	}
	if cfg.Model.Path != "model.yaml" {
		t.Fatalf("expected model path, got %s", cfg.Model.Path)
	}
	if cfg.Cache.Driver != constants.CacheDriverRedis || cfg.Cache.RedisAddress != "cache:6379" {
		t.Fatalf("unexpected cache %+v", cfg.Cache)
	}
	if cfg.Cache.TTL != 10*time.Minute {
		t.Fatalf("expected 10m ttl, got %s", cfg.Cache.TTL)
	}
	if !cfg.History.Enabled || cfg.History.Path != "/var/lib/house-price/history.db" {
		t.Fatalf("unexpected history %+v", cfg.History)
	}
	if cfg.Client.BaseURL != "http://estimator:5110" || cfg.Client.Timeout != 3*time.Second {
		t.Fatalf("unexpected client %+v", cfg.Client)
	}
}

func TestLoadConfigurationEnvironmentOverride(t *testing.T) {
	t.Setenv("HOUSE_PRICE_SERVER_ADDRESS", ":7000")
	t.Setenv("HOUSE_PRICE_CACHE_DRIVER", "none")

	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if cfg.Server.Address != ":7000" {
		t.Fatalf("expected env address, got %s", cfg.Server.Address)
	}
	if cfg.Cache.Driver != constants.CacheDriverNone {
		t.Fatalf("expected env cache driver, got %s", cfg.Cache.Driver)
	}
}

func TestLoadConfigurationInvalid(t *testing.T) {
	tests := map[string]string{
		"bad size":          "server:\n  maxBodySize: invalid\n",
		"bad cache driver":  "cache:\n  driver: memcached\n",
		"negative rate":     "server:\n  rateLimit:\n    requestsPerSecond: -1\n",
		"history no path":   "history:\n  enabled: true\n  path: \"\"\n",
		"malformed yaml":    "server: [\n",
		"bad duration type": "client:\n  timeout: soon\n",
	}

	for name, contents := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadConfiguration(writeConfig(t, contents)); err == nil {
				t.Fatalf("expected error for %q", contents)
			}
		})
	}
}

func TestSetBodySizeBytes(t *testing.T) {
	cfg := Default()
	cfg.Server.SetBodySizeBytes(1024)
	if cfg.Server.BodySizeBytes() != 1024 || cfg.Server.MaxBodySize != "1024" {
		t.Fatalf("unexpected body size %d (%s)", cfg.Server.BodySizeBytes(), cfg.Server.MaxBodySize)
	}
	cfg.Server.SetBodySizeBytes(0)
	if cfg.Server.BodySizeBytes() != 1024 {
		t.Fatal("non-positive sizes must be ignored")
	}
}

func TestParseSize(t *testing.T) {
	tests := map[string]int64{
		"":          constants.DefaultMaxBodySizeBytes,
		"1024":      1024,
		"512b":      512,
		"256K":      256 * 1024,
		"1m":        1024 * 1024,
		"3MB":       3 * 1024 * 1024,
		"2G":        2 * 1024 * 1024 * 1024,
		"  4096   ": 4096,
	}

	for input, expected := range tests {
		got, err := ParseSize(input)
		if err != nil {
			t.Fatalf("ParseSize(%q) returned error: %v", input, err)
		}
		if got != expected {
			t.Fatalf("ParseSize(%q) = %d, expected %d", input, got, expected)
		}
	}

	if _, err := ParseSize("1TB"); err == nil {
		t.Fatal("expected error for unsupported unit")
	}
	if _, err := ParseSize("abc"); err == nil {
		t.Fatal("expected error for invalid number")
	}
}
