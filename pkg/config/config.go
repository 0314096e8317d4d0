/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/teamdir/teamdir/pkg/cache/inmemory"
	"github.com/teamdir/teamdir/pkg/cache/redis"
	"github.com/teamdir/teamdir/pkg/request/httpclient"
)

type AppConfig struct {
	App       AppSettings     `mapstructure:"app"`
	APIServer APIServerConfig `mapstructure:"apiserver"`
	Upstream  UpstreamConfig  `mapstructure:"upstream"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type AppSettings struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Version     string `mapstructure:"version"`
}

type APIServerConfig struct {
	Host string     `mapstructure:"host"`
	Port int        `mapstructure:"port"`
	Auth AuthConfig `mapstructure:"auth"`
	CORS CORSConfig `mapstructure:"cors"`
}

type AuthConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	APIKeys []string `mapstructure:"apiKeys"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
	AllowedMethods []string `mapstructure:"allowedMethods"`
	AllowedHeaders []string `mapstructure:"allowedHeaders"`
}

// UpstreamConfig describes the directory API every read and write goes to.
type UpstreamConfig struct {
	BaseURL        string                             `mapstructure:"baseUrl"`
	Retry          RetryConfig                        `mapstructure:"retry"`
	ConnectionPool httpclient.ConnectionPoolConfig    `mapstructure:"connectionPool"`
	Resiliency     httpclient.HystrixResiliencyConfig `mapstructure:"resiliency"`
}

// RetryConfig bounds the read-path retry loop.
type RetryConfig struct {
	Attempts      int `mapstructure:"attempts"`
	BaseDelayInMs int `mapstructure:"baseDelayInMs"`
}

type CacheConfig struct {
	// Backend is "inmemory" or "redis".
	Backend  string          `mapstructure:"backend"`
	Inmemory inmemory.Config `mapstructure:"inmemory"`
	Redis    redis.Config    `mapstructure:"redis"`
}

type TelemetryConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	OTLPEndpoint string `mapstructure:"otlpEndpoint"`
	Insecure     bool   `mapstructure:"insecure"`
}

const (
	CacheBackendInmemory = "inmemory"
	CacheBackendRedis    = "redis"
)

// Load reads the config file at path, applies TEAMDIR_* environment
// overrides and defaults, and validates the result.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetEnvPrefix("TEAMDIR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "teamdir")
	v.SetDefault("app.environment", "local")

	v.SetDefault("apiserver.host", "0.0.0.0")
	v.SetDefault("apiserver.port", 8080)
	v.SetDefault("apiserver.cors.allowedMethods", []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("apiserver.cors.allowedHeaders", []string{"Origin", "Content-Type", "X-API-Key", "X-Request-ID"})

	v.SetDefault("upstream.retry.attempts", 3)
	v.SetDefault("upstream.retry.baseDelayInMs", 100)

	v.SetDefault("cache.backend", CacheBackendInmemory)
	v.SetDefault("cache.inmemory.defaultExpiration", 0)
	v.SetDefault("cache.inmemory.cleanupInterval", 600)
}

func (c *AppConfig) validate() error {
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("upstream.baseUrl is required")
	}
	switch c.Cache.Backend {
	case CacheBackendInmemory:
	case CacheBackendRedis:
		if c.Cache.Redis.Addr == "" {
			return fmt.Errorf("cache.redis.addr is required when cache.backend is %q", CacheBackendRedis)
		}
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	return nil
}
