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

// Package httpclient builds heimdall HTTP clients with connection pooling,
// hystrix resiliency and tracing-aware transports.
package httpclient

import (
	"crypto/tls"
	"net/http"
	"time"

	"github.com/gojek/heimdall/v7"
	"github.com/gojek/heimdall/v7/hystrix"
	"github.com/opentracing-contrib/go-stdlib/nethttp"
)

// ConnectionPoolConfig tunes the underlying http.Transport. All durations are
// in milliseconds; zero values fall back to the defaults below.
type ConnectionPoolConfig struct {
	MaxIdleConns        int `mapstructure:"maxIdleConns"`
	MaxIdleConnsPerHost int `mapstructure:"maxIdleConnsPerHost"`
	MaxConnsPerHost     int `mapstructure:"maxConnsPerHost"`
	IdleConnTimeoutInMs int `mapstructure:"idleConnTimeoutInMs"`
	TimeoutInMs         int `mapstructure:"timeoutInMs"`
}

// HystrixResiliencyConfig tunes the hystrix circuit breaker per command.
type HystrixResiliencyConfig struct {
	HystrixTimeoutInMs     int `mapstructure:"hystrixTimeoutInMs"`
	MaxConcurrentRequests  int `mapstructure:"maxConcurrentRequests"`
	ErrorPercentThreshold  int `mapstructure:"errorPercentThreshold"`
	SleepWindowInMs        int `mapstructure:"sleepWindowInMs"`
	RequestVolumeThreshold int `mapstructure:"requestVolumeThreshold"`
}

const (
	defaultMaxIdleConns        = 100
	defaultMaxIdleConnsPerHost = 10
	defaultIdleConnTimeoutInMs = 90000
	defaultTimeoutInMs         = 10000

	defaultHystrixTimeoutInMs     = 15000
	defaultMaxConcurrentRequests  = 100
	defaultErrorPercentThreshold  = 25
	defaultSleepWindowInMs        = 5000
	defaultRequestVolumeThreshold = 10
)

// InitializeClient builds a heimdall hystrix client named commandName. The
// retrier and retryCount govern transport-level replays; callers that manage
// retries themselves pass heimdall.NewNoRetrier() and 0.
func InitializeClient(
	commandName string,
	poolCfg ConnectionPoolConfig,
	resiliencyCfg HystrixResiliencyConfig,
	retrier heimdall.Retriable,
	retryCount int,
	tlsConfig *tls.Config,
) (heimdall.Doer, error) {
	poolCfg = withPoolDefaults(poolCfg)
	resiliencyCfg = withResiliencyDefaults(resiliencyCfg)

	transport := &http.Transport{
		MaxIdleConns:        poolCfg.MaxIdleConns,
		MaxIdleConnsPerHost: poolCfg.MaxIdleConnsPerHost,
		MaxConnsPerHost:     poolCfg.MaxConnsPerHost,
		IdleConnTimeout:     time.Duration(poolCfg.IdleConnTimeoutInMs) * time.Millisecond,
		TLSClientConfig:     tlsConfig,
	}

	httpClient := &http.Client{
		// trace outbound requests alongside the request-scoped span
		Transport: &nethttp.Transport{RoundTripper: transport},
		Timeout:   time.Duration(poolCfg.TimeoutInMs) * time.Millisecond,
	}

	client := hystrix.NewClient(
		hystrix.WithHTTPClient(httpClient),
		hystrix.WithHTTPTimeout(time.Duration(poolCfg.TimeoutInMs)*time.Millisecond),
		hystrix.WithCommandName(commandName),
		hystrix.WithHystrixTimeout(time.Duration(resiliencyCfg.HystrixTimeoutInMs)*time.Millisecond),
		hystrix.WithMaxConcurrentRequests(resiliencyCfg.MaxConcurrentRequests),
		hystrix.WithErrorPercentThreshold(resiliencyCfg.ErrorPercentThreshold),
		hystrix.WithSleepWindow(resiliencyCfg.SleepWindowInMs),
		hystrix.WithRequestVolumeThreshold(resiliencyCfg.RequestVolumeThreshold),
		hystrix.WithRetrier(retrier),
		hystrix.WithRetryCount(retryCount),
	)

	return client, nil
}

func withPoolDefaults(cfg ConnectionPoolConfig) ConnectionPoolConfig {
	if cfg.MaxIdleConns <= 0 {
		cfg.MaxIdleConns = defaultMaxIdleConns
	}
	if cfg.MaxIdleConnsPerHost <= 0 {
		cfg.MaxIdleConnsPerHost = defaultMaxIdleConnsPerHost
	}
	if cfg.IdleConnTimeoutInMs <= 0 {
		cfg.IdleConnTimeoutInMs = defaultIdleConnTimeoutInMs
	}
	if cfg.TimeoutInMs <= 0 {
		cfg.TimeoutInMs = defaultTimeoutInMs
	}
	return cfg
}

func withResiliencyDefaults(cfg HystrixResiliencyConfig) HystrixResiliencyConfig {
	if cfg.HystrixTimeoutInMs <= 0 {
		cfg.HystrixTimeoutInMs = defaultHystrixTimeoutInMs
	}
	if cfg.MaxConcurrentRequests <= 0 {
		cfg.MaxConcurrentRequests = defaultMaxConcurrentRequests
	}
	if cfg.ErrorPercentThreshold <= 0 {
		cfg.ErrorPercentThreshold = defaultErrorPercentThreshold
	}
	if cfg.SleepWindowInMs <= 0 {
		cfg.SleepWindowInMs = defaultSleepWindowInMs
	}
	if cfg.RequestVolumeThreshold <= 0 {
		cfg.RequestVolumeThreshold = defaultRequestVolumeThreshold
	}
	return cfg
}
