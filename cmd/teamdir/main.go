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

package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/teamdir/teamdir/internal/httpapi/handlers"
	"github.com/teamdir/teamdir/internal/httpapi/server"
	"github.com/teamdir/teamdir/pkg/cache"
	"github.com/teamdir/teamdir/pkg/cache/inmemory"
	"github.com/teamdir/teamdir/pkg/cache/redis"
	"github.com/teamdir/teamdir/pkg/clients/directory"
	"github.com/teamdir/teamdir/pkg/config"
	"github.com/teamdir/teamdir/pkg/logger"
	"github.com/teamdir/teamdir/pkg/retry"
	"github.com/teamdir/teamdir/pkg/service"
	"github.com/teamdir/teamdir/pkg/store"
	"github.com/teamdir/teamdir/pkg/telemetry"
)

func main() {
	configPath := flag.String("config", "config/app.yaml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	logger.Init(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    cfg.App.Name,
		ServiceVersion: cfg.App.Version,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		Insecure:       cfg.Telemetry.Insecure,
		Enabled:        cfg.Telemetry.Enabled,
	}); err != nil {
		logrus.WithError(err).Fatal("failed to initialize telemetry")
	}
	defer func() {
		if err := telemetry.Shutdown(context.Background()); err != nil {
			logrus.WithError(err).Error("failed to shut down telemetry")
		}
	}()

	if err := telemetry.InitAppMetrics(telemetry.GetMeter(cfg.App.Name)); err != nil {
		logrus.WithError(err).Fatal("failed to initialize metrics")
	}

	// The cache store lives for the whole process; every access layer
	// shares the same instance.
	backend, err := newCacheBackend(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialize cache backend")
	}
	dataStore := store.New(backend)

	client, err := directory.NewClient(cfg.Upstream)
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialize directory client")
	}

	retryOpts := []retry.Option{
		retry.WithAttempts(cfg.Upstream.Retry.Attempts),
		retry.WithBaseDelay(time.Duration(cfg.Upstream.Retry.BaseDelayInMs) * time.Millisecond),
	}

	roleService := service.NewRoleService(client, dataStore, retryOpts...)
	userService := service.NewUserService(client, roleService, dataStore, retryOpts...)

	apiServer := server.NewAPIServer(cfg, handlers.NewHandlers(cfg, roleService, userService))
	if err := apiServer.Start(ctx); err != nil {
		logrus.WithError(err).Fatal("http API server exited with error")
	}
}

func newCacheBackend(ctx context.Context, cfg *config.AppConfig) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		return redis.NewCache(ctx, &cfg.Cache.Redis)
	default:
		return inmemory.NewCache(&cfg.Cache.Inmemory)
	}
}
