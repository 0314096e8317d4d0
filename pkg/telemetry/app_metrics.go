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

package telemetry

import (
	"context"
	"sync"
	"time"

	otelmetric "go.opentelemetry.io/otel/metric"
)

var (
	appMetrics     *AppMetrics
	appMetricsOnce sync.Once
)

// AppMetrics holds the service-level counters: cache hit/miss per store and
// upstream request count/duration per backend.
type AppMetrics struct {
	CacheRequestsTotal      *Counter
	UpstreamRequestsTotal   *Counter
	UpstreamRequestDuration *Histogram
}

func InitAppMetrics(meter otelmetric.Meter) error {
	var initErr error
	appMetricsOnce.Do(func() {
		cacheRequests, err := NewCounter(meter, MetricOptions{
			Name: BuildMetricName("cache_requests", MetricNameSuffixTotal),
			Description: "total number of cache lookups, labelled hit or miss per store. " +
				"hit rate per store: hits / (hits + misses) in the metrics backend",
			Unit: "1",
		})
		if err != nil {
			initErr = err
			return
		}

		upstreamRequests, err := NewCounter(meter, MetricOptions{
			Name:        BuildMetricName("upstream_requests", MetricNameSuffixTotal),
			Description: "total number of requests sent to the upstream API, labelled by method and status",
			Unit:        "1",
		})
		if err != nil {
			initErr = err
			return
		}

		upstreamDuration, err := NewHistogram(meter, MetricOptions{
			Name:        BuildMetricName("upstream_request", MetricNameSuffixDuration),
			Description: "duration of requests sent to the upstream API",
			Unit:        "s",
		})
		if err != nil {
			initErr = err
			return
		}

		appMetrics = &AppMetrics{
			CacheRequestsTotal:      cacheRequests,
			UpstreamRequestsTotal:   upstreamRequests,
			UpstreamRequestDuration: upstreamDuration,
		}
	})
	return initErr
}

// RecordCacheRequest counts one cache lookup. No-op until InitAppMetrics ran.
func RecordCacheRequest(ctx context.Context, store string, hit bool) {
	if appMetrics == nil {
		return
	}
	result := ResultMiss
	if hit {
		result = ResultHit
	}
	appMetrics.CacheRequestsTotal.Inc(ctx, WithStore(store), WithResult(result))
}

// RecordUpstreamRequest counts one upstream exchange and records its
// duration. A zero status means the request never completed.
func RecordUpstreamRequest(ctx context.Context, backend, method string, status int, elapsed time.Duration) {
	if appMetrics == nil {
		return
	}
	appMetrics.UpstreamRequestsTotal.Inc(ctx, WithBackend(backend), WithMethod(method), WithStatus(status))
	appMetrics.UpstreamRequestDuration.Record(ctx, elapsed.Seconds(), WithBackend(backend), WithMethod(method))
}
