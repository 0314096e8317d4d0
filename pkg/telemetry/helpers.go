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
	"go.opentelemetry.io/otel/attribute"
)

// naming conventions for metric names
const (
	MetricNameSuffixTotal    = "_total"
	MetricNameSuffixDuration = "_duration_seconds"
)

const (
	AttrStore    = "teamdir_store"
	AttrResult   = "teamdir_result"
	AttrBackend  = "teamdir_backend"
	AttrMethod   = "teamdir_method"
	AttrStatus   = "teamdir_status"
	AttrResource = "teamdir_resource"
)

const (
	ResultHit  = "hit"
	ResultMiss = "miss"
)

func BuildMetricName(baseName, suffix string) string {
	prefixedName := "teamdir_" + baseName
	if suffix == "" {
		return prefixedName
	}
	return prefixedName + suffix
}

// creates attribute for the cache store name
func WithStore(store string) attribute.KeyValue {
	return attribute.String(AttrStore, store)
}

// creates attribute for a hit/miss result
func WithResult(result string) attribute.KeyValue {
	return attribute.String(AttrResult, result)
}

// creates attribute for the upstream backend name
func WithBackend(backend string) attribute.KeyValue {
	return attribute.String(AttrBackend, backend)
}

// creates attribute for the HTTP method
func WithMethod(method string) attribute.KeyValue {
	return attribute.String(AttrMethod, method)
}

// creates attribute for the HTTP status code
func WithStatus(status int) attribute.KeyValue {
	return attribute.Int(AttrStatus, status)
}
