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

package request

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gojek/heimdall/v7"
	"github.com/opentracing/opentracing-go"

	"github.com/teamdir/teamdir/pkg/telemetry"
)

// Request wraps an outbound HTTP request so every caller gets the same
// header handling, tracing and metrics treatment.
type Request struct {
	req *http.Request
}

func NewRequest(ctx context.Context, method, url string, body []byte) (*Request, error) {
	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	return &Request{req: req}, nil
}

func (r *Request) SetHeaders(headers map[string]string) {
	for key, value := range headers {
		r.req.Header.Set(key, value)
	}
}

// MakeRequest executes the request on the given client, recording a span
// named methodName and upstream metrics labelled with the backend name.
// Non-2xx statuses are not errors here; callers own status policy.
func (r *Request) MakeRequest(client heimdall.Doer, methodName, backend string) ([]byte, int, error) {
	span, ctx := opentracing.StartSpanFromContext(r.req.Context(), methodName)
	defer span.Finish()
	r.req = r.req.WithContext(ctx)

	start := time.Now()
	resp, err := client.Do(r.req)
	if err != nil {
		telemetry.RecordUpstreamRequest(ctx, backend, r.req.Method, 0, time.Since(start))
		return nil, 0, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	telemetry.RecordUpstreamRequest(ctx, backend, r.req.Method, resp.StatusCode, time.Since(start))

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}

	return responseBody, resp.StatusCode, nil
}
