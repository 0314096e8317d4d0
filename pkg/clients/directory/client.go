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

package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/gojek/heimdall/v7"

	"github.com/teamdir/teamdir/pkg/config"
	"github.com/teamdir/teamdir/pkg/request"
	"github.com/teamdir/teamdir/pkg/request/httpclient"
)

// NewClient creates a directory API client. Retries are owned by the access
// layers (reads only), so the transport gets a no-op retrier.
func NewClient(cfg config.UpstreamConfig) (*DirectoryClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("directory configuration is missing required field: baseUrl")
	}

	client, err := httpclient.InitializeClient(
		"directory",
		cfg.ConnectionPool,
		cfg.Resiliency,
		heimdall.NewNoRetrier(),
		0,
		nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize http client: %w", err)
	}

	return &DirectoryClient{
		client:  client,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}, nil
}

var _ Client = (*DirectoryClient)(nil)

// sendRequest makes an HTTP request to the directory API and enforces the
// shared status policy: 404 maps to ErrNotFound, any other non-success
// status is an error carrying the status and body.
func (dc *DirectoryClient) sendRequest(ctx context.Context, url, method string, body interface{},
	methodName string) ([]byte, int, error) {
	var requestBody []byte
	if body != nil {
		var err error
		requestBody, err = json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	req, err := request.NewRequest(ctx, method, url, requestBody)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.SetHeaders(map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	})

	response, statusCode, err := req.MakeRequest(dc.client, methodName, "directory")
	if err != nil {
		return nil, statusCode, fmt.Errorf("request failed: %w", err)
	}

	if statusCode == http.StatusNotFound {
		return response, statusCode, ErrNotFound
	}

	if !slices.Contains([]int{http.StatusOK, http.StatusCreated, http.StatusNoContent}, statusCode) {
		return response, statusCode, fmt.Errorf("unexpected status code: %d, response: %s", statusCode, string(response))
	}

	return response, statusCode, nil
}

// listingURL builds a listing URL with the page and every active filter as
// query parameters.
func (dc *DirectoryClient) listingURL(resource string, page int, filters url.Values) string {
	params := url.Values{}
	for name, vals := range filters {
		for _, val := range vals {
			params.Add(name, val)
		}
	}
	params.Set("page", strconv.Itoa(page))
	return fmt.Sprintf("%s/%s?%s", dc.baseURL, resource, params.Encode())
}
