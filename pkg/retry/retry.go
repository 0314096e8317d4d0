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

// Package retry runs an operation with bounded exponential backoff. It is
// used around read fetches only; mutations are never safe to replay blindly.
package retry

import (
	"context"
	"fmt"
	"time"
)

const (
	DefaultAttempts  = 3
	DefaultBaseDelay = 100 * time.Millisecond
)

type options struct {
	attempts  int
	baseDelay time.Duration
}

type Option func(*options)

// WithAttempts bounds the total number of attempts, including the first.
func WithAttempts(attempts int) Option {
	return func(o *options) {
		if attempts > 0 {
			o.attempts = attempts
		}
	}
}

// WithBaseDelay sets the delay before the second attempt; each later delay
// doubles the previous one.
func WithBaseDelay(delay time.Duration) Option {
	return func(o *options) {
		if delay > 0 {
			o.baseDelay = delay
		}
	}
}

// Do runs fn until it succeeds or the attempt budget is spent. After a failed
// attempt i it waits baseDelay * 2^i, then tries again; the first success
// returns immediately and the final failure propagates the last error as-is.
// The wait is cancellable: a done context aborts between attempts.
func Do[T any](ctx context.Context, fn func(context.Context) (T, error), opts ...Option) (T, error) {
	o := options{
		attempts:  DefaultAttempts,
		baseDelay: DefaultBaseDelay,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var (
		zero    T
		lastErr error
	)
	for i := 0; i < o.attempts; i++ {
		if err := ctx.Err(); err != nil {
			return zero, fmt.Errorf("retry aborted after %d attempts: %w", i, err)
		}

		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if i == o.attempts-1 {
			break
		}

		delay := o.baseDelay << i
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, fmt.Errorf("retry aborted after %d attempts: %w", i+1, ctx.Err())
		case <-timer.C:
		}
	}

	return zero, lastErr
}
