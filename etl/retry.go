// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package etl

import (
	"context"
	"log/slog"
	"math"
	"time"
)

// RetryWithBackoff runs an operation and retries it with exponential
// backoff on failure.
//
// maxRetries is the number of retries after the first attempt, so the
// operation runs at most maxRetries+1 times. The delay before retry
// attempt n (0-based) is initialDelay * coefficient^n. Returns the error
// from the last attempt if all attempts fail.
func RetryWithBackoff(ctx context.Context, operation func() error, maxRetries int, coefficient float64, initialDelay time.Duration) error {
	if maxRetries < 0 {
		return ErrInvalidMaxRetries
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		// Check context before attempting
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		lastErr = operation()
		if lastErr == nil {
			if attempt > 0 {
				slog.Debug("operation succeeded after retry", "attempt", attempt+1)
			}
			return nil // Success
		}

		slog.Debug("operation failed, will retry", "attempt", attempt+1, "maxRetries", maxRetries, "error", lastErr)

		// Don't sleep after the last attempt
		if attempt == maxRetries {
			break
		}

		delay := time.Duration(float64(initialDelay) * math.Pow(coefficient, float64(attempt)))

		// Sleep with context awareness
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
			// Continue to next attempt
		}
	}

	return lastErr
}
