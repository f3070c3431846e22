// Package httputil provides HTTP utilities for registry clients.
//
// # Overview
//
//   - [Get]: a GET request with status classification and HTTP hooks
//   - [Retry]: automatic retry with exponential backoff
//
// # Status Classification
//
// [CheckStatus] sorts responses into three groups:
//
//   - 2xx: success
//   - 404: [ErrNotFound], which registry sources treat as an empty collection
//   - 429 and 5xx: transient, wrapped in [RetryableError]
//
// Anything else is a permanent [ErrNetwork].
//
// # Retry
//
// [Retry] only retries errors wrapped with [RetryableError]:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    body, err = httputil.Get(ctx, client, url, nil)
//	    return err
//	})
//
// The default policy makes 3 attempts with a 1 second initial delay that
// doubles after each retry.
package httputil
