package httputil_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matzehuels/ontograph/pkg/httputil"
)

func ExampleRetry() {
	calls := 0
	err := httputil.Retry(context.Background(), httputil.Policy{Attempts: 3, Delay: time.Millisecond}, func() error {
		calls++
		if calls < 3 {
			return httputil.Retryable(errors.New("registry unavailable"))
		}
		return nil
	})
	fmt.Println("Calls:", calls)
	fmt.Println("Error:", err)
	// Output:
	// Calls: 3
	// Error: <nil>
}

func ExampleCheckStatus() {
	for _, code := range []int{200, 404, 503, 400} {
		err := httputil.CheckStatus(code)
		fmt.Printf("%d retryable=%v not_found=%v\n", code, httputil.IsRetryable(err), errors.Is(err, httputil.ErrNotFound))
	}
	// Output:
	// 200 retryable=false not_found=false
	// 404 retryable=false not_found=true
	// 503 retryable=true not_found=false
	// 400 retryable=false not_found=false
}
