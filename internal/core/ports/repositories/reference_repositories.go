package repositories

import (
	"context"
	"time"
)

// ReferenceCounterRepository claims monotonically increasing counter values
// scoped to (scope, year, month). The claim is atomic against the backing
// store: two concurrent claims can never observe the same value.
type ReferenceCounterRepository interface {
	// ClaimNext atomically increments and returns the counter for the scope and
	// month. The first claim for a scope/month returns 1.
	ClaimNext(ctx context.Context, scope string, year int, month time.Month) (int64, error)
}
