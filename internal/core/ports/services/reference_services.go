package services

import (
	"context"
	"time"
)

// ReferenceSvcFacade produces unique, scoped, human-readable reference numbers
// of the form PREFIX-YYYYMM-NNNN, where NNNN is a 1-based counter scoped to
// (scope, year, month).
type ReferenceSvcFacade interface {
	// Generate claims the next counter value for the scope and date. Claims are
	// atomic; concurrent calls for the same scope/month yield distinct,
	// contiguous numbers. Surfaces ErrConcurrency after bounded retries.
	Generate(ctx context.Context, scope string, asOf time.Time) (string, error)
}
