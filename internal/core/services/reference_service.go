package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/parish-dms/parish_ledger_app/internal/apperrors"
	portsrepo "github.com/parish-dms/parish_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/parish-dms/parish_ledger_app/internal/core/ports/services"
)

// referenceService issues reference numbers of the form PREFIX-YYYYMM-NNNN.
// The counter claim is a single atomic statement in the repository; the retry
// loop here only covers transient claim failures, never duplicate values.
type referenceService struct {
	BaseService
	counterRepo portsrepo.ReferenceCounterRepository
	maxRetries  int
}

// NewReferenceService creates a new reference number generator.
func NewReferenceService(counterRepo portsrepo.ReferenceCounterRepository, maxRetries int) portssvc.ReferenceSvcFacade {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &referenceService{
		counterRepo: counterRepo,
		maxRetries:  maxRetries,
	}
}

var _ portssvc.ReferenceSvcFacade = (*referenceService)(nil)

// Generate claims the next counter value for the scope and date and formats
// the reference number. Counters never pad past four digits: value 10000
// simply renders as five digits.
func (s *referenceService) Generate(ctx context.Context, scope string, asOf time.Time) (string, error) {
	scope = strings.ToUpper(strings.TrimSpace(scope))
	if scope == "" {
		return "", fmt.Errorf("%w: reference scope must not be empty", apperrors.ErrValidation)
	}

	year, month := asOf.Year(), asOf.Month()

	var lastErr error
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		value, err := s.counterRepo.ClaimNext(ctx, scope, year, month)
		if err == nil {
			return fmt.Sprintf("%s-%04d%02d-%04d", scope, year, int(month), value), nil
		}
		lastErr = err
		s.LogWarn(ctx, "Reference counter claim failed, retrying",
			slog.String("scope", scope),
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))
	}

	s.LogError(ctx, lastErr, "Reference counter claim exhausted retries",
		slog.String("scope", scope),
		slog.Int("max_retries", s.maxRetries))
	return "", fmt.Errorf("%w: could not claim reference number for scope %s: %v",
		apperrors.ErrConcurrency, scope, lastErr)
}
