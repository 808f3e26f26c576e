package services

import (
	"context"

	"github.com/parish-dms/parish_ledger_app/internal/dto"
)

// PairingSvcFacade defines the contra/intra pairing engine. Every operation is
// all-or-nothing: no call path may leave one side of a pair written without
// the other.
type PairingSvcFacade interface {
	// CreatePair creates a linked debit/credit pair across two accounts.
	CreatePair(ctx context.Context, req dto.CreatePairRequest, creatorUserID string) (*dto.PairResult, error)

	// EditPair updates both sides of the pair identified by its debit entry,
	// snapshotting both to history. Fails with ErrPairIntegrity when the link
	// or partner is missing.
	EditPair(ctx context.Context, debitEntryID string, req dto.UpdatePairRequest, userID string) (*dto.PairResult, error)

	// DeletePair removes both sides and the link. When no link exists it
	// deletes nothing and returns ErrPairIntegrity.
	DeletePair(ctx context.Context, debitEntryID string, userID string) error

	// GetPair retrieves both sides of the pair identified by its debit entry.
	GetPair(ctx context.Context, debitEntryID string) (*dto.PairResponse, error)

	// CreateDioceseContra creates a cross-ledger pair: two mirrored diocese
	// entries plus the spawned transaction on the counterpart pastorate
	// account, in one atomic unit.
	CreateDioceseContra(ctx context.Context, req dto.CreateDioceseContraRequest, creatorUserID string) (*dto.DioceseContraResult, error)
}
