package accounting

import (
	"fmt"

	"github.com/parish-dms/parish_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmount applies the fixed sign table to a ledger entry: credit-like
// types (receipt, offering, custom_credit, contra_credit, intra_credit) are
// positive, debit-like types (bill, aqudence, custom_debit, contra_debit,
// intra_debit) negative. Used by services and repositories alike so the sign
// logic lives in exactly one place.
func SignedAmount(txnType domain.TransactionType, amount decimal.Decimal) (decimal.Decimal, error) {
	if !txnType.IsValid() {
		return decimal.Zero, fmt.Errorf("unknown transaction type %q", txnType)
	}
	if txnType.IsCredit() {
		return amount, nil
	}
	return amount.Neg(), nil
}

// SignedDioceseAmount is the diocese ledger's two-valued sign table.
func SignedDioceseAmount(entryType domain.DioceseEntryType, amount decimal.Decimal) (decimal.Decimal, error) {
	if !entryType.IsValid() {
		return decimal.Zero, fmt.Errorf("unknown diocese entry type %q", entryType)
	}
	if entryType.IsCredit() {
		return amount, nil
	}
	return amount.Neg(), nil
}

// ComputeBalance derives an account balance from its pastorate/church ledger
// rows. The result is a pure function of the rows: summation over exact
// decimals is commutative, so insertion order is irrelevant.
func ComputeBalance(txns []domain.Transaction) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, txn := range txns {
		signed, err := SignedAmount(txn.Type, txn.Amount)
		if err != nil {
			return decimal.Zero, fmt.Errorf("transaction %s: %w", txn.TransactionID, err)
		}
		sum = sum.Add(signed)
	}
	return sum, nil
}

// ComputeDioceseBalance derives a diocese account balance from its diocese
// ledger rows.
func ComputeDioceseBalance(txns []domain.DioceseTransaction) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, txn := range txns {
		signed, err := SignedDioceseAmount(txn.Type, txn.Amount)
		if err != nil {
			return decimal.Zero, fmt.Errorf("diocese transaction %s: %w", txn.TransactionID, err)
		}
		sum = sum.Add(signed)
	}
	return sum, nil
}

// ValidatePairAmount checks the base invariants of a contra/intra pair request.
func ValidatePairAmount(amount decimal.Decimal, sourceAccountID, destAccountID string) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("pair amount must be positive, got %s", amount.String())
	}
	if sourceAccountID == destAccountID {
		return fmt.Errorf("source and destination accounts must differ")
	}
	return nil
}
