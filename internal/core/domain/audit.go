package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// IssueKind classifies a contra/intra pair inconsistency.
type IssueKind string

const (
	WrongPairSize   IssueKind = "WRONG_PAIR_SIZE"
	AmountMismatch  IssueKind = "AMOUNT_MISMATCH"
	AccountMismatch IssueKind = "ACCOUNT_MISMATCH"
	DateMismatch    IssueKind = "DATE_MISMATCH"
)

// ContraIssue is one finding of the consistency checker. Issue lists are
// ordered by (Date, ReferenceNumber) so repeated scans over unchanged data
// produce identical reports.
type ContraIssue struct {
	ReferenceNumber string    `json:"referenceNumber"`
	Kind            IssueKind `json:"kind"`
	Date            time.Time `json:"date"`
	Details         string    `json:"details"`
}

// BalanceRepair records one cached balance overwritten by reconciliation.
type BalanceRepair struct {
	AccountID  string          `json:"accountID"`
	OldBalance decimal.Decimal `json:"oldBalance"`
	NewBalance decimal.Decimal `json:"newBalance"`
}

// RepairFailure records an account whose repair transaction failed. A failure
// on one account does not abort the reconciliation of the others.
type RepairFailure struct {
	AccountID string `json:"accountID"`
	Reason    string `json:"reason"`
}

// RepairReport is the outcome of a full reconciliation run.
type RepairReport struct {
	Checked   int             `json:"checked"`
	Repairs   []BalanceRepair `json:"repairs"`
	Failures  []RepairFailure `json:"failures"`
	StartedAt time.Time       `json:"startedAt"`
	Duration  time.Duration   `json:"duration"`
}
