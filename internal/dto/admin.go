package dto

import (
	"time"

	"github.com/parish-dms/parish_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceRepairResponse is one cached balance fixed by reconciliation.
type BalanceRepairResponse struct {
	AccountID  string          `json:"accountID"`
	OldBalance decimal.Decimal `json:"oldBalance"`
	NewBalance decimal.Decimal `json:"newBalance"`
}

// RepairReportResponse is the outcome of a full reconciliation run.
type RepairReportResponse struct {
	Checked        int                     `json:"checked"`
	Repairs        []BalanceRepairResponse `json:"repairs"`
	Failures       []domain.RepairFailure  `json:"failures,omitempty"`
	StartedAt      time.Time               `json:"startedAt"`
	DurationMillis int64                   `json:"durationMillis"`
}

// ContraIssueResponse is one consistency checker finding.
type ContraIssueResponse struct {
	ReferenceNumber string           `json:"referenceNumber"`
	Kind            domain.IssueKind `json:"kind"`
	Date            time.Time        `json:"date"`
	Details         string           `json:"details"`
}

// ToRepairReportResponse converts a domain repair report to its DTO.
func ToRepairReportResponse(r *domain.RepairReport) RepairReportResponse {
	repairs := make([]BalanceRepairResponse, len(r.Repairs))
	for i, rep := range r.Repairs {
		repairs[i] = BalanceRepairResponse{
			AccountID:  rep.AccountID,
			OldBalance: rep.OldBalance,
			NewBalance: rep.NewBalance,
		}
	}
	return RepairReportResponse{
		Checked:        r.Checked,
		Repairs:        repairs,
		Failures:       r.Failures,
		StartedAt:      r.StartedAt,
		DurationMillis: r.Duration.Milliseconds(),
	}
}

// ToContraIssueResponses converts consistency checker findings to DTOs.
func ToContraIssueResponses(issues []domain.ContraIssue) []ContraIssueResponse {
	out := make([]ContraIssueResponse, len(issues))
	for i, issue := range issues {
		out[i] = ContraIssueResponse{
			ReferenceNumber: issue.ReferenceNumber,
			Kind:            issue.Kind,
			Date:            issue.Date,
			Details:         issue.Details,
		}
	}
	return out
}
