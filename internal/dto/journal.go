package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kicho-app/kicho_backend/internal/core/domain"
)

// JournalDateLayout is the wire format for journal dates.
const JournalDateLayout = "2006-01-02"

// CreateJournalLineRequest is one submitted detail line. Tax and total
// amounts are always recomputed server-side from the base amount and the
// resolved tax code; client-supplied values are advisory only.
type CreateJournalLineRequest struct {
	DebitCredit     string          `json:"debitCredit" binding:"required,oneof=DEBIT CREDIT"`
	AccountCode     string          `json:"accountCode" binding:"required"`
	SubAccountCode  *string         `json:"subAccountCode,omitempty"`
	PartnerCode     *string         `json:"partnerCode,omitempty"`
	DepartmentCode  *string         `json:"departmentCode,omitempty"`
	AnalysisCode    *string         `json:"analysisCode,omitempty"`
	BaseAmount      decimal.Decimal `json:"baseAmount" binding:"required"`
	TaxCode         *string         `json:"taxCode,omitempty"` // Absent: account default, then non-taxable
	LineDescription string          `json:"lineDescription,omitempty"`
}

// CreateJournalRequest creates a new journal: a header plus at least one line.
type CreateJournalRequest struct {
	JournalDate string                     `json:"journalDate" binding:"required,datetime=2006-01-02"`
	Description string                     `json:"description,omitempty"`
	Lines       []CreateJournalLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateJournalRequest patches header fields and fully replaces the line set.
// Lines is required: a journal can never exist with zero detail lines.
type UpdateJournalRequest struct {
	JournalDate *string                    `json:"journalDate,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Description *string                    `json:"description,omitempty"`
	Lines       []CreateJournalLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// JournalLineResponse is one persisted detail line.
type JournalLineResponse struct {
	LineNumber      int             `json:"lineNumber"`
	DebitCredit     string          `json:"debitCredit"`
	AccountCode     string          `json:"accountCode"`
	SubAccountCode  *string         `json:"subAccountCode,omitempty"`
	PartnerCode     *string         `json:"partnerCode,omitempty"`
	DepartmentCode  *string         `json:"departmentCode,omitempty"`
	AnalysisCode    *string         `json:"analysisCode,omitempty"`
	BaseAmount      decimal.Decimal `json:"baseAmount"`
	TaxAmount       decimal.Decimal `json:"taxAmount"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	TaxCode         string          `json:"taxCode"`
	LineDescription string          `json:"lineDescription,omitempty"`
}

// JournalResponse is a persisted journal with its lines.
type JournalResponse struct {
	JournalNumber string                `json:"journalNumber"`
	JournalDate   string                `json:"journalDate"`
	Description   string                `json:"description,omitempty"`
	TotalAmount   decimal.Decimal       `json:"totalAmount"`
	Lines         []JournalLineResponse `json:"lines,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	CreatedBy     string                `json:"createdBy"`
	LastUpdatedAt time.Time             `json:"lastUpdatedAt"`
	LastUpdatedBy string                `json:"lastUpdatedBy"`
}

// ListJournalsParams holds query parameters for listing journals.
type ListJournalsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListJournalsResponse is one page of journals plus the cursor for the next.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// NextNumberResponse carries a previewed journal number. The value may be
// stale the instant another allocation commits; it is never a reservation.
type NextNumberResponse struct {
	JournalNumber string `json:"journalNumber"`
}

// SequenceIntegrityResponse is the read-only audit result.
type SequenceIntegrityResponse struct {
	Anomalies []domain.SequenceAnomaly `json:"anomalies"`
}

// ToJournalLineResponse converts a domain JournalLine to its response DTO.
func ToJournalLineResponse(line domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineNumber:      line.LineNumber,
		DebitCredit:     string(line.DebitCredit),
		AccountCode:     line.AccountCode,
		SubAccountCode:  line.SubAccountCode,
		PartnerCode:     line.PartnerCode,
		DepartmentCode:  line.DepartmentCode,
		AnalysisCode:    line.AnalysisCode,
		BaseAmount:      line.BaseAmount,
		TaxAmount:       line.TaxAmount,
		TotalAmount:     line.TotalAmount,
		TaxCode:         line.TaxCode,
		LineDescription: line.LineDescription,
	}
}

// ToJournalResponse converts a domain JournalHeader to its response DTO.
func ToJournalResponse(j *domain.JournalHeader) JournalResponse {
	lines := make([]JournalLineResponse, len(j.Lines))
	for i, line := range j.Lines {
		lines[i] = ToJournalLineResponse(line)
	}
	return JournalResponse{
		JournalNumber: j.JournalNumber,
		JournalDate:   j.JournalDate.Format(JournalDateLayout),
		Description:   j.Description,
		TotalAmount:   j.TotalAmount,
		Lines:         lines,
		CreatedAt:     j.CreatedAt,
		CreatedBy:     j.CreatedBy,
		LastUpdatedAt: j.LastUpdatedAt,
		LastUpdatedBy: j.LastUpdatedBy,
	}
}
