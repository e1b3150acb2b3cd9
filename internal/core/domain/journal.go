package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebitCredit indicates which side of the double entry a line sits on.
type DebitCredit string

const (
	Debit  DebitCredit = "DEBIT"
	Credit DebitCredit = "CREDIT"
)

// JournalHeader represents a single, balanced bookkeeping entry. The
// JournalNumber is a 15-digit string: an 8-digit YYYYMMDD prefix taken from
// the journal date followed by a 7-digit zero-padded per-date sequence. It is
// assigned at creation time and never changes, even if the journal date is
// later edited.
type JournalHeader struct {
	JournalNumber string          `json:"journalNumber"` // Primary key
	JournalDate   time.Time       `json:"journalDate"`   // Date the event occurred
	Description   string          `json:"description"`   // Optional user description
	TotalAmount   decimal.Decimal `json:"totalAmount"`   // Sum of the debit side's line totals
	Lines         []JournalLine   `json:"lines,omitempty"`
	AuditFields
}

// JournalLine is one detail row of a journal. Lines are numbered 1..N with no
// gaps within a header; a header is never persisted without at least one line.
type JournalLine struct {
	JournalNumber   string          `json:"journalNumber"` // FK -> JournalHeader
	LineNumber      int             `json:"lineNumber"`    // 1-based, contiguous
	DebitCredit     DebitCredit     `json:"debitCredit"`
	AccountCode     string          `json:"accountCode"` // FK -> Account (required)
	SubAccountCode  *string         `json:"subAccountCode,omitempty"`
	PartnerCode     *string         `json:"partnerCode,omitempty"`
	DepartmentCode  *string         `json:"departmentCode,omitempty"`
	AnalysisCode    *string         `json:"analysisCode,omitempty"`
	BaseAmount      decimal.Decimal `json:"baseAmount"`
	TaxAmount       decimal.Decimal `json:"taxAmount"`
	TotalAmount     decimal.Decimal `json:"totalAmount"` // baseAmount + taxAmount
	TaxCode         string          `json:"taxCode"`
	LineDescription string          `json:"lineDescription"`
}
