package models

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

// JournalHeader is the database row for a journal entry header.
type JournalHeader struct {
	JournalNumber string          `json:"journalNumber"` // CHAR(15) primary key
	JournalDate   time.Time       `json:"journalDate"`
	Description   string          `json:"description"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	AuditFields
}

// JournalDetail is the database row for one line of a journal.
// (journal_number, line_number) is the primary key.
type JournalDetail struct {
	JournalNumber   string          `json:"journalNumber"`
	LineNumber      int             `json:"lineNumber"`
	DebitCredit     DebitCredit     `json:"debitCredit"`
	AccountCode     string          `json:"accountCode"`
	SubAccountCode  *string         `json:"subAccountCode"`
	PartnerCode     *string         `json:"partnerCode"`
	DepartmentCode  *string         `json:"departmentCode"`
	AnalysisCode    *string         `json:"analysisCode"`
	BaseAmount      decimal.Decimal `json:"baseAmount"`
	TaxAmount       decimal.Decimal `json:"taxAmount"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	TaxCode         string          `json:"taxCode"`
	LineDescription string          `json:"lineDescription"`
}
