package models

import "github.com/shopspring/decimal"

// Account is the database row for a ledger account.
type Account struct {
	AccountCode    string  `json:"accountCode"`
	Name           string  `json:"name"`
	ParentCode     *string `json:"parentCode"`
	DefaultTaxCode *string `json:"defaultTaxCode"`
	IsActive       bool    `json:"isActive"`
	Version        int64   `json:"version"`
	AuditFields
}

// Partner is the database row for a counterparty.
type Partner struct {
	PartnerCode string `json:"partnerCode"`
	Name        string `json:"name"`
	IsActive    bool   `json:"isActive"`
	Version     int64  `json:"version"`
	AuditFields
}

// Department is the database row for an organizational unit.
type Department struct {
	DepartmentCode string `json:"departmentCode"`
	Name           string `json:"name"`
	IsActive       bool   `json:"isActive"`
	Version        int64  `json:"version"`
	AuditFields
}

// AnalysisCode is the database row for an analysis dimension code.
type AnalysisCode struct {
	AnalysisCode string  `json:"analysisCode"`
	Name         string  `json:"name"`
	ParentCode   *string `json:"parentCode"`
	IsActive     bool    `json:"isActive"`
	Version      int64   `json:"version"`
	AuditFields
}

// TaxRate is the database row for a tax code definition.
type TaxRate struct {
	TaxCode string          `json:"taxCode"`
	Name    string          `json:"name"`
	Rate    decimal.Decimal `json:"rate"`
	Taxable bool            `json:"taxable"`
	Version int64           `json:"version"`
	AuditFields
}
