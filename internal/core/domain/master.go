package domain

import "github.com/shopspring/decimal"

// MasterKind identifies which master table a code belongs to.
type MasterKind string

const (
	MasterAccount      MasterKind = "accounts"
	MasterPartner      MasterKind = "partners"
	MasterDepartment   MasterKind = "departments"
	MasterAnalysisCode MasterKind = "analysis_codes"
)

// NonTaxableCode is the tax code applied when neither the caller nor the
// account's configured default supplies one.
const NonTaxableCode = "00"

// Account is a ledger account that journal lines post to. Accounts form a
// tree via ParentCode. Version is bumped on every write and compared on
// update (optimistic concurrency).
type Account struct {
	AccountCode    string  `json:"accountCode"` // Primary key
	Name           string  `json:"name"`
	ParentCode     *string `json:"parentCode,omitempty"`
	DefaultTaxCode *string `json:"defaultTaxCode,omitempty"`
	IsActive       bool    `json:"isActive"`
	Version        int64   `json:"version"`
	AuditFields
}

// Partner is a counterparty (customer/vendor) referenced by journal lines.
type Partner struct {
	PartnerCode string `json:"partnerCode"`
	Name        string `json:"name"`
	IsActive    bool   `json:"isActive"`
	Version     int64  `json:"version"`
	AuditFields
}

// Department is an organizational unit referenced by journal lines.
type Department struct {
	DepartmentCode string `json:"departmentCode"`
	Name           string `json:"name"`
	IsActive       bool   `json:"isActive"`
	Version        int64  `json:"version"`
	AuditFields
}

// AnalysisCode is a free analysis dimension; codes form a tree via ParentCode.
type AnalysisCode struct {
	AnalysisCode string  `json:"analysisCode"`
	Name         string  `json:"name"`
	ParentCode   *string `json:"parentCode,omitempty"`
	IsActive     bool    `json:"isActive"`
	Version      int64   `json:"version"`
	AuditFields
}

// TaxRate defines a tax code's percentage rate and whether it is taxable at
// all. Non-taxable codes always yield a zero tax amount.
type TaxRate struct {
	TaxCode string          `json:"taxCode"`
	Name    string          `json:"name"`
	Rate    decimal.Decimal `json:"rate"` // Percentage, e.g. 10 for 10%
	Taxable bool            `json:"taxable"`
	Version int64           `json:"version"`
	AuditFields
}

// DeleteCheck is the result of the master reference guard: a master row is
// deletable only while no persisted journal detail references it.
type DeleteCheck struct {
	Deletable  bool   `json:"deletable"`
	References int64  `json:"references"`
	Reason     string `json:"reason,omitempty"`
}
