package mapping

import (
	"github.com/kicho-app/kicho_backend/internal/core/domain"
	"github.com/kicho-app/kicho_backend/internal/models"
)

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountCode:    m.AccountCode,
		Name:           m.Name,
		ParentCode:     m.ParentCode,
		DefaultTaxCode: m.DefaultTaxCode,
		IsActive:       m.IsActive,
		Version:        m.Version,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTaxRate converts a model TaxRate to a domain TaxRate
func ToDomainTaxRate(m models.TaxRate) domain.TaxRate {
	return domain.TaxRate{
		TaxCode:     m.TaxCode,
		Name:        m.Name,
		Rate:        m.Rate,
		Taxable:     m.Taxable,
		Version:     m.Version,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAnalysisCode converts a model AnalysisCode to a domain AnalysisCode
func ToDomainAnalysisCode(m models.AnalysisCode) domain.AnalysisCode {
	return domain.AnalysisCode{
		AnalysisCode: m.AnalysisCode,
		Name:         m.Name,
		ParentCode:   m.ParentCode,
		IsActive:     m.IsActive,
		Version:      m.Version,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
