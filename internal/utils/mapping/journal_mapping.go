package mapping

import (
	"github.com/kicho-app/kicho_backend/internal/core/domain"
	"github.com/kicho-app/kicho_backend/internal/models"
)

// ToModelJournalHeader converts a domain JournalHeader to a model JournalHeader
func ToModelJournalHeader(d domain.JournalHeader) models.JournalHeader {
	return models.JournalHeader{
		JournalNumber: d.JournalNumber,
		JournalDate:   d.JournalDate,
		Description:   d.Description,
		TotalAmount:   d.TotalAmount,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalHeader converts a model JournalHeader to a domain JournalHeader
func ToDomainJournalHeader(m models.JournalHeader) domain.JournalHeader {
	return domain.JournalHeader{
		JournalNumber: m.JournalNumber,
		JournalDate:   m.JournalDate,
		Description:   m.Description,
		TotalAmount:   m.TotalAmount,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalDetail converts a domain JournalLine to a model JournalDetail
func ToModelJournalDetail(d domain.JournalLine) models.JournalDetail {
	return models.JournalDetail{
		JournalNumber:   d.JournalNumber,
		LineNumber:      d.LineNumber,
		DebitCredit:     models.DebitCredit(d.DebitCredit),
		AccountCode:     d.AccountCode,
		SubAccountCode:  d.SubAccountCode,
		PartnerCode:     d.PartnerCode,
		DepartmentCode:  d.DepartmentCode,
		AnalysisCode:    d.AnalysisCode,
		BaseAmount:      d.BaseAmount,
		TaxAmount:       d.TaxAmount,
		TotalAmount:     d.TotalAmount,
		TaxCode:         d.TaxCode,
		LineDescription: d.LineDescription,
	}
}

// ToDomainJournalLine converts a model JournalDetail to a domain JournalLine
func ToDomainJournalLine(m models.JournalDetail) domain.JournalLine {
	return domain.JournalLine{
		JournalNumber:   m.JournalNumber,
		LineNumber:      m.LineNumber,
		DebitCredit:     domain.DebitCredit(m.DebitCredit),
		AccountCode:     m.AccountCode,
		SubAccountCode:  m.SubAccountCode,
		PartnerCode:     m.PartnerCode,
		DepartmentCode:  m.DepartmentCode,
		AnalysisCode:    m.AnalysisCode,
		BaseAmount:      m.BaseAmount,
		TaxAmount:       m.TaxAmount,
		TotalAmount:     m.TotalAmount,
		TaxCode:         m.TaxCode,
		LineDescription: m.LineDescription,
	}
}

// ToDomainJournalLineSlice converts a slice of model JournalDetails to domain JournalLines
func ToDomainJournalLineSlice(ms []models.JournalDetail) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
