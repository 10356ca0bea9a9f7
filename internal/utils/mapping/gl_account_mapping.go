package mapping

import (
	"github.com/kelvinbaffour/branchledger/internal/core/domain"
	"github.com/kelvinbaffour/branchledger/internal/models"
)

// ToModelGLAccount converts a domain GLAccount to a model GLAccount
func ToModelGLAccount(d domain.GLAccount) models.GLAccount {
	return models.GLAccount{
		AccountID:   d.AccountID,
		Code:        d.Code,
		Name:        d.Name,
		Category:    models.AccountCategory(d.Category),
		BranchID:    d.BranchID,
		Balance:     d.Balance,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainGLAccount converts a model GLAccount to a domain GLAccount
func ToDomainGLAccount(m models.GLAccount) domain.GLAccount {
	return domain.GLAccount{
		AccountID:   m.AccountID,
		Code:        m.Code,
		Name:        m.Name,
		Category:    domain.AccountCategory(m.Category),
		BranchID:    m.BranchID,
		Balance:     m.Balance,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelAccountMapping converts a domain AccountMapping to a model AccountMapping
func ToModelAccountMapping(d domain.AccountMapping) models.AccountMapping {
	return models.AccountMapping{
		MappingID:      d.MappingID,
		FloatAccountID: d.FloatAccountID,
		GLAccountID:    d.GLAccountID,
		Role:           models.MappingRole(d.Role),
		BranchID:       d.BranchID,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccountMapping converts a model AccountMapping to a domain AccountMapping
func ToDomainAccountMapping(m models.AccountMapping) domain.AccountMapping {
	return domain.AccountMapping{
		MappingID:      m.MappingID,
		FloatAccountID: m.FloatAccountID,
		GLAccountID:    m.GLAccountID,
		Role:           domain.MappingRole(m.Role),
		BranchID:       m.BranchID,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainFloatAccount converts a model FloatAccount to a domain FloatAccount
func ToDomainFloatAccount(m models.FloatAccount) domain.FloatAccount {
	return domain.FloatAccount{
		FloatAccountID: m.FloatAccountID,
		BranchID:       m.BranchID,
		AccountType:    domain.FloatAccountType(m.AccountType),
		Provider:       m.Provider,
		CurrentBalance: m.CurrentBalance,
		IsActive:       m.IsActive,
	}
}
