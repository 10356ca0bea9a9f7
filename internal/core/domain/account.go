package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AccountCategory defines the fundamental accounting category of a GL account.
type AccountCategory string

const (
	Asset     AccountCategory = "ASSET"
	Liability AccountCategory = "LIABILITY"
	Equity    AccountCategory = "EQUITY"
	Revenue   AccountCategory = "REVENUE"
	Expense   AccountCategory = "EXPENSE"
)

// ValidCategory reports whether c is one of the five recognized categories.
func ValidCategory(c AccountCategory) bool {
	switch c {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// GLAccount represents a chart-of-accounts ledger account.
// Balance is mutated only by the posting engine; accounts are deactivated,
// never physically deleted.
type GLAccount struct {
	AccountID string          `json:"accountID"` // Primary Key (UUID)
	Code      string          `json:"code"`      // Unique, human-assigned (e.g. "1001")
	Name      string          `json:"name"`
	Category  AccountCategory `json:"category"`
	BranchID  string          `json:"branchID"`
	Balance   decimal.Decimal `json:"balance"` // Accumulated, normal-balance signed
	IsActive  bool            `json:"isActive"`
	AuditFields
}

// GLAccountRef identifies a GL account either by its opaque identity or by its
// human-assigned code. It is resolved to an identity exactly once at the boundary
// by the registry; code strings are never compared downstream.
type GLAccountRef struct {
	accountID string
	code      string
}

// RefByID builds a GLAccountRef from an opaque account identity.
func RefByID(accountID string) GLAccountRef {
	return GLAccountRef{accountID: accountID}
}

// RefByCode builds a GLAccountRef from a human-assigned account code.
func RefByCode(code string) GLAccountRef {
	return GLAccountRef{code: strings.TrimSpace(code)}
}

// AccountID returns the identity part of the ref, empty if only a code was given.
func (r GLAccountRef) AccountID() string { return r.accountID }

// Code returns the code part of the ref, empty if only an identity was given.
func (r GLAccountRef) Code() string { return r.code }

// IsZero reports whether the ref carries neither an identity nor a code.
func (r GLAccountRef) IsZero() bool { return r.accountID == "" && r.code == "" }
