package models

import (
	"github.com/shopspring/decimal"
)

// AccountCategory mirrors the domain enumeration for persistence.
type AccountCategory string

const (
	Asset     AccountCategory = "ASSET"
	Liability AccountCategory = "LIABILITY"
	Equity    AccountCategory = "EQUITY"
	Revenue   AccountCategory = "REVENUE"
	Expense   AccountCategory = "EXPENSE"
)

// GLAccount is the gl_accounts row.
type GLAccount struct {
	AccountID string          `db:"account_id"`
	Code      string          `db:"code"` // Unique per chart
	Name      string          `db:"name"`
	Category  AccountCategory `db:"category"`
	BranchID  string          `db:"branch_id"`
	Balance   decimal.Decimal `db:"balance"`
	IsActive  bool            `db:"is_active"`
	AuditFields
}
