package models

import "github.com/shopspring/decimal"

// FloatAccount is the float_accounts row. The table is owned by the float
// operations subsystem; the ledger core only reads it.
type FloatAccount struct {
	FloatAccountID string          `db:"float_account_id"`
	BranchID       string          `db:"branch_id"`
	AccountType    string          `db:"account_type"`
	Provider       string          `db:"provider"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	IsActive       bool            `db:"is_active"`
}
