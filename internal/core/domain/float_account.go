package domain

import "github.com/shopspring/decimal"

// FloatAccount is an operational balance owned by a collaborating subsystem
// (cash till, mobile-money wallet, card-settlement pool). The ledger core only
// observes it: as the subject of account mappings and as the externally tracked
// side of reconciliation.
type FloatAccount struct {
	FloatAccountID string           `json:"floatAccountID"`
	BranchID       string           `json:"branchID"`
	AccountType    FloatAccountType `json:"accountType"`
	Provider       string           `json:"provider"` // e.g. "mtn", "gcb", "" for tills
	CurrentBalance decimal.Decimal  `json:"currentBalance"`
	IsActive       bool             `json:"isActive"`
}

// VarianceReport is the signed difference between a float account's externally
// reported balance and the GL balance of its MAIN mapped account. A non-zero
// delta is surfaced for remediation, not treated as an error.
type VarianceReport struct {
	FloatAccountID string          `json:"floatAccountID"`
	BranchID       string          `json:"branchID"`
	GLAccountID    string          `json:"glAccountID"`
	FloatBalance   decimal.Decimal `json:"floatBalance"`
	GLBalance      decimal.Decimal `json:"glBalance"`
	Delta          decimal.Decimal `json:"delta"` // FloatBalance - GLBalance
}
