package models

// MappingRole mirrors the domain enumeration for persistence.
type MappingRole string

// AccountMapping is the account_mappings row. Uniqueness of the active mapping
// per (float_account_id, role) is enforced by a partial unique index.
type AccountMapping struct {
	MappingID      string      `db:"mapping_id"`
	FloatAccountID string      `db:"float_account_id"`
	GLAccountID    string      `db:"gl_account_id"`
	Role           MappingRole `db:"role"`
	BranchID       string      `db:"branch_id"`
	IsActive       bool        `db:"is_active"`
	AuditFields
}
