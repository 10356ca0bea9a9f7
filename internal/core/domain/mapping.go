package domain

// MappingRole is the purpose a GL account serves for a given float account.
type MappingRole string

const (
	RoleMain       MappingRole = "MAIN"
	RoleFee        MappingRole = "FEE"
	RoleCommission MappingRole = "COMMISSION"
	RoleRevenue    MappingRole = "REVENUE"
	RoleExpense    MappingRole = "EXPENSE"
	RoleLiability  MappingRole = "LIABILITY"
)

// ValidRole reports whether r is one of the recognized mapping roles.
func ValidRole(r MappingRole) bool {
	switch r {
	case RoleMain, RoleFee, RoleCommission, RoleRevenue, RoleExpense, RoleLiability:
		return true
	}
	return false
}

// AccountMapping associates a float account with a GL account for one role.
// At most one active mapping may exist per (FloatAccountID, Role); superseded
// mappings are deactivated so history stays auditable.
type AccountMapping struct {
	MappingID      string      `json:"mappingID"` // Primary Key (UUID)
	FloatAccountID string      `json:"floatAccountID"`
	GLAccountID    string      `json:"glAccountID"`
	Role           MappingRole `json:"role"`
	BranchID       string      `json:"branchID"`
	IsActive       bool        `json:"isActive"`
	AuditFields
}

// FloatAccountType classifies the operational balance a float account tracks.
type FloatAccountType string

const (
	FloatCashTill      FloatAccountType = "cash_till"
	FloatMomo          FloatAccountType = "momo"
	FloatAgencyBanking FloatAccountType = "agency_banking"
	FloatEZwich        FloatAccountType = "e_zwich"
	FloatPower         FloatAccountType = "power"
	FloatJumia         FloatAccountType = "jumia"
)

// RequiredRoles returns the mapping roles a float account of the given type must
// carry before it can post. Unknown types fall back to a bare MAIN mapping.
func RequiredRoles(t FloatAccountType) []MappingRole {
	switch t {
	case FloatCashTill:
		return []MappingRole{RoleMain}
	case FloatMomo:
		return []MappingRole{RoleMain, RoleFee, RoleCommission}
	case FloatAgencyBanking, FloatEZwich, FloatPower:
		return []MappingRole{RoleMain, RoleFee}
	case FloatJumia:
		return []MappingRole{RoleMain}
	}
	return []MappingRole{RoleMain}
}

// ProvisionRoles returns the full role set auto-provisioning creates for the
// given type. Settlement-backed services get a LIABILITY mapping on top of the
// required roles so sale postings resolve without manual re-mapping.
func ProvisionRoles(t FloatAccountType) []MappingRole {
	roles := RequiredRoles(t)
	switch t {
	case FloatMomo, FloatAgencyBanking, FloatEZwich, FloatPower:
		roles = append(roles, RoleLiability)
	}
	return roles
}

// RoleCategory returns the GL account category a freshly provisioned account for
// the given role is created with. MAIN follows the float's own nature.
func RoleCategory(t FloatAccountType, r MappingRole) AccountCategory {
	switch r {
	case RoleFee, RoleCommission, RoleRevenue:
		return Revenue
	case RoleExpense:
		return Expense
	case RoleLiability:
		return Liability
	}
	// MAIN: jumia floats hold customer proceeds owed to the principal.
	if t == FloatJumia {
		return Liability
	}
	return Asset
}
