package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/kelvinbaffour/branchledger/internal/core/domain"
)

func TestRequiredRoles(t *testing.T) {
	tests := []struct {
		name        string
		accountType domain.FloatAccountType
		want        []domain.MappingRole
	}{
		{
			name:        "cash till only needs MAIN",
			accountType: domain.FloatCashTill,
			want:        []domain.MappingRole{domain.RoleMain},
		},
		{
			name:        "momo needs fee and commission accounts",
			accountType: domain.FloatMomo,
			want:        []domain.MappingRole{domain.RoleMain, domain.RoleFee, domain.RoleCommission},
		},
		{
			name:        "agency banking needs a fee account",
			accountType: domain.FloatAgencyBanking,
			want:        []domain.MappingRole{domain.RoleMain, domain.RoleFee},
		},
		{
			name:        "power needs a fee account",
			accountType: domain.FloatPower,
			want:        []domain.MappingRole{domain.RoleMain, domain.RoleFee},
		},
		{
			name:        "jumia only needs MAIN",
			accountType: domain.FloatJumia,
			want:        []domain.MappingRole{domain.RoleMain},
		},
		{
			name:        "unknown types fall back to MAIN",
			accountType: domain.FloatAccountType("crypto"),
			want:        []domain.MappingRole{domain.RoleMain},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.RequiredRoles(tt.accountType))
		})
	}
}

func TestProvisionRoles_SettlementBackedServicesGetLiability(t *testing.T) {
	assert.Contains(t, domain.ProvisionRoles(domain.FloatMomo), domain.RoleLiability)
	assert.Contains(t, domain.ProvisionRoles(domain.FloatPower), domain.RoleLiability)
	assert.NotContains(t, domain.ProvisionRoles(domain.FloatCashTill), domain.RoleLiability)
	assert.NotContains(t, domain.ProvisionRoles(domain.FloatJumia), domain.RoleLiability)
}

func TestRoleCategory(t *testing.T) {
	assert.Equal(t, domain.Asset, domain.RoleCategory(domain.FloatMomo, domain.RoleMain))
	assert.Equal(t, domain.Liability, domain.RoleCategory(domain.FloatJumia, domain.RoleMain), "jumia floats hold proceeds owed to the principal")
	assert.Equal(t, domain.Revenue, domain.RoleCategory(domain.FloatMomo, domain.RoleFee))
	assert.Equal(t, domain.Revenue, domain.RoleCategory(domain.FloatMomo, domain.RoleCommission))
	assert.Equal(t, domain.Liability, domain.RoleCategory(domain.FloatMomo, domain.RoleLiability))
	assert.Equal(t, domain.Expense, domain.RoleCategory(domain.FloatCashTill, domain.RoleExpense))
}

func TestValidRole(t *testing.T) {
	assert.True(t, domain.ValidRole(domain.RoleMain))
	assert.True(t, domain.ValidRole(domain.RoleLiability))
	assert.False(t, domain.ValidRole(domain.MappingRole("SLUSH")))
}

func TestValidCategory(t *testing.T) {
	assert.True(t, domain.ValidCategory(domain.Asset))
	assert.True(t, domain.ValidCategory(domain.Equity))
	assert.False(t, domain.ValidCategory(domain.AccountCategory("SUSPENSE")))
}

func TestEntryLine_IsDebit(t *testing.T) {
	assert.True(t, domain.EntryLine{Debit: decimal.NewFromInt(10)}.IsDebit())
	assert.False(t, domain.EntryLine{Credit: decimal.NewFromInt(10)}.IsDebit())
	assert.False(t, domain.EntryLine{}.IsDebit())
}
