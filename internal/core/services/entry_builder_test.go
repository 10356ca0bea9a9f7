package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelvinbaffour/branchledger/internal/apperrors"
	"github.com/kelvinbaffour/branchledger/internal/core/domain"
	"github.com/kelvinbaffour/branchledger/internal/core/services"
	"github.com/kelvinbaffour/branchledger/internal/utils/accounting"
)

func glAccount(category domain.AccountCategory) domain.GLAccount {
	return domain.GLAccount{
		AccountID: uuid.NewString(),
		Category:  category,
		IsActive:  true,
	}
}

func TestBuildEntryLines_ServiceSaleWithFee(t *testing.T) {
	mainAcct := glAccount(domain.Asset)
	liabilityAcct := glAccount(domain.Liability)
	feeAcct := glAccount(domain.Revenue)

	lines, err := services.BuildEntryLines(services.EntryInput{
		Type:        domain.EntryServiceSale,
		Amount:      decimal.NewFromInt(50),
		Fee:         decimal.NewFromInt(2),
		Description: "MoMo cash-in",
		Accounts: map[domain.MappingRole]domain.GLAccount{
			domain.RoleMain:      mainAcct,
			domain.RoleLiability: liabilityAcct,
			domain.RoleFee:       feeAcct,
		},
	})
	require.NoError(t, err)
	require.Len(t, lines, 4, "amount pair plus fee pair, no commission legs")

	// Debit main 50, credit liability 50, debit main 2, credit fee 2.
	assert.Equal(t, mainAcct.AccountID, lines[0].GLAccountID)
	assert.True(t, lines[0].Debit.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, liabilityAcct.AccountID, lines[1].GLAccountID)
	assert.True(t, lines[1].Credit.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, mainAcct.AccountID, lines[2].GLAccountID)
	assert.True(t, lines[2].Debit.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, feeAcct.AccountID, lines[3].GLAccountID)
	assert.True(t, lines[3].Credit.Equal(decimal.NewFromInt(2)))

	assert.True(t, accounting.TotalDebits(lines).Equal(decimal.NewFromInt(52)))
	assert.Equal(t, "MoMo cash-in (fee)", lines[3].Description)
}

func TestBuildEntryLines_ServiceSaleNoFeeNoCommission(t *testing.T) {
	lines, err := services.BuildEntryLines(services.EntryInput{
		Type:   domain.EntryServiceSale,
		Amount: decimal.NewFromInt(100),
		Accounts: map[domain.MappingRole]domain.GLAccount{
			domain.RoleMain:      glAccount(domain.Asset),
			domain.RoleLiability: glAccount(domain.Liability),
		},
	})
	require.NoError(t, err)
	assert.Len(t, lines, 2, "zero fee and commission legs are omitted")
}

func TestBuildEntryLines_LiabilityCollectionUsesCashAccount(t *testing.T) {
	cashAcct := glAccount(domain.Asset)
	mainAcct := glAccount(domain.Liability)

	lines, err := services.BuildEntryLines(services.EntryInput{
		Type:        domain.EntryLiabilityCollection,
		Amount:      decimal.NewFromInt(30),
		CashAccount: &cashAcct,
		Accounts: map[domain.MappingRole]domain.GLAccount{
			domain.RoleMain: mainAcct,
		},
	})
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, cashAcct.AccountID, lines[0].GLAccountID)
	assert.True(t, lines[0].Debit.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, mainAcct.AccountID, lines[1].GLAccountID)
	assert.True(t, lines[1].Credit.Equal(decimal.NewFromInt(30)))
}

func TestBuildEntryLines_CashAccountMissing(t *testing.T) {
	_, err := services.BuildEntryLines(services.EntryInput{
		Type:   domain.EntryFloatRecharge,
		Amount: decimal.NewFromInt(30),
		Accounts: map[domain.MappingRole]domain.GLAccount{
			domain.RoleMain: glAccount(domain.Asset),
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrSchema)
}

func TestBuildEntryLines_FloatTransferUsesCounterAccount(t *testing.T) {
	sourceMain := glAccount(domain.Asset)
	destMain := glAccount(domain.Asset)

	lines, err := services.BuildEntryLines(services.EntryInput{
		Type:           domain.EntryFloatTransfer,
		Amount:         decimal.NewFromInt(200),
		Description:    "float rebalance",
		CounterAccount: &destMain,
		Accounts: map[domain.MappingRole]domain.GLAccount{
			domain.RoleMain: sourceMain,
		},
	})
	require.NoError(t, err)
	require.Len(t, lines, 2)

	// Value moves from the source float's MAIN into the destination's.
	assert.Equal(t, destMain.AccountID, lines[0].GLAccountID)
	assert.True(t, lines[0].Debit.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, sourceMain.AccountID, lines[1].GLAccountID)
	assert.True(t, lines[1].Credit.Equal(decimal.NewFromInt(200)))
}

func TestBuildEntryLines_FloatTransferCounterAccountMissing(t *testing.T) {
	_, err := services.BuildEntryLines(services.EntryInput{
		Type:   domain.EntryFloatTransfer,
		Amount: decimal.NewFromInt(200),
		Accounts: map[domain.MappingRole]domain.GLAccount{
			domain.RoleMain: glAccount(domain.Asset),
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrSchema)
	assert.Contains(t, err.Error(), "counterparty")
}

func TestBuildEntryLines_MissingRequiredMapping(t *testing.T) {
	_, err := services.BuildEntryLines(services.EntryInput{
		Type:   domain.EntryServiceSale,
		Amount: decimal.NewFromInt(50),
		Accounts: map[domain.MappingRole]domain.GLAccount{
			domain.RoleMain: glAccount(domain.Asset),
			// LIABILITY deliberately absent
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrMappingNotFound)
	assert.Contains(t, err.Error(), "LIABILITY")
}

func TestBuildEntryLines_UnknownEntryType(t *testing.T) {
	_, err := services.BuildEntryLines(services.EntryInput{
		Type:   domain.EntryType("spend_money"),
		Amount: decimal.NewFromInt(10),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrSchema)
}

func TestBuildEntryLines_NonPositiveAmount(t *testing.T) {
	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		_, err := services.BuildEntryLines(services.EntryInput{
			Type:   domain.EntryServiceSale,
			Amount: amount,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	}
}

func TestBuildEntryLines_NegativeFee(t *testing.T) {
	_, err := services.BuildEntryLines(services.EntryInput{
		Type:   domain.EntryServiceSale,
		Amount: decimal.NewFromInt(50),
		Fee:    decimal.NewFromInt(-1),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestBuildMirrorLines_SwapsSides(t *testing.T) {
	acctA := uuid.NewString()
	acctB := uuid.NewString()
	original := []domain.EntryLine{
		{LineID: uuid.NewString(), GLAccountID: acctA, Debit: decimal.NewFromInt(52), Description: "sale"},
		{LineID: uuid.NewString(), GLAccountID: acctB, Credit: decimal.NewFromInt(52), Description: "sale"},
	}

	mirrored, err := services.BuildMirrorLines(original)
	require.NoError(t, err)
	require.Len(t, mirrored, 2)

	assert.Equal(t, acctA, mirrored[0].GLAccountID)
	assert.True(t, mirrored[0].Credit.Equal(decimal.NewFromInt(52)))
	assert.True(t, mirrored[0].Debit.IsZero())
	assert.Equal(t, acctB, mirrored[1].GLAccountID)
	assert.True(t, mirrored[1].Debit.Equal(decimal.NewFromInt(52)))

	// Identities are not carried over; the poster assigns fresh ones.
	assert.Empty(t, mirrored[0].LineID)
	assert.Empty(t, mirrored[0].TransactionID)
}

func TestBuildMirrorLines_EmptySet(t *testing.T) {
	_, err := services.BuildMirrorLines(nil)
	assert.Error(t, err)
}

func TestRequiredRolesForEntry(t *testing.T) {
	tests := []struct {
		name       string
		entryType  domain.EntryType
		fee        decimal.Decimal
		commission decimal.Decimal
		want       []domain.MappingRole
	}{
		{
			name:      "service sale without fee or commission",
			entryType: domain.EntryServiceSale,
			want:      []domain.MappingRole{domain.RoleMain, domain.RoleLiability},
		},
		{
			name:      "service sale with fee",
			entryType: domain.EntryServiceSale,
			fee:       decimal.NewFromInt(2),
			want:      []domain.MappingRole{domain.RoleMain, domain.RoleLiability, domain.RoleFee},
		},
		{
			name:       "service sale with fee and commission",
			entryType:  domain.EntryServiceSale,
			fee:        decimal.NewFromInt(2),
			commission: decimal.NewFromInt(1),
			want:       []domain.MappingRole{domain.RoleMain, domain.RoleLiability, domain.RoleFee, domain.RoleCommission},
		},
		{
			name:      "float recharge only needs MAIN",
			entryType: domain.EntryFloatRecharge,
			want:      []domain.MappingRole{domain.RoleMain},
		},
		{
			name:      "settlement payment only needs MAIN",
			entryType: domain.EntrySettlementPayment,
			want:      []domain.MappingRole{domain.RoleMain},
		},
		{
			name:      "float transfer only needs MAIN on the source side",
			entryType: domain.EntryFloatTransfer,
			want:      []domain.MappingRole{domain.RoleMain},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := services.RequiredRolesForEntry(tt.entryType, tt.fee, tt.commission)
			assert.Equal(t, tt.want, got)
		})
	}
}
