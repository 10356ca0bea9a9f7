package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kelvinbaffour/branchledger/internal/apperrors"
	"github.com/kelvinbaffour/branchledger/internal/core/domain"
	"github.com/kelvinbaffour/branchledger/internal/utils/accounting"
)

// roleCash is an internal pseudo-role for the branch cash counter-account.
// It is not a mapping role; the posting engine supplies the account directly.
const roleCash domain.MappingRole = "_CASH"

// roleCounter is an internal pseudo-role for the destination float's MAIN
// account in a float-to-float transfer, supplied by the posting engine.
const roleCounter domain.MappingRole = "_COUNTER"

type lineSide int

const (
	debitSide lineSide = iota
	creditSide
)

type amountSel int

const (
	selAmount amountSel = iota
	selFee
	selCommission
)

// lineSpec is one prescribed line of an entry rule.
type lineSpec struct {
	role domain.MappingRole
	side lineSide
	sel  amountSel
}

// entryRules declares, per entry type, which lines a balanced journal entry is
// made of. Fee and commission lines are emitted only when their amounts are
// positive; every other line's role is required and a missing mapping aborts
// the build with apperrors.ErrMappingNotFound.
var entryRules = map[domain.EntryType][]lineSpec{
	// Cash taken in for a service sale: cash hits the float's MAIN account, the
	// obligation to the provider accrues on LIABILITY, fee/commission are revenue.
	domain.EntryServiceSale: {
		{role: domain.RoleMain, side: debitSide, sel: selAmount},
		{role: domain.RoleLiability, side: creditSide, sel: selAmount},
		{role: domain.RoleMain, side: debitSide, sel: selFee},
		{role: domain.RoleFee, side: creditSide, sel: selFee},
		{role: domain.RoleMain, side: debitSide, sel: selCommission},
		{role: domain.RoleCommission, side: creditSide, sel: selCommission},
	},
	// Proceeds collected from a customer before remitting to the principal.
	domain.EntryLiabilityCollection: {
		{role: roleCash, side: debitSide, sel: selAmount},
		{role: domain.RoleMain, side: creditSide, sel: selAmount},
	},
	// Paying down an accrued liability to the principal/provider.
	domain.EntrySettlementPayment: {
		{role: domain.RoleMain, side: debitSide, sel: selAmount},
		{role: roleCash, side: creditSide, sel: selAmount},
	},
	// Cash moved from the till into the float.
	domain.EntryFloatRecharge: {
		{role: domain.RoleMain, side: debitSide, sel: selAmount},
		{role: roleCash, side: creditSide, sel: selAmount},
	},
	// Cash drawn out of the float back into the till.
	domain.EntryFloatWithdrawal: {
		{role: roleCash, side: debitSide, sel: selAmount},
		{role: domain.RoleMain, side: creditSide, sel: selAmount},
	},
	// Value moved between two floats: the destination's MAIN takes the debit,
	// the source's MAIN the credit. EntryAdjustment has no rule here; it is the
	// reversal engine composing a reversal with a fresh posting.
	domain.EntryFloatTransfer: {
		{role: roleCounter, side: debitSide, sel: selAmount},
		{role: domain.RoleMain, side: creditSide, sel: selAmount},
	},
}

// EntryInput is everything the builder needs to produce the lines of one
// business transaction: the accounting pattern, the amounts and the resolved
// GL targets.
type EntryInput struct {
	Type        domain.EntryType
	Amount      decimal.Decimal
	Fee         decimal.Decimal
	Commission  decimal.Decimal
	Description string

	// Accounts holds the float account's resolved role mappings.
	Accounts map[domain.MappingRole]domain.GLAccount

	// CashAccount is the branch cash counter-account, used by rules that move
	// physical cash against the float's MAIN account.
	CashAccount *domain.GLAccount

	// CounterAccount is the destination float's MAIN account for
	// float-to-float transfers.
	CounterAccount *domain.GLAccount
}

// BuildEntryLines produces the ordered, balanced debit/credit lines for a
// business transaction. Pure: no persistence, no identity assignment. The
// balance invariant is enforced before returning; a violation means a broken
// rule table, not a recoverable runtime condition.
func BuildEntryLines(input EntryInput) ([]domain.EntryLine, error) {
	rule, ok := entryRules[input.Type]
	if !ok {
		return nil, fmt.Errorf("%w: unrecognized entry type %q", apperrors.ErrSchema, input.Type)
	}

	if !input.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrValidation, input.Amount)
	}
	if input.Fee.IsNegative() || input.Commission.IsNegative() {
		return nil, fmt.Errorf("%w: fee and commission must not be negative", apperrors.ErrValidation)
	}

	lines := make([]domain.EntryLine, 0, len(rule))
	for _, spec := range rule {
		value := input.Amount
		switch spec.sel {
		case selFee:
			value = input.Fee
		case selCommission:
			value = input.Commission
		}
		if spec.sel != selAmount && !value.IsPositive() {
			continue // Optional fee/commission legs
		}

		account, err := resolveRuleAccount(input, spec.role)
		if err != nil {
			return nil, err
		}

		line := domain.EntryLine{
			GLAccountID: account.AccountID,
			Description: lineDescription(input, spec),
		}
		if spec.side == debitSide {
			line.Debit = value.Round(accounting.Precision)
		} else {
			line.Credit = value.Round(accounting.Precision)
		}
		lines = append(lines, line)
	}

	if err := accounting.ValidateLines(lines); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnbalancedEntry, err)
	}
	return lines, nil
}

// BuildMirrorLines produces the reversal entry set for previously posted lines:
// each line's debit and credit are swapped. Identities and audit fields of the
// originals are not carried over.
func BuildMirrorLines(original []domain.EntryLine) ([]domain.EntryLine, error) {
	if len(original) == 0 {
		return nil, errors.New("cannot mirror an empty entry set")
	}
	mirrored := make([]domain.EntryLine, len(original))
	for i, line := range original {
		mirrored[i] = domain.EntryLine{
			GLAccountID: line.GLAccountID,
			Debit:       line.Credit,
			Credit:      line.Debit,
			Description: line.Description,
		}
	}
	if err := accounting.ValidateLines(mirrored); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnbalancedEntry, err)
	}
	return mirrored, nil
}

func resolveRuleAccount(input EntryInput, role domain.MappingRole) (*domain.GLAccount, error) {
	if role == roleCash {
		if input.CashAccount == nil {
			return nil, fmt.Errorf("%w: entry type %q needs a cash counter-account", apperrors.ErrSchema, input.Type)
		}
		return input.CashAccount, nil
	}
	if role == roleCounter {
		if input.CounterAccount == nil {
			return nil, fmt.Errorf("%w: entry type %q needs a counterparty account", apperrors.ErrSchema, input.Type)
		}
		return input.CounterAccount, nil
	}
	account, ok := input.Accounts[role]
	if !ok {
		return nil, fmt.Errorf("%w: role %s has no active mapping", apperrors.ErrMappingNotFound, role)
	}
	return &account, nil
}

func lineDescription(input EntryInput, spec lineSpec) string {
	switch spec.sel {
	case selFee:
		return input.Description + " (fee)"
	case selCommission:
		return input.Description + " (commission)"
	}
	return input.Description
}

// RequiredRolesForEntry returns the mapping roles an entry type cannot post
// without, given the amounts involved. Used by the posting engine to decide
// whether a missing mapping defers the posting.
func RequiredRolesForEntry(entryType domain.EntryType, fee, commission decimal.Decimal) []domain.MappingRole {
	roles := make([]domain.MappingRole, 0, 3)
	seen := make(map[domain.MappingRole]struct{})
	for _, spec := range entryRules[entryType] {
		if spec.role == roleCash || spec.role == roleCounter {
			continue
		}
		if spec.sel == selFee && !fee.IsPositive() {
			continue
		}
		if spec.sel == selCommission && !commission.IsPositive() {
			continue
		}
		if _, ok := seen[spec.role]; ok {
			continue
		}
		seen[spec.role] = struct{}{}
		roles = append(roles, spec.role)
	}
	return roles
}
