package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kelvinbaffour/branchledger/internal/apperrors"
	"github.com/kelvinbaffour/branchledger/internal/core/domain"
)

// Precision is the posting decimal precision in fractional digits. Line amounts
// are compared and stored at this precision.
const Precision = 2

// NormalBalanceDelta returns the balance change a (debit, credit) pair applies
// to an account of the given category under the normal-balance convention:
// debit - credit for ASSET/EXPENSE, credit - debit for LIABILITY/EQUITY/REVENUE.
func NormalBalanceDelta(category domain.AccountCategory, debit, credit decimal.Decimal) (decimal.Decimal, error) {
	switch category {
	case domain.Asset, domain.Expense:
		return debit.Sub(credit), nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return credit.Sub(debit), nil
	}
	return decimal.Zero, fmt.Errorf("%w: unknown account category %q", apperrors.ErrSchema, category)
}

// ValidateLines checks the structural invariants of a built entry set: at least
// two lines, exactly one of debit/credit non-zero and non-negative per line, and
// total debits equal to total credits at the posting precision.
func ValidateLines(lines []domain.EntryLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("entry set must contain at least two lines, got %d", len(lines))
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("line %s has a negative amount", line.LineID)
		}
		if line.Debit.IsPositive() == line.Credit.IsPositive() {
			return fmt.Errorf("line %s must have exactly one of debit/credit set", line.LineID)
		}
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}

	if !totalDebit.Round(Precision).Equal(totalCredit.Round(Precision)) {
		return fmt.Errorf("total debit %s does not equal total credit %s",
			totalDebit.StringFixed(Precision), totalCredit.StringFixed(Precision))
	}
	return nil
}

// TotalDebits sums the debit side of an entry set. For a balanced set this is
// the economic value of the transaction.
func TotalDebits(lines []domain.EntryLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Debit)
	}
	return total
}
