package accounting

import (
	"github.com/kicho-app/kicho_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the maximum allowed difference between the debit and
// credit totals of a journal.
var BalanceTolerance = decimal.NewFromFloat(0.01)

var hundred = decimal.NewFromInt(100)

// ComputeTax returns the tax amount for a base amount at a percentage rate.
// The result is truncated, never rounded: floor(base * rate / 100). A
// non-taxable code always yields zero.
func ComputeTax(base decimal.Decimal, rate decimal.Decimal, taxable bool) decimal.Decimal {
	if !taxable {
		return decimal.Zero
	}
	return base.Mul(rate).Div(hundred).Floor()
}

// ComputeTotal returns the line total: base amount plus tax amount.
func ComputeTotal(base decimal.Decimal, tax decimal.Decimal) decimal.Decimal {
	return base.Add(tax)
}

// SideTotals sums line totals per side.
func SideTotals(lines []domain.JournalLine) (debit decimal.Decimal, credit decimal.Decimal) {
	debit = decimal.Zero
	credit = decimal.Zero
	for _, line := range lines {
		if line.DebitCredit == domain.Debit {
			debit = debit.Add(line.TotalAmount)
		} else {
			credit = credit.Add(line.TotalAmount)
		}
	}
	return debit, credit
}

// IsBalanced reports whether the debit and credit totals of the lines agree
// within BalanceTolerance. This is the authoritative gate before persistence;
// a false result is fatal to the whole create/update call.
func IsBalanced(lines []domain.JournalLine) bool {
	debit, credit := SideTotals(lines)
	return debit.Sub(credit).Abs().LessThan(BalanceTolerance)
}

// JournalTotal returns the economic value of a balanced journal: the sum of
// the debit side's line totals.
func JournalTotal(lines []domain.JournalLine) decimal.Decimal {
	debit, _ := SideTotals(lines)
	return debit
}
