package accounting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/kicho-app/kicho_backend/internal/core/domain"
	"github.com/kicho-app/kicho_backend/internal/utils/accounting"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestComputeTax(t *testing.T) {
	// 10% of 1000 is exactly 100
	assert.True(t, accounting.ComputeTax(dec("1000"), dec("10"), true).Equal(dec("100")))

	// Fractional results truncate toward zero, never round up:
	// 999 * 10 / 100 = 99.9 -> 99
	assert.True(t, accounting.ComputeTax(dec("999"), dec("10"), true).Equal(dec("99")))

	// 101 * 8 / 100 = 8.08 -> 8
	assert.True(t, accounting.ComputeTax(dec("101"), dec("8"), true).Equal(dec("8")))

	// Non-taxable always yields zero regardless of rate
	assert.True(t, accounting.ComputeTax(dec("1000"), dec("10"), false).IsZero())
}

func TestComputeTotal(t *testing.T) {
	assert.True(t, accounting.ComputeTotal(dec("1000"), dec("100")).Equal(dec("1100")))
	assert.True(t, accounting.ComputeTotal(dec("1000"), decimal.Zero).Equal(dec("1000")))
}

func line(side domain.DebitCredit, total string) domain.JournalLine {
	return domain.JournalLine{
		DebitCredit: side,
		TotalAmount: dec(total),
	}
}

func TestSideTotals(t *testing.T) {
	lines := []domain.JournalLine{
		line(domain.Debit, "600"),
		line(domain.Debit, "400"),
		line(domain.Credit, "1000"),
	}
	debit, credit := accounting.SideTotals(lines)
	assert.True(t, debit.Equal(dec("1000")))
	assert.True(t, credit.Equal(dec("1000")))
}

func TestIsBalanced(t *testing.T) {
	balanced := []domain.JournalLine{
		line(domain.Debit, "1000"),
		line(domain.Credit, "1000"),
	}
	assert.True(t, accounting.IsBalanced(balanced))

	// A difference below the tolerance still balances
	nearlyBalanced := []domain.JournalLine{
		line(domain.Debit, "1000.005"),
		line(domain.Credit, "1000"),
	}
	assert.True(t, accounting.IsBalanced(nearlyBalanced))

	// A difference of exactly the tolerance does not
	atTolerance := []domain.JournalLine{
		line(domain.Debit, "1000.01"),
		line(domain.Credit, "1000"),
	}
	assert.False(t, accounting.IsBalanced(atTolerance))

	unbalanced := []domain.JournalLine{
		line(domain.Debit, "1000"),
		line(domain.Credit, "999"),
	}
	assert.False(t, accounting.IsBalanced(unbalanced))
}

func TestJournalTotal(t *testing.T) {
	lines := []domain.JournalLine{
		line(domain.Debit, "600"),
		line(domain.Debit, "500"),
		line(domain.Credit, "1100"),
	}
	assert.True(t, accounting.JournalTotal(lines).Equal(dec("1100")))
}
