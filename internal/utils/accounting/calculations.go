package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/restobook/restobook/internal/core/domain"
)

// BalanceTolerance is the maximum allowed difference between an entry's
// total debits and total credits, in currency units.
var BalanceTolerance = decimal.NewFromFloat(0.01)

// EntryTotals sums the debit and credit columns of a line set.
func EntryTotals(lines []domain.JournalLine) (totalDebit, totalCredit decimal.Decimal) {
	totalDebit = decimal.Zero
	totalCredit = decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}
	return totalDebit, totalCredit
}

// IsBalanced reports whether debits equal credits within BalanceTolerance.
func IsBalanced(totalDebit, totalCredit decimal.Decimal) bool {
	return totalDebit.Sub(totalCredit).Abs().LessThanOrEqual(BalanceTolerance)
}

// AccountBalances folds journal entries into per-account debit-normal
// balances (debits minus credits). The fold is commutative, so entry order
// is irrelevant. Lines without an account id are skipped; accounts never
// referenced are absent from the result, and callers default to zero on a
// lookup miss.
func AccountBalances(entries []domain.JournalEntry) map[string]decimal.Decimal {
	balances := make(map[string]decimal.Decimal)
	for _, entry := range entries {
		for _, line := range entry.Lines {
			if line.AccountID == "" {
				continue
			}
			balances[line.AccountID] = balances[line.AccountID].Add(line.Net())
		}
	}
	return balances
}

// BuildBalanceSheet derives the balance sheet from aggregated balances and
// the account role mapping. Asset roles display max(0, balance); liability
// roles display max(0, -balance). The clamp is a display rule carried over
// from the source system: a role balance with an unexpected sign shows as
// zero rather than switching sides, which can leave TotalAssets unequal to
// LiabilitiesAndEquity. Equity is the plug that absorbs the difference of
// the clamped totals; there is no independent equity ledger role.
func BuildBalanceSheet(balances map[string]decimal.Decimal, roles domain.AccountRoleMap) domain.BalanceSheet {
	roles = roles.Normalized()

	assetRoles := []struct{ role, accountID string }{
		{domain.RoleCash, roles.Cash},
		{domain.RoleBank, roles.Bank},
		{domain.RoleAR, roles.AR},
	}
	liabilityRoles := []struct{ role, accountID string }{
		{domain.RoleAP, roles.AP},
		{domain.RoleVATOutput, roles.VATOutput},
	}

	sheet := domain.BalanceSheet{
		Assets:           make([]domain.RoleAmount, 0, len(assetRoles)),
		Liabilities:      make([]domain.RoleAmount, 0, len(liabilityRoles)),
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
	}

	for _, a := range assetRoles {
		amount := clampNonNegative(balances[a.accountID])
		sheet.Assets = append(sheet.Assets, domain.RoleAmount{Role: a.role, AccountID: a.accountID, Amount: amount})
		sheet.TotalAssets = sheet.TotalAssets.Add(amount)
	}
	for _, l := range liabilityRoles {
		amount := clampNonNegative(balances[l.accountID].Neg())
		sheet.Liabilities = append(sheet.Liabilities, domain.RoleAmount{Role: l.role, AccountID: l.accountID, Amount: amount})
		sheet.TotalLiabilities = sheet.TotalLiabilities.Add(amount)
	}

	sheet.Equity = sheet.TotalAssets.Sub(sheet.TotalLiabilities)
	sheet.LiabilitiesAndEquity = sheet.TotalLiabilities.Add(sheet.Equity)
	return sheet
}

// CashFlow builds the direct-method cash flow statement by scanning every
// line of every entry: debits to the cash or bank role are inflows, credits
// are outflows. It operates on raw entries, not aggregated balances.
func CashFlow(entries []domain.JournalEntry, roles domain.AccountRoleMap) domain.CashFlowStatement {
	roles = roles.Normalized()
	flow := domain.CashFlowStatement{
		Inflow:  decimal.Zero,
		Outflow: decimal.Zero,
	}
	for _, entry := range entries {
		for _, line := range entry.Lines {
			if line.AccountID != roles.Cash && line.AccountID != roles.Bank {
				continue
			}
			flow.Inflow = flow.Inflow.Add(line.Debit)
			flow.Outflow = flow.Outflow.Add(line.Credit)
		}
	}
	flow.Net = flow.Inflow.Sub(flow.Outflow)
	return flow
}

func clampNonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
