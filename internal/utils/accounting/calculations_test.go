package accounting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restobook/restobook/internal/core/domain"
	"github.com/restobook/restobook/internal/utils/accounting"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func entry(lines ...domain.JournalLine) domain.JournalEntry {
	return domain.JournalEntry{Lines: lines}
}

func line(accountID, debit, credit string) domain.JournalLine {
	return domain.JournalLine{AccountID: accountID, Debit: dec(debit), Credit: dec(credit)}
}

func TestEntryTotals(t *testing.T) {
	totalDebit, totalCredit := accounting.EntryTotals([]domain.JournalLine{
		line("cash", "116", "0"),
		line("sales", "0", "100"),
		line("vatOutput", "0", "16"),
	})

	assert.True(t, totalDebit.Equal(dec("116")))
	assert.True(t, totalCredit.Equal(dec("116")))
}

func TestIsBalanced_ToleranceBoundary(t *testing.T) {
	assert.True(t, accounting.IsBalanced(dec("100"), dec("100")))
	assert.True(t, accounting.IsBalanced(dec("100"), dec("100.01")), "difference equal to the tolerance is accepted")
	assert.False(t, accounting.IsBalanced(dec("100"), dec("100.02")))
	assert.False(t, accounting.IsBalanced(dec("100.02"), dec("100")), "tolerance applies to the absolute difference")
}

func TestAccountBalances_DebitNormalFold(t *testing.T) {
	entries := []domain.JournalEntry{
		entry(line("cash", "200", "0"), line("sales", "0", "200")),
		entry(line("cash", "0", "50"), line("ap", "50", "0")),
		entry(line("ap", "0", "130"), line("supplies", "130", "0")),
	}

	balances := accounting.AccountBalances(entries)

	assert.True(t, balances["cash"].Equal(dec("150")))
	assert.True(t, balances["sales"].Equal(dec("-200")))
	assert.True(t, balances["ap"].Equal(dec("-80")))
	assert.True(t, balances["supplies"].Equal(dec("130")))
	_, present := balances["bank"]
	assert.False(t, present, "accounts never referenced are absent")
}

func TestAccountBalances_OrderIndependent(t *testing.T) {
	entries := []domain.JournalEntry{
		entry(line("cash", "200", "0"), line("sales", "0", "200")),
		entry(line("cash", "0", "50"), line("ap", "50", "0")),
		entry(line("bank", "75", "0"), line("sales", "0", "75")),
	}
	reversed := []domain.JournalEntry{entries[2], entries[1], entries[0]}

	forward := accounting.AccountBalances(entries)
	backward := accounting.AccountBalances(reversed)

	require.Equal(t, len(forward), len(backward))
	for accountID, balance := range forward {
		assert.True(t, balance.Equal(backward[accountID]), "balance for %s differs with entry order", accountID)
	}
}

func TestAccountBalances_SkipsEmptyAccountID(t *testing.T) {
	entries := []domain.JournalEntry{
		entry(line("", "100", "0"), line("sales", "0", "100")),
	}

	balances := accounting.AccountBalances(entries)

	_, present := balances[""]
	assert.False(t, present)
	assert.True(t, balances["sales"].Equal(dec("-100")))
}

func TestBuildBalanceSheet(t *testing.T) {
	balances := map[string]decimal.Decimal{
		"cash":      dec("200"),
		"bank":      dec("50"),
		"ar":        dec("0"),
		"ap":        dec("-80"),
		"vatOutput": dec("-16"),
	}

	sheet := accounting.BuildBalanceSheet(balances, domain.AccountRoleMap{})

	assert.True(t, sheet.TotalAssets.Equal(dec("250")))
	assert.True(t, sheet.TotalLiabilities.Equal(dec("96")))
	assert.True(t, sheet.Equity.Equal(dec("154")))
	assert.True(t, sheet.LiabilitiesAndEquity.Equal(sheet.TotalAssets))

	require.Len(t, sheet.Assets, 3)
	assert.Equal(t, domain.RoleCash, sheet.Assets[0].Role)
	assert.True(t, sheet.Assets[0].Amount.Equal(dec("200")))
	require.Len(t, sheet.Liabilities, 2)
	assert.Equal(t, domain.RoleAP, sheet.Liabilities[0].Role)
	assert.True(t, sheet.Liabilities[0].Amount.Equal(dec("80")))
}

func TestBuildBalanceSheet_ClampsUnexpectedSigns(t *testing.T) {
	// Overdrawn cash and a debit-standing AP both display as zero rather
	// than switching sides, so the two totals can disagree and equity
	// absorbs the difference.
	balances := map[string]decimal.Decimal{
		"cash": dec("-50"),
		"bank": dec("120"),
		"ap":   dec("30"),
	}

	sheet := accounting.BuildBalanceSheet(balances, domain.AccountRoleMap{})

	assert.True(t, sheet.Assets[0].Amount.IsZero(), "negative asset balance clamps to zero")
	assert.True(t, sheet.TotalAssets.Equal(dec("120")))
	assert.True(t, sheet.TotalLiabilities.IsZero(), "debit-standing liability clamps to zero")
	assert.True(t, sheet.Equity.Equal(dec("120")))
}

func TestBuildBalanceSheet_CustomRoleMapping(t *testing.T) {
	balances := map[string]decimal.Decimal{
		"1000": dec("500"),
	}
	roles := domain.AccountRoleMap{Cash: "1000"}

	sheet := accounting.BuildBalanceSheet(balances, roles)

	assert.Equal(t, "1000", sheet.Assets[0].AccountID)
	assert.True(t, sheet.Assets[0].Amount.Equal(dec("500")))
	assert.Equal(t, domain.RoleBank, sheet.Assets[1].AccountID, "unmapped roles fall back to the role literal")
}

func TestCashFlow(t *testing.T) {
	entries := []domain.JournalEntry{
		entry(line("cash", "200", "0"), line("sales", "0", "200")),
		entry(line("bank", "100", "0"), line("sales", "0", "100")),
		entry(line("supplies", "120", "0"), line("cash", "0", "120")),
		// No cash or bank movement; must not affect the statement.
		entry(line("ar", "80", "0"), line("sales", "0", "80")),
	}

	flow := accounting.CashFlow(entries, domain.AccountRoleMap{})

	assert.True(t, flow.Inflow.Equal(dec("300")))
	assert.True(t, flow.Outflow.Equal(dec("120")))
	assert.True(t, flow.Net.Equal(dec("180")))
}

func TestCashFlow_EmptyLedger(t *testing.T) {
	flow := accounting.CashFlow(nil, domain.AccountRoleMap{})

	assert.True(t, flow.Inflow.IsZero())
	assert.True(t, flow.Outflow.IsZero())
	assert.True(t, flow.Net.IsZero())
}
