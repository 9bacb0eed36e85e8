package dto

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/restobook/restobook/internal/core/domain"
)

// AccountBalanceResponse is one account's aggregated debit-normal balance.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"`
}

// BalancesResponse lists every account referenced by the ledger.
type BalancesResponse struct {
	Balances []AccountBalanceResponse `json:"balances"`
}

// ToBalancesResponse converts the aggregator's map into a stable response.
func ToBalancesResponse(balances map[string]decimal.Decimal) BalancesResponse {
	resp := BalancesResponse{Balances: make([]AccountBalanceResponse, 0, len(balances))}
	for accountID, balance := range balances {
		resp.Balances = append(resp.Balances, AccountBalanceResponse{AccountID: accountID, Balance: balance})
	}
	sort.Slice(resp.Balances, func(i, j int) bool {
		return resp.Balances[i].AccountID < resp.Balances[j].AccountID
	})
	return resp
}

// BalanceSheetResponse mirrors domain.BalanceSheet.
type BalanceSheetResponse struct {
	Assets               []domain.RoleAmount `json:"assets"`
	Liabilities          []domain.RoleAmount `json:"liabilities"`
	TotalAssets          decimal.Decimal     `json:"totalAssets"`
	TotalLiabilities     decimal.Decimal     `json:"totalLiabilities"`
	Equity               decimal.Decimal     `json:"equity"`
	LiabilitiesAndEquity decimal.Decimal     `json:"liabilitiesAndEquity"`
}

// ToBalanceSheetResponse converts a domain.BalanceSheet.
func ToBalanceSheetResponse(s *domain.BalanceSheet) BalanceSheetResponse {
	return BalanceSheetResponse{
		Assets:               s.Assets,
		Liabilities:          s.Liabilities,
		TotalAssets:          s.TotalAssets,
		TotalLiabilities:     s.TotalLiabilities,
		Equity:               s.Equity,
		LiabilitiesAndEquity: s.LiabilitiesAndEquity,
	}
}

// CashFlowResponse mirrors domain.CashFlowStatement.
type CashFlowResponse struct {
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
	Net     decimal.Decimal `json:"net"`
}
