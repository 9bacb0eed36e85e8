package domain

import "github.com/shopspring/decimal"

// RoleAmount is one named position on a financial statement.
type RoleAmount struct {
	Role      string          `json:"role"`
	AccountID string          `json:"accountID"`
	Amount    decimal.Decimal `json:"amount"`
}

// BalanceSheet is the derived statement of assets, liabilities and the
// equity residual. LiabilitiesAndEquity equals TotalAssets only when no
// display clamping occurred; the clamp is deliberate (see buildBalanceSheet).
type BalanceSheet struct {
	Assets               []RoleAmount    `json:"assets"`
	Liabilities          []RoleAmount    `json:"liabilities"`
	TotalAssets          decimal.Decimal `json:"totalAssets"`
	TotalLiabilities     decimal.Decimal `json:"totalLiabilities"`
	Equity               decimal.Decimal `json:"equity"`
	LiabilitiesAndEquity decimal.Decimal `json:"liabilitiesAndEquity"`
}

// CashFlowStatement is the direct-method cash flow over the cash and bank
// roles: gross inflow, gross outflow and their difference.
type CashFlowStatement struct {
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
	Net     decimal.Decimal `json:"net"`
}
