package domain

// AccountRoleMap maps the fixed semantic roles of the chart of accounts to
// concrete account ids. It is supplied from configuration and passed
// explicitly into every posting or statement call; nothing reads it from
// ambient state.
type AccountRoleMap struct {
	Cash      string `json:"cash"`
	Bank      string `json:"bank"`
	Sales     string `json:"sales"`
	VATOutput string `json:"vatOutput"`
	AR        string `json:"ar"` // Accounts receivable
	AP        string `json:"ap"` // Accounts payable
}

// Role key literals used when a role is left unmapped.
const (
	RoleCash      = "cash"
	RoleBank      = "bank"
	RoleSales     = "sales"
	RoleVATOutput = "vatOutput"
	RoleAR        = "ar"
	RoleAP        = "ap"
)

// Normalized returns a copy with every unmapped role defaulted to its own
// role key literal, so an incomplete configuration still yields usable
// (if generic) account ids.
func (m AccountRoleMap) Normalized() AccountRoleMap {
	if m.Cash == "" {
		m.Cash = RoleCash
	}
	if m.Bank == "" {
		m.Bank = RoleBank
	}
	if m.Sales == "" {
		m.Sales = RoleSales
	}
	if m.VATOutput == "" {
		m.VATOutput = RoleVATOutput
	}
	if m.AR == "" {
		m.AR = RoleAR
	}
	if m.AP == "" {
		m.AP = RoleAP
	}
	return m
}
