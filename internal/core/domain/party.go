package domain

// PartyKind distinguishes the two sides of the address book.
type PartyKind string

const (
	PartyVendor   PartyKind = "VENDOR"
	PartyCustomer PartyKind = "CUSTOMER"
)

// Party is a vendor the restaurant buys from or a customer it invoices.
type Party struct {
	PartyID  string    `json:"partyID"`
	Kind     PartyKind `json:"kind"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone"`
	TaxID    string    `json:"taxID"`
	IsActive bool      `json:"isActive"`
	AuditFields
}
