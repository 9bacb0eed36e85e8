package domain

// StaffRole controls what a staff member may do in the back office.
type StaffRole string

const (
	RoleAdmin   StaffRole = "ADMIN"
	RoleCashier StaffRole = "CASHIER"
)

// StaffUser is a member of staff who can sign in at a POS terminal with a
// PIN, or (for admins) with Google in the back office.
type StaffUser struct {
	UserID   string    `json:"userID"`
	Name     string    `json:"name"`
	Email    string    `json:"email"` // Optional; required for Google sign-in
	Role     StaffRole `json:"role"`
	PINHash  string    `json:"-"` // bcrypt hash, never serialized
	IsActive bool      `json:"isActive"`
	AuditFields
}

// GoogleUserInfo is the subset of the Google userinfo payload the back
// office cares about.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}
