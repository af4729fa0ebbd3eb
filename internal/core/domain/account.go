package domain

import "time"

// Role is an account's single primary role. Accounts get exactly one role at
// creation time; routing never depends on group enumeration order.
type Role string

const (
	RoleAdministrator Role = "Administrator"
	RoleSupervisor    Role = "Supervisor"
	RoleCustomer      Role = "Customer"
	RoleSKTUser       Role = "SKT_User"
)

// DefaultRoles is the fixed role set provisioned at startup.
var DefaultRoles = []Role{RoleAdministrator, RoleSupervisor, RoleCustomer, RoleSKTUser}

// KnownRole reports whether r is one of the provisioned roles.
func KnownRole(r Role) bool {
	for _, known := range DefaultRoles {
		if r == known {
			return true
		}
	}
	return false
}

// Account models a stored user record. Accounts are created by staff through
// the admin surface, never self-registered.
type Account struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	IsStaff      bool      `json:"is_staff"`
	IsSuperuser  bool      `json:"is_superuser"`
	PrimaryRole  Role      `json:"primary_role"`
	// CompanyID is 0 when the account is not assigned to a company.
	CompanyID int64     `json:"company_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Principal is an authenticated identity, the input to dispatching.
type Principal struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
	PrimaryRole Role   `json:"primary_role"`
	CompanyID   int64  `json:"company_id,omitempty"`
}

// Principal derives the authenticated identity from a stored account.
func (a *Account) Principal() *Principal {
	return &Principal{
		ID:          a.ID,
		Email:       a.Email,
		IsStaff:     a.IsStaff,
		IsSuperuser: a.IsSuperuser,
		PrimaryRole: a.PrimaryRole,
		CompanyID:   a.CompanyID,
	}
}
