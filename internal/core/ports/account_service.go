package ports

import (
	"context"
	"time"

	"github.com/sktech/account-gateway/internal/core/domain"
)

// CreateAccountInput carries all data needed to create an account through the
// staff-only admin surface.
type CreateAccountInput struct {
	Email           string
	FirstName       string
	LastName        string
	Password        string
	PasswordConfirm string
	PrimaryRole     string
	CompanyID       int64
	IsStaff         bool
}

// AccountService defines the admin use-cases on accounts.
type AccountService interface {
	Create(ctx context.Context, input CreateAccountInput) (*domain.Account, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.Account, error)
}

// CompanyInput carries the editable fields of a company. LicenseEnd is zero
// for "no expiry". The license start date is set by the service at creation
// and cannot be supplied or changed through this input.
type CompanyInput struct {
	Name        string
	Status      string
	LicenseEnd  time.Time
	Customers   domain.Quota
	Users       domain.Quota
	Supervisors domain.Quota
	Groups      domain.Quota
}

// CompanyService defines the admin use-cases on companies.
type CompanyService interface {
	Create(ctx context.Context, input CompanyInput) (*domain.Company, error)
	Get(ctx context.Context, id int64) (*domain.Company, error)
	List(ctx context.Context) ([]domain.Company, error)
	Update(ctx context.Context, id int64, input CompanyInput) (*domain.Company, error)
	Delete(ctx context.Context, id int64) error
}
