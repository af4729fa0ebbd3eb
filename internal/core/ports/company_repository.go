package ports

import (
	"context"

	"github.com/sktech/account-gateway/internal/core/domain"
)

// CompanyRepository defines the persistence interface for companies.
// Create and Update must reject any state violating the quota invariants
// (0 <= created <= allowed <= ceiling) with a *domain.QuotaError, mirroring
// the store's check constraints.
type CompanyRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Company, error)
	List(ctx context.Context) ([]domain.Company, error)
	Create(ctx context.Context, company *domain.Company) (*domain.Company, error)
	Update(ctx context.Context, company *domain.Company) error
	Delete(ctx context.Context, id int64) error
}

// RoleRepository persists the named role set.
type RoleRepository interface {
	// Ensure creates the role if absent and reports whether it was created.
	// Repeated calls with the same name are safe.
	Ensure(ctx context.Context, role domain.Role) (bool, error)
	List(ctx context.Context) ([]domain.Role, error)
}
