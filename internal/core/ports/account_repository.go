package ports

import (
	"context"

	"github.com/sktech/account-gateway/internal/core/domain"
)

// AccountRepository defines the persistence interface for accounts.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.Account, error)
	// CountByCompany backs the referential protection on company deletion.
	CountByCompany(ctx context.Context, companyID int64) (int64, error)
}
