package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sktech/account-gateway/internal/core/domain"
	"github.com/sktech/account-gateway/internal/core/ports"
)

const minPasswordLength = 8

// AccountService implements the staff-only admin use-cases on accounts.
type AccountService struct {
	accounts  ports.AccountRepository
	companies ports.CompanyRepository
	log       zerolog.Logger
}

func NewAccountService(accounts ports.AccountRepository, companies ports.CompanyRepository, log zerolog.Logger) *AccountService {
	return &AccountService{accounts: accounts, companies: companies, log: log}
}

// Create provisions a new account. The primary role is fixed at creation
// time. For tenant roles the owning company's matching quota counter is
// consumed first; the store rejects the increment when it would exceed the
// allowed bound.
func (s *AccountService) Create(ctx context.Context, input ports.CreateAccountInput) (*domain.Account, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, fmt.Errorf("create account: %w", domain.ErrInvalidCredentials)
	}
	if err := validatePassword(input.Password, input.PasswordConfirm); err != nil {
		return nil, err
	}

	role := domain.Role(input.PrimaryRole)
	if !domain.KnownRole(role) {
		return nil, domain.ErrRoleUndefined
	}

	if input.CompanyID != 0 {
		if err := s.consumeQuota(ctx, input.CompanyID, role); err != nil {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Email:        email,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		PasswordHash: string(hash),
		IsActive:     true,
		IsStaff:      input.IsStaff,
		PrimaryRole:  role,
		CompanyID:    input.CompanyID,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.accounts.Create(ctx, account)
	if err != nil {
		if input.CompanyID != 0 {
			s.releaseQuota(ctx, input.CompanyID, role)
		}
		return nil, err
	}

	s.log.Info().
		Int64("account_id", created.ID).
		Str("role", string(created.PrimaryRole)).
		Int64("company_id", created.CompanyID).
		Msg("account created")

	return created, nil
}

// ListByRole returns the accounts holding the given primary role. Backs the
// admin user list view.
func (s *AccountService) ListByRole(ctx context.Context, role domain.Role) ([]domain.Account, error) {
	if !domain.KnownRole(role) {
		return nil, domain.ErrRoleUndefined
	}
	return s.accounts.ListByRole(ctx, role)
}

func validatePassword(password, confirm string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}
	return nil
}

// quotaFor maps a role to the company quota pair it consumes. Administrators
// are not counted against any pair.
func quotaFor(c *domain.Company, role domain.Role) *domain.Quota {
	switch role {
	case domain.RoleCustomer:
		return &c.Customers
	case domain.RoleSupervisor:
		return &c.Supervisors
	case domain.RoleSKTUser:
		return &c.Users
	}
	return nil
}

func (s *AccountService) consumeQuota(ctx context.Context, companyID int64, role domain.Role) error {
	company, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	q := quotaFor(company, role)
	if q == nil {
		return nil
	}
	q.Created++
	if err := s.companies.Update(ctx, company); err != nil {
		return err
	}
	return nil
}

// releaseQuota undoes a consumed counter after a failed account insert.
// Best effort: an error here is logged, not returned.
func (s *AccountService) releaseQuota(ctx context.Context, companyID int64, role domain.Role) {
	company, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		s.log.Error().Err(err).Int64("company_id", companyID).Msg("quota release failed")
		return
	}
	q := quotaFor(company, role)
	if q == nil || q.Created == 0 {
		return
	}
	q.Created--
	if err := s.companies.Update(ctx, company); err != nil {
		s.log.Error().Err(err).Int64("company_id", companyID).Msg("quota release failed")
	}
}
