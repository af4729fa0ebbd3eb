package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sktech/account-gateway/internal/core/domain"
	"github.com/sktech/account-gateway/internal/core/ports"
)

// CompanyService implements the admin use-cases on companies.
type CompanyService struct {
	companies ports.CompanyRepository
	accounts  ports.AccountRepository
	now       func() time.Time
	log       zerolog.Logger
}

func NewCompanyService(companies ports.CompanyRepository, accounts ports.AccountRepository, log zerolog.Logger) *CompanyService {
	return &CompanyService{companies: companies, accounts: accounts, now: time.Now, log: log}
}

// WithClock overrides the time source. Intended for tests.
func (s *CompanyService) WithClock(now func() time.Time) *CompanyService {
	s.now = now
	return s
}

// Create provisions a company. The license start date is stamped with today
// and can never be changed afterwards.
func (s *CompanyService) Create(ctx context.Context, input ports.CompanyInput) (*domain.Company, error) {
	company := &domain.Company{
		Name:         input.Name,
		Status:       domain.LicenseStatus(input.Status),
		LicenseStart: dateOnly(s.now()),
		LicenseEnd:   input.LicenseEnd,
		Customers:    input.Customers,
		Users:        input.Users,
		Supervisors:  input.Supervisors,
		Groups:       input.Groups,
	}
	if company.Status == "" {
		company.Status = domain.LicenseActive
	}

	if err := validateCompany(company); err != nil {
		return nil, err
	}

	created, err := s.companies.Create(ctx, company)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("company_id", created.ID).Str("name", created.Name).Msg("company created")
	return created, nil
}

func (s *CompanyService) Get(ctx context.Context, id int64) (*domain.Company, error) {
	return s.companies.FindByID(ctx, id)
}

func (s *CompanyService) List(ctx context.Context) ([]domain.Company, error) {
	return s.companies.List(ctx)
}

// Update applies an administrative edit. The stored license start date is
// kept; any start date carried in the input is ignored.
func (s *CompanyService) Update(ctx context.Context, id int64, input ports.CompanyInput) (*domain.Company, error) {
	company, err := s.companies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	company.Name = input.Name
	company.Status = domain.LicenseStatus(input.Status)
	company.LicenseEnd = input.LicenseEnd
	company.Customers = input.Customers
	company.Users = input.Users
	company.Supervisors = input.Supervisors
	company.Groups = input.Groups

	if err := validateCompany(company); err != nil {
		return nil, err
	}

	if err := s.companies.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// Delete removes a company unless any account still references it.
func (s *CompanyService) Delete(ctx context.Context, id int64) error {
	n, err := s.accounts.CountByCompany(ctx, id)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	if n > 0 {
		return domain.ErrCompanyReferenced
	}
	return s.companies.Delete(ctx, id)
}

// validateCompany enforces the cross-field rules shared by create and update:
// a known status, the quota invariants, and an end date whenever the license
// is disabled or archived.
func validateCompany(c *domain.Company) error {
	if c.Name == "" {
		return errors.New("company name is required")
	}
	if !domain.KnownLicenseStatus(c.Status) {
		return fmt.Errorf("unknown license status %q", c.Status)
	}
	if err := c.ValidateQuotas(); err != nil {
		return err
	}
	if c.Status != domain.LicenseActive && c.LicenseEnd.IsZero() {
		return errors.New("a disabled or archived license requires an end date")
	}
	return nil
}

// dateOnly truncates a timestamp to its UTC calendar date.
func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
