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

// DispatchService routes authenticated principals. Precedence is strict:
// staff bypass, then the Administrator role (both skip license checks
// entirely), then the tenant path which requires a company assignment and a
// currently valid license before dispatching by role.
type DispatchService struct {
	companies ports.CompanyRepository
	signer    ports.RedirectSigner
	webappURL string
	now       func() time.Time
	log       zerolog.Logger
}

func NewDispatchService(
	companies ports.CompanyRepository,
	signer ports.RedirectSigner,
	webappURL string,
	log zerolog.Logger,
) *DispatchService {
	return &DispatchService{
		companies: companies,
		signer:    signer,
		webappURL: webappURL,
		now:       time.Now,
		log:       log,
	}
}

// WithClock overrides the time source. Intended for tests.
func (s *DispatchService) WithClock(now func() time.Time) *DispatchService {
	s.now = now
	return s
}

// Dispatch decides the destination for one authenticated principal. Each
// request is evaluated from scratch; denials come back as the domain deny
// sentinels with no detail beyond their fixed message.
func (s *DispatchService) Dispatch(ctx context.Context, p *domain.Principal) (domain.Decision, error) {
	// Staff (superusers included) manage accounts and never hit tenant checks.
	if p.IsStaff {
		return domain.Decision{Action: domain.ActionAdminUserList}, nil
	}

	// Administrators manage companies directly, so their own company's
	// license is not consulted either.
	if p.PrimaryRole == domain.RoleAdministrator {
		return domain.Decision{Action: domain.ActionCompanyList}, nil
	}

	if p.CompanyID == 0 {
		return domain.Decision{}, domain.ErrNotAssigned
	}

	company, err := s.companies.FindByID(ctx, p.CompanyID)
	if err != nil {
		// An assignment pointing at a missing company is a license problem
		// from the principal's point of view, not a server fault.
		if errors.Is(err, domain.ErrCompanyNotFound) {
			s.log.Warn().
				Int64("account_id", p.ID).
				Int64("company_id", p.CompanyID).
				Msg("assigned company missing")
			return domain.Decision{}, domain.ErrLicenseInvalid
		}
		return domain.Decision{}, fmt.Errorf("dispatch: %w", err)
	}

	today := s.now()
	if verdict := company.LicenseState(today); verdict != domain.LicenseOK {
		// Operators get the sub-reason; the principal only sees
		// "license invalid".
		s.log.Warn().
			Int64("account_id", p.ID).
			Int64("company_id", company.ID).
			Str("verdict", string(verdict)).
			Msg("license check failed")
		return domain.Decision{}, domain.ErrLicenseInvalid
	}

	switch p.PrimaryRole {
	case domain.RoleSKTUser:
		url := s.signer.SignedURL(p.ID, s.webappURL)
		return domain.Decision{Action: domain.ActionRedirect, RedirectURL: url}, nil
	case domain.RoleCustomer:
		// No destination defined for this role yet.
		return domain.Decision{Action: domain.ActionCustomerLanding}, nil
	case domain.RoleSupervisor:
		// No destination defined for this role yet.
		return domain.Decision{Action: domain.ActionSupervisorLanding}, nil
	default:
		return domain.Decision{}, domain.ErrRoleUndefined
	}
}
