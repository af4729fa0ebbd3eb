package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sktech/account-gateway/internal/core/domain"
	"github.com/sktech/account-gateway/internal/core/ports"
)

// Provisioner seeds the fixed role set. Run once at process start; running
// it again leaves existing roles untouched.
type Provisioner struct {
	roles ports.RoleRepository
	log   zerolog.Logger
}

func NewProvisioner(roles ports.RoleRepository, log zerolog.Logger) *Provisioner {
	return &Provisioner{roles: roles, log: log}
}

// EnsureDefaultRoles upserts every default role.
func (p *Provisioner) EnsureDefaultRoles(ctx context.Context) error {
	for _, role := range domain.DefaultRoles {
		created, err := p.roles.Ensure(ctx, role)
		if err != nil {
			return fmt.Errorf("ensure role %s: %w", role, err)
		}
		if created {
			p.log.Info().Str("role", string(role)).Msg("default role created")
		}
	}
	return nil
}
