package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sktech/account-gateway/internal/core/domain"
	"github.com/sktech/account-gateway/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService persisting login decisions to the
// audit trail.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Process writes one login event. The pipeline is fire-and-forget from the
// login handler's point of view; errors here only surface in logs.
func (s *auditService) Process(ctx context.Context, in ports.LoginEventInput) error {
	event := &domain.LoginEvent{
		Email:      in.Email,
		AccountID:  in.AccountID,
		Action:     in.Action,
		DenyReason: in.DenyReason,
		RemoteIP:   in.RemoteIP,
		Timestamp:  in.Timestamp,
	}

	if err := s.repo.InsertLoginEvent(ctx, event); err != nil {
		return fmt.Errorf("audit: %w", err)
	}

	s.log.Debug().
		Str("email", in.Email).
		Str("action", string(in.Action)).
		Str("deny_reason", in.DenyReason).
		Msg("login event recorded")

	return nil
}
