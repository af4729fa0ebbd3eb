package ports

import (
	"context"
	"time"

	"github.com/sktech/account-gateway/internal/core/domain"
)

// LoginEventInput is the DTO handed from the transport layer to the audit
// pipeline.
type LoginEventInput struct {
	Email      string
	AccountID  int64
	Action     domain.Action
	DenyReason string
	RemoteIP   string
	Timestamp  time.Time
}

// AuditService persists login decisions. Failures are logged, never
// propagated back to the login response.
type AuditService interface {
	Process(ctx context.Context, event LoginEventInput) error
}

// AuditRepository writes login events to the audit trail.
type AuditRepository interface {
	InsertLoginEvent(ctx context.Context, event *domain.LoginEvent) error
}
