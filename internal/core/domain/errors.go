package domain

import (
	"errors"
	"fmt"
)

// Authentication and dispatch denials. The credential failure is deliberately
// a single error: unknown email, wrong password and inactive account must be
// indistinguishable to the caller.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAssigned        = errors.New("not assigned to a company")
	ErrLicenseInvalid     = errors.New("license invalid")
	ErrRoleUndefined      = errors.New("role not defined")
)

// Store-level errors.
var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrAccountExists     = errors.New("account already exists")
	ErrCompanyNotFound   = errors.New("company not found")
	ErrCompanyReferenced = errors.New("company still has accounts attached")
	ErrTooManyAttempts   = errors.New("too many failed login attempts")
)

// QuotaError reports a quota pair write that violates its bound. Field names
// the pair and side ("users.created", "customers.allowed", ...), Value is the
// rejected number and Limit the bound it exceeded.
type QuotaError struct {
	Field string
	Value int
	Limit int
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("quota %s: value %d exceeds limit %d", e.Field, e.Value, e.Limit)
}
