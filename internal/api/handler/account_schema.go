package handler

import (
	"time"

	"github.com/sktech/account-gateway/internal/core/domain"
	"github.com/sktech/account-gateway/internal/core/ports"
)

type createAccountRequest struct {
	Email           string `json:"email"            validate:"required,email"`
	FirstName       string `json:"first_name"       validate:"required,max=150"`
	LastName        string `json:"last_name"        validate:"required,max=150"`
	Password        string `json:"password"         validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	PrimaryRole     string `json:"primary_role"     validate:"required,oneof=Administrator Supervisor Customer SKT_User"`
	CompanyID       int64  `json:"company_id"       validate:"gte=0"`
	IsStaff         bool   `json:"is_staff"`
}

func (r createAccountRequest) toInput() ports.CreateAccountInput {
	return ports.CreateAccountInput{
		Email:           r.Email,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Password:        r.Password,
		PasswordConfirm: r.PasswordConfirm,
		PrimaryRole:     r.PrimaryRole,
		CompanyID:       r.CompanyID,
		IsStaff:         r.IsStaff,
	}
}

type accountResponse struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	IsActive    bool      `json:"is_active"`
	IsStaff     bool      `json:"is_staff"`
	PrimaryRole string    `json:"primary_role"`
	CompanyID   int64     `json:"company_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toAccountResponse(a *domain.Account) accountResponse {
	return accountResponse{
		ID:          a.ID,
		Email:       a.Email,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		IsActive:    a.IsActive,
		IsStaff:     a.IsStaff,
		PrimaryRole: string(a.PrimaryRole),
		CompanyID:   a.CompanyID,
		CreatedAt:   a.CreatedAt,
	}
}
