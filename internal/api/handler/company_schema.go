package handler

import (
	"time"

	"github.com/sktech/account-gateway/internal/core/domain"
	"github.com/sktech/account-gateway/internal/core/ports"
)

const dateLayout = "2006-01-02"

type quotaRequest struct {
	Created int `json:"created" validate:"gte=0"`
	Allowed int `json:"allowed" validate:"gte=0"`
}

type companyRequest struct {
	Name   string `json:"name"           validate:"required,max=255"`
	Status string `json:"license_status" validate:"required,oneof=ACT DIS ARC"`
	// LicenseEnd is a calendar date; empty means no expiry.
	LicenseEnd  string       `json:"license_end,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Customers   quotaRequest `json:"customers"`
	Users       quotaRequest `json:"users"`
	Supervisors quotaRequest `json:"supervisors"`
	Groups      quotaRequest `json:"groups"`
}

type companyResponse struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Status       string       `json:"license_status"`
	LicenseStart string       `json:"license_start"`
	LicenseEnd   string       `json:"license_end,omitempty"`
	Customers    domain.Quota `json:"customers"`
	Users        domain.Quota `json:"users"`
	Supervisors  domain.Quota `json:"supervisors"`
	Groups       domain.Quota `json:"groups"`
}

func (r companyRequest) toInput() (ports.CompanyInput, error) {
	input := ports.CompanyInput{
		Name:        r.Name,
		Status:      r.Status,
		Customers:   domain.Quota{Created: r.Customers.Created, Allowed: r.Customers.Allowed},
		Users:       domain.Quota{Created: r.Users.Created, Allowed: r.Users.Allowed},
		Supervisors: domain.Quota{Created: r.Supervisors.Created, Allowed: r.Supervisors.Allowed},
		Groups:      domain.Quota{Created: r.Groups.Created, Allowed: r.Groups.Allowed},
	}
	if r.LicenseEnd != "" {
		end, err := time.Parse(dateLayout, r.LicenseEnd)
		if err != nil {
			return ports.CompanyInput{}, err
		}
		input.LicenseEnd = end
	}
	return input, nil
}

func toCompanyResponse(c *domain.Company) companyResponse {
	resp := companyResponse{
		ID:           c.ID,
		Name:         c.Name,
		Status:       string(c.Status),
		LicenseStart: c.LicenseStart.Format(dateLayout),
		Customers:    c.Customers,
		Users:        c.Users,
		Supervisors:  c.Supervisors,
		Groups:       c.Groups,
	}
	if !c.LicenseEnd.IsZero() {
		resp.LicenseEnd = c.LicenseEnd.Format(dateLayout)
	}
	return resp
}
