package domain

import "time"

// LicenseStatus represents the licensing state of a company.
// The short codes are the persisted values.
type LicenseStatus string

const (
	LicenseActive   LicenseStatus = "ACT"
	LicenseDisabled LicenseStatus = "DIS"
	LicenseArchived LicenseStatus = "ARC"
)

// KnownLicenseStatus reports whether s is one of the persisted status codes.
func KnownLicenseStatus(s LicenseStatus) bool {
	switch s {
	case LicenseActive, LicenseDisabled, LicenseArchived:
		return true
	}
	return false
}

// Ceilings for the "allowed" side of each quota pair.
const (
	MaxCustomersAllowed   = 999
	MaxUsersAllowed       = 99999
	MaxSupervisorsAllowed = 9999
	MaxGroupsAllowed      = 9999
)

// Quota is a (created, allowed) pair bounding how many sub-accounts of one
// kind a company may provision.
type Quota struct {
	Created int `json:"created" bson:"created"`
	Allowed int `json:"allowed" bson:"allowed"`
}

// Company is the tenant aggregate: a licensed organisation owning accounts.
type Company struct {
	ID           int64         `json:"id" bson:"_id"`
	Name         string        `json:"name" bson:"name"`
	Status       LicenseStatus `json:"license_status" bson:"license_status"`
	LicenseStart time.Time     `json:"license_start" bson:"license_start"`
	// LicenseEnd is zero when the license has no expiry.
	LicenseEnd  time.Time `json:"license_end,omitempty" bson:"license_end,omitempty"`
	Customers   Quota     `json:"customers" bson:"customers"`
	Users       Quota     `json:"users" bson:"users"`
	Supervisors Quota     `json:"supervisors" bson:"supervisors"`
	Groups      Quota     `json:"groups" bson:"groups"`
}

// LicenseVerdict is the operator-facing breakdown of a license evaluation.
// Principals only ever see "license invalid"; the verdict is for logs.
type LicenseVerdict string

const (
	LicenseOK          LicenseVerdict = "ok"
	LicenseNotActive   LicenseVerdict = "status_not_active"
	LicenseNoStartDate LicenseVerdict = "no_start_date"
	LicenseNotStarted  LicenseVerdict = "not_started"
	LicenseExpired     LicenseVerdict = "expired"
)

// LicenseState evaluates the license window against today and returns the
// specific verdict. The end date is exclusive: a license ending today is
// already expired.
func (c *Company) LicenseState(today time.Time) LicenseVerdict {
	if c.Status != LicenseActive {
		return LicenseNotActive
	}
	if c.LicenseStart.IsZero() {
		return LicenseNoStartDate
	}
	if c.LicenseStart.After(today) {
		return LicenseNotStarted
	}
	if !c.LicenseEnd.IsZero() && !c.LicenseEnd.After(today) {
		return LicenseExpired
	}
	return LicenseOK
}

// LicenseValid reports whether the company's license covers today.
func (c *Company) LicenseValid(today time.Time) bool {
	return c.LicenseState(today) == LicenseOK
}

// quotaChecks enumerates the four pairs with their field names and ceilings.
func (c *Company) quotaChecks() []struct {
	field   string
	quota   Quota
	ceiling int
} {
	return []struct {
		field   string
		quota   Quota
		ceiling int
	}{
		{"customers", c.Customers, MaxCustomersAllowed},
		{"users", c.Users, MaxUsersAllowed},
		{"supervisors", c.Supervisors, MaxSupervisorsAllowed},
		{"groups", c.Groups, MaxGroupsAllowed},
	}
}

// ValidateQuotas checks every quota pair against 0 <= created <= allowed and
// the per-pair ceiling on allowed. The first violation is returned as a
// *QuotaError naming the offending pair.
func (c *Company) ValidateQuotas() error {
	for _, chk := range c.quotaChecks() {
		q := chk.quota
		if q.Allowed < 0 || q.Allowed > chk.ceiling {
			return &QuotaError{Field: chk.field + ".allowed", Value: q.Allowed, Limit: chk.ceiling}
		}
		if q.Created < 0 || q.Created > q.Allowed {
			return &QuotaError{Field: chk.field + ".created", Value: q.Created, Limit: q.Allowed}
		}
	}
	return nil
}
