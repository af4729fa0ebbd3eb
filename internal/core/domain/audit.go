package domain

import "time"

// LoginEvent records the outcome of one login request for the audit trail.
type LoginEvent struct {
	Email     string
	AccountID int64 // 0 when authentication failed
	Action    Action
	// DenyReason is empty when the login was allowed.
	DenyReason string
	RemoteIP   string
	Timestamp  time.Time
}
