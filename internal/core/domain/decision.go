package domain

// Action is the terminal destination chosen for an authenticated principal.
type Action string

const (
	// ActionAdminUserList sends staff to the account management view.
	ActionAdminUserList Action = "admin_user_list"
	// ActionCompanyList sends Administrators to the company management view.
	ActionCompanyList Action = "company_list"
	// ActionRedirect hands an SKT_User off to the external webapp.
	ActionRedirect Action = "redirect"
	// ActionCustomerLanding and ActionSupervisorLanding are placeholders;
	// no destination is defined for these roles yet.
	ActionCustomerLanding   Action = "customer_landing"
	ActionSupervisorLanding Action = "supervisor_landing"
)

// Decision is the allowed outcome of dispatching. Denials are expressed as
// sentinel errors returned alongside a zero Decision, so every deny path is
// testable as a plain function result.
type Decision struct {
	Action Action `json:"action"`
	// RedirectURL is set only for ActionRedirect.
	RedirectURL string `json:"redirect_url,omitempty"`
}
