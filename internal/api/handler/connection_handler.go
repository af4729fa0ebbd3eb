package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sktech/account-gateway/internal/api/metrics"
	"github.com/sktech/account-gateway/internal/core/domain"
	"github.com/sktech/account-gateway/internal/core/ports"
)

// AuditDispatcher is the interface the handler uses to enqueue audit events.
type AuditDispatcher interface {
	Enqueue(event ports.LoginEventInput)
}

// ConnectionHandler is the login-time dispatcher: it chains credential
// verification, the staff/role/license precedence and the per-role
// destination into a single endpoint.
type ConnectionHandler struct {
	auth     ports.AuthService
	dispatch ports.DispatchService
	throttle ports.LoginThrottle
	audit    AuditDispatcher
	log      zerolog.Logger
}

func NewConnectionHandler(
	auth ports.AuthService,
	dispatch ports.DispatchService,
	throttle ports.LoginThrottle,
	audit AuditDispatcher,
	log zerolog.Logger,
) *ConnectionHandler {
	return &ConnectionHandler{auth: auth, dispatch: dispatch, throttle: throttle, audit: audit, log: log}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Action      domain.Action `json:"action"`
	RedirectURL string        `json:"redirect_url,omitempty"`
	// Token is the session token for the admin surface; only staff and
	// Administrator outcomes carry one.
	Token string `json:"token,omitempty"`
}

// denyReasonLabel maps a deny sentinel to its audit/metrics label.
func denyReasonLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "not_authenticated"
	case errors.Is(err, domain.ErrNotAssigned):
		return "not_assigned"
	case errors.Is(err, domain.ErrLicenseInvalid):
		return "license_invalid"
	case errors.Is(err, domain.ErrRoleUndefined):
		return "role_undefined"
	}
	return "error"
}

// Login handles POST /auth/login.
//
// @Summary      Authenticate and dispatch
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /auth/login [post]
func (h *ConnectionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ctx := c.Request().Context()

	// The throttle must count under the same identifier the authenticator
	// matches on, or varying the case would stretch the attempt budget.
	email := strings.ToLower(strings.TrimSpace(req.Email))

	throttled, err := h.throttle.TooMany(ctx, email)
	if err != nil {
		// A broken throttle must not lock everyone out.
		h.log.Warn().Err(err).Msg("throttle check failed, continuing")
	} else if throttled {
		metrics.LoginsTotal.WithLabelValues("throttled").Inc()
		return c.JSON(http.StatusTooManyRequests, map[string]string{"error": domain.ErrTooManyAttempts.Error()})
	}

	principal, err := h.auth.Authenticate(ctx, email, req.Password)
	if err != nil {
		if recErr := h.throttle.Failure(ctx, email); recErr != nil {
			h.log.Warn().Err(recErr).Msg("throttle record failed")
		}
		h.recordDeny(c, email, 0, err)
		// One generic message for every credential failure mode.
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
	}

	if err := h.throttle.Reset(ctx, email); err != nil {
		h.log.Warn().Err(err).Msg("throttle reset failed")
	}

	decision, err := h.dispatch.Dispatch(ctx, principal)
	if err != nil {
		h.recordDeny(c, principal.Email, principal.ID, err)
		status := http.StatusForbidden
		msg := err.Error()
		if !isDenySentinel(err) {
			status = http.StatusInternalServerError
			msg = "internal server error"
			h.log.Error().Err(err).Int64("account_id", principal.ID).Msg("dispatch failed")
		}
		return c.JSON(status, map[string]string{"error": msg})
	}

	h.recordAllow(c, principal, decision)

	resp := loginResponse{Action: decision.Action, RedirectURL: decision.RedirectURL}
	if decision.Action == domain.ActionAdminUserList || decision.Action == domain.ActionCompanyList {
		token, err := h.auth.SessionToken(principal)
		if err != nil {
			h.log.Error().Err(err).Int64("account_id", principal.ID).Msg("session token mint failed")
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
		resp.Token = token
	}
	if decision.Action == domain.ActionRedirect {
		metrics.RedirectTokensIssuedTotal.Inc()
	}

	return c.JSON(http.StatusOK, resp)
}

func isDenySentinel(err error) bool {
	return errors.Is(err, domain.ErrNotAssigned) ||
		errors.Is(err, domain.ErrLicenseInvalid) ||
		errors.Is(err, domain.ErrRoleUndefined)
}

func (h *ConnectionHandler) recordDeny(c echo.Context, email string, accountID int64, denyErr error) {
	reason := denyReasonLabel(denyErr)
	metrics.LoginsTotal.WithLabelValues("denied").Inc()
	metrics.DenialsTotal.WithLabelValues(reason).Inc()
	h.audit.Enqueue(ports.LoginEventInput{
		Email:      email,
		AccountID:  accountID,
		DenyReason: reason,
		RemoteIP:   c.RealIP(),
		Timestamp:  time.Now().UTC(),
	})
}

func (h *ConnectionHandler) recordAllow(c echo.Context, p *domain.Principal, d domain.Decision) {
	metrics.LoginsTotal.WithLabelValues("allowed").Inc()
	metrics.DispatchDecisionsTotal.WithLabelValues(string(d.Action)).Inc()
	h.audit.Enqueue(ports.LoginEventInput{
		Email:     p.Email,
		AccountID: p.ID,
		Action:    d.Action,
		RemoteIP:  c.RealIP(),
		Timestamp: time.Now().UTC(),
	})
}
