package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sktech/account-gateway/internal/core/domain"
	"github.com/sktech/account-gateway/internal/core/ports"
)

type stubAuthService struct {
	authenticateFn func(ctx context.Context, email, password string) (*domain.Principal, error)
	sessionTokenFn func(p *domain.Principal) (string, error)
}

func (s *stubAuthService) Authenticate(ctx context.Context, email, password string) (*domain.Principal, error) {
	return s.authenticateFn(ctx, email, password)
}

func (s *stubAuthService) SessionToken(p *domain.Principal) (string, error) {
	if s.sessionTokenFn != nil {
		return s.sessionTokenFn(p)
	}
	return "session-token", nil
}

type stubDispatchService struct {
	dispatchFn func(ctx context.Context, p *domain.Principal) (domain.Decision, error)
}

func (s *stubDispatchService) Dispatch(ctx context.Context, p *domain.Principal) (domain.Decision, error) {
	return s.dispatchFn(ctx, p)
}

type stubThrottle struct {
	tooMany  bool
	failures []string
	resets   []string
}

func (s *stubThrottle) TooMany(_ context.Context, email string) (bool, error) {
	return s.tooMany, nil
}

func (s *stubThrottle) Failure(_ context.Context, email string) error {
	s.failures = append(s.failures, email)
	return nil
}

func (s *stubThrottle) Reset(_ context.Context, email string) error {
	s.resets = append(s.resets, email)
	return nil
}

type stubAudit struct {
	events []ports.LoginEventInput
}

func (s *stubAudit) Enqueue(event ports.LoginEventInput) {
	s.events = append(s.events, event)
}

type loginFixture struct {
	handler  *ConnectionHandler
	throttle *stubThrottle
	audit    *stubAudit
}

func newLoginFixture(auth *stubAuthService, dispatch *stubDispatchService) loginFixture {
	throttle := &stubThrottle{}
	audit := &stubAudit{}
	return loginFixture{
		handler:  NewConnectionHandler(auth, dispatch, throttle, audit, zerolog.Nop()),
		throttle: throttle,
		audit:    audit,
	}
}

func doLogin(t *testing.T, h *ConnectionHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestConnectionHandler_RedirectOutcome(t *testing.T) {
	auth := &stubAuthService{
		authenticateFn: func(_ context.Context, email, password string) (*domain.Principal, error) {
			if email != "skt@example.com" || password != "pw123456" {
				t.Fatalf("unexpected credentials: %s %s", email, password)
			}
			return &domain.Principal{ID: 42, Email: email, PrimaryRole: domain.RoleSKTUser, CompanyID: 1}, nil
		},
	}
	dispatch := &stubDispatchService{
		dispatchFn: func(_ context.Context, p *domain.Principal) (domain.Decision, error) {
			return domain.Decision{Action: domain.ActionRedirect, RedirectURL: "https://app.example.com?token=abc"}, nil
		},
	}
	fx := newLoginFixture(auth, dispatch)

	rec := doLogin(t, fx.handler, `{"email":"skt@example.com","password":"pw123456"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["action"] != string(domain.ActionRedirect) {
		t.Fatalf("unexpected action: %v", resp["action"])
	}
	if resp["redirect_url"] != "https://app.example.com?token=abc" {
		t.Fatalf("unexpected redirect_url: %v", resp["redirect_url"])
	}
	if _, hasToken := resp["token"]; hasToken {
		t.Fatalf("redirect outcome must not carry a session token")
	}

	if len(fx.throttle.resets) != 1 {
		t.Fatalf("expected throttle reset on success")
	}
	if len(fx.audit.events) != 1 || fx.audit.events[0].Action != domain.ActionRedirect {
		t.Fatalf("expected one allowed audit event, got %+v", fx.audit.events)
	}
}

func TestConnectionHandler_StaffGetsSessionToken(t *testing.T) {
	auth := &stubAuthService{
		authenticateFn: func(_ context.Context, email, password string) (*domain.Principal, error) {
			return &domain.Principal{ID: 1, Email: email, IsStaff: true}, nil
		},
	}
	dispatch := &stubDispatchService{
		dispatchFn: func(_ context.Context, p *domain.Principal) (domain.Decision, error) {
			return domain.Decision{Action: domain.ActionAdminUserList}, nil
		},
	}
	fx := newLoginFixture(auth, dispatch)

	rec := doLogin(t, fx.handler, `{"email":"staff@example.com","password":"pw123456"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["action"] != string(domain.ActionAdminUserList) {
		t.Fatalf("unexpected action: %v", resp["action"])
	}
	if resp["token"] != "session-token" {
		t.Fatalf("expected session token, got %v", resp["token"])
	}
}

func TestConnectionHandler_BadCredentials(t *testing.T) {
	auth := &stubAuthService{
		authenticateFn: func(_ context.Context, email, password string) (*domain.Principal, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	dispatch := &stubDispatchService{
		dispatchFn: func(_ context.Context, p *domain.Principal) (domain.Decision, error) {
			t.Fatalf("dispatch must not run for unauthenticated principals")
			return domain.Decision{}, nil
		},
	}
	fx := newLoginFixture(auth, dispatch)

	rec := doLogin(t, fx.handler, `{"email":"who@example.com","password":"pw123456"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not authenticated") {
		t.Fatalf("expected generic message, got %s", rec.Body.String())
	}
	if len(fx.throttle.failures) != 1 {
		t.Fatalf("expected one recorded failure")
	}
	if len(fx.audit.events) != 1 || fx.audit.events[0].DenyReason != "not_authenticated" {
		t.Fatalf("expected not_authenticated audit event, got %+v", fx.audit.events)
	}
}

func TestConnectionHandler_ThrottleKeysOnNormalisedEmail(t *testing.T) {
	auth := &stubAuthService{
		authenticateFn: func(_ context.Context, email, password string) (*domain.Principal, error) {
			if email != "shouty@example.com" {
				t.Fatalf("expected normalised email, got %q", email)
			}
			return nil, domain.ErrInvalidCredentials
		},
	}
	fx := newLoginFixture(auth, &stubDispatchService{})

	rec := doLogin(t, fx.handler, `{"email":"SHOUTY@Example.com","password":"pw123456"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	// Case variants must land in one attempt bucket.
	if len(fx.throttle.failures) != 1 || fx.throttle.failures[0] != "shouty@example.com" {
		t.Fatalf("failure recorded under wrong key: %v", fx.throttle.failures)
	}
	if len(fx.audit.events) != 1 || fx.audit.events[0].Email != "shouty@example.com" {
		t.Fatalf("audit event carries wrong email: %+v", fx.audit.events)
	}
}

func TestConnectionHandler_LicenseDenied(t *testing.T) {
	auth := &stubAuthService{
		authenticateFn: func(_ context.Context, email, password string) (*domain.Principal, error) {
			return &domain.Principal{ID: 9, Email: email, PrimaryRole: domain.RoleCustomer, CompanyID: 3}, nil
		},
	}
	dispatch := &stubDispatchService{
		dispatchFn: func(_ context.Context, p *domain.Principal) (domain.Decision, error) {
			return domain.Decision{}, domain.ErrLicenseInvalid
		},
	}
	fx := newLoginFixture(auth, dispatch)

	rec := doLogin(t, fx.handler, `{"email":"tenant@example.com","password":"pw123456"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "license invalid") {
		t.Fatalf("expected fixed license message, got %s", rec.Body.String())
	}
	if len(fx.audit.events) != 1 || fx.audit.events[0].DenyReason != "license_invalid" {
		t.Fatalf("expected license_invalid audit event, got %+v", fx.audit.events)
	}
}

func TestConnectionHandler_Throttled(t *testing.T) {
	auth := &stubAuthService{
		authenticateFn: func(_ context.Context, email, password string) (*domain.Principal, error) {
			t.Fatalf("authenticate must not run when throttled")
			return nil, nil
		},
	}
	dispatch := &stubDispatchService{}
	fx := newLoginFixture(auth, dispatch)
	fx.throttle.tooMany = true

	rec := doLogin(t, fx.handler, `{"email":"who@example.com","password":"pw123456"}`)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestConnectionHandler_RejectsBadPayload(t *testing.T) {
	fx := newLoginFixture(&stubAuthService{}, &stubDispatchService{})

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"not-an-email"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := fx.handler.Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 HTTPError, got %v", err)
	}
}
