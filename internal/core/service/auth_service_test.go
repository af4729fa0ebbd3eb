package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/sktech/account-gateway/internal/core/domain"
)

type stubAccountRepo struct {
	accounts map[string]*domain.Account
	nextID   int64
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	if a, ok := r.accounts[email]; ok {
		return cloneAccount(a), nil
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByID(_ context.Context, id int64) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.ID == id {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	if _, exists := r.accounts[account.Email]; exists {
		return nil, domain.ErrAccountExists
	}
	r.nextID++
	created := cloneAccount(account)
	created.ID = r.nextID
	r.accounts[created.Email] = cloneAccount(created)
	return created, nil
}

func (r *stubAccountRepo) ListByRole(_ context.Context, role domain.Role) ([]domain.Account, error) {
	var out []domain.Account
	for _, a := range r.accounts {
		if a.PrimaryRole == role {
			out = append(out, *cloneAccount(a))
		}
	}
	return out, nil
}

func (r *stubAccountRepo) CountByCompany(_ context.Context, companyID int64) (int64, error) {
	var n int64
	for _, a := range r.accounts {
		if a.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

func (r *stubAccountRepo) seed(t *testing.T, email, password string, mutate func(*domain.Account)) *domain.Account {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	r.nextID++
	a := &domain.Account{
		ID:           r.nextID,
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
		PrimaryRole:  domain.RoleCustomer,
	}
	if mutate != nil {
		mutate(a)
	}
	r.accounts[a.Email] = a
	return a
}

func TestAuthService_Authenticate_Success(t *testing.T) {
	repo := newStubAccountRepo()
	repo.seed(t, "alice@example.com", "s3cret-pw", func(a *domain.Account) {
		a.PrimaryRole = domain.RoleSKTUser
		a.CompanyID = 7
	})
	svc := NewAuthService(repo, "secret", time.Hour)

	p, err := svc.Authenticate(context.Background(), "alice@example.com", "s3cret-pw")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if p.Email != "alice@example.com" || p.PrimaryRole != domain.RoleSKTUser || p.CompanyID != 7 {
		t.Fatalf("unexpected principal: %+v", p)
	}
}

func TestAuthService_Authenticate_NormalisesEmail(t *testing.T) {
	repo := newStubAccountRepo()
	repo.seed(t, "bob@example.com", "s3cret-pw", nil)
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, err := svc.Authenticate(context.Background(), "  BOB@Example.com ", "s3cret-pw"); err != nil {
		t.Fatalf("expected case-insensitive email match, got %v", err)
	}
}

func TestAuthService_Authenticate_FailuresAreIndistinguishable(t *testing.T) {
	repo := newStubAccountRepo()
	repo.seed(t, "carol@example.com", "goodpass1", nil)
	repo.seed(t, "dave@example.com", "goodpass1", func(a *domain.Account) { a.IsActive = false })
	svc := NewAuthService(repo, "secret", time.Hour)

	cases := []struct {
		name            string
		email, password string
	}{
		{"unknown email", "nobody@example.com", "whatever1"},
		{"wrong password", "carol@example.com", "badpass99"},
		{"inactive account", "dave@example.com", "goodpass1"},
		{"empty password", "carol@example.com", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Authenticate(context.Background(), tc.email, tc.password); err != domain.ErrInvalidCredentials {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestAuthService_SessionToken(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	p := &domain.Principal{ID: 42, Email: "staff@example.com", IsStaff: true, PrimaryRole: domain.RoleAdministrator}
	token, err := svc.SessionToken(p)
	if err != nil {
		t.Fatalf("SessionToken returned error: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != "42" {
		t.Fatalf("expected sub 42, got %v", claims["sub"])
	}
	if claims["staff"] != true {
		t.Fatalf("expected staff claim, got %v", claims["staff"])
	}
	if claims["role"] != string(domain.RoleAdministrator) {
		t.Fatalf("unexpected role claim: %v", claims["role"])
	}
}
