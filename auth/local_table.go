package auth

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/portfolio-lab/internal/errors"
	"github.com/jrsteele09/portfolio-lab/sessions"
)

var (
	ErrAccountExists   = errors.New("email already registered")
	ErrAccountNotFound = fmt.Errorf("account %w", apperrors.ErrNotFound)
	ErrLastAdmin       = errors.New("the last admin account cannot be removed or demoted")
)

// Account is one row of the static credential table.
type Account struct {
	Email    string
	Password string
	Token    string
	Role     sessions.Role
}

// DemoAccounts is the built in credential table shown on the login page.
func DemoAccounts() []Account {
	return []Account{
		{Email: "admin@example.com", Password: "admin123", Token: "mock-admin-token", Role: sessions.RoleAdmin},
		{Email: "practice@example.com", Password: "practice123", Token: "mock-practice-token", Role: sessions.RolePractice},
	}
}

var _ Checker = (*LocalTable)(nil)

// LocalTable checks credentials against an in-memory table. Matching is
// exact on both email and password. Admins may add, change and remove
// accounts at runtime.
type LocalTable struct {
	lock     sync.RWMutex
	accounts map[string]Account
	order    []string
}

func NewLocalTable(accounts ...Account) (*LocalTable, error) {
	if len(accounts) == 0 {
		return nil, errors.New("[Auth NewLocalTable] at least one account is required")
	}
	t := &LocalTable{accounts: make(map[string]Account, len(accounts))}
	for _, a := range accounts {
		if a.Email == "" || a.Password == "" || a.Token == "" {
			return nil, fmt.Errorf("[Auth NewLocalTable] account %q is incomplete", a.Email)
		}
		if !a.Role.Valid() {
			return nil, fmt.Errorf("[Auth NewLocalTable] account %q has unknown role %q", a.Email, a.Role)
		}
		if _, dup := t.accounts[a.Email]; dup {
			return nil, fmt.Errorf("[Auth NewLocalTable] duplicate account %q", a.Email)
		}
		t.accounts[a.Email] = a
		t.order = append(t.order, a.Email)
	}
	return t, nil
}

// Lookup returns the account matching both email and password.
func (t *LocalTable) Lookup(email, password string) (Account, bool) {
	t.lock.RLock()
	defer t.lock.RUnlock()
	a, ok := t.accounts[email]
	if !ok || a.Password != password {
		return Account{}, false
	}
	return a, true
}

// Accounts returns the table in declaration order.
func (t *LocalTable) Accounts() []Account {
	t.lock.RLock()
	defer t.lock.RUnlock()
	out := make([]Account, 0, len(t.order))
	for _, email := range t.order {
		out = append(out, t.accounts[email])
	}
	return out
}

func (t *LocalTable) Check(_ context.Context, c Credentials) (sessions.Session, error) {
	a, ok := t.Lookup(c.Email, c.Password)
	if !ok {
		return sessions.Session{}, invalidCredentials()
	}
	return sessions.Session{Token: a.Token, Role: a.Role}, nil
}

// Add registers a new account. An empty role means practice and an empty
// token is generated.
func (t *LocalTable) Add(a Account) (Account, error) {
	a.Email = strings.TrimSpace(a.Email)
	if a.Role == "" {
		a.Role = sessions.RolePractice
	}
	if a.Token == "" {
		a.Token = "mock-" + uuid.NewString()
	}
	if a.Email == "" || a.Password == "" {
		return Account{}, apperrors.Wrapf(apperrors.ErrInvalidRequest, "[Auth LocalTable Add] email and password are required")
	}
	if !a.Role.Valid() {
		return Account{}, apperrors.Wrapf(apperrors.ErrInvalidRequest, "[Auth LocalTable Add] unknown role %q", a.Role)
	}

	t.lock.Lock()
	defer t.lock.Unlock()
	if _, dup := t.accounts[a.Email]; dup {
		return Account{}, apperrors.Wrapf(ErrAccountExists, "[Auth LocalTable Add] %q", a.Email)
	}
	t.accounts[a.Email] = a
	t.order = append(t.order, a.Email)
	return a, nil
}

// Update changes an account's role, and its password when one is given.
func (t *LocalTable) Update(email, password string, role sessions.Role) (Account, error) {
	if !role.Valid() {
		return Account{}, apperrors.Wrapf(apperrors.ErrInvalidRequest, "[Auth LocalTable Update] unknown role %q", role)
	}

	t.lock.Lock()
	defer t.lock.Unlock()
	a, ok := t.accounts[email]
	if !ok {
		return Account{}, apperrors.Wrapf(ErrAccountNotFound, "[Auth LocalTable Update] %q", email)
	}
	if a.Role == sessions.RoleAdmin && role != sessions.RoleAdmin && t.admins() == 1 {
		return Account{}, apperrors.Wrapf(ErrLastAdmin, "[Auth LocalTable Update] %q", email)
	}
	a.Role = role
	if password != "" {
		a.Password = password
	}
	t.accounts[email] = a
	return a, nil
}

func (t *LocalTable) Remove(email string) error {
	t.lock.Lock()
	defer t.lock.Unlock()
	a, ok := t.accounts[email]
	if !ok {
		return apperrors.Wrapf(ErrAccountNotFound, "[Auth LocalTable Remove] %q", email)
	}
	if a.Role == sessions.RoleAdmin && t.admins() == 1 {
		return apperrors.Wrapf(ErrLastAdmin, "[Auth LocalTable Remove] %q", email)
	}
	delete(t.accounts, email)
	t.order = slices.DeleteFunc(t.order, func(e string) bool { return e == email })
	return nil
}

// admins must be called with the lock held.
func (t *LocalTable) admins() int {
	n := 0
	for _, a := range t.accounts {
		if a.Role == sessions.RoleAdmin {
			n++
		}
	}
	return n
}
