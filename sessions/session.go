package sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/jrsteele09/portfolio-lab/storage"
	"github.com/rs/zerolog"
)

// Storage keys for the persisted session fields.
const (
	TokenKey = "token"
	RoleKey  = "role"
)

// ErrInvalidSession is returned when asked to persist a half-formed session.
var ErrInvalidSession = errors.New("session must carry both a token and a known role")

type Role string

const (
	RoleAdmin    Role = "admin"
	RolePractice Role = "practice"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RolePractice
}

func (r Role) String() string {
	return string(r)
}

// ParseRole maps a stored value onto a Role. Unknown values are rejected.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

// Session is the client's logged in state. A zero Session means logged out.
type Session struct {
	Token string
	Role  Role
}

func (s Session) IsZero() bool {
	return s.Token == "" && s.Role == ""
}

// Valid reports whether the session is a complete logged in session.
func (s Session) Valid() bool {
	return s.Token != "" && s.Role.Valid()
}

// Store reads and writes the session fields in a client KV.
type Store struct {
	kv storage.KV
}

func NewStore(kv storage.KV) (*Store, error) {
	if kv == nil {
		return nil, errors.New("[Session NewStore] kv is required")
	}
	return &Store{kv: kv}, nil
}

// Load returns the persisted session. It never fails: read errors are logged
// and yield an empty session, as does a token without a recognised role.
func (s *Store) Load(ctx context.Context) Session {
	logger := zerolog.Ctx(ctx)

	token, ok, err := s.kv.Get(ctx, TokenKey)
	if err != nil {
		logger.Warn().Err(err).Msg("[Session Load] reading token")
		return Session{}
	}
	if !ok || token == "" {
		return Session{}
	}

	raw, ok, err := s.kv.Get(ctx, RoleKey)
	if err != nil {
		logger.Warn().Err(err).Msg("[Session Load] reading role")
		return Session{}
	}
	role, valid := ParseRole(raw)
	if !ok || !valid {
		logger.Debug().Str("role", raw).Msg("[Session Load] stored token has no usable role")
		return Session{}
	}
	return Session{Token: token, Role: role}
}

// Save persists both fields. Saving an empty session clears the store. If
// only one field could be written the store is cleared so it never holds a
// partial session.
func (s *Store) Save(ctx context.Context, session Session) error {
	if session.IsZero() {
		return s.Clear(ctx)
	}
	if !session.Valid() {
		return ErrInvalidSession
	}

	if err := s.kv.Set(ctx, TokenKey, session.Token); err != nil {
		return errors.Join(fmt.Errorf("[Session Save] token: %w", err), s.Clear(ctx))
	}
	if err := s.kv.Set(ctx, RoleKey, session.Role.String()); err != nil {
		return errors.Join(fmt.Errorf("[Session Save] role: %w", err), s.Clear(ctx))
	}
	return nil
}

// Clear removes both fields unconditionally.
func (s *Store) Clear(ctx context.Context) error {
	var errs []error
	if err := s.kv.Delete(ctx, TokenKey); err != nil {
		errs = append(errs, fmt.Errorf("[Session Clear] token: %w", err))
	}
	if err := s.kv.Delete(ctx, RoleKey); err != nil {
		errs = append(errs, fmt.Errorf("[Session Clear] role: %w", err))
	}
	return errors.Join(errs...)
}
