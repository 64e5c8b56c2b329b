package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/jrsteele09/portfolio-lab/sessions"
	"github.com/rs/zerolog"
)

// Checker verifies credentials and, on success, returns the session to adopt.
// Failures are *Error values.
type Checker interface {
	Check(ctx context.Context, c Credentials) (sessions.Session, error)
}

// SessionStore persists the session between service instances.
type SessionStore interface {
	Load(ctx context.Context) sessions.Session
	Save(ctx context.Context, s sessions.Session) error
	Clear(ctx context.Context) error
}

// LoginOutcome labels the result of a login attempt for observers.
type LoginOutcome string

const (
	OutcomeSuccess     LoginOutcome = "success"
	OutcomeInvalid     LoginOutcome = "invalid_credentials"
	OutcomeUnavailable LoginOutcome = "unavailable"
	OutcomeLimited     LoginOutcome = "rate_limited"
)

// Service owns the client's session: it rehydrates it from storage, replaces
// it on login and clears it on logout.
type Service struct {
	store    SessionStore
	checker  Checker
	observer func(LoginOutcome)

	lock    sync.RWMutex
	session sessions.Session
	ready   bool
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithLoginObserver is called once per login attempt with its outcome.
func WithLoginObserver(fn func(LoginOutcome)) ServiceOption {
	return func(s *Service) {
		s.observer = fn
	}
}

func NewService(store SessionStore, checker Checker, options ...ServiceOption) (*Service, error) {
	if store == nil {
		return nil, errors.New("[NewService] session store is required")
	}
	if checker == nil {
		return nil, errors.New("[NewService] credential checker is required")
	}

	s := &Service{
		store:    store,
		checker:  checker,
		observer: func(LoginOutcome) {},
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Initialize loads the persisted session and opens the loading gate.
func (s *Service) Initialize(ctx context.Context) {
	session := s.store.Load(ctx)

	s.lock.Lock()
	defer s.lock.Unlock()
	s.session = session
	s.ready = true
}

// Ready reports whether Initialize has completed.
func (s *Service) Ready() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.ready
}

// Login checks the credentials and adopts the resulting session. On failure
// the current session is left untouched. A storage failure is logged and
// does not fail the login; the session then lives in memory only.
func (s *Service) Login(ctx context.Context, email, password string) (sessions.Role, error) {
	logger := zerolog.Ctx(ctx)

	session, err := s.checker.Check(ctx, Credentials{Email: email, Password: password})
	if err == nil && !session.Valid() {
		err = backendUnavailable(sessions.ErrInvalidSession)
	}
	if err != nil {
		var authErr *Error
		if !errors.As(err, &authErr) {
			authErr = backendUnavailable(err)
		}
		switch {
		case errors.Is(authErr, ErrInvalidCredentials):
			s.observer(OutcomeInvalid)
			logger.Info().Str("email", email).Msg("[Auth Login] invalid credentials")
		case errors.Is(authErr, ErrRateLimited):
			s.observer(OutcomeLimited)
			logger.Warn().Str("email", email).Msg("[Auth Login] credential check rate limited")
		default:
			s.observer(OutcomeUnavailable)
			logger.Error().Err(err).Str("email", email).Msg("[Auth Login] credential check failed")
		}
		return "", authErr
	}

	if err := s.store.Save(ctx, session); err != nil {
		logger.Warn().Err(err).Msg("[Auth Login] session not persisted")
	}

	s.lock.Lock()
	s.session = session
	s.ready = true
	s.lock.Unlock()

	s.observer(OutcomeSuccess)
	logger.Info().Str("email", email).Str("role", session.Role.String()).Msg("[Auth Login] logged in")
	return session.Role, nil
}

// Logout clears the stored and in-memory session. Calling it while logged
// out is a no-op.
func (s *Service) Logout(ctx context.Context) {
	if err := s.store.Clear(ctx); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("[Auth Logout] clearing stored session")
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	s.session = sessions.Session{}
}

func (s *Service) Session() sessions.Session {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.session
}

func (s *Service) Role() sessions.Role {
	return s.Session().Role
}

func (s *Service) IsAuthenticated() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.ready && s.session.Token != ""
}

func (s *Service) IsAdmin() bool {
	return s.IsAuthenticated() && s.Role() == sessions.RoleAdmin
}

func (s *Service) IsPracticeUser() bool {
	return s.IsAuthenticated() && s.Role() == sessions.RolePractice
}
