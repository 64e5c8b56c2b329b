// Package theme resolves, persists and publishes the client's light/dark
// display mode.
package theme

import (
	"context"
	"errors"
	"sync"

	"github.com/jrsteele09/portfolio-lab/storage"
	"github.com/rs/zerolog"
)

// ModeKey is the storage key for the persisted mode.
const ModeKey = "mode"

// Preference reports whether the platform prefers a dark display.
type Preference func() bool

// Listener receives the mode and tokens whenever they are published.
type Listener func(Mode, Tokens)

// Service owns the client's theme mode.
type Service struct {
	kv         storage.KV
	preference Preference
	onChange   func(Mode)

	lock      sync.RWMutex
	mode      Mode
	listeners []Listener
}

type ServiceOption func(*Service)

// WithChangeObserver is called after every persisted mode change.
func WithChangeObserver(fn func(Mode)) ServiceOption {
	return func(s *Service) {
		s.onChange = fn
	}
}

func NewService(kv storage.KV, preference Preference, options ...ServiceOption) (*Service, error) {
	if kv == nil {
		return nil, errors.New("[Theme NewService] kv is required")
	}
	if preference == nil {
		preference = func() bool { return false }
	}
	s := &Service{
		kv:         kv,
		preference: preference,
		onChange:   func(Mode) {},
		mode:       Light,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Initialize resolves the mode from storage, then the platform preference,
// then light, and publishes it. The preference is only consulted when no
// valid mode is stored. The resolved mode is not written back.
func (s *Service) Initialize(ctx context.Context) {
	mode, found := Light, false

	raw, ok, err := s.kv.Get(ctx, ModeKey)
	switch {
	case err != nil:
		zerolog.Ctx(ctx).Warn().Err(err).Msg("[Theme Initialize] reading persisted mode")
	case ok:
		mode, found = ParseMode(raw)
	}
	if !found {
		mode = Light
		if s.preference() {
			mode = Dark
		}
	}

	s.lock.Lock()
	s.mode = mode
	s.lock.Unlock()
	s.publish(mode)
}

// Toggle flips the mode, persists it and publishes the new tokens.
func (s *Service) Toggle(ctx context.Context) Mode {
	s.lock.Lock()
	mode := s.mode.Toggle()
	s.mode = mode
	s.lock.Unlock()

	s.commit(ctx, mode)
	return mode
}

// SetMode sets an explicit mode. Anything other than "light" or "dark" is
// ignored and reported as false.
func (s *Service) SetMode(ctx context.Context, raw string) bool {
	mode, ok := ParseMode(raw)
	if !ok {
		zerolog.Ctx(ctx).Debug().Str("mode", raw).Msg("[Theme SetMode] ignoring unknown mode")
		return false
	}

	s.lock.Lock()
	s.mode = mode
	s.lock.Unlock()

	s.commit(ctx, mode)
	return true
}

func (s *Service) Mode() Mode {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.mode
}

func (s *Service) IsDark() bool {
	return s.Mode() == Dark
}

func (s *Service) IsLight() bool {
	return s.Mode() == Light
}

func (s *Service) Tokens() Tokens {
	return TokensFor(s.Mode())
}

// Subscribe registers fn for future publications.
func (s *Service) Subscribe(fn Listener) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Service) commit(ctx context.Context, mode Mode) {
	if err := s.kv.Set(ctx, ModeKey, mode.String()); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("[Theme] mode not persisted")
	}
	s.onChange(mode)
	s.publish(mode)
}

func (s *Service) publish(mode Mode) {
	s.lock.RLock()
	listeners := append([]Listener(nil), s.listeners...)
	s.lock.RUnlock()

	tokens := TokensFor(mode)
	for _, fn := range listeners {
		fn(mode, tokens)
	}
}
