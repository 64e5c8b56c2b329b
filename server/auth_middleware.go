package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/jrsteele09/portfolio-lab/auth"
	"github.com/jrsteele09/portfolio-lab/guard"
	"github.com/jrsteele09/portfolio-lab/sessions"
	"github.com/jrsteele09/portfolio-lab/storage"
	"github.com/jrsteele09/portfolio-lab/theme"
	"github.com/jrsteele09/portfolio-lab/token/jwt"
	"github.com/rs/zerolog"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyClient stores the per-request client services
	ContextKeyClient ContextKey = "client"
	// ContextKeyClaims stores introspected bearer token claims
	ContextKeyClaims ContextKey = "claims"
)

// prefersColorSchemeHeader is the client hint carrying the platform
// colour preference.
const prefersColorSchemeHeader = "Sec-CH-Prefers-Color-Scheme"

// client is one browser's view of the site for the duration of a request.
type client struct {
	kv    storage.KV
	auth  *auth.Service
	theme *theme.Service
}

func clientFromContext(ctx context.Context) (*client, bool) {
	c, ok := ctx.Value(ContextKeyClient).(*client)
	return c, ok
}

// ClientMiddleware rehydrates the client's auth and theme services from
// its storage and puts them in the request context. When the storage
// cannot be reached the request continues against empty in-memory state.
func (s *Server) ClientMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := zerolog.Ctx(ctx)

		kv, err := s.scope.ForRequest(w, r)
		if err != nil {
			logger.Warn().Err(err).Msg("[ClientMiddleware] client storage unavailable, using memory")
			kv = storage.NewMemory()
		}

		c, err := s.newClient(kv, prefersDark(r))
		if err != nil {
			logger.Error().Err(err).Msg("[ClientMiddleware] building client services")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		c.auth.Initialize(ctx)
		c.theme.Initialize(ctx)

		w.Header().Add("Accept-CH", prefersColorSchemeHeader)
		w.Header().Add("Vary", prefersColorSchemeHeader)
		next(w, r.WithContext(context.WithValue(ctx, ContextKeyClient, c)))
	}
}

func (s *Server) newClient(kv storage.KV, preference theme.Preference) (*client, error) {
	store, err := sessions.NewStore(kv)
	if err != nil {
		return nil, err
	}
	authService, err := auth.NewService(store, s.checker, auth.WithLoginObserver(func(o auth.LoginOutcome) {
		s.metrics.LoginAttempt(string(o))
	}))
	if err != nil {
		return nil, err
	}
	themeService, err := theme.NewService(kv, preference, theme.WithChangeObserver(func(m theme.Mode) {
		s.metrics.ThemeChange(m.String())
	}))
	if err != nil {
		return nil, err
	}
	return &client{kv: kv, auth: authService, theme: themeService}, nil
}

func prefersDark(r *http.Request) theme.Preference {
	dark := strings.EqualFold(strings.Trim(r.Header.Get(prefersColorSchemeHeader), `" `), "dark")
	return func() bool { return dark }
}

// decide runs the route guard for the request path.
func (s *Server) decide(r *http.Request) guard.Decision {
	c, ok := clientFromContext(r.Context())
	if !ok {
		return guard.Decision{Action: guard.Pending, Reason: guard.ReasonLoading}
	}
	requirement := s.viewRoutes.Classify(r.URL.Path)
	decision := guard.Evaluate(requirement, c.auth, r.URL.RequestURI())
	s.metrics.GuardDecision(string(decision.Reason))
	if decision.Action != guard.Allow {
		zerolog.Ctx(r.Context()).Debug().
			Str("path", r.URL.Path).
			Str("requirement", requirement.String()).
			Str("reason", string(decision.Reason)).
			Msg("[Guard] blocked")
	}
	return decision
}

// GuardMiddleware applies the route guard to HTML views. Blocked requests
// are redirected; a client still loading gets the loading view.
func (s *Server) GuardMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		decision := s.decide(r)
		switch decision.Action {
		case guard.Allow:
			next(w, r)
		case guard.Pending:
			w.Header().Set("Retry-After", "1")
			s.renderPage(w, r, http.StatusServiceUnavailable, "loading.html", "Loading", nil)
		default:
			redirectSuccess(w, r, decision.Location())
		}
	}
}

// APIGuardMiddleware applies the route guard to JSON endpoints, answering
// with 401 or 403 instead of redirecting.
func (s *Server) APIGuardMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		decision := s.decide(r)
		switch {
		case decision.Action == guard.Allow:
			next(w, r)
		case decision.Action == guard.Pending:
			w.Header().Set("Retry-After", "1")
			writeDetail(w, http.StatusServiceUnavailable, "Loading")
		case decision.Reason == guard.ReasonUnauthenticated:
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		default:
			writeDetail(w, http.StatusForbidden, "Not enough permissions")
		}
	}
}

// RequireBearerToken validates the access token in the Authorization header
// and puts its claims in the context.
func (s *Server) RequireBearerToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r)
		if !ok {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		claims, err := s.inspector.Introspect(raw)
		if err != nil || !claims.Active {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), ContextKeyClaims, claims)))
	}
}

func claimsFromContext(ctx context.Context) (*jwt.TokenIntrospection, bool) {
	c, ok := ctx.Value(ContextKeyClaims).(*jwt.TokenIntrospection)
	return c, ok
}

func bearerToken(r *http.Request) (string, bool) {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func retryAfterSeconds(seconds float64) string {
	if seconds < 1 {
		seconds = 1
	}
	return strconv.Itoa(int(seconds + 0.5))
}
