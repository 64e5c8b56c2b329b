package server

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/jrsteele09/portfolio-lab/auth"
	"github.com/jrsteele09/portfolio-lab/guard"
	"github.com/jrsteele09/portfolio-lab/internal/config"
	"github.com/rs/zerolog"
)

// MsgRateLimited is shown when an email has used up its login attempts.
const MsgRateLimited = auth.MsgRateLimited

// MsgLoginInProgress is shown when the same email is submitted again while
// an earlier submission is still being checked.
const MsgLoginInProgress = "A login for this account is already in progress."

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	Error        string
	Email        string // Preserve email on error
	From         string // Where to go after logging in
	DemoAccounts []auth.Account
}

// LoginPageUIHandler displays the login page (GET /login)
func (s *Server) LoginPageUIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		data := LoginPageData{
			Error: q.Get("error"),
			Email: q.Get("email"),
			From:  guard.SanitizeReturnTo(q.Get(guard.ReturnToParam)),
		}
		if s.env == config.DevEnv {
			data.DemoAccounts = s.accounts.Accounts()
		}
		s.renderPage(w, r, http.StatusOK, "login.html", "Login", data)
	}
}

// LoginSubmissionHandler processes the login form submission
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := clientFromContext(r.Context())
		if !ok {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		email := r.PostFormValue("email")
		password := r.PostFormValue("password")
		from := guard.SanitizeReturnTo(r.PostFormValue(guard.ReturnToParam))
		keep := url.Values{"email": {email}, guard.ReturnToParam: {from}}

		if err := auth.ValidateCredentials(auth.Credentials{Email: email, Password: password}); err != nil {
			redirectWithError(w, r, RouteLogin, auth.Message(err), keep)
			return
		}

		if !s.pending.begin(email) {
			zerolog.Ctx(r.Context()).Info().Str("email", email).Msg("[Login] duplicate submission")
			redirectWithError(w, r, RouteLogin, MsgLoginInProgress, keep)
			return
		}
		defer s.pending.end(email)

		if allowed, retryAfter := s.limiter.Allow(email); !allowed {
			zerolog.Ctx(r.Context()).Warn().Str("email", email).Msg("[Login] rate limited")
			s.metrics.LoginAttempt("rate_limited")
			w.Header().Set("Retry-After", retryAfterSeconds(retryAfter.Seconds()))
			redirectWithError(w, r, RouteLogin, MsgRateLimited, keep)
			return
		}

		role, err := c.auth.Login(r.Context(), email, password)
		if err != nil {
			var authErr *auth.Error
			if !errors.As(err, &authErr) {
				authErr = &auth.Error{Kind: auth.ErrBackendUnavailable, Message: auth.MsgBackendUnavailable, Err: err}
			}
			redirectWithError(w, r, RouteLogin, authErr.Message, keep)
			return
		}

		redirectSuccess(w, r, guard.LoginDestination(role, from))
	}
}

// LogoutHandler ends the session and returns home. Logging out while
// logged out is harmless.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c, ok := clientFromContext(r.Context()); ok {
			c.auth.Logout(r.Context())
		}
		redirectSuccess(w, r, RouteHome)
	}
}
