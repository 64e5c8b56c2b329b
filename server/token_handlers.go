package server

import (
	"net/http"
	"time"

	"github.com/jrsteele09/portfolio-lab/internal/utils"
	"github.com/rs/zerolog"
)

// TokenResponse is the credential-check endpoint's success body.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Role        string `json:"role"`
	ExpiresIn   int64  `json:"expires_in"`
}

// UserInfoResponse describes the holder of a bearer token.
type UserInfoResponse struct {
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenHandler is the mock credential-check backend: an OAuth2 password
// grant against the account table, answered with a signed access token and
// the account's role.
func (s *Server) TokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context())

		if err := r.ParseForm(); err != nil {
			writeJSONError(w, "invalid_request", "Failed to parse form data", http.StatusBadRequest)
			return
		}
		if gt := r.PostFormValue("grant_type"); gt != "" && gt != "password" {
			writeJSONError(w, "unsupported_grant_type", "Only the password grant is supported", http.StatusBadRequest)
			return
		}

		username := r.PostFormValue("username")
		password := r.PostFormValue("password")
		if username == "" || password == "" {
			writeJSONError(w, "invalid_request", "username and password are required", http.StatusBadRequest)
			return
		}

		if allowed, retryAfter := s.tokenLimit.Allow(username); !allowed {
			w.Header().Set("Retry-After", retryAfterSeconds(retryAfter.Seconds()))
			writeDetail(w, http.StatusTooManyRequests, MsgRateLimited)
			return
		}

		account, ok := s.accounts.Lookup(username, password)
		if !ok {
			logger.Warn().Str("username", username).Msg("[Token] failed login attempt")
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeDetail(w, http.StatusUnauthorized, "Incorrect username or password")
			return
		}

		accessToken, err := s.tokens.CreateAccessToken(account.Email, account.Role)
		if err != nil {
			logger.Error().Err(err).Msg("[Token] creating access token")
			writeJSONError(w, "server_error", "Failed to issue token", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Pragma", "no-cache")
		writeJSON(w, r, http.StatusOK, TokenResponse{
			AccessToken: accessToken.Token,
			TokenType:   "bearer",
			Role:        account.Role.String(),
			ExpiresIn:   int64(s.tokens.Expiry().Seconds()),
		})
	}
}

// RevokeHandler revokes an access token. Unknown or already invalid tokens
// are accepted silently.
func (s *Server) RevokeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			writeJSONError(w, "invalid_request", "Failed to parse form data", http.StatusBadRequest)
			return
		}

		raw := r.PostFormValue("token")
		if raw == "" {
			writeJSONError(w, "invalid_request", "token parameter is required", http.StatusBadRequest)
			return
		}

		claims, err := s.inspector.Introspect(raw)
		if err == nil && claims.Active {
			s.revoked.Add(claims.Jti, time.Unix(utils.Value(claims.Exp), 0))
			zerolog.Ctx(r.Context()).Info().Str("jti", claims.Jti).Msg("[Revoke] token revoked")
		}
		s.revoked.Cleanup()

		w.WriteHeader(http.StatusNoContent)
	}
}

// UserInfoHandler returns the claims of the bearer token
func (s *Server) UserInfoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFromContext(r.Context())
		if !ok || claims.Sub == nil {
			writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		writeJSON(w, r, http.StatusOK, UserInfoResponse{
			Email:     utils.Value(claims.Sub),
			Role:      claims.Role,
			IsActive:  claims.Active,
			ExpiresAt: time.Unix(utils.Value(claims.Exp), 0).UTC(),
		})
	}
}
