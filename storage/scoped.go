package storage

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
)

// ClientIDCookie identifies a client whose values live server side.
const ClientIDCookie = CookiePrefix + "client_id"

const clientIDMaxAge = 365 * 24 * 60 * 60

var _ RequestScoped = (*ClientScope)(nil)

// ClientScope maps each request onto a server-side namespace chosen by the
// client id cookie, issuing a fresh id when the cookie is missing or invalid.
type ClientScope struct {
	backend Namespacer
	secure  bool
}

func NewClientScope(backend Namespacer, secure bool) (*ClientScope, error) {
	if backend == nil {
		return nil, errors.New("[storage NewClientScope] backend is required")
	}
	return &ClientScope{backend: backend, secure: secure}, nil
}

func (s *ClientScope) ForRequest(w http.ResponseWriter, r *http.Request) (KV, error) {
	if cookie, err := r.Cookie(ClientIDCookie); err == nil {
		if id, err := uuid.Parse(cookie.Value); err == nil {
			return s.backend.Namespace(id.String()), nil
		}
	}

	id := uuid.New()
	http.SetCookie(w, &http.Cookie{
		Name:     ClientIDCookie,
		Value:    id.String(),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   clientIDMaxAge,
	})
	return s.backend.Namespace(id.String()), nil
}

// MemoryScope gives every request the same in-process store. It backs
// tests and single-user local runs.
type MemoryScope struct {
	kv *Memory
}

func NewMemoryScope(kv *Memory) *MemoryScope {
	return &MemoryScope{kv: kv}
}

func (s *MemoryScope) ForRequest(http.ResponseWriter, *http.Request) (KV, error) {
	return s.kv, nil
}
