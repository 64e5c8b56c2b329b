package storage

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/crypto/hkdf"
)

// CookiePrefix namespaces every cookie written by the cookie store.
const CookiePrefix = "pl_"

const cookieKeyInfo = "portfolio-lab cookie signing v1"

var _ RequestScoped = (*CookieScope)(nil)

// DeriveCookieKey stretches the configured secret into a 32 byte HMAC key.
func DeriveCookieKey(secret string) ([]byte, error) {
	if secret == "" {
		return nil, errors.New("[storage DeriveCookieKey] cookie secret is required")
	}
	key := make([]byte, sha256.Size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(cookieKeyInfo)), key); err != nil {
		return nil, fmt.Errorf("[storage DeriveCookieKey] failed to derive key: %w", err)
	}
	return key, nil
}

// CookieScope stores each client's values in signed cookies on the client itself.
type CookieScope struct {
	key    []byte
	maxAge int
	secure bool
}

func NewCookieScope(key []byte, maxAgeSeconds int, secure bool) (*CookieScope, error) {
	if len(key) < 16 {
		return nil, errors.New("[storage NewCookieScope] signing key too short")
	}
	if maxAgeSeconds <= 0 {
		return nil, errors.New("[storage NewCookieScope] max age must be positive")
	}
	return &CookieScope{key: key, maxAge: maxAgeSeconds, secure: secure}, nil
}

func (s *CookieScope) ForRequest(w http.ResponseWriter, r *http.Request) (KV, error) {
	return &CookieKV{
		w:       w,
		r:       r,
		scope:   s,
		written: make(map[string]string),
		deleted: make(map[string]struct{}),
	}, nil
}

// CookieKV is the KV view over one request/response pair. Writes are
// visible to later reads within the same request.
type CookieKV struct {
	w       http.ResponseWriter
	r       *http.Request
	scope   *CookieScope
	written map[string]string
	deleted map[string]struct{}
	lock    sync.Mutex
}

func (c *CookieKV) Get(_ context.Context, key string) (string, bool, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if _, gone := c.deleted[key]; gone {
		return "", false, nil
	}
	if v, ok := c.written[key]; ok {
		return v, true, nil
	}

	cookie, err := c.r.Cookie(CookiePrefix + key)
	if err != nil {
		return "", false, nil
	}
	v, ok := c.scope.verify(cookie.Name, cookie.Value)
	return v, ok, nil
}

func (c *CookieKV) Set(_ context.Context, key, value string) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	name := CookiePrefix + key
	http.SetCookie(c.w, &http.Cookie{
		Name:     name,
		Value:    c.scope.sign(name, value),
		Path:     "/",
		HttpOnly: true,
		Secure:   c.scope.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   c.scope.maxAge,
	})
	c.written[key] = value
	delete(c.deleted, key)
	return nil
}

func (c *CookieKV) Delete(_ context.Context, key string) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	http.SetCookie(c.w, &http.Cookie{
		Name:     CookiePrefix + key,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   c.scope.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	delete(c.written, key)
	c.deleted[key] = struct{}{}
	return nil
}

func (s *CookieScope) sign(name, value string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(value)) + "." + base64.RawURLEncoding.EncodeToString(s.mac(name, value))
}

// verify returns the cookie payload when its MAC matches. Tampered or
// malformed values read as absent.
func (s *CookieScope) verify(name, raw string) (string, bool) {
	encValue, encMAC, found := strings.Cut(raw, ".")
	if !found {
		return "", false
	}
	value, err := base64.RawURLEncoding.DecodeString(encValue)
	if err != nil {
		return "", false
	}
	mac, err := base64.RawURLEncoding.DecodeString(encMAC)
	if err != nil {
		return "", false
	}
	if !hmac.Equal(mac, s.mac(name, string(value))) {
		return "", false
	}
	return string(value), true
}

func (s *CookieScope) mac(name, value string) []byte {
	h := hmac.New(sha256.New, s.key)
	h.Write([]byte(name + "=" + value))
	return h.Sum(nil)
}
