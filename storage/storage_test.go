package storage_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jrsteele09/portfolio-lab/storage"
	"github.com/stretchr/testify/require"
)

// nextRequest carries the cookies set on rec into a fresh request, the way a
// browser would.
func nextRequest(t *testing.T, rec *httptest.ResponseRecorder, prev *http.Request) *http.Request {
	t.Helper()

	jar := map[string]*http.Cookie{}
	if prev != nil {
		for _, c := range prev.Cookies() {
			jar[c.Name] = c
		}
	}
	if rec != nil {
		for _, c := range rec.Result().Cookies() {
			if c.MaxAge < 0 {
				delete(jar, c.Name)
				continue
			}
			jar[c.Name] = c
		}
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range jar {
		r.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	}
	return r
}

func exerciseKV(t *testing.T, kv storage.KV) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, "token")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, kv.Set(ctx, "token", "mock-admin-token"))
	v, ok, err := kv.Get(ctx, "token")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "mock-admin-token", v)

	require.NoError(t, kv.Set(ctx, "token", "mock-practice-token"))
	v, _, err = kv.Get(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, "mock-practice-token", v)

	require.NoError(t, kv.Delete(ctx, "token"))
	require.NoError(t, kv.Delete(ctx, "token"), "deleting an absent key is not an error")
	_, ok, err = kv.Get(ctx, "token")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemory(t *testing.T) {
	exerciseKV(t, storage.NewMemory())
}

func TestCookieStore(t *testing.T) {
	key, err := storage.DeriveCookieKey("test-secret")
	require.NoError(t, err)
	scope, err := storage.NewCookieScope(key, 3600, false)
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("read your writes within a request", func(t *testing.T) {
		rec := httptest.NewRecorder()
		kv, err := scope.ForRequest(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		exerciseKV(t, kv)
	})

	t.Run("values survive across requests", func(t *testing.T) {
		rec := httptest.NewRecorder()
		first := httptest.NewRequest(http.MethodGet, "/", nil)
		kv, err := scope.ForRequest(rec, first)
		require.NoError(t, err)
		require.NoError(t, kv.Set(ctx, "role", "admin"))

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		require.Equal(t, storage.CookiePrefix+"role", cookies[0].Name)
		require.True(t, cookies[0].HttpOnly)
		require.Equal(t, "/", cookies[0].Path)

		second := nextRequest(t, rec, first)
		kv, err = scope.ForRequest(httptest.NewRecorder(), second)
		require.NoError(t, err)
		v, ok, err := kv.Get(ctx, "role")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "admin", v)

		rec = httptest.NewRecorder()
		kv, err = scope.ForRequest(rec, second)
		require.NoError(t, err)
		require.NoError(t, kv.Delete(ctx, "role"))

		third := nextRequest(t, rec, second)
		kv, err = scope.ForRequest(httptest.NewRecorder(), third)
		require.NoError(t, err)
		_, ok, err = kv.Get(ctx, "role")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("tampered cookie reads as absent", func(t *testing.T) {
		rec := httptest.NewRecorder()
		kv, err := scope.ForRequest(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		require.NoError(t, kv.Set(ctx, "role", "practice"))
		signed := rec.Result().Cookies()[0].Value

		forgedRec := httptest.NewRecorder()
		forged, err := scope.ForRequest(forgedRec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		require.NoError(t, forged.Set(ctx, "role", "admin"))
		adminSigned := forgedRec.Result().Cookies()[0].Value

		// payload of the admin cookie with the MAC of the practice cookie
		adminPayload, _, _ := strings.Cut(adminSigned, ".")
		_, practiceMAC, _ := strings.Cut(signed, ".")
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: storage.CookiePrefix + "role", Value: adminPayload + "." + practiceMAC})
		kv, err = scope.ForRequest(httptest.NewRecorder(), r)
		require.NoError(t, err)
		_, ok, err := kv.Get(ctx, "role")
		require.NoError(t, err)
		require.False(t, ok)

		r = httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: storage.CookiePrefix + "role", Value: "admin"})
		kv, err = scope.ForRequest(httptest.NewRecorder(), r)
		require.NoError(t, err)
		_, ok, err = kv.Get(ctx, "role")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("a different secret cannot read the cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		first := httptest.NewRequest(http.MethodGet, "/", nil)
		kv, err := scope.ForRequest(rec, first)
		require.NoError(t, err)
		require.NoError(t, kv.Set(ctx, "mode", "dark"))

		otherKey, err := storage.DeriveCookieKey("another-secret")
		require.NoError(t, err)
		other, err := storage.NewCookieScope(otherKey, 3600, false)
		require.NoError(t, err)

		kv, err = other.ForRequest(httptest.NewRecorder(), nextRequest(t, rec, first))
		require.NoError(t, err)
		_, ok, err := kv.Get(ctx, "mode")
		require.NoError(t, err)
		require.False(t, ok)
	})
}

func TestCookieScopeValidation(t *testing.T) {
	_, err := storage.DeriveCookieKey("")
	require.Error(t, err)

	_, err = storage.NewCookieScope([]byte("short"), 60, false)
	require.Error(t, err)

	key, err := storage.DeriveCookieKey("s")
	require.NoError(t, err)
	require.Len(t, key, 32)
	_, err = storage.NewCookieScope(key, 0, false)
	require.Error(t, err)
}

func TestSQLite(t *testing.T) {
	ctx := context.Background()
	db, err := storage.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	t.Run("kv contract", func(t *testing.T) {
		exerciseKV(t, db.Namespace("client-a"))
	})

	t.Run("namespaces are isolated", func(t *testing.T) {
		a := db.Namespace("a")
		b := db.Namespace("b")
		require.NoError(t, a.Set(ctx, "mode", "dark"))
		_, ok, err := b.Get(ctx, "mode")
		require.NoError(t, err)
		require.False(t, ok)
	})
}

func TestSQLiteFileSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "clients.db")

	db, err := storage.OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, db.Namespace("cli").Set(ctx, "token", "mock-admin-token"))
	require.NoError(t, db.Close())

	db, err = storage.OpenSQLite(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	v, ok, err := db.Namespace("cli").Get(ctx, "token")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "mock-admin-token", v)
}

func TestPostgres(t *testing.T) {
	dsn := os.Getenv("PORTFOLIO_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("PORTFOLIO_TEST_PG_DSN not set")
	}
	ctx := context.Background()
	db, err := storage.OpenPostgres(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	exerciseKV(t, db.Namespace(uuid.NewString()))
}

func TestClientScope(t *testing.T) {
	ctx := context.Background()
	db, err := storage.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	scope, err := storage.NewClientScope(db, false)
	require.NoError(t, err)

	t.Run("new client gets an id cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		first := httptest.NewRequest(http.MethodGet, "/", nil)
		kv, err := scope.ForRequest(rec, first)
		require.NoError(t, err)
		require.NoError(t, kv.Set(ctx, "mode", "dark"))

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		require.Equal(t, storage.ClientIDCookie, cookies[0].Name)
		_, err = uuid.Parse(cookies[0].Value)
		require.NoError(t, err)

		rec2 := httptest.NewRecorder()
		kv, err = scope.ForRequest(rec2, nextRequest(t, rec, first))
		require.NoError(t, err)
		require.Empty(t, rec2.Result().Cookies(), "known client keeps its id")
		v, ok, err := kv.Get(ctx, "mode")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "dark", v)
	})

	t.Run("invalid id is replaced", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: storage.ClientIDCookie, Value: "../../etc"})
		rec := httptest.NewRecorder()
		_, err := scope.ForRequest(rec, r)
		require.NoError(t, err)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		require.NotEqual(t, "../../etc", cookies[0].Value)
	})

	_, err = storage.NewClientScope(nil, false)
	require.Error(t, err)
}
