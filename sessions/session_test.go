package sessions_test

import (
	"context"
	"testing"

	"github.com/jrsteele09/portfolio-lab/sessions"
	"github.com/jrsteele09/portfolio-lab/storage"
	"github.com/jrsteele09/portfolio-lab/storage/storagefakes"
	"github.com/stretchr/testify/require"
)

var adminSession = sessions.Session{Token: "mock-admin-token", Role: sessions.RoleAdmin}

func newStore(t *testing.T, kv storage.KV) *sessions.Store {
	t.Helper()
	s, err := sessions.NewStore(kv)
	require.NoError(t, err)
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	store := newStore(t, kv)

	require.True(t, store.Load(ctx).IsZero())

	require.NoError(t, store.Save(ctx, adminSession))
	require.Equal(t, map[string]string{"token": "mock-admin-token", "role": "admin"}, kv.Snapshot())

	// a fresh store over the same kv sees the same session
	require.Equal(t, adminSession, newStore(t, kv).Load(ctx))

	require.NoError(t, store.Save(ctx, sessions.Session{}))
	require.Empty(t, kv.Snapshot(), "empty session leaves no placeholders")
}

func TestStoreLoadEdgeCases(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		values map[string]string
		want   sessions.Session
	}{
		{name: "stray role without token", values: map[string]string{"role": "admin"}},
		{name: "token without role", values: map[string]string{"token": "t"}},
		{name: "unknown role", values: map[string]string{"token": "t", "role": "superuser"}},
		{name: "empty token", values: map[string]string{"token": "", "role": "admin"}},
		{
			name:   "practice session",
			values: map[string]string{"token": "mock-practice-token", "role": "practice"},
			want:   sessions.Session{Token: "mock-practice-token", Role: sessions.RolePractice},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := storage.NewMemory()
			for k, v := range tt.values {
				require.NoError(t, kv.Set(ctx, k, v))
			}
			require.Equal(t, tt.want, newStore(t, kv).Load(ctx))
		})
	}
}

func TestStoreFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("read failure yields empty session", func(t *testing.T) {
		kv := storagefakes.NewFailingKV()
		require.NoError(t, kv.Memory.Set(ctx, "token", "t"))
		require.NoError(t, kv.Memory.Set(ctx, "role", "admin"))
		kv.FailGet = true
		require.True(t, newStore(t, kv).Load(ctx).IsZero())
	})

	t.Run("partial write is rolled back", func(t *testing.T) {
		kv := storagefakes.NewFailingKV()
		kv.FailSetKey = sessions.RoleKey
		err := newStore(t, kv).Save(ctx, adminSession)
		require.ErrorIs(t, err, storage.ErrUnavailable)
		require.Empty(t, kv.Snapshot())
	})

	t.Run("half formed session is rejected", func(t *testing.T) {
		kv := storage.NewMemory()
		err := newStore(t, kv).Save(ctx, sessions.Session{Token: "t"})
		require.ErrorIs(t, err, sessions.ErrInvalidSession)
		require.Empty(t, kv.Snapshot())
	})

	t.Run("clear reports delete failures", func(t *testing.T) {
		kv := storagefakes.NewFailingKV()
		kv.FailDelete = true
		require.ErrorIs(t, newStore(t, kv).Clear(ctx), storage.ErrUnavailable)
		require.Equal(t, []string{"delete:token", "delete:role"}, kv.Calls())
	})

	_, err := sessions.NewStore(nil)
	require.Error(t, err)
}

func TestParseRole(t *testing.T) {
	r, ok := sessions.ParseRole("admin")
	require.True(t, ok)
	require.Equal(t, sessions.RoleAdmin, r)

	_, ok = sessions.ParseRole("Admin")
	require.False(t, ok)
	_, ok = sessions.ParseRole("")
	require.False(t, ok)
}
