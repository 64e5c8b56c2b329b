package guard_test

import (
	"testing"

	"github.com/jrsteele09/portfolio-lab/guard"
	"github.com/jrsteele09/portfolio-lab/sessions"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	ready, authenticated, admin bool
}

func (f fakeAuth) Ready() bool           { return f.ready }
func (f fakeAuth) IsAuthenticated() bool { return f.authenticated }
func (f fakeAuth) IsAdmin() bool         { return f.admin }

var (
	loading   = fakeAuth{}
	anonymous = fakeAuth{ready: true}
	practice  = fakeAuth{ready: true, authenticated: true}
	admin     = fakeAuth{ready: true, authenticated: true, admin: true}
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		req  guard.Requirement
		auth fakeAuth
		path string
		want guard.Decision
	}{
		{
			name: "public always allowed",
			req:  guard.Public, auth: loading, path: "/",
			want: guard.Decision{Action: guard.Allow, Reason: guard.ReasonPublic},
		},
		{
			name: "loading is pending",
			req:  guard.Authenticated, auth: loading, path: "/lab",
			want: guard.Decision{Action: guard.Pending, Reason: guard.ReasonLoading},
		},
		{
			name: "anonymous to lab goes to login",
			req:  guard.Authenticated, auth: anonymous, path: "/lab/db",
			want: guard.Decision{Action: guard.Redirect, To: "/login", ReturnTo: "/lab/db", Reason: guard.ReasonUnauthenticated},
		},
		{
			name: "anonymous to admin goes to login",
			req:  guard.Admin, auth: anonymous, path: "/admin/users",
			want: guard.Decision{Action: guard.Redirect, To: "/login", ReturnTo: "/admin/users", Reason: guard.ReasonUnauthenticated},
		},
		{
			name: "practice on admin goes home",
			req:  guard.Admin, auth: practice, path: "/admin",
			want: guard.Decision{Action: guard.Redirect, To: "/", Reason: guard.ReasonForbidden},
		},
		{
			name: "practice in lab",
			req:  guard.Authenticated, auth: practice, path: "/lab/web",
			want: guard.Decision{Action: guard.Allow, Reason: guard.ReasonAllowed},
		},
		{
			name: "admin in lab",
			req:  guard.Authenticated, auth: admin, path: "/lab",
			want: guard.Decision{Action: guard.Allow, Reason: guard.ReasonAllowed},
		},
		{
			name: "admin on admin",
			req:  guard.Admin, auth: admin, path: "/admin",
			want: guard.Decision{Action: guard.Allow, Reason: guard.ReasonAllowed},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, guard.Evaluate(tt.req, tt.auth, tt.path))
		})
	}
}

func TestDecisionLocation(t *testing.T) {
	d := guard.Evaluate(guard.Authenticated, anonymous, "/lab/db?tab=2")
	require.Equal(t, "/login?from=%2Flab%2Fdb%3Ftab%3D2", d.Location())

	d = guard.Evaluate(guard.Admin, practice, "/admin")
	require.Equal(t, "/", d.Location())
}

func TestLoginDestination(t *testing.T) {
	tests := []struct {
		role     sessions.Role
		returnTo string
		want     string
	}{
		{role: sessions.RoleAdmin, returnTo: "/lab/db", want: "/admin"},
		{role: sessions.RoleAdmin, want: "/admin"},
		{role: sessions.RolePractice, returnTo: "/lab/db", want: "/lab/db"},
		{role: sessions.RolePractice, returnTo: "/", want: "/lab"},
		{role: sessions.RolePractice, want: "/lab"},
		{role: sessions.RolePractice, returnTo: "https://evil.example", want: "/lab"},
		{role: sessions.RolePractice, returnTo: "//evil.example/lab", want: "/lab"},
		{role: sessions.RolePractice, returnTo: "/login", want: "/lab"},
	}
	for _, tt := range tests {
		t.Run(string(tt.role)+" "+tt.returnTo, func(t *testing.T) {
			require.Equal(t, tt.want, guard.LoginDestination(tt.role, tt.returnTo))
		})
	}
}

func TestSanitizeReturnTo(t *testing.T) {
	require.Equal(t, "/reading/1/2", guard.SanitizeReturnTo("/reading/1/2"))
	require.Equal(t, "/lab?x=1", guard.SanitizeReturnTo("/lab?x=1"))
	for _, bad := range []string{"", "lab", "//x", `/\x`, "http://x/lab", "javascript:alert(1)", "/login?from=/lab"} {
		require.Empty(t, guard.SanitizeReturnTo(bad), bad)
	}
}
