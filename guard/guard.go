// Package guard decides whether a request may enter a view.
package guard

import (
	"net/url"
	"strings"

	"github.com/jrsteele09/portfolio-lab/sessions"
)

const (
	LoginPath          = "/login"
	HomePath           = "/"
	AdminLandingPath   = "/admin"
	DefaultLandingPath = "/lab"

	// ReturnToParam carries the originally requested path to the login view.
	ReturnToParam = "from"
)

// Requirement is the access level a view demands.
type Requirement int

const (
	Public Requirement = iota
	Authenticated
	Admin
)

func (r Requirement) String() string {
	switch r {
	case Authenticated:
		return "authenticated"
	case Admin:
		return "admin"
	default:
		return "public"
	}
}

// Authorizer is the view of the auth state the guard needs.
type Authorizer interface {
	Ready() bool
	IsAuthenticated() bool
	IsAdmin() bool
}

type Action int

const (
	Allow Action = iota
	// Pending means the auth state is still loading; show a loading view.
	Pending
	Redirect
)

// Reason labels a decision for logs and metrics.
type Reason string

const (
	ReasonPublic          Reason = "public"
	ReasonAllowed         Reason = "allowed"
	ReasonLoading         Reason = "loading"
	ReasonUnauthenticated Reason = "unauthenticated"
	ReasonForbidden       Reason = "forbidden"
)

// Decision is the guard's instruction for one navigation.
type Decision struct {
	Action   Action
	To       string
	ReturnTo string
	Reason   Reason
}

// Location is the full redirect target, including the return destination.
func (d Decision) Location() string {
	if d.ReturnTo == "" {
		return d.To
	}
	return d.To + "?" + url.Values{ReturnToParam: {d.ReturnTo}}.Encode()
}

// Evaluate decides whether requestedPath may be shown.
func Evaluate(req Requirement, a Authorizer, requestedPath string) Decision {
	if req == Public {
		return Decision{Action: Allow, Reason: ReasonPublic}
	}
	if !a.Ready() {
		return Decision{Action: Pending, Reason: ReasonLoading}
	}
	if !a.IsAuthenticated() {
		return Decision{
			Action:   Redirect,
			To:       LoginPath,
			ReturnTo: SanitizeReturnTo(requestedPath),
			Reason:   ReasonUnauthenticated,
		}
	}
	if req == Admin && !a.IsAdmin() {
		return Decision{Action: Redirect, To: HomePath, Reason: ReasonForbidden}
	}
	return Decision{Action: Allow, Reason: ReasonAllowed}
}

// LoginDestination is where a successful login goes next.
func LoginDestination(role sessions.Role, returnTo string) string {
	if role == sessions.RoleAdmin {
		return AdminLandingPath
	}
	if dest := SanitizeReturnTo(returnTo); dest != "" && dest != HomePath {
		return dest
	}
	return DefaultLandingPath
}

// SanitizeReturnTo keeps only local absolute paths. It returns "" for
// anything that could leave the site or loop back to the login view.
func SanitizeReturnTo(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") {
		return ""
	}
	if strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, `/\`) {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" || u.User != nil {
		return ""
	}
	if u.Path == LoginPath {
		return ""
	}
	return raw
}
