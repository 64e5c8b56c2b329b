// Package router maps request paths onto the access requirement of the view
// that serves them.
package router

import (
	"fmt"
	"path"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/jrsteele09/portfolio-lab/guard"
)

// Route binds a glob pattern to an access requirement.
type Route struct {
	Pattern string
	Access  guard.Requirement
}

// Table is an ordered route table; the first matching pattern wins.
type Table struct {
	routes []Route
}

func NewTable(routes ...Route) (*Table, error) {
	for _, r := range routes {
		if !doublestar.ValidatePattern(r.Pattern) {
			return nil, fmt.Errorf("[Router NewTable] invalid pattern %q", r.Pattern)
		}
		if len(r.Pattern) == 0 || r.Pattern[0] != '/' {
			return nil, fmt.Errorf("[Router NewTable] pattern %q must be absolute", r.Pattern)
		}
	}
	return &Table{routes: append([]Route(nil), routes...)}, nil
}

// DefaultRoutes is the site's view table.
func DefaultRoutes() []Route {
	return []Route{
		{Pattern: "/", Access: guard.Public},
		{Pattern: "/portfolio", Access: guard.Public},
		{Pattern: "/reading", Access: guard.Public},
		{Pattern: "/reading/**", Access: guard.Public},
		{Pattern: "/login", Access: guard.Public},
		{Pattern: "/admin", Access: guard.Admin},
		{Pattern: "/admin/**", Access: guard.Admin},
		{Pattern: "/lab", Access: guard.Authenticated},
		{Pattern: "/lab/**", Access: guard.Authenticated},
	}
}

// DefaultTable builds the table from DefaultRoutes.
func DefaultTable() *Table {
	t, err := NewTable(DefaultRoutes()...)
	if err != nil {
		panic(err)
	}
	return t
}

// Classify returns the requirement of the first route matching p. Paths no
// route claims are public.
func (t *Table) Classify(p string) guard.Requirement {
	r, ok := t.Match(p)
	if !ok {
		return guard.Public
	}
	return r.Access
}

// Match returns the first route matching the cleaned path.
func (t *Table) Match(p string) (Route, bool) {
	if p == "" {
		p = "/"
	}
	p = path.Clean("/" + p)
	for _, r := range t.routes {
		if ok, _ := doublestar.Match(r.Pattern, p); ok {
			return r, true
		}
	}
	return Route{}, false
}

// Routes returns a copy of the table.
func (t *Table) Routes() []Route {
	return append([]Route(nil), t.routes...)
}
