package router_test

import (
	"testing"

	"github.com/jrsteele09/portfolio-lab/guard"
	"github.com/jrsteele09/portfolio-lab/router"
	"github.com/stretchr/testify/require"
)

func TestDefaultTableClassify(t *testing.T) {
	table := router.DefaultTable()

	tests := map[string]guard.Requirement{
		"/":                     guard.Public,
		"":                      guard.Public,
		"/portfolio":            guard.Public,
		"/reading":              guard.Public,
		"/reading/selenium/3":   guard.Public,
		"/login":                guard.Public,
		"/lab":                  guard.Authenticated,
		"/lab/":                 guard.Authenticated,
		"/lab/db":               guard.Authenticated,
		"/lab/api/products":     guard.Authenticated,
		"/admin":                guard.Admin,
		"/admin/users":          guard.Admin,
		"/admin/a/b/c":          guard.Admin,
		"/laboratory":           guard.Public,
		"/static/css/site.css":  guard.Public,
		"/reading/../lab/db":    guard.Authenticated,
		"//admin":               guard.Admin,
		"/administrator/panel":  guard.Public,
	}
	for p, want := range tests {
		t.Run(p, func(t *testing.T) {
			require.Equal(t, want, table.Classify(p))
		})
	}
}

func TestFirstMatchWins(t *testing.T) {
	table, err := router.NewTable(
		router.Route{Pattern: "/lab/public", Access: guard.Public},
		router.Route{Pattern: "/lab/**", Access: guard.Authenticated},
	)
	require.NoError(t, err)
	require.Equal(t, guard.Public, table.Classify("/lab/public"))
	require.Equal(t, guard.Authenticated, table.Classify("/lab/db"))

	r, ok := table.Match("/lab/db")
	require.True(t, ok)
	require.Equal(t, "/lab/**", r.Pattern)
	require.Len(t, table.Routes(), 2)
}

func TestNewTableValidation(t *testing.T) {
	_, err := router.NewTable(router.Route{Pattern: "/lab/[", Access: guard.Public})
	require.Error(t, err)

	_, err = router.NewTable(router.Route{Pattern: "lab", Access: guard.Public})
	require.Error(t, err)
}
