package server

import "github.com/jrsteele09/portfolio-lab/guard"

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Pages
	RouteHome      = guard.HomePath
	RoutePortfolio = "/portfolio"
	RouteReading   = "/reading"
	RouteBlogPost  = "/reading/{topic}/{post}"

	// Auth Routes - Login & Logout
	RouteLogin      = guard.LoginPath
	RouteAuthLogin  = "/auth/login"
	RouteAuthLogout = "/auth/logout"

	// Theme
	RouteTheme       = "/theme"
	RouteThemeToggle = "/theme/toggle"

	// Admin Routes
	RouteAdmin        = guard.AdminLandingPath
	RouteAdminSection = "/admin/{section}"

	// Admin content management (POST)
	RouteAdminPosts       = "/admin/posts"
	RouteAdminPost        = "/admin/posts/{id}"
	RouteAdminPostDelete  = "/admin/posts/{id}/delete"
	RouteAdminTopics      = "/admin/topics"
	RouteAdminTopic       = "/admin/topics/{id}"
	RouteAdminTopicDelete = "/admin/topics/{id}/delete"
	RouteAdminUsers       = "/admin/users"
	RouteAdminUser        = "/admin/users/{email}"
	RouteAdminUserDelete  = "/admin/users/{email}/delete"

	// Automation Lab
	RouteLab        = guard.DefaultLandingPath
	RouteLabWeb     = "/lab/web"
	RouteLabAPI     = "/lab/api"
	RouteLabDB      = "/lab/db"
	RouteLabProject = "/lab/project"

	// Automation Lab JSON endpoints
	RouteLabAPIProducts = "/lab/api/products"
	RouteLabAPIProduct  = "/lab/api/products/{id}"
	RouteLabAPIOrders   = "/lab/api/orders"
	RouteLabAPIUsers    = "/lab/api/users"
	RouteLabAPIUser     = "/lab/api/users/{id}"
	RouteLabAPICategory = "/lab/api/products/category/{category}"
	RouteLabAPISlow     = "/lab/api/special/slow"
	RouteLabAPIError    = "/lab/api/special/error"
	RouteLabAPINotFound = "/lab/api/special/not-found"
	RouteLabAPISecure   = "/lab/api/special/secure"
	RouteLabAPIAll      = "/lab/api/{path...}"
	RouteLabDBQuery     = "/lab/db/query"

	// Credential-check backend
	RouteToken       = "/token"
	RouteTokenRevoke = "/token/revoke"
	RouteUsersMe     = "/users/me"

	// Ops
	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"

	// Static Asset Routes (patterns)
	RouteStatic = "/static/{file...}"
)
