package server

func (s *Server) initRoutes() {
	// PAGES
	s.RegisterRouteHandler("GET "+RouteHome+"{$}", ChainMiddleware(s.IndexHandler(), s.PageMiddleware()...))
	s.RegisterRouteHandler("GET "+RoutePortfolio, ChainMiddleware(s.PortfolioHandler(), s.PageMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteReading, ChainMiddleware(s.ReadingHandler(), s.PageMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteBlogPost, ChainMiddleware(s.BlogPostHandler(), s.PageMiddleware()...))

	// LOGIN
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageUIHandler(), s.PageMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.PageMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.PageMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.PageMiddleware()...))

	// THEME
	s.RegisterRouteHandler("POST "+RouteThemeToggle, ChainMiddleware(s.ThemeToggleHandler(), s.PageMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteTheme, ChainMiddleware(s.ThemeSetHandler(), s.PageMiddleware()...))

	// ADMIN
	s.RegisterRouteHandler("GET "+RouteAdmin, ChainMiddleware(s.AdminDashboardHandler(), s.PageMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAdminSection, ChainMiddleware(s.AdminDashboardHandler(), s.PageMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAdminPosts, ChainMiddleware(s.AdminCreatePostHandler(), s.PageMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAdminPost, ChainMiddleware(s.AdminUpdatePostHandler(), s.PageMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAdminPostDelete, ChainMiddleware(s.AdminDeletePostHandler(), s.PageMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAdminTopics, ChainMiddleware(s.AdminCreateTopicHandler(), s.PageMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAdminTopic, ChainMiddleware(s.AdminUpdateTopicHandler(), s.PageMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAdminTopicDelete, ChainMiddleware(s.AdminDeleteTopicHandler(), s.PageMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAdminUsers, ChainMiddleware(s.AdminCreateUserHandler(), s.PageMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAdminUser, ChainMiddleware(s.AdminUpdateUserHandler(), s.PageMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAdminUserDelete, ChainMiddleware(s.AdminDeleteUserHandler(), s.PageMiddleware()...))

	// AUTOMATION LAB
	s.RegisterRouteHandler("GET "+RouteLab, ChainMiddleware(s.LabHomeHandler(), s.PageMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteLabWeb, ChainMiddleware(s.LabPlaygroundHandler("lab_web.html", "Web Playground"), s.PageMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteLabAPI, ChainMiddleware(s.LabPlaygroundHandler("lab_api.html", "API Playground"), s.PageMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteLabDB, ChainMiddleware(s.LabPlaygroundHandler("lab_db.html", "Database Playground"), s.PageMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteLabProject, ChainMiddleware(s.LabProjectHandler(), s.PageMiddleware()...))

	// AUTOMATION LAB JSON
	s.RegisterRouteHandler("GET "+RouteLabAPIProducts, ChainMiddleware(s.ProductsHandler(), s.LabAPIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteLabAPIProduct, ChainMiddleware(s.ProductHandler(), s.LabAPIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteLabAPICategory, ChainMiddleware(s.ProductsHandler(), s.LabAPIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteLabAPIOrders, ChainMiddleware(s.ListOrdersHandler(), s.LabAPIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteLabAPIOrders, ChainMiddleware(s.CreateOrderHandler(), s.LabAPIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteLabAPIUsers, ChainMiddleware(s.LabUsersHandler(), s.LabAPIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteLabAPIUser, ChainMiddleware(s.LabUserHandler(), s.LabAPIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteLabAPISlow, ChainMiddleware(s.SlowHandler(), s.LabAPIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteLabAPIError, ChainMiddleware(s.ErrorHandler(), s.LabAPIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteLabAPINotFound, ChainMiddleware(s.SpecialNotFoundHandler(), s.LabAPIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteLabAPISecure, ChainMiddleware(s.SecureHandler(), s.LabAPIMiddleware()...))
	s.RegisterRouteHandler("OPTIONS "+RouteLabAPIAll, ChainMiddleware(s.PreflightHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteLabDBQuery, ChainMiddleware(s.DBQueryHandler(), s.LabAPIMiddleware()...))

	// CREDENTIAL-CHECK BACKEND
	s.RegisterRouteHandler("POST "+RouteToken, ChainMiddleware(s.TokenHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteTokenRevoke, ChainMiddleware(s.RevokeHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteUsersMe, ChainMiddleware(s.UserInfoHandler(), s.APIMiddleware(s.RequireBearerToken)...))

	// OPS
	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())
	s.RegisterRouteHandler("GET "+RouteMetrics, s.metrics.Handler())

	s.RegisterRouteHandler("GET "+RouteStatic, ChainMiddleware(s.serveFileHandler(), s.StaticMiddleware()...))
	s.RegisterRouteHandler("/", ChainMiddleware(s.NotFoundHandler(), s.PageMiddleware()...))
}
