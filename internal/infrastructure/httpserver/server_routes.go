package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	api := s.echo.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/register", s.register)
	auth.POST("/login", s.login)

	// Confirmation links arrive as GETs from mail clients; POST serves
	// API clients submitting the token themselves.
	auth.GET("/email-confirmation", s.confirmEmail)
	auth.POST("/email-confirmation", s.confirmEmail)

	auth.POST("/password-recovery/reset", s.requestPasswordReset)
	auth.POST("/password-recovery/new/:token", s.resetPassword)

	protected := api.Group("")
	protected.Use(s.middleware.Session.RequireSession())

	protected.POST("/auth/logout", s.logout)

	users := protected.Group("/users")
	users.GET("/me", s.getOwnProfile)
	users.PATCH("/me", s.updateOwnProfile)
}
