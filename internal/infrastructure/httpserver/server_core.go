package httpserver

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/lumenedu/studyhub/internal/core/ports"
	customMiddleware "github.com/lumenedu/studyhub/internal/infrastructure/httpserver/middleware"
)

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	TLSCertFile  string
	TLSKeyFile   string
	// Session cookie settings. The cookie only ever carries the opaque
	// session id.
	CookieName   string
	CookieTTL    time.Duration
	CookieSecure bool
}

type ServerDeps struct {
	AuthService    ports.AuthService
	UserService    ports.UserService
	SessionManager ports.SessionManager
	HealthCheckers []ports.HealthChecker
}

type Server struct {
	echo           *echo.Echo
	config         *ServerConfig
	logger         *logrus.Logger
	authSvc        ports.AuthService
	userService    ports.UserService
	sessionManager ports.SessionManager
	middleware     *customMiddleware.MiddlewareCollection
	healthCheckers []ports.HealthChecker
}

func NewServer(serverConfig *ServerConfig, logger *logrus.Logger, deps ServerDeps) *Server {
	e := echo.New()

	server := &Server{
		echo:           e,
		config:         serverConfig,
		logger:         logger,
		authSvc:        deps.AuthService,
		userService:    deps.UserService,
		sessionManager: deps.SessionManager,
		healthCheckers: deps.HealthCheckers,
		middleware: customMiddleware.NewMiddlewareCollection(
			deps.SessionManager,
			deps.UserService,
			logger,
			serverConfig.CookieName,
			GetRequestsTotal(),
			GetRequestDuration(),
		),
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}
