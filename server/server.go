package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/portfolio-lab/auth"
	"github.com/jrsteele09/portfolio-lab/content"
	"github.com/jrsteele09/portfolio-lab/internal/config"
	"github.com/jrsteele09/portfolio-lab/internal/metrics"
	"github.com/jrsteele09/portfolio-lab/lab"
	"github.com/jrsteele09/portfolio-lab/router"
	"github.com/jrsteele09/portfolio-lab/storage"
	"github.com/jrsteele09/portfolio-lab/token"
	"github.com/jrsteele09/portfolio-lab/token/jwt"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env        string
	mux        *http.ServeMux
	routes     []string
	config     config.Config
	nowTime    func() time.Time
	scope      storage.RequestScoped
	checker    auth.Checker
	accounts   *auth.LocalTable
	viewRoutes *router.Table
	metrics    *metrics.Metrics
	limiter    *loginLimiter // login form
	tokenLimit *loginLimiter // credential-check endpoint
	pending    *inFlight
	library    *content.Library
	catalog    *lab.Catalog
	orders     *lab.OrderBook
	tokens     *jwt.Creator
	inspector  *jwt.Inspector
	revoked    token.RevokedTokenCache
	slowDelay  time.Duration
}

// Option defines a function type to modify the Server instance.
type Option func(*Server)

// WithNowTime sets the clock used for tokens, orders and rate limiting.
func WithNowTime(nowFunc func() time.Time) Option {
	return func(s *Server) {
		s.nowTime = nowFunc
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithViewRoutes replaces the default path to access requirement table.
func WithViewRoutes(t *router.Table) Option {
	return func(s *Server) {
		s.viewRoutes = t
	}
}

// WithAccounts sets the accounts the /token endpoint checks against.
func WithAccounts(t *auth.LocalTable) Option {
	return func(s *Server) {
		s.accounts = t
	}
}

// WithSlowDelay overrides how long the API playground's slow endpoint waits.
func WithSlowDelay(d time.Duration) Option {
	return func(s *Server) {
		s.slowDelay = d
	}
}

// New builds the site. scope decides where each client's session and theme
// live; checker verifies login credentials.
func New(cfg config.Config, scope storage.RequestScoped, checker auth.Checker, opts ...Option) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("[Server New] config is required")
	}
	if scope == nil {
		return nil, errors.New("[Server New] client storage is required")
	}
	if checker == nil {
		return nil, errors.New("[Server New] credential checker is required")
	}

	s := &Server{
		env:        cfg.GetEnv(),
		mux:        http.NewServeMux(),
		config:     cfg,
		nowTime:    time.Now,
		scope:      scope,
		checker:    checker,
		viewRoutes: router.DefaultTable(),
		catalog:    lab.NewCatalog(),
		slowDelay:  lab.SlowDelay,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.library = content.NewLibrary(content.WithNowTime(s.nowTime))
	if s.metrics == nil {
		s.metrics = metrics.New()
	}
	if table, ok := checker.(*auth.LocalTable); ok && s.accounts == nil {
		s.accounts = table
	}
	if s.accounts == nil {
		accounts, err := auth.NewLocalTable(auth.DemoAccounts()...)
		if err != nil {
			return nil, fmt.Errorf("[Server New] demo accounts: %w", err)
		}
		s.accounts = accounts
	}

	attempts, window := cfg.GetLoginRateLimit()
	s.limiter = newLoginLimiter(attempts, window, s.nowTime)
	s.tokenLimit = newLoginLimiter(attempts, window, s.nowTime)
	s.pending = newInFlight()

	orders, err := lab.NewOrderBook(s.catalog, s.nowTime)
	if err != nil {
		return nil, fmt.Errorf("[Server New] order book: %w", err)
	}
	s.orders = orders

	signer, err := token.NewHMACSigner(cfg.GetTokenSecret())
	if err != nil {
		return nil, fmt.Errorf("[Server New] token signer: %w", err)
	}
	s.tokens, err = jwt.NewCreator(signer, cfg.GetTokenIssuer(), cfg.GetTokenExpiry(), jwt.WithNowTime(s.nowTime))
	if err != nil {
		return nil, fmt.Errorf("[Server New] token creator: %w", err)
	}
	s.revoked = token.NewInMemoryRevokedTokenCache(s.nowTime)
	s.inspector = jwt.NewInspector(signer, cfg.GetTokenIssuer(), s.revoked, s.nowTime)

	if err := parsePageTemplates(); err != nil {
		return nil, fmt.Errorf("[Server New] templates: %w", err)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.metrics.InstrumentHandler(s.mux).ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// Routes lists the registered mux patterns in registration order.
func (s *Server) Routes() []string {
	return append([]string(nil), s.routes...)
}

func (s *Server) logRoutes() {
	if s.env != config.DevEnv {
		return
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	log.Info().Msgf("[%-19s] %s", colourMethod(method), path)
}

// getScheme determines the scheme (http/https) the client used.
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
