package stubapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/teslo-shop/storefront-go/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// Config carries the stub backend settings.
type Config struct {
	JWTSecret string
	// TokenTTL bounds minted tokens; defaults to 24h.
	TokenTTL time.Duration
}

// Server is the in-memory eShop backend: an Echo instance plus the state
// behind it, exposed so tests and the dev binary can seed fixtures.
type Server struct {
	Echo  *echo.Echo
	store *store
}

// New builds the stub backend with all routes registered.
func New(cfg Config) *Server {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	st := newStore()

	e := echo.New()
	e.HideBanner = true
	e.Validator = newValidator()
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())

	authn := auth(cfg.JWTSecret)
	adminOnly := requireRole(domain.RoleAdmin)

	ah := &authHandler{store: st, jwtSecret: cfg.JWTSecret, tokenTTL: ttl}
	e.POST("/auth/register", ah.register)
	e.POST("/auth/login", ah.login)
	e.GET("/auth/check-status", ah.checkStatus, authn)

	ph := &productHandler{store: st}
	e.GET("/products", ph.list)
	e.GET("/products/:idSlug", ph.get)
	e.POST("/products", ph.create, authn, adminOnly)
	e.PATCH("/products/:id", ph.update, authn, adminOnly)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return &Server{Echo: e, store: st}
}

// SeedUser registers an account directly into the store.
func (s *Server) SeedUser(fullName, email, password string, roles ...string) (*domain.User, error) {
	if len(roles) == 0 {
		roles = []string{"user"}
	}
	return s.store.addUser(fullName, email, password, roles)
}

// SeedProduct inserts a product directly into the store and returns it with
// its assigned id.
func (s *Server) SeedProduct(p domain.Product) *domain.Product {
	if p.Sizes == nil {
		p.Sizes = []domain.Size{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	return s.store.addProduct(p)
}
