// Package cli wires the storefront services together and maps them onto
// eshopctl subcommands: the shop views (products, product) and the admin
// back-office (admin product), plus session management.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/teslo-shop/storefront-go/internal/core/domain"
	"github.com/teslo-shop/storefront-go/internal/core/ports"
	"github.com/teslo-shop/storefront-go/internal/core/service"
	"github.com/teslo-shop/storefront-go/internal/infrastructure/querycache"
	"github.com/teslo-shop/storefront-go/internal/infrastructure/rest"
	"github.com/teslo-shop/storefront-go/internal/infrastructure/tokenstore"
)

// ErrUsage signals a malformed invocation; main prints usage on it.
var ErrUsage = errors.New("usage error")

// App holds the wired services behind the CLI commands.
type App struct {
	cfg     *Config
	log     zerolog.Logger
	session *service.Session
	catalog *service.Catalog
	out     io.Writer
}

// NewApp builds the client stack: token store, REST client, query cache,
// session and catalog services.
func NewApp(ctx context.Context, cfg *Config, log zerolog.Logger, out io.Writer) (*App, error) {
	var tokens ports.TokenStore
	if cfg.RedisAddr != "" {
		rdb, err := tokenstore.Connect(ctx, tokenstore.RedisConfig{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		if err != nil {
			return nil, err
		}
		tokens = tokenstore.NewRedisStore(rdb)
	} else {
		tokens = tokenstore.NewFileStore(cfg.TokenPath)
	}

	client := rest.NewClient(cfg.APIURL, tokens, log)
	cache := querycache.New(querycache.DefaultStaleTime, log)

	return &App{
		cfg:     cfg,
		log:     log,
		session: service.NewSession(client, tokens, log),
		catalog: service.NewCatalog(client, cache, log),
		out:     out,
	}, nil
}

// Run dispatches one subcommand.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command", ErrUsage)
	}

	switch args[0] {
	case "login":
		return a.cmdLogin(ctx, args[1:])
	case "register":
		return a.cmdRegister(ctx, args[1:])
	case "logout":
		return a.cmdLogout(ctx)
	case "whoami":
		return a.cmdWhoami(ctx)
	case "products":
		return a.cmdProducts(ctx, args[1:])
	case "product":
		return a.cmdProduct(ctx, args[1:])
	case "admin":
		return a.cmdAdmin(ctx, args[1:])
	default:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
}

// Usage is the top-level help text.
const Usage = `eshopctl — storefront client for the eShop API

Commands:
  login    -email <e> -password <p>     sign in and persist the session
  register -name <n> -email <e> -password <p>
  logout                                drop the persisted session
  whoami                                show the current session
  products [-gender g] [-page n] [-limit n]
  product  <id|slug> [-image n]         product detail with gallery
  admin product <id|new> [field flags]  create or edit a product

Environment:
  ESHOP_API_URL (default http://localhost:3000/api), ESHOP_TOKEN_PATH,
  ESHOP_REDIS_ADDR, ESHOP_LOG_LEVEL, ESHOP_LOG_PRETTY
`

func (a *App) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(a.out)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("%w: login requires -email and -password", ErrUsage)
	}

	if !a.session.Login(ctx, *email, *password) {
		return errors.New("login failed: check your credentials")
	}

	user := a.session.User()
	fmt.Fprintf(a.out, "signed in as %s <%s>\n", user.FullName, user.Email)
	return nil
}

func (a *App) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(a.out)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	if *name == "" || *email == "" || *password == "" {
		return fmt.Errorf("%w: register requires -name, -email and -password", ErrUsage)
	}

	if !a.session.Register(ctx, *name, *email, *password) {
		return errors.New("registration failed")
	}

	user := a.session.User()
	fmt.Fprintf(a.out, "registered and signed in as %s <%s>\n", user.FullName, user.Email)
	return nil
}

func (a *App) cmdLogout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "signed out")
	return nil
}

func (a *App) cmdWhoami(ctx context.Context) error {
	if !a.session.CheckAuthStatus(ctx) {
		fmt.Fprintln(a.out, "not authenticated")
		return nil
	}
	renderUser(a.out, a.session.User(), a.session.IsAdmin())
	return nil
}

func (a *App) cmdProducts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products", flag.ContinueOnError)
	fs.SetOutput(a.out)
	gender := fs.String("gender", "", "filter by gender (men|women|unisex|kids)")
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 10, "products per page")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	if *page < 1 {
		*page = 1
	}
	g := domain.Gender(*gender)
	if g != "" && !g.Valid() {
		return fmt.Errorf("%w: unknown gender %q", ErrUsage, *gender)
	}

	result, err := a.catalog.ListProducts(ctx, ports.ListProductsInput{
		Gender: g,
		Limit:  *limit,
		Offset: (*page - 1) * *limit,
	})
	if err != nil {
		return err
	}

	renderProductsTable(a.out, result, *page)
	return nil
}

func (a *App) cmdProduct(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("product", flag.ContinueOnError)
	fs.SetOutput(a.out)
	image := fs.Int("image", 0, "gallery image to select (0-based)")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: product requires exactly one <id|slug>", ErrUsage)
	}

	product, err := a.catalog.GetProduct(ctx, fs.Arg(0))
	if err != nil || product == nil {
		// Same outcome as the storefront's redirect to the not-found page.
		return fmt.Errorf("product %q not found", fs.Arg(0))
	}

	renderProductDetail(a.out, product, *image)
	return nil
}
