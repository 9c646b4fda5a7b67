// eshop-stubd runs the in-memory eShop backend used for local development:
// the same surface the storefront client targets, seeded with an admin
// account and a small catalog.
package main

import (
	"context"
	"fmt"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/sethvargo/go-envconfig"

	"github.com/teslo-shop/storefront-go/internal/core/domain"
	"github.com/teslo-shop/storefront-go/internal/stubapi"
	"github.com/teslo-shop/storefront-go/pkg/logger"
)

type config struct {
	Port      string `env:"PORT,       default=3000"`
	JWTSecret string `env:"JWT_SECRET, default=dev-only-secret"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`

	AdminEmail    string `env:"ADMIN_EMAIL,    default=admin@eshop.local"`
	AdminPassword string `env:"ADMIN_PASSWORD, default=admin123"`
}

func main() {
	ctx := context.Background()

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	srv := stubapi.New(stubapi.Config{JWTSecret: cfg.JWTSecret})
	seed(srv, cfg)

	srv.Echo.Use(echoprometheus.NewMiddleware("eshop_stub"))
	srv.Echo.GET("/metrics", echoprometheus.NewHandler())

	log.Info().Str("port", cfg.Port).Str("admin", cfg.AdminEmail).Msg("stub backend listening")
	if err := srv.Echo.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func seed(srv *stubapi.Server, cfg config) {
	if _, err := srv.SeedUser("Store Admin", cfg.AdminEmail, cfg.AdminPassword, domain.RoleAdmin, "user"); err != nil {
		panic(err)
	}

	srv.SeedProduct(domain.Product{
		Title:       "Classic Tee",
		Price:       25,
		Stock:       40,
		Slug:        "classic_tee",
		Gender:      domain.GenderUnisex,
		Description: "A plain cotton tee.",
		Sizes:       []domain.Size{"S", "M", "L"},
		Tags:        []string{"shirt", "cotton"},
		Images:      []string{"classic_tee_1.jpg"},
	})
	srv.SeedProduct(domain.Product{
		Title:       "Trail Cap",
		Price:       18,
		Stock:       12,
		Slug:        "trail_cap",
		Gender:      domain.GenderMen,
		Description: "Lightweight cap for sunny days.",
		Sizes:       []domain.Size{"M", "L"},
		Tags:        []string{"cap"},
		Images:      []string{"trail_cap_1.jpg"},
	})
}
