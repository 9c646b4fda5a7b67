package service

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/teslo-shop/storefront-go/internal/core/domain"
	"github.com/teslo-shop/storefront-go/internal/core/ports"
	"github.com/teslo-shop/storefront-go/internal/infrastructure/querycache"
)

// Cache key operation names. Listing keys share the "products" prefix so a
// single write invalidates every page and gender filter at once.
const (
	opProduct  = "product"
	opProducts = "products"
)

// Catalog is the cached read/write surface over the product actions: reads
// go through the query cache, writes invalidate the related entries and
// seed the fresh detail so the follow-up read skips the network.
type Catalog struct {
	api   ports.ProductAPI
	cache *querycache.Cache
	log   zerolog.Logger
}

func NewCatalog(api ports.ProductAPI, cache *querycache.Cache, log zerolog.Logger) *Catalog {
	return &Catalog{api: api, cache: cache, log: log}
}

// GetProduct returns the product for an id or slug, cached per lookup key.
func (c *Catalog) GetProduct(ctx context.Context, idSlug string) (*domain.Product, error) {
	key := querycache.Key(opProduct, idSlug)
	return querycache.GetTyped(ctx, c.cache, key, func(ctx context.Context) (*domain.Product, error) {
		return c.api.GetProduct(ctx, idSlug)
	})
}

// ListProducts returns one catalog page, cached per filter/page tuple.
func (c *Catalog) ListProducts(ctx context.Context, in ports.ListProductsInput) (*ports.ProductsPage, error) {
	key := querycache.Key(opProducts,
		string(in.Gender),
		"limit="+strconv.Itoa(in.Limit),
		"offset="+strconv.Itoa(in.Offset),
	)
	return querycache.GetTyped(ctx, c.cache, key, func(ctx context.Context) (*ports.ProductsPage, error) {
		return c.api.ListProducts(ctx, in)
	})
}

// SaveProduct commits a draft or an edit. On success every listing entry
// and the product's own detail entry are invalidated, then the detail entry
// is seeded with the fresh value so the next read is served from memory.
func (c *Catalog) SaveProduct(ctx context.Context, in ports.WriteProductInput) (*domain.Product, error) {
	product, err := c.api.CreateUpdateProduct(ctx, in)
	if err != nil {
		return nil, err
	}

	c.cache.Invalidate(opProducts)
	c.cache.Invalidate(querycache.Key(opProduct, product.ID))
	c.cache.Seed(querycache.Key(opProduct, product.ID), product)

	c.log.Info().
		Str("id", product.ID).
		Str("slug", product.Slug).
		Bool("created", in.IsCreating()).
		Msg("product saved")

	return product, nil
}
