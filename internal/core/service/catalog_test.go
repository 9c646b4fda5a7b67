package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/teslo-shop/storefront-go/internal/core/domain"
	"github.com/teslo-shop/storefront-go/internal/core/ports"
	"github.com/teslo-shop/storefront-go/internal/infrastructure/querycache"
)

type stubProductAPI struct {
	getCalls    int
	listCalls   int
	writeCalls  int
	lastWrite   ports.WriteProductInput
	getFn       func(idSlug string) (*domain.Product, error)
	writeResult *domain.Product
}

func (s *stubProductAPI) GetProduct(_ context.Context, idSlug string) (*domain.Product, error) {
	s.getCalls++
	if s.getFn != nil {
		return s.getFn(idSlug)
	}
	return &domain.Product{ID: idSlug, Slug: "slug-" + idSlug}, nil
}

func (s *stubProductAPI) ListProducts(_ context.Context, _ ports.ListProductsInput) (*ports.ProductsPage, error) {
	s.listCalls++
	return &ports.ProductsPage{Count: 1, Pages: 1, Products: []domain.Product{{ID: "p1"}}}, nil
}

func (s *stubProductAPI) CreateUpdateProduct(_ context.Context, in ports.WriteProductInput) (*domain.Product, error) {
	s.writeCalls++
	s.lastWrite = in
	return s.writeResult, nil
}

func newCatalogForTest(api ports.ProductAPI) *Catalog {
	cache := querycache.New(5*time.Minute, zerolog.Nop())
	return NewCatalog(api, cache, zerolog.Nop())
}

func TestCatalog_GetProduct_Cached(t *testing.T) {
	api := &stubProductAPI{}
	catalog := newCatalogForTest(api)

	first, err := catalog.GetProduct(context.Background(), "42")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	second, err := catalog.GetProduct(context.Background(), "42")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if api.getCalls != 1 {
		t.Fatalf("expected one backend call, got %d", api.getCalls)
	}
	if first != second {
		t.Fatalf("expected the cached value on the second read")
	}
}

func TestCatalog_ListProducts_KeyedByFilter(t *testing.T) {
	api := &stubProductAPI{}
	catalog := newCatalogForTest(api)
	ctx := context.Background()

	_, _ = catalog.ListProducts(ctx, ports.ListProductsInput{Gender: domain.GenderMen, Limit: 10})
	_, _ = catalog.ListProducts(ctx, ports.ListProductsInput{Gender: domain.GenderMen, Limit: 10})
	_, _ = catalog.ListProducts(ctx, ports.ListProductsInput{Gender: domain.GenderWomen, Limit: 10})

	if api.listCalls != 2 {
		t.Fatalf("expected one call per distinct filter, got %d", api.listCalls)
	}
}

func TestCatalog_SaveProduct_InvalidatesAndSeeds(t *testing.T) {
	api := &stubProductAPI{
		writeResult: &domain.Product{ID: "42", Title: "Edited", Slug: "edited"},
	}
	catalog := newCatalogForTest(api)
	ctx := context.Background()

	// Warm both caches.
	if _, err := catalog.GetProduct(ctx, "42"); err != nil {
		t.Fatalf("warm detail: %v", err)
	}
	if _, err := catalog.ListProducts(ctx, ports.ListProductsInput{Limit: 10}); err != nil {
		t.Fatalf("warm list: %v", err)
	}

	saved, err := catalog.SaveProduct(ctx, ports.WriteProductInput{ID: "42", Title: "Edited"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.Title != "Edited" {
		t.Fatalf("unexpected save result: %+v", saved)
	}

	// The detail entry was seeded: the next read is served from memory.
	got, err := catalog.GetProduct(ctx, "42")
	if err != nil {
		t.Fatalf("get after save: %v", err)
	}
	if api.getCalls != 1 {
		t.Fatalf("detail read after save must not hit the backend, calls=%d", api.getCalls)
	}
	if got.Title != "Edited" {
		t.Fatalf("expected the seeded product, got %+v", got)
	}

	// The listing entry was invalidated: the next read refetches.
	if _, err := catalog.ListProducts(ctx, ports.ListProductsInput{Limit: 10}); err != nil {
		t.Fatalf("list after save: %v", err)
	}
	if api.listCalls != 2 {
		t.Fatalf("list read after save must refetch, calls=%d", api.listCalls)
	}
}

func TestCatalog_SaveProduct_PassesInputThrough(t *testing.T) {
	api := &stubProductAPI{
		writeResult: &domain.Product{ID: "new-id", Slug: "cap"},
	}
	catalog := newCatalogForTest(api)

	in := ports.WriteProductInput{
		ID:    domain.DraftProductID,
		Title: "Cap",
		Price: "10",
		Stock: "5",
		Slug:  "cap",
	}
	if _, err := catalog.SaveProduct(context.Background(), in); err != nil {
		t.Fatalf("save: %v", err)
	}

	if !api.lastWrite.IsCreating() {
		t.Fatalf("expected a create, got id %q", api.lastWrite.ID)
	}
	if api.lastWrite.Title != "Cap" || api.lastWrite.Price != "10" {
		t.Fatalf("unexpected write input: %+v", api.lastWrite)
	}
}
