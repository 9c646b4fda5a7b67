package ports

import (
	"context"

	"github.com/teslo-shop/storefront-go/internal/core/domain"
)

// ListProductsInput carries the catalog listing parameters. Gender is
// optional; Limit and Offset page through the collection.
type ListProductsInput struct {
	Gender domain.Gender
	Limit  int
	Offset int
}

// ProductsPage is one page of the catalog listing.
type ProductsPage struct {
	Count    int              `json:"count"`
	Pages    int              `json:"pages"`
	Products []domain.Product `json:"products"`
}

// WriteProductInput is the editable portion of a product as entered in the
// admin form. Price and Stock stay raw strings here: coercing them to
// numbers (junk input becomes 0) is the write action's job, the same place
// that decides create-vs-update from the ID sentinel.
//
// The write payload built from this input never carries the id, the owning
// user, or image files.
type WriteProductInput struct {
	ID          string
	Title       string
	Price       string
	Stock       string
	Slug        string
	Gender      domain.Gender
	Description string
	Sizes       []domain.Size
	Tags        []string
}

// IsCreating reports whether this input commits a new draft.
func (in WriteProductInput) IsCreating() bool {
	return in.ID == domain.DraftProductID
}

// ProductAPI groups the catalog action functions.
type ProductAPI interface {
	// GetProduct fetches one product by id or slug.
	GetProduct(ctx context.Context, idSlug string) (*domain.Product, error)
	// ListProducts fetches one page of the catalog.
	ListProducts(ctx context.Context, in ListProductsInput) (*ProductsPage, error)
	// CreateUpdateProduct creates the product when in.ID is the draft
	// sentinel, otherwise patches the record addressed by in.ID.
	CreateUpdateProduct(ctx context.Context, in WriteProductInput) (*domain.Product, error)
}
