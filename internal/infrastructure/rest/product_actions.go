package rest

import (
	"context"
	"net/http"
	"strconv"

	"github.com/spf13/cast"

	"github.com/teslo-shop/storefront-go/internal/core/domain"
	"github.com/teslo-shop/storefront-go/internal/core/ports"
)

// productWriteRequest is the exact wire payload for product writes. It
// carries only the editable fields: no id, no owning user, no image files.
type productWriteRequest struct {
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Slug        string   `json:"slug"`
	Gender      string   `json:"gender"`
	Description string   `json:"description"`
	Sizes       []string `json:"sizes"`
	Tags        []string `json:"tags"`
}

// GetProduct fetches one product by id or slug. The draft sentinel never
// reaches the network: it resolves to an empty draft so the admin form can
// open a "new product" screen offline.
func (c *Client) GetProduct(ctx context.Context, idSlug string) (*domain.Product, error) {
	if idSlug == domain.DraftProductID {
		return domain.NewDraftProduct(), nil
	}

	var out domain.Product
	req := c.http.R().SetContext(ctx).SetResult(&out)

	if _, err := c.send("get_product", req, http.MethodGet, "/products/"+idSlug); err != nil {
		return nil, err
	}

	out.Images = c.absoluteImages(out.Images)
	return &out, nil
}

// ListProducts fetches one page of the catalog, optionally filtered by
// gender.
func (c *Client) ListProducts(ctx context.Context, in ports.ListProductsInput) (*ports.ProductsPage, error) {
	var out ports.ProductsPage
	req := c.http.R().SetContext(ctx).SetResult(&out)

	if in.Limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(in.Limit))
	}
	if in.Offset > 0 {
		req.SetQueryParam("offset", strconv.Itoa(in.Offset))
	}
	if in.Gender != "" {
		req.SetQueryParam("gender", string(in.Gender))
	}

	if _, err := c.send("list_products", req, http.MethodGet, "/products"); err != nil {
		return nil, err
	}

	for i := range out.Products {
		out.Products[i].Images = c.absoluteImages(out.Products[i].Images)
	}
	return &out, nil
}

// CreateUpdateProduct commits a product draft. The id sentinel selects the
// verb and path: "new" issues POST /products, anything else issues
// PATCH /products/:id. Price and stock are coerced here — junk or empty
// input becomes 0, never NaN or a missing key.
func (c *Client) CreateUpdateProduct(ctx context.Context, in ports.WriteProductInput) (*domain.Product, error) {
	body := productWriteRequest{
		Title:       in.Title,
		Price:       cast.ToFloat64(in.Price),
		Stock:       cast.ToInt(in.Stock),
		Slug:        in.Slug,
		Gender:      string(in.Gender),
		Description: in.Description,
		Sizes:       make([]string, 0, len(in.Sizes)),
		Tags:        make([]string, 0, len(in.Tags)),
	}
	for _, s := range in.Sizes {
		body.Sizes = append(body.Sizes, string(s))
	}
	body.Tags = append(body.Tags, in.Tags...)

	var out domain.Product
	req := c.http.R().SetContext(ctx).SetBody(body).SetResult(&out)

	var err error
	if in.IsCreating() {
		_, err = c.send("create_product", req, http.MethodPost, "/products")
	} else {
		_, err = c.send("update_product", req, http.MethodPatch, "/products/"+in.ID)
	}
	if err != nil {
		return nil, err
	}

	out.Images = c.absoluteImages(out.Images)
	return &out, nil
}
