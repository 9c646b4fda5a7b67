package stubapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/teslo-shop/storefront-go/internal/core/domain"
)

type productHandler struct {
	store *store
}

// productWriteRequest is what the storefront client submits: editable
// fields only. The id travels in the path, the owning user comes from the
// token, and images arrive through a separate upload channel.
type productWriteRequest struct {
	Title       string   `json:"title" validate:"required"`
	Price       float64  `json:"price" validate:"gte=0"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Slug        string   `json:"slug" validate:"required,excludesall= "`
	Gender      string   `json:"gender" validate:"required,oneof=men women unisex kids"`
	Description string   `json:"description" validate:"required"`
	Sizes       []string `json:"sizes" validate:"dive,oneof=XS S M L XL XXL"`
	Tags        []string `json:"tags"`
}

type productsResponse struct {
	Count    int              `json:"count"`
	Pages    int              `json:"pages"`
	Products []domain.Product `json:"products"`
}

func (h *productHandler) list(c echo.Context) error {
	limit := 10
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	offset := 0
	if raw := c.QueryParam("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			offset = n
		}
	}
	gender := domain.Gender(c.QueryParam("gender"))
	if gender != "" && !gender.Valid() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown gender"})
	}

	total, page := h.store.listProducts(gender, limit, offset)
	pages := total / limit
	if total%limit != 0 {
		pages++
	}

	return c.JSON(http.StatusOK, productsResponse{Count: total, Pages: pages, Products: page})
}

func (h *productHandler) get(c echo.Context) error {
	product, err := h.store.findProduct(c.Param("idSlug"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "product not found"})
	}
	return c.JSON(http.StatusOK, product)
}

func (h *productHandler) create(c echo.Context) error {
	var req productWriteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if h.store.slugTaken(req.Slug, "") {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "slug already in use"})
	}

	email, _ := c.Get("email").(string)
	owner, _ := h.store.userByEmail(email)

	product := h.store.addProduct(domain.Product{
		Title:       req.Title,
		Price:       req.Price,
		Stock:       req.Stock,
		Slug:        req.Slug,
		Gender:      domain.Gender(req.Gender),
		Description: req.Description,
		Sizes:       toSizes(req.Sizes),
		Tags:        append([]string{}, req.Tags...),
		Images:      []string{},
		User:        owner,
	})

	return c.JSON(http.StatusCreated, product)
}

func (h *productHandler) update(c echo.Context) error {
	var req productWriteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	id := c.Param("id")
	if h.store.slugTaken(req.Slug, id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "slug already in use"})
	}

	product, err := h.store.updateProduct(id, func(p *domain.Product) {
		p.Title = req.Title
		p.Price = req.Price
		p.Stock = req.Stock
		p.Slug = req.Slug
		p.Gender = domain.Gender(req.Gender)
		p.Description = req.Description
		p.Sizes = toSizes(req.Sizes)
		p.Tags = append([]string{}, req.Tags...)
	})
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "product not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "update failed"})
	}

	return c.JSON(http.StatusOK, product)
}

func toSizes(raw []string) []domain.Size {
	sizes := make([]domain.Size, 0, len(raw))
	for _, s := range raw {
		sizes = append(sizes, domain.Size(s))
	}
	return sizes
}
