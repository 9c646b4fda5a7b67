package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/teslo-shop/storefront-go/internal/core/domain"
)

func galleryMarked(out, image string) bool {
	return strings.Contains(out, " * "+image)
}

func TestRenderProductDetail_GallerySelection(t *testing.T) {
	p := &domain.Product{
		ID:          "prod_1",
		Title:       "Cap",
		Price:       10,
		Stock:       3,
		Gender:      domain.GenderMen,
		Description: "A cap.",
		Images:      []string{"cap_1.jpg", "cap_2.jpg"},
	}

	var buf bytes.Buffer
	renderProductDetail(&buf, p, 1)
	if !galleryMarked(buf.String(), "cap_2.jpg") || galleryMarked(buf.String(), "cap_1.jpg") {
		t.Fatalf("expected second image marked:\n%s", buf.String())
	}

	// Out-of-range and negative selections fall back to the first image.
	for _, selected := range []int{5, -1} {
		buf.Reset()
		renderProductDetail(&buf, p, selected)
		if !galleryMarked(buf.String(), "cap_1.jpg") || galleryMarked(buf.String(), "cap_2.jpg") {
			t.Fatalf("selected=%d: expected first image marked:\n%s", selected, buf.String())
		}
	}
}

func TestRenderProductDetail_OutOfStock(t *testing.T) {
	p := &domain.Product{Title: "Cap", Gender: domain.GenderMen, Description: "A cap."}

	var buf bytes.Buffer
	renderProductDetail(&buf, p, 0)
	if !strings.Contains(buf.String(), "out of stock") {
		t.Fatalf("expected out-of-stock note:\n%s", buf.String())
	}
}
