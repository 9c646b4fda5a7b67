package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/teslo-shop/storefront-go/internal/core/domain"
	"github.com/teslo-shop/storefront-go/internal/core/ports"
)

func renderUser(w io.Writer, user *domain.User, isAdmin bool) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "name\t%s\n", user.FullName)
	fmt.Fprintf(tw, "email\t%s\n", user.Email)
	fmt.Fprintf(tw, "roles\t%s\n", strings.Join(user.Roles, ", "))
	fmt.Fprintf(tw, "admin\t%t\n", isAdmin)
	_ = tw.Flush()
}

func renderProductsTable(w io.Writer, page *ports.ProductsPage, pageNum int) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPRICE\tGENDER\tSTOCK\tSIZES")
	for _, p := range page.Products {
		fmt.Fprintf(tw, "%s\t%s\t$%.2f\t%s\t%d\t%s\n",
			p.ID, p.Title, p.Price, p.Gender, p.Stock, joinSizes(p.Sizes))
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "\npage %d of %d (%d products)\n", pageNum, page.Pages, page.Count)
}

// renderProductDetail prints the detail view. The gallery marks one
// selected image, defaulting to the first when the index is out of range.
func renderProductDetail(w io.Writer, p *domain.Product, selected int) {
	if selected < 0 || selected >= len(p.Images) {
		selected = 0
	}

	fmt.Fprintf(w, "%s\n", p.Title)
	fmt.Fprintf(w, "$%.2f · %s", p.Price, p.Gender)
	if p.Stock == 0 {
		fmt.Fprint(w, " · out of stock")
	} else {
		fmt.Fprintf(w, " · %d in stock", p.Stock)
	}
	fmt.Fprintln(w)

	if len(p.Sizes) > 0 {
		fmt.Fprintf(w, "sizes: %s\n", joinSizes(p.Sizes))
	}
	if len(p.Tags) > 0 {
		fmt.Fprintf(w, "tags: %s\n", strings.Join(p.Tags, ", "))
	}
	fmt.Fprintf(w, "\n%s\n", p.Description)

	if len(p.Images) > 0 {
		fmt.Fprintln(w, "\nimages:")
		for i, img := range p.Images {
			marker := " "
			if i == selected {
				marker = "*"
			}
			fmt.Fprintf(w, " %s %s\n", marker, img)
		}
	}
}

func renderFieldErrors(w io.Writer, problems map[string]string) {
	fields := make([]string, 0, len(problems))
	for f := range problems {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	for _, f := range fields {
		fmt.Fprintf(w, "%s: %s\n", f, problems[f])
	}
}

func joinSizes(sizes []domain.Size) string {
	out := make([]string, len(sizes))
	for i, s := range sizes {
		out[i] = string(s)
	}
	return strings.Join(out, ", ")
}
