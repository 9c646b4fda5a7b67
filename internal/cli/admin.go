package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/teslo-shop/storefront-go/internal/core/domain"
	"github.com/teslo-shop/storefront-go/internal/core/form"
)

// stringList is a repeatable string flag.
type stringList []string

func (l *stringList) String() string { return fmt.Sprint([]string(*l)) }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func (a *App) cmdAdmin(ctx context.Context, args []string) error {
	if len(args) < 1 || args[0] != "product" {
		return fmt.Errorf("%w: expected 'admin product <id|new>'", ErrUsage)
	}
	return a.cmdAdminProduct(ctx, args[1:])
}

// cmdAdminProduct is the admin form: load the product (or an empty draft
// for "new"), apply the flag edits, validate, submit, report.
func (a *App) cmdAdminProduct(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: expected 'admin product <id|new>'", ErrUsage)
	}
	idSlug := args[0]

	fs := flag.NewFlagSet("admin product", flag.ContinueOnError)
	fs.SetOutput(a.out)
	title := fs.String("title", "", "product title")
	price := fs.String("price", "", "product price")
	stock := fs.String("stock", "", "units in stock")
	slug := fs.String("slug", "", "url slug (no whitespace)")
	gender := fs.String("gender", "", "men|women|unisex|kids")
	description := fs.String("description", "", "product description")
	var addSizes, removeSizes, addTags, removeTags, files stringList
	fs.Var(&addSizes, "add-size", "add a size (repeatable)")
	fs.Var(&removeSizes, "remove-size", "remove a size (repeatable)")
	fs.Var(&addTags, "add-tag", "add a tag (repeatable)")
	fs.Var(&removeTags, "remove-tag", "remove a tag (repeatable)")
	fs.Var(&files, "file", "queue a local image file (repeatable)")
	if err := fs.Parse(args[1:]); err != nil {
		return ErrUsage
	}

	// Route guard: the back office needs a valid admin session.
	if !a.session.CheckAuthStatus(ctx) {
		return errors.New("not authenticated: run 'eshopctl login' first")
	}
	if !a.session.IsAdmin() {
		return errors.New("admin role required")
	}

	product, err := a.catalog.GetProduct(ctx, idSlug)
	if err != nil || product == nil {
		return fmt.Errorf("product %q not found", idSlug)
	}

	draft := form.FromProduct(product)
	if *title != "" {
		draft.Title = *title
	}
	if *price != "" {
		draft.Price = *price
	}
	if *stock != "" {
		draft.Stock = *stock
	}
	if *slug != "" {
		draft.Slug = *slug
	}
	if *gender != "" {
		draft.Gender = domain.Gender(*gender)
	}
	if *description != "" {
		draft.Description = *description
	}
	for _, s := range addSizes {
		draft.AddSize(domain.Size(s))
	}
	for _, s := range removeSizes {
		draft.RemoveSize(domain.Size(s))
	}
	for _, t := range addTags {
		draft.AddTag(t)
	}
	for _, t := range removeTags {
		draft.RemoveTag(t)
	}
	draft.QueueFiles(files...)

	// Validation failures block the submit entirely; no request is made.
	if problems := draft.Validate(); len(problems) > 0 {
		renderFieldErrors(a.out, problems)
		return fmt.Errorf("%w: fix the fields above", domain.ErrInvalidDraft)
	}

	saved, err := a.catalog.SaveProduct(ctx, draft.Payload())
	if err != nil {
		return fmt.Errorf("could not save product: %w", err)
	}
	draft.ClearFiles()

	if product.IsDraft() {
		fmt.Fprintf(a.out, "created product %s (%s)\n", saved.ID, saved.Slug)
	} else {
		fmt.Fprintf(a.out, "updated product %s (%s)\n", saved.ID, saved.Slug)
	}
	return nil
}
