// Package form holds the admin product form state: one mutable draft of a
// product plus the list of local files queued for upload. The draft is
// mutated field by field and committed in a single atomic submit.
package form

import (
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"

	"github.com/teslo-shop/storefront-go/internal/core/domain"
	"github.com/teslo-shop/storefront-go/internal/core/ports"
)

// ProductDraft is the editable copy of a product bound to the admin form.
// Price and Stock stay as entered; numeric coercion happens at submit time
// in the write action. Images are display-only and never submitted.
type ProductDraft struct {
	ID          string
	Title       string
	Price       string
	Stock       string
	Slug        string
	Gender      domain.Gender
	Description string
	Sizes       []domain.Size
	Tags        []string
	Images      []string

	pendingFiles []string
}

// NewDraft returns the form state for a brand new product.
func NewDraft() *ProductDraft {
	return FromProduct(domain.NewDraftProduct())
}

// FromProduct builds the form state for editing an existing product. The
// draft owns copies of the collections so edits never alias cached data.
func FromProduct(p *domain.Product) *ProductDraft {
	d := &ProductDraft{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Gender:      p.Gender,
		Description: p.Description,
		Sizes:       append([]domain.Size{}, p.Sizes...),
		Tags:        append([]string{}, p.Tags...),
		Images:      append([]string{}, p.Images...),
	}
	if p.Price != 0 {
		d.Price = strconv.FormatFloat(p.Price, 'f', -1, 64)
	}
	if p.Stock != 0 {
		d.Stock = strconv.Itoa(p.Stock)
	}
	return d
}

// AddSize adds a size tag. Adding a size already present, or one outside
// the fixed available set, leaves the collection unchanged.
func (d *ProductDraft) AddSize(size domain.Size) {
	if !size.Valid() {
		return
	}
	for _, s := range d.Sizes {
		if s == size {
			return
		}
	}
	d.Sizes = append(d.Sizes, size)
}

// RemoveSize removes a size tag; removing an absent one is a no-op.
func (d *ProductDraft) RemoveSize(size domain.Size) {
	for i, s := range d.Sizes {
		if s == size {
			d.Sizes = append(d.Sizes[:i], d.Sizes[i+1:]...)
			return
		}
	}
}

// AddTag adds a free-text tag. Empty values and duplicates are no-ops.
func (d *ProductDraft) AddTag(tag string) {
	if tag == "" {
		return
	}
	for _, t := range d.Tags {
		if t == tag {
			return
		}
	}
	d.Tags = append(d.Tags, tag)
}

// RemoveTag removes a tag; removing an absent one is a no-op.
func (d *ProductDraft) RemoveTag(tag string) {
	for i, t := range d.Tags {
		if t == tag {
			d.Tags = append(d.Tags[:i], d.Tags[i+1:]...)
			return
		}
	}
}

// QueueFiles appends local files awaiting upload. Both intake channels of
// the form (file picker and drag-and-drop) feed this list; previously
// queued files are always kept.
func (d *ProductDraft) QueueFiles(paths ...string) {
	d.pendingFiles = append(d.pendingFiles, paths...)
}

// PendingFiles returns a copy of the queued file list.
func (d *ProductDraft) PendingFiles() []string {
	return append([]string{}, d.pendingFiles...)
}

// ClearFiles empties the queued file list. Called after a successful
// submit; the rest of the draft keeps the in-progress edits.
func (d *ProductDraft) ClearFiles() {
	d.pendingFiles = nil
}

// Payload builds the write input for the create/update action: editable
// fields only, never the id key, the owning user, or the queued files.
func (d *ProductDraft) Payload() ports.WriteProductInput {
	return ports.WriteProductInput{
		ID:          d.ID,
		Title:       d.Title,
		Price:       d.Price,
		Stock:       d.Stock,
		Slug:        d.Slug,
		Gender:      d.Gender,
		Description: d.Description,
		Sizes:       append([]domain.Size{}, d.Sizes...),
		Tags:        append([]string{}, d.Tags...),
	}
}

var (
	whitespaceRe = regexp.MustCompile(`\s`)
	validate     = newDraftValidator()
)

// draftRules mirrors the draft's submittable fields with the rules enforced
// before any network call. Price and stock are pre-coerced so junk input
// fails the minimum check instead of slipping through as NaN.
type draftRules struct {
	Title       string  `validate:"required"`
	Price       float64 `validate:"gte=1"`
	Stock       int     `validate:"gte=1"`
	Slug        string  `validate:"required,slug"`
	Description string  `validate:"required"`
	Gender      string  `validate:"required,oneof=men women unisex kids"`
}

func newDraftValidator() *validator.Validate {
	v := validator.New()
	// A slug must not contain any whitespace, typed or pasted.
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return !whitespaceRe.MatchString(fl.Field().String())
	})
	return v
}

// Validate checks the draft and returns one message per offending field,
// keyed by the lowercase field name. An empty map means the draft may be
// submitted.
func (d *ProductDraft) Validate() map[string]string {
	rules := draftRules{
		Title:       d.Title,
		Price:       cast.ToFloat64(d.Price),
		Stock:       cast.ToInt(d.Stock),
		Slug:        d.Slug,
		Description: d.Description,
		Gender:      string(d.Gender),
	}

	err := validate.Struct(rules)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"draft": err.Error()}
	}

	problems := make(map[string]string, len(errs))
	for _, fe := range errs {
		problems[fieldName(fe)] = fieldMessage(fe)
	}
	return problems
}

func fieldName(fe validator.FieldError) string {
	switch fe.Field() {
	case "Title":
		return "title"
	case "Price":
		return "price"
	case "Stock":
		return "stock"
	case "Slug":
		return "slug"
	case "Description":
		return "description"
	case "Gender":
		return "gender"
	default:
		return fe.Field()
	}
}

func fieldMessage(fe validator.FieldError) string {
	name := fieldName(fe)
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "gte":
		return name + " must be at least " + fe.Param()
	case "slug":
		return "slug can't contain whitespaces"
	case "oneof":
		return name + " must be one of: " + fe.Param()
	default:
		return name + " failed validation (" + fe.Tag() + ")"
	}
}
