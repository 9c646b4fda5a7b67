package domain

// DraftProductID is the sentinel identifier carried by a product that has
// not been committed to the backend yet. Submitting a product with this id
// creates it; any other id updates the existing record.
const DraftProductID = "new"

// Gender is the catalog section a product belongs to.
type Gender string

const (
	GenderMen    Gender = "men"
	GenderWomen  Gender = "women"
	GenderUnisex Gender = "unisex"
	GenderKids   Gender = "kids"
)

// Genders lists every valid catalog section.
var Genders = []Gender{GenderMen, GenderWomen, GenderUnisex, GenderKids}

// Valid reports whether g is one of the known catalog sections.
func (g Gender) Valid() bool {
	for _, known := range Genders {
		if g == known {
			return true
		}
	}
	return false
}

// Size is a garment size tag.
type Size string

const (
	SizeXS  Size = "XS"
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

// AvailableSizes is the fixed set of sizes a product may carry.
var AvailableSizes = []Size{SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL}

// Valid reports whether s is one of the fixed available sizes.
func (s Size) Valid() bool {
	for _, known := range AvailableSizes {
		if s == known {
			return true
		}
	}
	return false
}

// Product is the catalog aggregate as seen by the client. Images hold
// fully-qualified URLs once a product has passed through the REST layer;
// the backend itself stores bare filenames.
type Product struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Slug        string   `json:"slug"`
	Stock       int      `json:"stock"`
	Sizes       []Size   `json:"sizes"`
	Gender      Gender   `json:"gender"`
	Tags        []string `json:"tags"`
	Images      []string `json:"images"`
	User        *User    `json:"user,omitempty"`
}

// NewDraftProduct returns an empty, uncommitted product. Collections are
// allocated so callers can range and append without nil checks.
func NewDraftProduct() *Product {
	return &Product{
		ID:     DraftProductID,
		Gender: GenderMen,
		Sizes:  []Size{},
		Tags:   []string{},
		Images: []string{},
	}
}

// IsDraft reports whether the product has not been persisted yet.
func (p *Product) IsDraft() bool {
	return p.ID == DraftProductID
}
