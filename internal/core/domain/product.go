package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidProduct = errors.New("invalid product")

// A Product is a catalog entry referenced by value across the checkout.
type Product struct {
	ProductID   string
	Title       string
	Description string
	Price       decimal.Decimal
	CoverImage  string
}

func (p Product) HasCoverImage() bool {
	return p.CoverImage != ""
}

// Validate checks the catalog data model: a non-empty id, title and
// description, and a non-negative price with at most 2 decimal places.
func (p Product) Validate() error {
	var reason string
	switch {
	case strings.TrimSpace(p.ProductID) == "":
		reason = "empty id"
	case strings.TrimSpace(p.Title) == "":
		reason = "empty title"
	case strings.TrimSpace(p.Description) == "":
		reason = "empty description"
	case p.Price.IsNegative():
		reason = "negative price"
	case !p.Price.Equal(p.Price.Truncate(2)):
		reason = "price has more than 2 decimal places"
	default:
		return nil
	}
	return fmt.Errorf("%w %q: %s", ErrInvalidProduct, p.ProductID, reason)
}

// ValidateCatalog validates every product and rejects duplicate ids.
func ValidateCatalog(catalog []Product) error {
	seen := make(map[string]struct{}, len(catalog))
	for _, p := range catalog {
		if err := p.Validate(); err != nil {
			return err
		}
		if _, dup := seen[p.ProductID]; dup {
			return fmt.Errorf("%w %q: duplicate id", ErrInvalidProduct, p.ProductID)
		}
		seen[p.ProductID] = struct{}{}
	}
	return nil
}

// FindProduct returns the first product with the given id.
func FindProduct(catalog []Product, productID string) (Product, bool) {
	for _, p := range catalog {
		if p.ProductID == productID {
			return p, true
		}
	}
	return Product{}, false
}

func containsProduct(ps []Product, productID string) bool {
	_, ok := FindProduct(ps, productID)
	return ok
}

func copyProducts(ps []Product) []Product {
	if ps == nil {
		return nil
	}
	out := make([]Product, len(ps))
	copy(out, ps)
	return out
}
