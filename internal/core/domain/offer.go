package domain

// EligibleUpsells returns the catalog products priced strictly above the
// selected product that are not attached as upsells yet.
//
// Without a selection there is no base price and the result is empty.
// Catalog order is preserved.
func EligibleUpsells(catalog []Product, selected *Product, upsells []Product) []Product {
	return eligible(catalog, selected, upsells, isUpsellPrice)
}

// EligibleDownsells is the downsell counterpart of [EligibleUpsells].
func EligibleDownsells(catalog []Product, selected *Product, downsells []Product) []Product {
	return eligible(catalog, selected, downsells, isDownsellPrice)
}

type priceRule func(offer, base Product) bool

// Equal prices qualify for neither side.
func isUpsellPrice(offer, base Product) bool {
	return offer.Price.GreaterThan(base.Price)
}

func isDownsellPrice(offer, base Product) bool {
	return offer.Price.LessThan(base.Price)
}

func eligible(
	catalog []Product, selected *Product, current []Product, rule priceRule,
) []Product {
	out := []Product{}
	if selected == nil {
		return out
	}
	for _, p := range catalog {
		if p.ProductID == selected.ProductID {
			continue
		}
		if !rule(p, *selected) {
			continue
		}
		if containsProduct(current, p.ProductID) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func keepEligible(offers []Product, base Product, rule priceRule) (kept, dropped []Product) {
	kept = make([]Product, 0, len(offers))
	for _, p := range offers {
		if p.ProductID != base.ProductID && rule(p, base) {
			kept = append(kept, p)
			continue
		}
		dropped = append(dropped, p)
	}
	return kept, dropped
}
