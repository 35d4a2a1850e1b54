package catalog

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Apply derives the visible product list from the full list and the filter
// state. It is pure and order-preserving: the input slice is never mutated,
// and apart from the final sort the relative order of surviving products is
// the input order.
func Apply(products []Product, f Filters) []Product {
	result := make([]Product, 0, len(products))
	for _, p := range products {
		if matches(p, f) {
			result = append(result, p)
		}
	}

	sortProducts(result, f.SortBy)
	return result
}

func matches(p Product, f Filters) bool {
	if q := strings.ToLower(strings.TrimSpace(f.SearchQuery)); q != "" && !matchesSearch(p, q) {
		return false
	}
	if f.ProductType != FacetAll && p.ProductType != f.ProductType {
		return false
	}
	// Wall clocks are gender-exempt: they pass any gender filter.
	if f.Gender != FacetAll && p.ProductType != TypeWallClock && p.Gender != f.Gender {
		return false
	}
	if f.Brand != FacetAll && p.Brand != f.Brand {
		return false
	}
	if f.Shape != FacetAll && p.WatchShape != f.Shape {
		return false
	}
	if f.Color != FacetAll && !hasColor(p, f.Color) {
		return false
	}
	return matchesPrice(p, f)
}

func matchesSearch(p Product, query string) bool {
	if strings.Contains(strings.ToLower(p.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Brand), query) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), query) {
		return true
	}
	if p.ModelNumber != "" && strings.Contains(strings.ToLower(p.ModelNumber), query) {
		return true
	}
	return false
}

func hasColor(p Product, color string) bool {
	for _, name := range ColorNames(p.Colors) {
		if name == color {
			return true
		}
	}
	return false
}

// matchesPrice applies the [min, max] window. Items without a price survive
// only while both bounds are empty.
func matchesPrice(p Product, f Filters) bool {
	if f.MinPrice == "" && f.MaxPrice == "" {
		return true
	}
	if p.Price == nil {
		return false
	}

	min := 0.0
	if v, err := strconv.ParseFloat(f.MinPrice, 64); err == nil {
		min = v
	}
	max := math.Inf(1)
	if v, err := strconv.ParseFloat(f.MaxPrice, 64); err == nil && f.MaxPrice != "" {
		max = v
	}

	return *p.Price >= min && *p.Price <= max
}

func sortProducts(products []Product, sortBy string) {
	switch sortBy {
	case SortPriceLowHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return priceOrZero(products[i]) < priceOrZero(products[j])
		})
	case SortPriceHighLow:
		sort.SliceStable(products, func(i, j int) bool {
			return priceOrZero(products[i]) > priceOrZero(products[j])
		})
	case SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	default:
		// Featured first, otherwise stable; no secondary key.
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Featured && !products[j].Featured
		})
	}
}

func priceOrZero(p Product) float64 {
	if p.Price == nil {
		return 0
	}
	return *p.Price
}
