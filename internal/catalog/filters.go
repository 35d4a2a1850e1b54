package catalog

import "net/url"

// Sort orders.
const (
	SortFeatured     = "featured"
	SortPriceLowHigh = "price-low-high"
	SortPriceHighLow = "price-high-low"
	SortNewest       = "newest"
)

// FacetAll is the default facet value meaning "no constraint".
const FacetAll = "all"

// Filters is the flat facet-selection record driving the catalog derivation.
// Each facet defaults to "all" (price bounds default to the empty string)
// and the whole struct round-trips through a URL query string: only
// non-default values are serialized, and parsing a generated query yields an
// equal Filters value.
type Filters struct {
	ProductType string
	Gender      string
	Brand       string
	Shape       string
	Color       string
	MinPrice    string
	MaxPrice    string
	SearchQuery string
	SortBy      string
}

// DefaultFilters returns the unconstrained filter state.
func DefaultFilters() Filters {
	return Filters{
		ProductType: FacetAll,
		Gender:      FacetAll,
		Brand:       FacetAll,
		Shape:       FacetAll,
		Color:       FacetAll,
		SortBy:      SortFeatured,
	}
}

// IsDefault reports whether no facet, search, or sort constraint is set.
func (f Filters) IsDefault() bool {
	return f == DefaultFilters()
}

// ParseQuery restores a filter state from URL query parameters. Absent or
// unrecognized parameters fall back to defaults, so any URL produces a valid
// state.
func ParseQuery(values url.Values) Filters {
	f := DefaultFilters()

	if v := values.Get("type"); v != "" {
		f.ProductType = v
	}
	if v := values.Get("gender"); v != "" {
		f.Gender = v
	}
	if v := values.Get("brand"); v != "" {
		f.Brand = v
	}
	if v := values.Get("shape"); v != "" {
		f.Shape = v
	}
	if v := values.Get("color"); v != "" {
		f.Color = v
	}
	f.MinPrice = values.Get("minPrice")
	f.MaxPrice = values.Get("maxPrice")
	f.SearchQuery = values.Get("search")
	if v := values.Get("sort"); v != "" {
		f.SortBy = v
	}

	return f
}

// Query serializes the filter state, emitting only non-default values.
// Re-parsing the result reproduces the identical state.
func (f Filters) Query() url.Values {
	values := url.Values{}

	if f.SearchQuery != "" {
		values.Set("search", f.SearchQuery)
	}
	if f.ProductType != FacetAll {
		values.Set("type", f.ProductType)
	}
	if f.Gender != FacetAll {
		values.Set("gender", f.Gender)
	}
	if f.Brand != FacetAll {
		values.Set("brand", f.Brand)
	}
	if f.Shape != FacetAll {
		values.Set("shape", f.Shape)
	}
	if f.Color != FacetAll {
		values.Set("color", f.Color)
	}
	if f.MinPrice != "" {
		values.Set("minPrice", f.MinPrice)
	}
	if f.MaxPrice != "" {
		values.Set("maxPrice", f.MaxPrice)
	}
	if f.SortBy != SortFeatured {
		values.Set("sort", f.SortBy)
	}

	return values
}

// QueryString renders the serialized filter state as a canonical query
// string (keys sorted, no leading "?").
func (f Filters) QueryString() string {
	return f.Query().Encode()
}
