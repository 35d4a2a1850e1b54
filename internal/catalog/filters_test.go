package catalog

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilters_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		filters Filters
	}{
		{"defaults", DefaultFilters()},
		{"search only", with(func(f *Filters) { f.SearchQuery = "rolex" })},
		{"all facets", Filters{
			ProductType: TypeWatch,
			Gender:      GenderWomen,
			Brand:       "Omega",
			Shape:       "round",
			Color:       "silver",
			MinPrice:    "100",
			MaxPrice:    "5000",
			SearchQuery: "seamaster",
			SortBy:      SortPriceHighLow,
		}},
		{"price bounds only", with(func(f *Filters) {
			f.MinPrice = "250"
			f.MaxPrice = "999.50"
		})},
		{"non-default sort", with(func(f *Filters) { f.SortBy = SortNewest })},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restored := ParseQuery(tt.filters.Query())
			assert.Equal(t, tt.filters, restored)

			// A second trip through the codec must be a fixpoint.
			assert.Equal(t, tt.filters.QueryString(), restored.QueryString())
		})
	}
}

func with(mutate func(*Filters)) Filters {
	f := DefaultFilters()
	mutate(&f)
	return f
}

func TestFilters_QueryOmitsDefaults(t *testing.T) {
	assert.Equal(t, "", DefaultFilters().QueryString())

	f := DefaultFilters()
	f.Brand = "Rolex"
	assert.Equal(t, "brand=Rolex", f.QueryString())
}

func TestParseQuery_UnknownParamsIgnored(t *testing.T) {
	values := url.Values{}
	values.Set("utm_source", "newsletter")
	values.Set("page", "3")
	values.Set("gender", GenderKids)

	f := ParseQuery(values)

	want := DefaultFilters()
	want.Gender = GenderKids
	assert.Equal(t, want, f)
}

func TestParseQuery_EmptyValuesKeepDefaults(t *testing.T) {
	values := url.Values{}
	values.Set("type", "")
	values.Set("sort", "")

	f := ParseQuery(values)
	assert.True(t, f.IsDefault())
}

func TestFilters_IsDefault(t *testing.T) {
	assert.True(t, DefaultFilters().IsDefault())

	f := DefaultFilters()
	f.MinPrice = "10"
	assert.False(t, f.IsDefault())
}
