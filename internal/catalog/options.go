package catalog

import "sort"

// FacetOptions are the dropdown option lists for the filterable facets.
// They are derived from the full product list, never the filtered one, so
// applying a filter narrows the result set without shrinking the choices.
type FacetOptions struct {
	Brands []string `json:"brands"`
	Shapes []string `json:"shapes"`
	Colors []string `json:"colors"`
}

// Options computes the facet option lists: brands and shapes deduplicated in
// first-seen order, colors deduplicated and sorted alphabetically.
func Options(products []Product) FacetOptions {
	opts := FacetOptions{
		Brands: []string{},
		Shapes: []string{},
		Colors: []string{},
	}

	seenBrand := map[string]bool{}
	seenShape := map[string]bool{}
	seenColor := map[string]bool{}

	for _, p := range products {
		if p.Brand != "" && !seenBrand[p.Brand] {
			seenBrand[p.Brand] = true
			opts.Brands = append(opts.Brands, p.Brand)
		}
		if p.WatchShape != "" && !seenShape[p.WatchShape] {
			seenShape[p.WatchShape] = true
			opts.Shapes = append(opts.Shapes, p.WatchShape)
		}
		for _, name := range ColorNames(p.Colors) {
			if name != "" && !seenColor[name] {
				seenColor[name] = true
				opts.Colors = append(opts.Colors, name)
			}
		}
	}

	sort.Strings(opts.Colors)
	return opts
}
