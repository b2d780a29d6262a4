package search

import (
	"fmt"
	"strconv"
	"strings"

	"property-storefront/internal/catalog"
)

// BuildFilter translates structured catalog filters into a Meilisearch
// filter expression. Query, Sort and Limit are not part of the expression.
// State and City are substring matches in the catalog, which Meilisearch
// filters cannot express; callers re-check hits with catalog.Filters.Match.
func BuildFilter(f catalog.Filters) string {
	var filters []string

	if f.Type != nil {
		filters = append(filters, fmt.Sprintf("type = %s", quote(string(*f.Type))))
	}
	if f.Category != nil {
		filters = append(filters, fmt.Sprintf("category = %s", quote(string(*f.Category))))
	}

	// Price range filter
	if f.MinPrice != nil {
		filters = append(filters, fmt.Sprintf("price >= %d", *f.MinPrice))
	}
	if f.MaxPrice != nil {
		filters = append(filters, fmt.Sprintf("price <= %d", *f.MaxPrice))
	}

	if f.MinBedrooms != nil {
		filters = append(filters, fmt.Sprintf("details.bedrooms >= %d", *f.MinBedrooms))
	}
	if f.MaxBedrooms != nil {
		filters = append(filters, fmt.Sprintf("details.bedrooms <= %d", *f.MaxBedrooms))
	}

	if f.MinArea != nil {
		filters = append(filters, "details.area >= "+formatFloat(*f.MinArea))
	}
	if f.MaxArea != nil {
		filters = append(filters, "details.area <= "+formatFloat(*f.MaxArea))
	}

	return strings.Join(filters, " AND ")
}

func quote(s string) string {
	return strconv.Quote(s)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
