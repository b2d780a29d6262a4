package catalog

import (
	"slices"
	"strings"

	"property-storefront/internal/models"
)

// DefaultRecentLimit caps Recent when no limit is given.
const DefaultRecentLimit = 200

// Sort selects the result order of Search.
type Sort string

const (
	// SortStore keeps the order listings are stored in.
	SortStore Sort = ""
	// SortRecent orders by descending creation time.
	SortRecent Sort = "recent"
)

// Filters narrows Search. Every filter is optional and they combine with AND.
type Filters struct {
	Type        *models.ListingType
	Category    *models.Category
	State       string
	City        string
	MinPrice    *int64
	MaxPrice    *int64
	MinBedrooms *int
	MaxBedrooms *int
	MinArea     *float64
	MaxArea     *float64

	// Query matches title, city or state after the structured filters.
	Query string
	Sort  Sort
	Limit int
}

// Search returns the listings matching f.
func (c *Catalog) Search(f Filters) []models.Property {
	return Filter(c.items.List(), f)
}

// Recent returns listings newest first, at most limit of them (DefaultRecentLimit when limit <= 0).
func (c *Catalog) Recent(limit int) []models.Property {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return Filter(c.items.List(), Filters{Sort: SortRecent, Limit: limit})
}

// Filter applies f to props without touching the input slice.
func Filter(props []models.Property, f Filters) []models.Property {
	out := make([]models.Property, 0, len(props))
	for i := range props {
		if f.Match(&props[i]) {
			out = append(out, props[i])
		}
	}

	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		out = slices.DeleteFunc(out, func(p models.Property) bool {
			return !matchesText(&p, q)
		})
	}

	if f.Sort == SortRecent {
		slices.SortStableFunc(out, func(a, b models.Property) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}

	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}

// Match reports whether p passes the structured filters. Query is not consulted.
func (f Filters) Match(p *models.Property) bool {
	if f.Type != nil && p.Type != *f.Type {
		return false
	}
	if f.Category != nil && p.Category != *f.Category {
		return false
	}
	if f.State != "" && !containsFold(p.Location.State, f.State) {
		return false
	}
	if f.City != "" && !containsFold(p.Location.City, f.City) {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.MinBedrooms != nil && p.Details.Bedrooms < *f.MinBedrooms {
		return false
	}
	if f.MaxBedrooms != nil && p.Details.Bedrooms > *f.MaxBedrooms {
		return false
	}
	if f.MinArea != nil && p.Details.Area < *f.MinArea {
		return false
	}
	if f.MaxArea != nil && p.Details.Area > *f.MaxArea {
		return false
	}
	return true
}

func matchesText(p *models.Property, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(p.Title), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Location.City), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Location.State), lowerQuery)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
