package search

import (
	"testing"

	"property-storefront/internal/catalog"
	"property-storefront/internal/models"
)

func ptr[T any](v T) *T { return &v }

func TestBuildFilterEmpty(t *testing.T) {
	if got := BuildFilter(catalog.Filters{Query: "villa", Limit: 5}); got != "" {
		t.Fatalf("expected empty filter, got %q", got)
	}
}

func TestBuildFilterCombinesWithAnd(t *testing.T) {
	got := BuildFilter(catalog.Filters{
		Type:        ptr(models.ListingTypeBuy),
		Category:    ptr(models.CategoryVilla),
		City:        "New Delhi",
		MinPrice:    ptr(int64(5000000)),
		MaxPrice:    ptr(int64(6000000)),
		MinBedrooms: ptr(2),
		MaxArea:     ptr(1250.5),
	})

	want := `type = "buy" AND category = "villa" AND ` +
		`price >= 5000000 AND price <= 6000000 AND details.bedrooms >= 2 AND details.area <= 1250.5`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestBuildFilterLeavesLocationToCatalog(t *testing.T) {
	if got := BuildFilter(catalog.Filters{State: "maha", City: "mum"}); got != "" {
		t.Fatalf("expected location terms omitted, got %q", got)
	}
}
