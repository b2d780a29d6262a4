package seed

import (
	"encoding/json"
	"testing"

	"property-storefront/internal/models"
)

func TestPropertiesDefaultCountsAndIDs(t *testing.T) {
	props := Properties(DefaultSizes)
	if len(props) != 73 {
		t.Fatalf("expected 73 properties, got %d", len(props))
	}

	checks := map[int]string{0: "1", 1: "2", 2: "rent-1", 3: "3", 22: "22", 23: "EX-1000", 72: "EX-1049"}
	for idx, want := range checks {
		if props[idx].ID != want {
			t.Fatalf("expected id %q at %d, got %q", want, idx, props[idx].ID)
		}
	}

	seen := make(map[string]bool, len(props))
	for _, p := range props {
		if seen[p.ID] {
			t.Fatalf("duplicate id %q", p.ID)
		}
		seen[p.ID] = true
		if len(p.Images) == 0 {
			t.Fatalf("expected images on %q", p.ID)
		}
		if p.UpdatedAt.Before(p.CreatedAt) {
			t.Fatalf("expected updatedAt >= createdAt on %q", p.ID)
		}
	}
}

func TestGenerateSampleFields(t *testing.T) {
	props := Generate(SampleTemplate, 20)

	first := props[0]
	if first.Title != "Mumbai Apartment 1" {
		t.Fatalf("expected %q, got %q", "Mumbai Apartment 1", first.Title)
	}
	if first.Price != 4500000 || first.Details.Area != 600 || first.Details.Bedrooms != 1 || first.Details.Bathrooms != 1 {
		t.Fatalf("unexpected first sample: %+v", first)
	}
	if first.Details.PlotNumber != "P-100" {
		t.Fatalf("expected plot P-100, got %q", first.Details.PlotNumber)
	}

	fifth := props[5]
	if fifth.Location.City != "Kolkata" || fifth.Category != models.CategoryHouse {
		t.Fatalf("expected Kolkata house, got %s %s", fifth.Location.City, fifth.Category)
	}
	if fifth.Price != 5750000 || fifth.Details.Bathrooms != 2 {
		t.Fatalf("unexpected sixth sample: price=%d baths=%d", fifth.Price, fifth.Details.Bathrooms)
	}
}

func TestGenerateExtraFields(t *testing.T) {
	props := Generate(ExtraTemplate, 50)
	last := props[49]
	if last.ID != "EX-1049" {
		t.Fatalf("expected EX-1049, got %q", last.ID)
	}
	// i=49: place 49%8=1, category 49%4=1, price step 49%20=9.
	if last.Title != "New Delhi house 50" {
		t.Fatalf("expected %q, got %q", "New Delhi house 50", last.Title)
	}
	if last.Price != 6300000 {
		t.Fatalf("expected 6300000, got %d", last.Price)
	}
	if last.SellerID != "seed-seller" {
		t.Fatalf("expected seed-seller, got %q", last.SellerID)
	}
}

func TestPropertiesAreReproducible(t *testing.T) {
	a, err := json.Marshal(Properties(Sizes{Sample: 5, Extra: 7}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	b, err := json.Marshal(Properties(Sizes{Sample: 5, Extra: 7}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(a) != string(b) {
		t.Fatal("expected identical datasets for identical sizes")
	}
}

func TestApartments(t *testing.T) {
	apts := Apartments(20, 30)
	if len(apts) != 50 {
		t.Fatalf("expected 50 apartments, got %d", len(apts))
	}

	first := apts[0]
	if first.ID != "1" || first.Name != "Apartment 1" || first.PricePerNight != 130 || first.Location != "City Center" {
		t.Fatalf("unexpected first apartment: %+v", first)
	}
	if apts[1].Location != "Beachfront" {
		t.Fatalf("expected even index on the beach, got %q", apts[1].Location)
	}

	premium := apts[20]
	if premium.ID != "100" || premium.Name != "Premium Stay 100" || premium.PricePerNight != 140 || premium.Size != 30 {
		t.Fatalf("unexpected first premium stay: %+v", premium)
	}
	if apts[49].ID != "129" {
		t.Fatalf("expected last id 129, got %q", apts[49].ID)
	}
}

func TestStepsWithoutPeriod(t *testing.T) {
	s := Steps{Base: 9}
	if s.At(5) != 9 {
		t.Fatalf("expected base value, got %d", s.At(5))
	}
}
