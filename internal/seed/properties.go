package seed

import (
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"property-storefront/internal/models"
)

// Place is a state/city pair used by the generated listings.
type Place struct {
	State string
	City  string
}

// Sizes controls how many generated listings follow the curated ones.
type Sizes struct {
	Sample int `yaml:"sample"`
	Extra  int `yaml:"extra"`
}

// DefaultSizes matches the storefront's shipped dataset: 3 curated + 20 + 50.
var DefaultSizes = Sizes{Sample: 20, Extra: 50}

// PropertyTemplate describes one family of generated listings.
type PropertyTemplate struct {
	IDPrefix   string
	IDOffset   int
	PlotPrefix string
	PlotOffset int

	Places     Cycle[Place]
	Categories Cycle[models.Category]
	Images     Cycle[string]

	Price     Steps
	Area      Steps
	Bedrooms  Steps
	Bathrooms Steps

	// TitleCategory renders the category in the title, e.g. "Apartment".
	TitleCategory func(models.Category) string
	Address       func(i int, p Place) string
	Description   func(c models.Category, p Place) string

	Features []string
	SellerID string
	Contact  models.Contact
	Epoch    time.Time
}

var titleCase = cases.Title(language.English)

// SampleTemplate mirrors the storefront's first generated batch.
var SampleTemplate = PropertyTemplate{
	IDOffset:   3,
	PlotPrefix: "P-",
	PlotOffset: 100,
	Places: Cycle[Place]{
		{"Maharashtra", "Mumbai"},
		{"Delhi", "New Delhi"},
		{"Karnataka", "Bengaluru"},
		{"Tamil Nadu", "Chennai"},
		{"Telangana", "Hyderabad"},
		{"West Bengal", "Kolkata"},
		{"Gujarat", "Ahmedabad"},
		{"Rajasthan", "Jaipur"},
		{"Punjab", "Chandigarh"},
		{"Madhya Pradesh", "Indore"},
	},
	Categories: Cycle[models.Category](models.Categories),
	Images: Cycle[string]{
		"https://images.unsplash.com/photo-1560185127-6ed189bf02f4?w=800&h=600&fit=crop",
		"https://images.unsplash.com/photo-1501183638710-841dd1904471?w=800&h=600&fit=crop",
		"https://images.unsplash.com/photo-1502005229762-cf1b2da7c55f?w=800&h=600&fit=crop",
		"https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?w=800&h=600&fit=crop",
		"https://images.unsplash.com/photo-1600585154161-8c14b9a9a2f2?w=800&h=600&fit=crop",
	},
	Price:     Steps{Base: 4500000, Step: 250000, Period: 12},
	Area:      Steps{Base: 600, Step: 150, Period: 10},
	Bedrooms:  Steps{Base: 1, Step: 1, Period: 4},
	Bathrooms: Steps{Base: 0, Step: 1, Period: 3},
	TitleCategory: func(c models.Category) string {
		return titleCase.String(string(c))
	},
	Address: func(i int, p Place) string {
		return fmt.Sprintf("%d Main Road, %s, %s", 100+i, p.City, p.State)
	},
	Description: func(c models.Category, p Place) string {
		return fmt.Sprintf("Spacious %s in %s, ideal for buyers seeking comfort and convenience.", c, p.City)
	},
	Features: []string{"Balcony", "Security", "Parking", "Lift", "Power Backup"},
	SellerID: "seller-seed",
	Contact:  models.Contact{Name: "Agent Desk", Email: "agent@example.com", Phone: "+91-90000-00000"},
	Epoch:    time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC),
}

// ExtraTemplate mirrors the storefront's bulk "EX-" batch.
var ExtraTemplate = PropertyTemplate{
	IDPrefix:   "EX-",
	IDOffset:   1000,
	PlotPrefix: "EX-",
	PlotOffset: 100,
	Places: Cycle[Place]{
		{"Maharashtra", "Mumbai"},
		{"Delhi", "New Delhi"},
		{"Karnataka", "Bengaluru"},
		{"Tamil Nadu", "Chennai"},
		{"Telangana", "Hyderabad"},
		{"Gujarat", "Ahmedabad"},
		{"West Bengal", "Kolkata"},
		{"Rajasthan", "Jaipur"},
	},
	Categories: Cycle[models.Category](models.Categories),
	Images: Cycle[string]{
		"https://images.unsplash.com/photo-1560185127-6ed189bf02f4?w=1000&h=750&fit=crop",
		"https://images.unsplash.com/photo-1502005229762-cf1b2da7c55f?w=1000&h=750&fit=crop",
		"https://images.unsplash.com/photo-1600585154161-8c14b9a9a2f2?w=1000&h=750&fit=crop",
		"https://images.unsplash.com/photo-1501183638710-841dd1904471?w=1000&h=750&fit=crop",
	},
	Price:     Steps{Base: 4500000, Step: 200000, Period: 20},
	Area:      Steps{Base: 700, Step: 110, Period: 12},
	Bedrooms:  Steps{Base: 1, Step: 1, Period: 4},
	Bathrooms: Steps{Base: 0, Step: 1, Period: 3},
	TitleCategory: func(c models.Category) string {
		return string(c)
	},
	Address: func(i int, p Place) string {
		return fmt.Sprintf("%d %s Main Road, %s", 100+i, p.City, p.State)
	},
	Description: func(c models.Category, p Place) string {
		return fmt.Sprintf("Spacious %s in %s with modern amenities and excellent connectivity.", c, p.City)
	},
	Features: []string{"Security", "Parking", "Lift", "Power Backup"},
	SellerID: "seed-seller",
	Contact:  models.Contact{Name: "Seed Agent", Email: "agent@seed.com", Phone: "+91-90000-11111"},
	Epoch:    time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
}

// Generate builds n buy listings from t.
func Generate(t PropertyTemplate, n int) []models.Property {
	out := make([]models.Property, 0, n)
	for i := 0; i < n; i++ {
		place := t.Places.At(i)
		category := t.Categories.At(i)
		created := stamp(t.Epoch, i)

		out = append(out, models.Property{
			ID:       t.IDPrefix + strconv.Itoa(i+t.IDOffset),
			Title:    fmt.Sprintf("%s %s %d", place.City, t.TitleCategory(category), i+1),
			Price:    t.Price.At(i),
			Type:     models.ListingTypeBuy,
			Category: category,
			Location: models.Location{
				State:   place.State,
				City:    place.City,
				Address: t.Address(i, place),
			},
			Details: models.PropertyDetails{
				Bedrooms:   t.Bedrooms.Int(i),
				Bathrooms:  max(1, t.Bathrooms.Int(i)),
				Area:       float64(t.Area.At(i)),
				PlotNumber: t.PlotPrefix + strconv.Itoa(i+t.PlotOffset),
			},
			Images:        t.Images.Pair(i),
			Description:   t.Description(category, place),
			Features:      append([]string(nil), t.Features...),
			SellerID:      t.SellerID,
			SellerContact: t.Contact,
			Status:        models.PropertyStatusAvailable,
			CreatedAt:     created,
			UpdatedAt:     created,
		})
	}
	return out
}

// Properties returns the curated listings followed by the generated batches.
func Properties(sizes Sizes) []models.Property {
	out := Curated()
	out = append(out, Generate(SampleTemplate, sizes.Sample)...)
	return append(out, Generate(ExtraTemplate, sizes.Extra)...)
}

// Curated returns the hand-written listings that head every dataset.
func Curated() []models.Property {
	highway := 5.0
	return []models.Property{
		{
			ID:       "1",
			Title:    "Modern Downtown Apartment",
			Price:    850000,
			Type:     models.ListingTypeBuy,
			Category: models.CategoryApartment,
			Location: models.Location{
				State:       "California",
				City:        "San Francisco",
				Address:     "123 Market Street, San Francisco, CA",
				Coordinates: models.Coordinates{Lat: 37.7749, Lng: -122.4194},
			},
			Details: models.PropertyDetails{Bedrooms: 2, Bathrooms: 2, Area: 1200, PlotNumber: "A-101"},
			Images: []string{
				"https://images.unsplash.com/photo-1545324418-cc1a3fa10c00?w=800&h=600&fit=crop",
				"https://images.unsplash.com/photo-1484154218962-a197022b5858?w=800&h=600&fit=crop",
				"https://images.unsplash.com/photo-1502672260266-1c1ef2d93688?w=800&h=600&fit=crop",
			},
			Description:   "Beautiful modern apartment in the heart of downtown San Francisco with stunning city views.",
			Features:      []string{"City View", "Modern Kitchen", "Hardwood Floors", "In-unit Laundry", "Gym Access"},
			SellerID:      "seller1",
			SellerContact: models.Contact{Name: "John Smith", Email: "john.smith@email.com", Phone: "+1-555-0123"},
			Status:        models.PropertyStatusAvailable,
			CreatedAt:     time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
			UpdatedAt:     time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:       "2",
			Title:    "Spacious Family House",
			Price:    6500000,
			Type:     models.ListingTypeBuy,
			Category: models.CategoryHouse,
			Location: models.Location{
				State:       "Texas",
				City:        "Austin",
				Address:     "456 Oak Avenue, Austin, TX",
				Coordinates: models.Coordinates{Lat: 30.2672, Lng: -97.7431},
			},
			Details: models.PropertyDetails{
				Bedrooms:            4,
				Bathrooms:           3,
				Area:                2500,
				PlotSize:            &models.PlotSize{Length: 100, Breadth: 80},
				DistanceFromHighway: &highway,
			},
			Images: []string{
				"https://images.unsplash.com/photo-1568605114967-8130f3a36994?w=800&h=600&fit=crop",
				"https://images.unsplash.com/photo-1570129477492-45c003edd2be?w=800&h=600&fit=crop",
				"https://images.unsplash.com/photo-1449844908441-8829872d2607?w=800&h=600&fit=crop",
			},
			Description:   "Perfect family home with large backyard and great neighborhood amenities.",
			Features:      []string{"Large Backyard", "Two-Car Garage", "Updated Kitchen", "Master Suite", "Near Schools"},
			SellerID:      "seller2",
			SellerContact: models.Contact{Name: "Sarah Johnson", Email: "sarah.johnson@email.com", Phone: "+1-555-0456"},
			Status:        models.PropertyStatusAvailable,
			CreatedAt:     time.Date(2024, 1, 16, 14, 30, 0, 0, time.UTC),
			UpdatedAt:     time.Date(2024, 1, 16, 14, 30, 0, 0, time.UTC),
		},
		{
			ID:       "rent-1",
			Title:    "Furnished 2BHK near Tech Park",
			Price:    35000,
			Type:     models.ListingTypeRent,
			Category: models.CategoryApartment,
			Location: models.Location{
				State:       "Karnataka",
				City:        "Bengaluru",
				Address:     "12 Outer Ring Road, Bengaluru, Karnataka",
				Coordinates: models.Coordinates{Lat: 12.9352, Lng: 77.6245},
			},
			Details: models.PropertyDetails{Bedrooms: 2, Bathrooms: 2, Area: 1100},
			Images: []string{
				"https://images.unsplash.com/photo-1502672260266-1c1ef2d93688?w=800&h=600&fit=crop",
			},
			Description:   "Fully furnished flat for monthly rental, walking distance from the tech park.",
			Features:      []string{"Furnished", "Power Backup", "Parking"},
			SellerID:      "seller3",
			SellerContact: models.Contact{Name: "Priya Rao", Email: "priya.rao@email.com", Phone: "+91-98450-12345"},
			Status:        models.PropertyStatusAvailable,
			CreatedAt:     time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC),
			UpdatedAt:     time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC),
		},
	}
}
