package seed

import (
	"fmt"
	"strconv"

	"property-storefront/internal/models"
)

// ApartmentTemplate describes one family of generated short-stay rentals.
// Index runs from First to First+n-1; the id is IDBase plus the index.
type ApartmentTemplate struct {
	First       int
	IDBase      int
	NameFormat  string
	Description string
	Price       Steps
	Capacity    Steps
	Size        Steps
	Images      Cycle[string]
	Locations   Cycle[string]
	Features    []string
}

var apartmentImages = Cycle[string]{
	"https://images.unsplash.com/photo-1582719478250-c89cae4dc85b?w=1000&h=750&fit=crop",
	"https://images.unsplash.com/photo-1502672260266-1c1ef2d93688?w=1000&h=750&fit=crop",
	"https://images.unsplash.com/photo-1598928506311-c55ded91a20c?w=1000&h=750&fit=crop",
	"https://images.unsplash.com/photo-1562438668-bcf0ca6578f0?w=1000&h=750&fit=crop",
	"https://images.unsplash.com/photo-1611892440504-42a792e24d32?w=1000&h=750&fit=crop",
	"https://images.unsplash.com/photo-1600585152220-90363fe7e115?w=1000&h=750&fit=crop",
}

var apartmentFeatures = []string{"Wi-Fi", "Air Conditioning", "TV", "Kitchen", "Bathroom"}

// StayTemplate generates "Apartment N" with ids 1..n.
var StayTemplate = ApartmentTemplate{
	First:       1,
	NameFormat:  "Apartment %s",
	Description: "Comfortable, well-appointed apartment ideal for short stays with modern amenities.",
	Price:       Steps{Base: 120, Step: 10, Period: 10},
	Capacity:    Steps{Base: 1, Step: 1, Period: 4},
	Size:        Steps{Base: 25, Step: 10, Period: 8},
	Images:      apartmentImages,
	Locations:   Cycle[string]{"Beachfront", "City Center"},
	Features:    apartmentFeatures,
}

// PremiumTemplate generates "Premium Stay N" with ids from 100.
var PremiumTemplate = ApartmentTemplate{
	First:       0,
	IDBase:      100,
	NameFormat:  "Premium Stay %s",
	Description: "Modern rental apartment with essential amenities and easy access to attractions.",
	Price:       Steps{Base: 140, Step: 10, Period: 12},
	Capacity:    Steps{Base: 1, Step: 1, Period: 4},
	Size:        Steps{Base: 30, Step: 10, Period: 6},
	Images:      apartmentImages,
	Locations:   Cycle[string]{"City Center", "Beachfront"},
	Features:    apartmentFeatures,
}

// GenerateApartments builds n apartments from t.
func GenerateApartments(t ApartmentTemplate, n int) []models.Apartment {
	out := make([]models.Apartment, 0, n)
	for i := t.First; i < t.First+n; i++ {
		id := strconv.Itoa(t.IDBase + i)
		out = append(out, models.Apartment{
			ID:            id,
			Name:          fmt.Sprintf(t.NameFormat, id),
			Description:   t.Description,
			PricePerNight: t.Price.Int(i),
			Capacity:      t.Capacity.Int(i),
			Size:          t.Size.Int(i),
			Images:        t.Images.Pair(i),
			Location:      t.Locations.At(i),
			Features:      append([]string(nil), t.Features...),
		})
	}
	return out
}

// Apartments returns base stays followed by premium stays.
func Apartments(base, premium int) []models.Apartment {
	out := GenerateApartments(StayTemplate, base)
	return append(out, GenerateApartments(PremiumTemplate, premium)...)
}
