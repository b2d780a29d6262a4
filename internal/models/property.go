package models

import "time"

// Property is a marketplace listing.
type Property struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Price         int64           `json:"price"`
	Type          ListingType     `json:"type"`
	Category      Category        `json:"category"`
	Location      Location        `json:"location"`
	Details       PropertyDetails `json:"details"`
	Images        []string        `json:"images"`
	Description   string          `json:"description"`
	Features      []string        `json:"features"`
	SellerID      string          `json:"sellerId"`
	SellerContact Contact         `json:"sellerContact"`
	Status        PropertyStatus  `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// Location places a listing on the map.
type Location struct {
	State       string      `json:"state"`
	City        string      `json:"city"`
	Address     string      `json:"address"`
	Coordinates Coordinates `json:"coordinates"`
}

// Coordinates are WGS84 degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PropertyDetails holds the physical attributes used by search filters.
type PropertyDetails struct {
	Bedrooms            int       `json:"bedrooms"`
	Bathrooms           int       `json:"bathrooms"`
	Area                float64   `json:"area"`
	PlotSize            *PlotSize `json:"plotSize,omitempty"`
	PlotNumber          string    `json:"plotNumber,omitempty"`
	DistanceFromHighway *float64  `json:"distanceFromHighway,omitempty"`
}

// PlotSize is measured in feet.
type PlotSize struct {
	Length  float64 `json:"length"`
	Breadth float64 `json:"breadth"`
}

// Contact is how a buyer reaches the seller.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ListingType is shared by properties and the orders placed on them.
type ListingType string

const (
	ListingTypeBuy  ListingType = "buy"
	ListingTypeRent ListingType = "rent"
)

// Valid reports whether t is a known listing type.
func (t ListingType) Valid() bool {
	return t == ListingTypeBuy || t == ListingTypeRent
}

// Category は物件の種別
type Category string

const (
	CategoryApartment Category = "apartment"
	CategoryHouse     Category = "house"
	CategoryVilla     Category = "villa"
	CategoryCondo     Category = "condo"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryApartment, CategoryHouse, CategoryVilla, CategoryCondo}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// PropertyStatus は物件のステータス
type PropertyStatus string

const (
	PropertyStatusAvailable PropertyStatus = "available"
	PropertyStatusSold      PropertyStatus = "sold"
	PropertyStatusPending   PropertyStatus = "pending"
)

// Valid reports whether s is a known property status.
func (s PropertyStatus) Valid() bool {
	switch s {
	case PropertyStatusAvailable, PropertyStatusSold, PropertyStatusPending:
		return true
	}
	return false
}

// IsAvailable は物件が購入可能かどうか
func (p *Property) IsAvailable() bool {
	return p.Status == PropertyStatusAvailable
}
