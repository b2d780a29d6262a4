package models

// Apartment is a short-stay rental shown in the apartments directory.
type Apartment struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	PricePerNight int      `json:"pricePerNight"`
	Capacity      int      `json:"capacity"`
	Size          int      `json:"size"`
	Images        []string `json:"images"`
	Location      string   `json:"location"`
	Features      []string `json:"features"`
}
