package catalog

import (
	"strings"

	"property-storefront/internal/models"
)

// Patch lists the fields to change on a listing. Nil fields are left alone.
type Patch struct {
	Title         *string                 `json:"title,omitempty"`
	Price         *int64                  `json:"price,omitempty"`
	Type          *models.ListingType     `json:"type,omitempty"`
	Category      *models.Category        `json:"category,omitempty"`
	Location      *models.Location        `json:"location,omitempty"`
	Details       *models.PropertyDetails `json:"details,omitempty"`
	Images        []string                `json:"images,omitempty"`
	Description   *string                 `json:"description,omitempty"`
	Features      []string                `json:"features,omitempty"`
	SellerID      *string                 `json:"sellerId,omitempty"`
	SellerContact *models.Contact         `json:"sellerContact,omitempty"`
	Status        *models.PropertyStatus  `json:"status,omitempty"`
}

func (p Patch) validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return models.NewValidationError("title", "must not be blank")
	}
	if p.Price != nil && *p.Price <= 0 {
		return models.NewValidationError("price", "must be positive")
	}
	if p.Type != nil && !p.Type.Valid() {
		return models.NewValidationError("type", "must be buy or rent")
	}
	if p.Category != nil && !p.Category.Valid() {
		return models.NewValidationError("category", "must be apartment, house, villa or condo")
	}
	if p.Images != nil && len(p.Images) == 0 {
		return models.NewValidationError("images", "must not be empty")
	}
	if p.SellerID != nil && strings.TrimSpace(*p.SellerID) == "" {
		return models.NewValidationError("sellerId", "must not be blank")
	}
	if p.Status != nil && !p.Status.Valid() {
		return models.NewValidationError("status", "must be available, sold or pending")
	}
	return nil
}

func (p Patch) apply(dst *models.Property) {
	if p.Title != nil {
		dst.Title = *p.Title
	}
	if p.Price != nil {
		dst.Price = *p.Price
	}
	if p.Type != nil {
		dst.Type = *p.Type
	}
	if p.Category != nil {
		dst.Category = *p.Category
	}
	if p.Location != nil {
		dst.Location = *p.Location
	}
	if p.Details != nil {
		dst.Details = *p.Details
	}
	if p.Images != nil {
		dst.Images = append([]string(nil), p.Images...)
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
	if p.Features != nil {
		dst.Features = append([]string(nil), p.Features...)
	}
	if p.SellerID != nil {
		dst.SellerID = *p.SellerID
	}
	if p.SellerContact != nil {
		dst.SellerContact = *p.SellerContact
	}
	if p.Status != nil {
		dst.Status = *p.Status
	}
}
