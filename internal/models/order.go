package models

import "time"

// Order is a purchase or rental placed against a property.
type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	PropertyID      string          `json:"propertyId"`
	Type            ListingType     `json:"type"`
	Amount          int64           `json:"amount"`
	Commission      int64           `json:"commission"`
	Status          OrderStatus     `json:"status"`
	PaymentMethod   string          `json:"paymentMethod"`
	CustomerDetails CustomerDetails `json:"customerDetails"`
	IDVerified      bool            `json:"idVerified"`
	ContractSigned  bool            `json:"contractSigned"`
	ContractURL     string          `json:"contractUrl,omitempty"`
	SignerName      string          `json:"signerName,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       *time.Time      `json:"updatedAt,omitempty"`
}

// CustomerDetails is collected at checkout.
type CustomerDetails struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
}

// OrderStatus is the lifecycle position of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCancelled OrderStatus = "cancelled"
	// OrderStatusCompleted is accepted in persisted data but no transition produces it.
	OrderStatusCompleted OrderStatus = "completed"
)

// IsTerminal reports whether no further transition is allowed.
func (s OrderStatus) IsTerminal() bool {
	return s != OrderStatusPending
}
