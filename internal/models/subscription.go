package models

import "time"

// SubscriptionKind names a capability a user can activate.
type SubscriptionKind string

const (
	SubscriptionBuy  SubscriptionKind = "buy"
	SubscriptionSell SubscriptionKind = "sell"
)

// Valid reports whether k is a known subscription kind.
func (k SubscriptionKind) Valid() bool {
	return k == SubscriptionBuy || k == SubscriptionSell
}

// SubscriptionRecord holds a user's capability flags. Flags only ever turn on.
type SubscriptionRecord struct {
	BuyActive  bool       `json:"buyActive"`
	SellActive bool       `json:"sellActive"`
	BuySince   *time.Time `json:"buySince,omitempty"`
	SellSince  *time.Time `json:"sellSince,omitempty"`
}
