// Package queue defines message payloads exchanged over the message broker.
package queue

// ListingSoldEvent is published when a seller marks a listing as sold.
// It contains enough information for downstream consumers to log,
// notify, or trigger analytics without querying the primary database.
type ListingSoldEvent struct {
	ListingID uint64 `json:"listing_id"`
	SellerID  uint64 `json:"seller_id"`
	EventName string `json:"event_name"`
	City      string `json:"city"`
	PassType  string `json:"pass_type"`
	Price     uint64 `json:"price"`
	SoldAt    string `json:"sold_at"`
}
