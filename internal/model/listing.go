package model

import "time"

// Listing status values.  A listing is created AVAILABLE and may only
// transition to SOLD, never back.  Only the owning seller may flip it.
const (
	ListingAvailable = "AVAILABLE"
	ListingSold      = "SOLD"
)

// Priority weights used when ranking listings.  Every listing starts at
// PriorityDefault; sellers may boost a listing to PriorityBoosted so it
// sorts ahead of unboosted results.
const (
	PriorityDefault = 1
	PriorityBoosted = 10
)

// Listing represents one event pass offered for sale by a seller.  The
// json tags are part of the API contract: priority, createdAt, eventName,
// availableDates, status and price are the fields the ranking and filter
// logic key on and must keep their names.
//
// Fields:
//  ID             – primary key identifier, assigned at creation, immutable.
//  SellerID       – owning user; many listings may reference one seller.
//  EventName      – name of the event the pass admits to.
//  City           – city where the event takes place.
//  PassType       – enumerated pass category (GENERAL, VIP, EARLY_BIRD, STUDENT).
//  Status         – AVAILABLE or SOLD.
//  Price          – asking price in cents, non-negative.
//  AvailableDates – ordered date strings the pass is valid for.
//  Tags           – free-text tags supplied by the seller.
//  Description    – free-text description.
//  Priority       – integer ranking weight (1 default, 10 boosted).
//  CreatedAt      – creation timestamp, recency tiebreaker when ranking.
//  UpdatedAt      – last update timestamp.
type Listing struct {
	ID             uint64    `json:"id"`             // listings.id
	SellerID       uint64    `json:"sellerId"`       // listings.seller_id
	EventName      string    `json:"eventName"`      // listings.event_name
	City           string    `json:"city"`           // listings.city
	PassType       string    `json:"passType"`       // listings.pass_type
	Status         string    `json:"status"`         // listings.status
	Price          uint64    `json:"price"`          // listings.price_cents
	AvailableDates []string  `json:"availableDates"` // listings.available_dates (JSON column)
	Tags           []string  `json:"tags"`           // listings.tags (JSON column)
	Description    string    `json:"description"`    // listings.description
	Priority       int       `json:"priority"`       // listings.priority
	CreatedAt      time.Time `json:"createdAt"`      // listings.created_at
	UpdatedAt      time.Time `json:"updatedAt"`      // listings.updated_at
}
