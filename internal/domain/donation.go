package domain

import (
	"time"

	"github.com/google/uuid"
)

// Donation represents a donor-supplied offer of food.
type Donation struct {
	ID                   uuid.UUID
	DonorID              uuid.UUID
	FoodType             string
	Quantity             string // decimal-as-string, parsed numerically for scoring
	Location             string // free-text label
	LocationID           uuid.UUID
	ExpiryDate           time.Time
	AvailableFrom        time.Time
	AvailableTo          time.Time
	Status               DonationStatus
	MatchedNeedID        *uuid.UUID
	ClaimedByRecipientID *uuid.UUID
}

// DonationFilter carries the recognized listing filters. A nil field
// means "do not filter" on that attribute.
type DonationFilter struct {
	FoodType *string
	Status   *DonationStatus
}
