package intake

import (
	"time"

	"github.com/google/uuid"
)

// Event types accepted on the intake topic.
const (
	TypeDonationCreated = "donation_created"
	TypeNeedCreated     = "need_created"
)

// Event is a single submission event published by the donor/recipient
// facing services. Donation fields and need fields are populated
// depending on Type.
type Event struct {
	Type    string    `json:"type"`
	ActorID uuid.UUID `json:"actor_id"`

	FoodType string `json:"food_type"`
	Quantity string `json:"quantity"`

	Location      string    `json:"location,omitempty"`
	LocationID    uuid.UUID `json:"location_id,omitempty"`
	ExpiryDate    time.Time `json:"expiry_date,omitempty"`
	AvailableFrom time.Time `json:"available_from,omitempty"`
	AvailableTo   time.Time `json:"available_to,omitempty"`

	DropoffLocationID uuid.UUID `json:"dropoff_location_id,omitempty"`
	DropoffAddress    string    `json:"dropoff_address,omitempty"`
	ContactPhone      string    `json:"contact_phone,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
