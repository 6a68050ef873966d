package domain

import "github.com/google/uuid"

// RecipientNeed represents a recipient-stated requirement for food.
type RecipientNeed struct {
	ID                uuid.UUID
	RecipientID       uuid.UUID
	FoodType          string
	Quantity          string
	DropoffLocationID uuid.UUID
	DropoffAddress    string
	ContactPhone      string
	Status            NeedStatus
	MatchedDonationID *uuid.UUID
}
