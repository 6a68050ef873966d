package domain

import (
	"time"

	"github.com/google/uuid"
)

// Delivery - struct tracking physical movement of a claimed donation.
// A donation has at most one delivery.
type Delivery struct {
	ID                uuid.UUID
	DonationID        uuid.UUID
	PickupLocationID  uuid.UUID
	DropoffLocationID uuid.UUID
	RecipientPhone    string
	Status            DeliveryStatus
	LogisticsStaffID  *uuid.UUID
	DeliveredAt       *time.Time
}

// ClaimResult - struct representing the result of a successful claim.
type ClaimResult struct {
	Need     RecipientNeed
	Donation Donation
	Delivery Delivery
}
