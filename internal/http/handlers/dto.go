package handlers

import (
	"time"

	"github.com/google/uuid"

	"foodbridge-matching/internal/domain"
)

type createDonationRequest struct {
	DonorID       uuid.UUID `json:"donor_id"`
	FoodType      string    `json:"food_type"`
	Quantity      string    `json:"quantity"`
	Location      string    `json:"location"`
	LocationID    uuid.UUID `json:"location_id"`
	ExpiryDate    time.Time `json:"expiry_date"`
	AvailableFrom time.Time `json:"available_from"`
	AvailableTo   time.Time `json:"available_to"`
}

type donationDTO struct {
	ID                   uuid.UUID             `json:"id"`
	DonorID              uuid.UUID             `json:"donor_id"`
	FoodType             string                `json:"food_type"`
	Quantity             string                `json:"quantity"`
	Location             string                `json:"location"`
	LocationID           uuid.UUID             `json:"location_id"`
	ExpiryDate           time.Time             `json:"expiry_date"`
	AvailableFrom        time.Time             `json:"available_from"`
	AvailableTo          time.Time             `json:"available_to"`
	Status               domain.DonationStatus `json:"status"`
	MatchedNeedID        *uuid.UUID            `json:"matched_need_id,omitempty"`
	ClaimedByRecipientID *uuid.UUID            `json:"claimed_by_recipient_id,omitempty"`
}

type createNeedRequest struct {
	RecipientID       uuid.UUID `json:"recipient_id"`
	FoodType          string    `json:"food_type"`
	Quantity          string    `json:"quantity"`
	DropoffLocationID uuid.UUID `json:"dropoff_location_id"`
	DropoffAddress    string    `json:"dropoff_address"`
	ContactPhone      string    `json:"contact_phone"`
}

type needDTO struct {
	ID                uuid.UUID         `json:"id"`
	RecipientID       uuid.UUID         `json:"recipient_id"`
	FoodType          string            `json:"food_type"`
	Quantity          string            `json:"quantity"`
	DropoffLocationID uuid.UUID         `json:"dropoff_location_id"`
	DropoffAddress    string            `json:"dropoff_address"`
	ContactPhone      string            `json:"contact_phone"`
	Status            domain.NeedStatus `json:"status"`
	MatchedDonationID *uuid.UUID        `json:"matched_donation_id,omitempty"`
}

type suggestionDTO struct {
	Donation donationDTO `json:"donation"`
	Score    float64     `json:"score"`
}

type claimRequest struct {
	NeedID     uuid.UUID `json:"need_id"`
	DonationID uuid.UUID `json:"donation_id"`
}

type claimResponse struct {
	Need     needDTO     `json:"need"`
	Donation donationDTO `json:"donation"`
	Delivery deliveryDTO `json:"delivery"`
}

type claimDirectRequest struct {
	RecipientID       uuid.UUID `json:"recipient_id"`
	DonationID        uuid.UUID `json:"donation_id"`
	DropoffLocationID uuid.UUID `json:"dropoff_location_id"`
	ContactPhone      string    `json:"contact_phone"`
}

type deliveryDTO struct {
	ID                uuid.UUID             `json:"id"`
	DonationID        uuid.UUID             `json:"donation_id"`
	PickupLocationID  uuid.UUID             `json:"pickup_location_id"`
	DropoffLocationID uuid.UUID             `json:"dropoff_location_id"`
	RecipientPhone    string                `json:"recipient_phone"`
	Status            domain.DeliveryStatus `json:"status"`
	LogisticsStaffID  *uuid.UUID            `json:"logistics_staff_id,omitempty"`
	DeliveredAt       *time.Time            `json:"delivered_at,omitempty"`
}

type assignDeliveryRequest struct {
	DeliveryID uuid.UUID `json:"delivery_id"`
	StaffID    uuid.UUID `json:"staff_id"`
}

type updateDeliveryStatusRequest struct {
	DeliveryID uuid.UUID `json:"delivery_id"`
	Status     string    `json:"status"`
}

type notificationDTO struct {
	ID      uuid.UUID               `json:"id"`
	UserID  uuid.UUID               `json:"user_id"`
	Message string                  `json:"message"`
	Meta    domain.NotificationMeta `json:"meta"`
	Read    bool                    `json:"read"`
}

type markReadRequest struct {
	UserID uuid.UUID `json:"user_id"`
}
