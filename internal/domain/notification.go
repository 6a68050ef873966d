package domain

import "github.com/google/uuid"

// NotificationMeta is the structured payload attached to a notification.
// Any subset of the references may be present; consumers must tolerate
// missing keys.
type NotificationMeta struct {
	NeedID     *uuid.UUID `json:"needId,omitempty"`
	DonationID *uuid.UUID `json:"donationId,omitempty"`
	DeliveryID *uuid.UUID `json:"deliveryId,omitempty"`
}

// Notification is an advisory message for a single user. Only the read
// flag is ever updated, by the notified user.
type Notification struct {
	ID      uuid.UUID
	UserID  uuid.UUID
	Message string
	Meta    NotificationMeta
	Read    bool
}
