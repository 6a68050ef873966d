package domain

import "regexp"

type (
	// DonationStatus represents the lifecycle state of a donation.
	DonationStatus string
	// NeedStatus represents the lifecycle state of a recipient need.
	NeedStatus string
	// DeliveryStatus represents the lifecycle state of a delivery.
	DeliveryStatus string
)

// List of possible donation statuses
const (
	DonationPending   DonationStatus = "pending"
	DonationMatched   DonationStatus = "matched"
	DonationClaimed   DonationStatus = "claimed"
	DonationCancelled DonationStatus = "cancelled"
	DonationExpired   DonationStatus = "expired"
)

// List of possible need statuses
const (
	NeedPending   NeedStatus = "pending"
	NeedMatched   NeedStatus = "matched"
	NeedFulfilled NeedStatus = "fulfilled"
	NeedCancelled NeedStatus = "cancelled"
)

// List of possible delivery statuses
const (
	DeliveryPending    DeliveryStatus = "PENDING"
	DeliveryAssigned   DeliveryStatus = "ASSIGNED"
	DeliveryInProgress DeliveryStatus = "IN_PROGRESS"
	DeliveryDelivered  DeliveryStatus = "DELIVERED"
	DeliveryFailed     DeliveryStatus = "FAILED"
	DeliveryCancelled  DeliveryStatus = "CANCELLED"
)

var allowedDonationStatuses = [...]DonationStatus{
	DonationPending, DonationMatched, DonationClaimed, DonationCancelled, DonationExpired,
}

var allowedNeedStatuses = [...]NeedStatus{
	NeedPending, NeedMatched, NeedFulfilled, NeedCancelled,
}

var allowedDeliveryStatuses = [...]DeliveryStatus{
	DeliveryPending, DeliveryAssigned, DeliveryInProgress,
	DeliveryDelivered, DeliveryFailed, DeliveryCancelled,
}

// Valid checks if the DonationStatus is valid
func (s DonationStatus) Valid() bool {
	for _, v := range allowedDonationStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Valid checks if the NeedStatus is valid
func (s NeedStatus) Valid() bool {
	for _, v := range allowedNeedStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Valid checks if the DeliveryStatus is valid
func (s DeliveryStatus) Valid() bool {
	for _, v := range allowedDeliveryStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether no further delivery transition is allowed.
func (s DeliveryStatus) Terminal() bool {
	switch s {
	case DeliveryDelivered, DeliveryFailed, DeliveryCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the delivery state machine allows
// moving from s to next. FAILED and CANCELLED are reachable from any
// non-terminal state.
func (s DeliveryStatus) CanTransitionTo(next DeliveryStatus) bool {
	if s.Terminal() {
		return false
	}
	switch next {
	case DeliveryAssigned:
		return s == DeliveryPending
	case DeliveryInProgress:
		return s == DeliveryAssigned
	case DeliveryDelivered:
		return s == DeliveryInProgress
	case DeliveryFailed, DeliveryCancelled:
		return true
	default:
		return false
	}
}

// rePhone is a regex to validate contact phone numbers
var rePhone = regexp.MustCompile(`^\+[0-9]{7,15}$`)

// ValidatePhone validates the contact phone format
func ValidatePhone(s string) bool {
	return rePhone.MatchString(s)
}
