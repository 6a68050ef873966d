package handlers

import (
	"foodbridge-matching/internal/domain"
	"foodbridge-matching/internal/service/claim"
	"foodbridge-matching/internal/service/matching"
)

func (req createDonationRequest) toInput() matching.DonationInput {
	return matching.DonationInput{
		FoodType:      req.FoodType,
		Quantity:      req.Quantity,
		Location:      req.Location,
		LocationID:    req.LocationID,
		ExpiryDate:    req.ExpiryDate,
		AvailableFrom: req.AvailableFrom,
		AvailableTo:   req.AvailableTo,
	}
}

func (req createNeedRequest) toInput() matching.NeedInput {
	return matching.NeedInput{
		FoodType:          req.FoodType,
		Quantity:          req.Quantity,
		DropoffLocationID: req.DropoffLocationID,
		DropoffAddress:    req.DropoffAddress,
		ContactPhone:      req.ContactPhone,
	}
}

func (req claimDirectRequest) toDetails() claim.DirectDetails {
	return claim.DirectDetails{
		DropoffLocationID: req.DropoffLocationID,
		ContactPhone:      req.ContactPhone,
	}
}

func donationToResponse(d domain.Donation) donationDTO {
	return donationDTO{
		ID:                   d.ID,
		DonorID:              d.DonorID,
		FoodType:             d.FoodType,
		Quantity:             d.Quantity,
		Location:             d.Location,
		LocationID:           d.LocationID,
		ExpiryDate:           d.ExpiryDate,
		AvailableFrom:        d.AvailableFrom,
		AvailableTo:          d.AvailableTo,
		Status:               d.Status,
		MatchedNeedID:        d.MatchedNeedID,
		ClaimedByRecipientID: d.ClaimedByRecipientID,
	}
}

func needToResponse(n domain.RecipientNeed) needDTO {
	return needDTO{
		ID:                n.ID,
		RecipientID:       n.RecipientID,
		FoodType:          n.FoodType,
		Quantity:          n.Quantity,
		DropoffLocationID: n.DropoffLocationID,
		DropoffAddress:    n.DropoffAddress,
		ContactPhone:      n.ContactPhone,
		Status:            n.Status,
		MatchedDonationID: n.MatchedDonationID,
	}
}

func deliveryToResponse(d domain.Delivery) deliveryDTO {
	return deliveryDTO{
		ID:                d.ID,
		DonationID:        d.DonationID,
		PickupLocationID:  d.PickupLocationID,
		DropoffLocationID: d.DropoffLocationID,
		RecipientPhone:    d.RecipientPhone,
		Status:            d.Status,
		LogisticsStaffID:  d.LogisticsStaffID,
		DeliveredAt:       d.DeliveredAt,
	}
}

func donationsToResponse(list []domain.Donation) []donationDTO {
	out := make([]donationDTO, 0, len(list))
	for _, d := range list {
		out = append(out, donationToResponse(d))
	}
	return out
}

func suggestionsToResponse(list []matching.Suggestion) []suggestionDTO {
	out := make([]suggestionDTO, 0, len(list))
	for _, s := range list {
		out = append(out, suggestionDTO{
			Donation: donationToResponse(s.Donation),
			Score:    s.Score,
		})
	}
	return out
}

func claimToResponse(res domain.ClaimResult) claimResponse {
	return claimResponse{
		Need:     needToResponse(res.Need),
		Donation: donationToResponse(res.Donation),
		Delivery: deliveryToResponse(res.Delivery),
	}
}

func notificationsToResponse(list []domain.Notification) []notificationDTO {
	out := make([]notificationDTO, 0, len(list))
	for _, n := range list {
		out = append(out, notificationDTO{
			ID:      n.ID,
			UserID:  n.UserID,
			Message: n.Message,
			Meta:    n.Meta,
			Read:    n.Read,
		})
	}
	return out
}
