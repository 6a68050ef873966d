package handlers

import (
	"context"

	"github.com/google/uuid"

	"foodbridge-matching/internal/domain"
	"foodbridge-matching/internal/repository"
	"foodbridge-matching/internal/service/claim"
	"foodbridge-matching/internal/service/deliveries"
	"foodbridge-matching/internal/service/matching"
)

type matchUsecase interface {
	CreateDonation(ctx context.Context, actor domain.Actor, in matching.DonationInput) (*domain.Donation, error)
	CreateNeed(ctx context.Context, actor domain.Actor, in matching.NeedInput) (*domain.RecipientNeed, error)
	FindMatchesForNeed(ctx context.Context, needID uuid.UUID) ([]matching.Suggestion, error)
	GetDonation(ctx context.Context, id uuid.UUID) (*domain.Donation, error)
	ListDonations(ctx context.Context, f domain.DonationFilter) ([]domain.Donation, error)
	GetNeed(ctx context.Context, id uuid.UUID) (*domain.RecipientNeed, error)
}

// NewMatchUsecase wires a matching.Service into a matchUsecase.
func NewMatchUsecase(svc *matching.Service) matchUsecase {
	return svc
}

type claimUsecase interface {
	Claim(ctx context.Context, needID, donationID uuid.UUID) (domain.ClaimResult, error)
	ClaimDirect(ctx context.Context, donationID, recipientID uuid.UUID, details claim.DirectDetails) (domain.Donation, error)
}

// NewClaimUsecase wires a claim.Service into a claimUsecase.
func NewClaimUsecase(svc *claim.Service) claimUsecase {
	return svc
}

type deliveryUsecase interface {
	Assign(ctx context.Context, deliveryID, staffID uuid.UUID) (domain.Delivery, error)
	UpdateStatus(ctx context.Context, deliveryID uuid.UUID, next domain.DeliveryStatus) (domain.Delivery, error)
}

// NewDeliveryUsecase wires a deliveries.Service into a deliveryUsecase.
func NewDeliveryUsecase(svc *deliveries.Service) deliveryUsecase {
	return svc
}

type notificationStore interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) (bool, error)
}

// NewNotificationStore wires the notification repository into a
// notificationStore.
func NewNotificationStore(repo *repository.NotificationRepo) notificationStore {
	return repo
}
