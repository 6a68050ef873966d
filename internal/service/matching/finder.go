package matching

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"foodbridge-matching/internal/apperr"
	"foodbridge-matching/internal/domain"
	"foodbridge-matching/internal/logx"
	"foodbridge-matching/internal/notify"
	"foodbridge-matching/internal/service/scoring"
)

// Service finds match suggestions for freshly created donations and
// needs. It only surfaces suggestions: no entity status ever changes
// here, committing a match is the claim coordinator's job.
type Service struct {
	donations        donationRepository
	needs            needRepository
	sink             notify.Sink
	suggestions      counter
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
}

// NewService creates and configures a matching Service.
func NewService(donations donationRepository, needs needRepository, sink notify.Sink, suggestions counter, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		donations:        donations,
		needs:            needs,
		sink:             sink,
		suggestions:      suggestions,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// DonationInput carries the donor-submitted fields of a new donation.
type DonationInput struct {
	FoodType      string
	Quantity      string
	Location      string
	LocationID    uuid.UUID
	ExpiryDate    time.Time
	AvailableFrom time.Time
	AvailableTo   time.Time
}

// NeedInput carries the recipient-submitted fields of a new need.
type NeedInput struct {
	FoodType          string
	Quantity          string
	DropoffLocationID uuid.UUID
	DropoffAddress    string
	ContactPhone      string
}

// Suggestion is a ranked candidate donation for a need.
type Suggestion struct {
	Donation domain.Donation
	Score    float64
}

func validateQuantity(raw string) (string, error) {
	q := strings.TrimSpace(raw)
	v, err := strconv.ParseFloat(q, 64)
	if err != nil || v < 0 {
		return "", apperr.ErrInvalid
	}
	return q, nil
}

func (s *Service) validateDonation(in *DonationInput) error {
	if strings.TrimSpace(in.FoodType) == "" {
		return apperr.ErrInvalid
	}
	q, err := validateQuantity(in.Quantity)
	if err != nil {
		return err
	}
	in.Quantity = q
	if in.LocationID == uuid.Nil {
		return apperr.ErrInvalid
	}
	if !in.ExpiryDate.After(s.now()) {
		return apperr.ErrInvalid
	}
	return nil
}

func (s *Service) validateNeed(in *NeedInput) error {
	if strings.TrimSpace(in.FoodType) == "" {
		return apperr.ErrInvalid
	}
	q, err := validateQuantity(in.Quantity)
	if err != nil {
		return err
	}
	in.Quantity = q
	if in.DropoffLocationID == uuid.Nil {
		return apperr.ErrInvalid
	}
	if !domain.ValidatePhone(in.ContactPhone) {
		return apperr.ErrInvalid
	}
	return nil
}

// CreateDonation persists a new pending donation for the donor and
// notifies the recipients of the top-ranked pending needs with the
// same food type. The donation stays pending: suggestions never
// auto-commit a match.
func (s *Service) CreateDonation(ctx context.Context, actor domain.Actor, in DonationInput) (*domain.Donation, error) {
	if actor.Role != domain.RoleDonor || actor.ID == uuid.Nil {
		return nil, apperr.ErrInvalid
	}
	if err := s.validateDonation(&in); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	d := &domain.Donation{
		ID:            uuid.New(),
		DonorID:       actor.ID,
		FoodType:      in.FoodType,
		Quantity:      in.Quantity,
		Location:      in.Location,
		LocationID:    in.LocationID,
		ExpiryDate:    in.ExpiryDate,
		AvailableFrom: in.AvailableFrom,
		AvailableTo:   in.AvailableTo,
		Status:        domain.DonationPending,
	}
	if err := s.donations.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("%w: create donation: %v", apperr.ErrDependency, err)
	}

	needs, err := s.needs.ListPendingByFoodType(ctx, d.FoodType)
	if err != nil {
		return nil, fmt.Errorf("%w: donation candidate scan: %v", apperr.ErrDependency, err)
	}

	byID := make(map[uuid.UUID]domain.RecipientNeed, len(needs))
	cands := make([]scoring.Candidate, 0, len(needs))
	for _, n := range needs {
		byID[n.ID] = n
		cands = append(cands, scoring.Candidate{ID: n.ID, Side: needSide(n)})
	}

	for _, m := range scoring.Rank(s.now(), donationSide(*d), cands) {
		n := byID[m.ID]
		s.emit(ctx, n.RecipientID,
			fmt.Sprintf("A new %s donation may match your need", d.FoodType),
			domain.NotificationMeta{NeedID: &n.ID, DonationID: &d.ID},
		)
		s.logger.Info("match suggested",
			logx.String("event", "match_suggested"),
			logx.String("donation_id", d.ID.String()),
			logx.String("need_id", n.ID.String()),
			logx.Float64("score", m.Score),
		)
	}

	return d, nil
}

// CreateNeed persists a new pending need for the recipient, ranks the
// pending unexpired donations of the same food type, and notifies both
// the recipient and each suggested donation's donor. No status changes.
func (s *Service) CreateNeed(ctx context.Context, actor domain.Actor, in NeedInput) (*domain.RecipientNeed, error) {
	if actor.Role != domain.RoleRecipient || actor.ID == uuid.Nil {
		return nil, apperr.ErrInvalid
	}
	if err := s.validateNeed(&in); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	n := &domain.RecipientNeed{
		ID:                uuid.New(),
		RecipientID:       actor.ID,
		FoodType:          in.FoodType,
		Quantity:          in.Quantity,
		DropoffLocationID: in.DropoffLocationID,
		DropoffAddress:    in.DropoffAddress,
		ContactPhone:      in.ContactPhone,
		Status:            domain.NeedPending,
	}
	if err := s.needs.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("%w: create need: %v", apperr.ErrDependency, err)
	}

	matches, byID, err := s.rankDonationsFor(ctx, *n)
	if err != nil {
		return nil, err
	}

	for _, m := range matches {
		d := byID[m.ID]
		s.emit(ctx, n.RecipientID,
			fmt.Sprintf("A pending %s donation matches your need", d.FoodType),
			domain.NotificationMeta{NeedID: &n.ID, DonationID: &d.ID},
		)
		s.emit(ctx, d.DonorID,
			fmt.Sprintf("Your %s donation matched a recipient need", d.FoodType),
			domain.NotificationMeta{NeedID: &n.ID, DonationID: &d.ID},
		)
		s.logger.Info("match suggested",
			logx.String("event", "match_suggested"),
			logx.String("need_id", n.ID.String()),
			logx.String("donation_id", d.ID.String()),
			logx.Float64("score", m.Score),
		)
	}

	return n, nil
}

// FindMatchesForNeed returns the ranked candidate donations for an
// existing need. Read-only and idempotent: no notifications, no status
// changes.
func (s *Service) FindMatchesForNeed(ctx context.Context, needID uuid.UUID) ([]Suggestion, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	n, err := s.needs.Get(ctx, needID)
	if err != nil {
		return nil, fmt.Errorf("%w: get need: %v", apperr.ErrDependency, err)
	}
	if n == nil {
		return nil, apperr.ErrNotFound
	}

	matches, byID, err := s.rankDonationsFor(ctx, *n)
	if err != nil {
		return nil, err
	}

	out := make([]Suggestion, 0, len(matches))
	for _, m := range matches {
		out = append(out, Suggestion{Donation: byID[m.ID], Score: m.Score})
	}
	return out, nil
}

// GetDonation returns one donation by id.
func (s *Service) GetDonation(ctx context.Context, id uuid.UUID) (*domain.Donation, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	d, err := s.donations.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: get donation: %v", apperr.ErrDependency, err)
	}
	if d == nil {
		return nil, apperr.ErrNotFound
	}
	return d, nil
}

// ListDonations returns donations matching the filter.
func (s *Service) ListDonations(ctx context.Context, f domain.DonationFilter) ([]domain.Donation, error) {
	if f.Status != nil && !f.Status.Valid() {
		return nil, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	out, err := s.donations.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%w: list donations: %v", apperr.ErrDependency, err)
	}
	return out, nil
}

// GetNeed returns one need by id.
func (s *Service) GetNeed(ctx context.Context, id uuid.UUID) (*domain.RecipientNeed, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	n, err := s.needs.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: get need: %v", apperr.ErrDependency, err)
	}
	if n == nil {
		return nil, apperr.ErrNotFound
	}
	return n, nil
}

func (s *Service) rankDonationsFor(ctx context.Context, n domain.RecipientNeed) ([]scoring.Match, map[uuid.UUID]domain.Donation, error) {
	donations, err := s.donations.ListPendingUnexpired(ctx, n.FoodType, s.now())
	if err != nil {
		return nil, nil, fmt.Errorf("%w: need candidate scan: %v", apperr.ErrDependency, err)
	}

	byID := make(map[uuid.UUID]domain.Donation, len(donations))
	cands := make([]scoring.Candidate, 0, len(donations))
	for _, d := range donations {
		byID[d.ID] = d
		cands = append(cands, scoring.Candidate{ID: d.ID, Side: donationSide(d)})
	}

	return scoring.Rank(s.now(), needSide(n), cands), byID, nil
}

// emit sends one advisory notification. Failures are logged and
// swallowed: suggestions are best-effort and must not abort creation.
func (s *Service) emit(ctx context.Context, userID uuid.UUID, message string, meta domain.NotificationMeta) {
	if err := s.sink.Emit(ctx, userID, message, meta); err != nil {
		s.logger.Warn("notification emit failed",
			logx.String("user_id", userID.String()),
			logx.Any("err", err),
		)
		return
	}
	if s.suggestions != nil {
		s.suggestions.Inc()
	}
}

func donationSide(d domain.Donation) scoring.Side {
	expiry := d.ExpiryDate
	return scoring.Side{
		FoodType: d.FoodType,
		Quantity: d.Quantity,
		Address:  d.Location,
		Expiry:   &expiry,
	}
}

func needSide(n domain.RecipientNeed) scoring.Side {
	return scoring.Side{
		FoodType: n.FoodType,
		Quantity: n.Quantity,
		Address:  n.DropoffAddress,
	}
}
