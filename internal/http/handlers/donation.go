package handlers

import (
	"errors"
	"net/http"

	"foodbridge-matching/internal/apperr"
	"foodbridge-matching/internal/domain"
	"foodbridge-matching/internal/logx"
)

// DonationHandler serves HTTP endpoints for donation submissions.
type DonationHandler struct {
	usecase matchUsecase
	logger  logx.Logger
}

// NewDonationHandler creates a new DonationHandler.
func NewDonationHandler(logger logx.Logger, uc matchUsecase) *DonationHandler {
	return &DonationHandler{usecase: uc, logger: logger}
}

// Create handles POST /donation.
func (h *DonationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createDonationRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	actor := domain.Actor{Role: domain.RoleDonor, ID: req.DonorID}
	d, err := h.usecase.CreateDonation(r.Context(), actor, req.toInput())
	switch {
	case err == nil:
		w.Header().Set("Location", "/donation/"+d.ID.String())
		writeJSON(h.logger, w, r, http.StatusCreated, donationToResponse(*d))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Get handles GET /donation/{id}.
func (h *DonationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	d, err := h.usecase.GetDonation(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, donationToResponse(*d))
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "donation not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// List handles GET /donations with optional food_type and status query
// filters.
func (h *DonationHandler) List(w http.ResponseWriter, r *http.Request) {
	var f domain.DonationFilter
	if ft := r.URL.Query().Get("food_type"); ft != "" {
		f.FoodType = &ft
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		st := domain.DonationStatus(raw)
		f.Status = &st
	}

	list, err := h.usecase.ListDonations(r.Context(), f)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, donationsToResponse(list))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid status filter")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
