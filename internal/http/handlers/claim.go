package handlers

import (
	"errors"
	"net/http"

	"foodbridge-matching/internal/apperr"
	"foodbridge-matching/internal/logx"
)

// ClaimHandler serves HTTP endpoints for claiming donations.
type ClaimHandler struct {
	usecase claimUsecase
	logger  logx.Logger
}

// NewClaimHandler creates a new ClaimHandler.
func NewClaimHandler(logger logx.Logger, uc claimUsecase) *ClaimHandler {
	return &ClaimHandler{usecase: uc, logger: logger}
}

// Claim handles POST /claim. A 409 means another claimant won the race
// and the caller may retry with a different donation.
func (h *ClaimHandler) Claim(w http.ResponseWriter, r *http.Request) {
	var req claimRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	res, err := h.usecase.Claim(r.Context(), req.NeedID, req.DonationID)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, claimToResponse(res))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "not found")
	case errors.Is(err, apperr.ErrConflict):
		writeError(h.logger, w, r, http.StatusConflict, "already claimed")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// ClaimDirect handles POST /claim/direct for claims without a
// pre-registered need.
func (h *ClaimHandler) ClaimDirect(w http.ResponseWriter, r *http.Request) {
	var req claimDirectRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	d, err := h.usecase.ClaimDirect(r.Context(), req.DonationID, req.RecipientID, req.toDetails())
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, donationToResponse(d))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "not found")
	case errors.Is(err, apperr.ErrConflict):
		writeError(h.logger, w, r, http.StatusConflict, "already claimed")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
