package handlers

import (
	"errors"
	"net/http"

	"foodbridge-matching/internal/apperr"
	"foodbridge-matching/internal/domain"
	"foodbridge-matching/internal/logx"
)

// NeedHandler serves HTTP endpoints for recipient needs.
type NeedHandler struct {
	usecase matchUsecase
	logger  logx.Logger
}

// NewNeedHandler creates a new NeedHandler.
func NewNeedHandler(logger logx.Logger, uc matchUsecase) *NeedHandler {
	return &NeedHandler{usecase: uc, logger: logger}
}

// Create handles POST /need.
func (h *NeedHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createNeedRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	actor := domain.Actor{Role: domain.RoleRecipient, ID: req.RecipientID}
	n, err := h.usecase.CreateNeed(r.Context(), actor, req.toInput())
	switch {
	case err == nil:
		w.Header().Set("Location", "/need/"+n.ID.String())
		writeJSON(h.logger, w, r, http.StatusCreated, needToResponse(*n))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Get handles GET /need/{id}.
func (h *NeedHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	n, err := h.usecase.GetNeed(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, needToResponse(*n))
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "need not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Matches handles GET /need/{id}/matches.
func (h *NeedHandler) Matches(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	list, err := h.usecase.FindMatchesForNeed(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, suggestionsToResponse(list))
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "need not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
