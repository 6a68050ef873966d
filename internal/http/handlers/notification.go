package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"foodbridge-matching/internal/logx"
)

// NotificationHandler serves HTTP endpoints for user notifications.
type NotificationHandler struct {
	store  notificationStore
	logger logx.Logger
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(logger logx.Logger, store notificationStore) *NotificationHandler {
	return &NotificationHandler{store: store, logger: logger}
}

// List handles GET /notifications?user_id=...
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.URL.Query().Get("user_id"))
	if err != nil || userID == uuid.Nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid user_id")
		return
	}

	list, err := h.store.ListForUser(r.Context(), userID)
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, notificationsToResponse(list))
}

// MarkRead handles POST /notification/{id}/read. Only the notified
// user may flip the read flag.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	var req markReadRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if req.UserID == uuid.Nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid user_id")
		return
	}

	ok, err := h.store.MarkRead(r.Context(), id, req.UserID)
	switch {
	case err != nil:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	case !ok:
		writeError(h.logger, w, r, http.StatusNotFound, "notification not found")
	default:
		writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": "ok"})
	}
}
