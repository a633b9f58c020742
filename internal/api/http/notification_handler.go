package http

import (
	"net/http"

	"harambee-backend/internal/service"
)

type NotificationHandler struct {
	notifications service.NotificationService
}

func NewNotificationHandler(notifications service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// GET /notifications
func (h *NotificationHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	claims := UserFromContext(r.Context())
	page, pageSize := pagination(r)

	items, total, err := h.notifications.List(r.Context(), claims.UserID, page, pageSize)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondList(w, items, total, page, pageSize)
}

// POST /notifications/{id}/read
func (h *NotificationHandler) MarkAsReadHandler(w http.ResponseWriter, r *http.Request) {
	claims := UserFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.notifications.MarkAsRead(r.Context(), claims.UserID, id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "notification marked as read"})
}

// DELETE /notifications/{id}
func (h *NotificationHandler) DismissHandler(w http.ResponseWriter, r *http.Request) {
	claims := UserFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.notifications.Dismiss(r.Context(), claims.UserID, id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "notification dismissed"})
}
