package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"harambee-backend/internal/service"
)

type LinkHandler struct {
	links service.LinkService
}

func NewLinkHandler(links service.LinkService) *LinkHandler {
	return &LinkHandler{links: links}
}

// GET /links/{identifier} where identifier is a registration token, a group
// slug, or "group-slug/project-slug". Anonymous visitors get the group
// preview; authenticated visitors are additionally enrolled.
func (h *LinkHandler) ResolveHandler(w http.ResponseWriter, r *http.Request) {
	identifier := mux.Vars(r)["identifier"]

	var userID int32
	if claims := UserFromContext(r.Context()); claims != nil {
		userID = claims.UserID
	}

	resolved, err := h.links.Resolve(r.Context(), identifier, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resolved)
}
