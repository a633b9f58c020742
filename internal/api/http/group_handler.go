package http

import (
	"net/http"

	"harambee-backend/internal/service"
)

type GroupHandler struct {
	groups service.GroupService
	ledger service.LedgerService
}

func NewGroupHandler(groups service.GroupService, ledger service.LedgerService) *GroupHandler {
	return &GroupHandler{groups: groups, ledger: ledger}
}

type createGroupRequest struct {
	Name     string `json:"name"`
	Currency string `json:"currency,omitempty"`
}

// POST /groups
func (h *GroupHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	claims := UserFromContext(r.Context())

	var req createGroupRequest
	if err := decodeJSON(r, &req); err != nil || req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	group, err := h.groups.CreateGroup(r.Context(), claims.UserID, req.Name, req.Currency)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, group)
}

// GET /groups/{id}
func (h *GroupHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	group, err := h.groups.GetGroup(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, group)
}

// POST /groups/{id}/join
func (h *GroupHandler) JoinHandler(w http.ResponseWriter, r *http.Request) {
	claims := UserFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	member, err := h.groups.JoinGroup(r.Context(), id, claims.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, member)
}

// GET /groups/{id}/members
func (h *GroupHandler) ListMembersHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	members, err := h.groups.ListMembers(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, members)
}

// GET /groups/{id}/summary
func (h *GroupHandler) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	summary, err := h.ledger.GroupSummary(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// POST /groups/{id}/members/{userID}/promote
func (h *GroupHandler) PromotePartnerHandler(w http.ResponseWriter, r *http.Request) {
	claims := UserFromContext(r.Context())
	groupID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	if err := h.groups.PromotePartner(r.Context(), claims.UserID, groupID, userID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "member promoted to accountability partner"})
}

type removeMemberRequest struct {
	Reason string `json:"reason,omitempty"`
}

// DELETE /groups/{id}/members/{userID}
func (h *GroupHandler) RemoveMemberHandler(w http.ResponseWriter, r *http.Request) {
	claims := UserFromContext(r.Context())
	groupID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	var req removeMemberRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	if err := h.groups.RemoveMember(r.Context(), claims.UserID, groupID, userID, req.Reason); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "member removed"})
}
