package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"harambee-backend/internal/domain"
	"harambee-backend/internal/service"
)

type ContributionHandler struct {
	contributions service.ContributionService
}

func NewContributionHandler(contributions service.ContributionService) *ContributionHandler {
	return &ContributionHandler{contributions: contributions}
}

type submitContributionRequest struct {
	ProjectID      *int32 `json:"project_id,omitempty"`
	Amount         string `json:"amount"`
	PaymentType    string `json:"payment_type"`
	TransactionRef string `json:"transaction_ref,omitempty"`
	ProofOfPayment string `json:"proof_of_payment,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// POST /groups/{id}/contributions
func (h *ContributionHandler) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	claims := UserFromContext(r.Context())
	groupID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req submitContributionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	amountCents, err := domain.ParseAmountCents(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.contributions.Submit(r.Context(), service.SubmitContributionInput{
		GroupID:        groupID,
		UserID:         claims.UserID,
		ProjectID:      req.ProjectID,
		AmountCents:    amountCents,
		PaymentType:    req.PaymentType,
		TransactionRef: req.TransactionRef,
		ProofOfPayment: req.ProofOfPayment,
		Notes:          req.Notes,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

// PATCH /contributions/{id}/confirm
func (h *ContributionHandler) ConfirmHandler(w http.ResponseWriter, r *http.Request) {
	claims := UserFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	c, err := h.contributions.Confirm(r.Context(), claims.UserID, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

type rejectContributionRequest struct {
	Reason string `json:"reason,omitempty"`
}

// PATCH /contributions/{id}/reject
func (h *ContributionHandler) RejectHandler(w http.ResponseWriter, r *http.Request) {
	claims := UserFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req rejectContributionRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	c, err := h.contributions.Reject(r.Context(), claims.UserID, id, req.Reason)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// GET /contributions/{id}
func (h *ContributionHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	c, err := h.contributions.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// GET /groups/{id}/contributions?status=&page=&page_size=
func (h *ContributionHandler) ListByGroupHandler(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	status := domain.ContributionStatus(r.URL.Query().Get("status"))
	page, pageSize := pagination(r)

	items, total, err := h.contributions.ListByGroup(r.Context(), groupID, status, page, pageSize)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondList(w, items, total, page, pageSize)
}

// GET /groups/{id}/members/{userID}/contributions
func (h *ContributionHandler) ListByMemberHandler(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}
	page, pageSize := pagination(r)

	items, total, err := h.contributions.ListByMember(r.Context(), groupID, userID, page, pageSize)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondList(w, items, total, page, pageSize)
}

// GET /projects/{id}/contributions
func (h *ContributionHandler) ListByProjectHandler(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	page, pageSize := pagination(r)

	items, total, err := h.contributions.ListByProject(r.Context(), projectID, page, pageSize)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondList(w, items, total, page, pageSize)
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int32, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 32)
	if err != nil || id < 1 {
		respondError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return int32(id), true
}

func pagination(r *http.Request) (page, pageSize int32) {
	page = queryInt(r, "page", 1)
	pageSize = queryInt(r, "page_size", 20)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

func queryInt(r *http.Request, name string, fallback int32) int32 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return fallback
	}
	return int32(v)
}

func respondList(w http.ResponseWriter, items interface{}, total, page, pageSize int32) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items":     items,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}
