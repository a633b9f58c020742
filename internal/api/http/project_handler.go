package http

import (
	"net/http"
	"time"

	"harambee-backend/internal/domain"
	"harambee-backend/internal/service"
)

type ProjectHandler struct {
	projects service.ProjectService
}

func NewProjectHandler(projects service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

type createProjectRequest struct {
	Name     string     `json:"name"`
	Target   string     `json:"target,omitempty"` // decimal amount, empty = open-ended
	Deadline *time.Time `json:"deadline,omitempty"`
}

// POST /groups/{id}/projects
func (h *ProjectHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	claims := UserFromContext(r.Context())
	groupID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req createProjectRequest
	if err := decodeJSON(r, &req); err != nil || req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	var targetCents *int64
	if req.Target != "" {
		cents, err := domain.ParseAmountCents(req.Target)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		targetCents = &cents
	}

	project, err := h.projects.CreateProject(r.Context(), claims.UserID, groupID, req.Name, targetCents, req.Deadline)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, project)
}

// GET /projects/{id}
func (h *ProjectHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	project, err := h.projects.GetProject(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, project)
}

// GET /groups/{id}/projects
func (h *ProjectHandler) ListByGroupHandler(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	projects, err := h.projects.ListByGroup(r.Context(), groupID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, projects)
}
