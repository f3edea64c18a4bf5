package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"smsguide/internal/interfaces"
	"smsguide/internal/models"
)

type ProjectHandler struct {
	repo      interfaces.ProjectRepository
	validator *validator.Validate
}

func NewProjectHandler(repo interfaces.ProjectRepository) *ProjectHandler {
	return &ProjectHandler{
		repo:      repo,
		validator: validator.New(),
	}
}

// @Tags Projects
// @Summary List projects
// @Produce json
// @Success 200 {array} models.Project
// @Router /api/v1/projects [get]
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.repo.List(r.Context())
	if err != nil {
		writeRepoError(w, err, "projects")
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProjectRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	project := &models.Project{
		Name: strings.TrimSpace(req.Name),
		Code: strings.ToLower(strings.TrimSpace(req.Code)),
	}
	if err := h.repo.Create(r.Context(), project); err != nil {
		writeRepoError(w, err, "project")
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !parseUUIDParam(w, id, "id") {
		return
	}

	var req models.UpdateProjectRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}
	if req.Name == nil && req.Code == nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", "no fields to update")
		return
	}
	if req.Code != nil {
		code := strings.ToLower(strings.TrimSpace(*req.Code))
		req.Code = &code
	}

	if err := h.repo.Update(r.Context(), id, &req); err != nil {
		writeRepoError(w, err, "project")
		return
	}
	project, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, err, "project")
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !parseUUIDParam(w, id, "id") {
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeRepoError(w, err, "project")
		return
	}
	writeJSONMessage(w, http.StatusOK, "project deleted")
}
