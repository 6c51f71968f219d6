package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"greenlight/internal/catalog"
)

type createProjectRequest struct {
	Title        string `json:"title"`
	Kind         string `json:"kind"`
	Category     string `json:"category"`
	Status       string `json:"status"`
	TargetAmount int64  `json:"target_amount"`
	RaisedAmount int64  `json:"raised_amount"`
	PosterID     string `json:"poster_id"`
}

type updateProjectRequest struct {
	Title        *string `json:"title"`
	Kind         *string `json:"kind"`
	Category     *string `json:"category"`
	Status       *string `json:"status"`
	TargetAmount *int64  `json:"target_amount"`
	RaisedAmount *int64  `json:"raised_amount"`
	PosterID     *string `json:"poster_id"`
}

func (h *Handler) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	project, err := h.catalog.CreateProject(r.Context(), catalog.ProjectInput{
		Title:        req.Title,
		Kind:         catalog.ProjectKind(req.Kind),
		Category:     req.Category,
		Status:       catalog.ProjectStatus(req.Status),
		TargetAmount: req.TargetAmount,
		RaisedAmount: req.RaisedAmount,
		PosterID:     req.PosterID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProjectResponse(project))
}

func (h *Handler) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var req updateProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	patch := catalog.ProjectPatch{
		Title:        req.Title,
		Category:     req.Category,
		TargetAmount: req.TargetAmount,
		RaisedAmount: req.RaisedAmount,
		PosterID:     req.PosterID,
	}
	if req.Kind != nil {
		kind := catalog.ProjectKind(*req.Kind)
		patch.Kind = &kind
	}
	if req.Status != nil {
		status := catalog.ProjectStatus(*req.Status)
		patch.Status = &status
	}
	project, err := h.catalog.UpdateProject(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProjectResponse(project))
}

func (h *Handler) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteProject(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleArchiveProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.catalog.ArchiveProject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProjectResponse(project))
}

func (h *Handler) handleGetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.catalog.GetProject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProjectResponse(project))
}

func (h *Handler) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects := h.catalog.ListProjects(r.Context(), catalog.ProjectFilter{
		Status: catalog.ProjectStatus(r.URL.Query().Get("status")),
		Kind:   catalog.ProjectKind(r.URL.Query().Get("kind")),
	})
	out := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}
