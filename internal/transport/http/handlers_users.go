package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"greenlight/internal/catalog"
)

type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type userStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := h.catalog.CreateUser(r.Context(), catalog.UserInput{
		Name:  req.Name,
		Email: req.Email,
		Role:  catalog.UserRole(req.Role),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

func (h *Handler) handleUserStatus(w http.ResponseWriter, r *http.Request) {
	var req userStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := h.catalog.TransitionUserStatus(r.Context(), chi.URLParam(r, "id"), catalog.UserStatus(req.Status))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.catalog.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users := h.catalog.ListUsers(r.Context(), catalog.UserFilter{
		Role:   catalog.UserRole(r.URL.Query().Get("role")),
		Status: catalog.UserStatus(r.URL.Query().Get("status")),
	})
	out := make([]userResponse, 0, len(users))
	for _, user := range users {
		out = append(out, toUserResponse(user))
	}
	writeJSON(w, http.StatusOK, out)
}
