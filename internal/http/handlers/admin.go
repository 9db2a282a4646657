package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"memberportal/internal/models"
	"memberportal/internal/store"
	"memberportal/internal/validate"
)

type AdminHandler struct {
	store    store.Store
	validate *validate.Validator
	log      *zap.Logger
}

func NewAdminHandler(st store.Store, v *validate.Validator, log *zap.Logger) *AdminHandler {
	return &AdminHandler{store: st, validate: v, log: log}
}

// ListUsers returns every account. The store projection keeps password
// hashes out of the listing.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListAll(r.Context())
	if err != nil {
		h.log.Error("list users", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Something went wrong.")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// Promote grants the admin role to the user named by the id parameter.
func (h *AdminHandler) Promote(w http.ResponseWriter, r *http.Request) {
	h.setRole(w, r, models.RoleAdmin)
}

// Demote returns the user named by the id parameter to the user role.
func (h *AdminHandler) Demote(w http.ResponseWriter, r *http.Request) {
	h.setRole(w, r, models.RoleUser)
}

func (h *AdminHandler) setRole(w http.ResponseWriter, r *http.Request, role models.Role) {
	id, err := h.validate.AdminID(r.URL.Query())
	if err != nil {
		h.log.Warn("role update rejected", zap.Error(err))
		writeMessage(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	err = h.store.SetRole(r.Context(), id, role)
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrInvalidID) {
		writeMessage(w, http.StatusNotFound, "Invalid user ID")
		return
	}
	if err != nil {
		h.log.Error("set role", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Something went wrong.")
		return
	}
	h.log.Info("role updated", zap.String("user_id", id), zap.String("role", string(role)))
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}
