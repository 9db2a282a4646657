package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"memberportal/internal/http/middleware"
	"memberportal/internal/session"
	"memberportal/internal/store"
	"memberportal/internal/validate"
)

type MemberHandler struct {
	store    store.Store
	sessions *session.Manager
	validate *validate.Validator
	log      *zap.Logger
}

func NewMemberHandler(st store.Store, sm *session.Manager, v *validate.Validator, log *zap.Logger) *MemberHandler {
	return &MemberHandler{store: st, sessions: sm, validate: v, log: log}
}

// Home is the anonymous landing page. It greets a logged-in member by name
// but requires nothing.
func (h *MemberHandler) Home(w http.ResponseWriter, r *http.Request) {
	if rec, ok := h.sessions.Current(r); ok {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Welcome back.",
			"user":    map[string]string{"name": rec.Name, "role": string(rec.Role)},
		})
		return
	}
	writeMessage(w, http.StatusOK, "Welcome. Sign up or log in to continue.")
}

// Members shows the signed-in member their own session snapshot.
func (h *MemberHandler) Members(w http.ResponseWriter, r *http.Request) {
	rec, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user": map[string]string{
			"id":    rec.UserID,
			"name":  rec.Name,
			"email": rec.Email,
			"role":  string(rec.Role),
		},
	})
}

// Lookup finds a member by exact name. The q parameter is validated as a
// primitive string before it becomes a store filter.
func (h *MemberHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	q, err := h.validate.Lookup(r.URL.Query())
	if err != nil {
		h.log.Warn("lookup rejected", zap.Error(err))
		writeMessage(w, http.StatusBadRequest, "Invalid lookup.")
		return
	}
	user, err := h.store.FindByName(r.Context(), q)
	if errors.Is(err, store.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "No such member.")
		return
	}
	if err != nil {
		h.log.Error("lookup", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Something went wrong.")
		return
	}
	writeJSON(w, http.StatusOK, user.Public())
}
