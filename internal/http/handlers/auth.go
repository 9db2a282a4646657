package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"memberportal/internal/security"
	"memberportal/internal/session"
	"memberportal/internal/store"
	"memberportal/internal/validate"
)

type AuthHandler struct {
	store    store.Store
	hasher   *security.Hasher
	sessions *session.Manager
	validate *validate.Validator
	log      *zap.Logger
}

func NewAuthHandler(st store.Store, h *security.Hasher, sm *session.Manager, v *validate.Validator, log *zap.Logger) *AuthHandler {
	return &AuthHandler{store: st, hasher: h, sessions: sm, validate: v, log: log}
}

// SignupPage tells anonymous browsers what the signup endpoint expects.
func (h *AuthHandler) SignupPage(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusOK, "Sign up with your name, email, and password.")
}

// Signup registers a new account and logs the browser straight in.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeMessage(w, http.StatusBadRequest, "All fields are required and must be valid.")
		return
	}
	in, err := h.validate.Signup(r.PostForm)
	if err != nil {
		h.log.Warn("signup rejected", zap.Error(err))
		writeMessage(w, http.StatusBadRequest, "All fields are required and must be valid.")
		return
	}

	// Friendly pre-check; the unique index on email is what actually
	// prevents a concurrent duplicate.
	if _, err := h.store.FindByEmail(r.Context(), in.Email); err == nil {
		writeMessage(w, http.StatusConflict, "Email already registered.")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		h.internal(w, "signup lookup", err)
		return
	}

	hash, err := h.hasher.Hash(in.Password)
	if err != nil {
		h.internal(w, "password hash", err)
		return
	}
	user, err := h.store.Create(r.Context(), in.Name, in.Email, hash)
	if errors.Is(err, store.ErrDuplicateEmail) {
		writeMessage(w, http.StatusConflict, "Email already registered.")
		return
	}
	if err != nil {
		h.internal(w, "create user", err)
		return
	}
	if err := h.sessions.Start(w, r, user); err != nil {
		h.internal(w, "start session", err)
		return
	}
	h.log.Info("user signed up", zap.String("user_id", user.ID.Hex()))
	http.Redirect(w, r, "/members", http.StatusSeeOther)
}

// LoginPage tells anonymous browsers what the login endpoint expects.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusOK, "Log in with your email and password.")
}

// Login verifies credentials. The response is identical whether the email
// is unknown or the password is wrong; only the log line differs.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	in, err := h.validate.Login(r.PostForm)
	if err != nil {
		h.log.Warn("login rejected", zap.Error(err))
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	user, err := h.store.FindByEmail(r.Context(), in.Email)
	if errors.Is(err, store.ErrNotFound) {
		h.log.Warn("login failed: unknown email")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.internal(w, "login lookup", err)
		return
	}
	if !h.hasher.Verify(in.Password, user.PasswordHash) {
		h.log.Warn("login failed: bad password", zap.String("user_id", user.ID.Hex()))
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err := h.sessions.Start(w, r, user); err != nil {
		h.internal(w, "start session", err)
		return
	}
	h.log.Info("user logged in", zap.String("user_id", user.ID.Hex()))
	http.Redirect(w, r, "/members", http.StatusSeeOther)
}

// Logout destroys the session. Logging out twice is harmless.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(w, r); err != nil {
		h.internal(w, "destroy session", err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) internal(w http.ResponseWriter, op string, err error) {
	h.log.Error(op, zap.Error(err))
	writeMessage(w, http.StatusInternalServerError, "Something went wrong.")
}
