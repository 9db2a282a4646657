package session

import (
	"net/http"
	"time"

	"memberportal/internal/models"
)

// CookieName is the browser cookie carrying the signed session token.
const CookieName = "portal_session"

// Manager drives the session lifecycle for handlers and middleware.
type Manager struct {
	store *Store
}

func NewManager(secret []byte, backend Backend, ttl time.Duration) *Manager {
	return &Manager{store: NewStore(secret, backend, ttl)}
}

// Start opens a fresh session for user, snapshotting name, email, and role.
// Any session the browser already holds is discarded so every login gets a
// new token.
func (m *Manager) Start(w http.ResponseWriter, r *http.Request, user *models.User) error {
	sess, err := m.store.Get(r, CookieName)
	if err != nil {
		return err
	}
	if !sess.IsNew && sess.ID != "" {
		if err := m.store.backend.Delete(r.Context(), sess.ID); err != nil {
			return err
		}
	}
	sess.ID = ""
	sess.Values[keyUserID] = user.ID.Hex()
	sess.Values[keyName] = user.Name
	sess.Values[keyEmail] = user.Email
	sess.Values[keyRole] = string(user.Role)
	return sess.Save(r, w)
}

// Destroy ends the session and clears the cookie. Destroying a session that
// does not exist is a no-op.
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) error {
	sess, err := m.store.Get(r, CookieName)
	if err != nil {
		return err
	}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// Current returns the authenticated session for the request. The second
// return is false when the browser holds no cookie, the token fails
// verification, or the record has expired; callers cannot tell those cases
// apart.
func (m *Manager) Current(r *http.Request) (*Record, bool) {
	sess, err := m.store.Get(r, CookieName)
	if err != nil || sess.IsNew {
		return nil, false
	}
	rec := &Record{Token: sess.ID}
	rec.UserID, _ = sess.Values[keyUserID].(string)
	rec.Name, _ = sess.Values[keyName].(string)
	rec.Email, _ = sess.Values[keyEmail].(string)
	if role, ok := sess.Values[keyRole].(string); ok {
		rec.Role = models.Role(role)
	}
	if exp, ok := sess.Values[keyExpires].(int64); ok {
		rec.ExpiresAt = time.Unix(exp, 0)
	}
	return rec, true
}
