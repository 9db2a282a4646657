// Package middleware gates routes on session presence and role.
package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"memberportal/internal/session"
)

type contextKey struct{}

// SessionFromContext returns the session record injected by RequireLogin or
// RequireAdmin.
func SessionFromContext(ctx context.Context) (*session.Record, bool) {
	rec, ok := ctx.Value(contextKey{}).(*session.Record)
	return rec, ok
}

func withSession(r *http.Request, rec *session.Record) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), contextKey{}, rec))
}

// RequireLogin passes requests carrying a valid session and sends everyone
// else back to the landing page. An expired session takes the same path as
// no session.
func RequireLogin(m *session.Manager) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec, ok := m.Current(r)
			if !ok {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, withSession(r, rec))
		})
	}
}

// RequireAdmin passes requests carrying a valid admin session. A missing or
// expired session redirects to the login page; a valid non-admin session
// gets a 403 with no further detail.
func RequireAdmin(m *session.Manager) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec, ok := m.Current(r)
			if !ok {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			if !rec.IsAdmin() {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, withSession(r, rec))
		})
	}
}
