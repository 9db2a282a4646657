package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"memberportal/internal/http/middleware"
	"memberportal/internal/models"
	"memberportal/internal/session"
)

func login(t *testing.T, m *session.Manager, role models.Role) *http.Cookie {
	t.Helper()
	u := &models.User{
		ID:    primitive.NewObjectID(),
		Name:  "Ann",
		Email: "a@x.com",
		Role:  role,
	}
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/login", nil)
	require.NoError(t, m.Start(w, r, u))
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

// okHandler proves the guard injected the session into the context.
func okHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec, ok := middleware.SessionFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, "Ann", rec.Name)
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireLogin(t *testing.T) {
	m := session.NewManager([]byte("test-secret"), session.NewMemoryBackend(), time.Hour)
	guarded := middleware.RequireLogin(m)(okHandler(t))

	t.Run("anonymous is sent to the landing page", func(t *testing.T) {
		w := httptest.NewRecorder()
		guarded.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/members", nil))
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
	})

	t.Run("valid session passes", func(t *testing.T) {
		cookie := login(t, m, models.RoleUser)
		r := httptest.NewRequest(http.MethodGet, "/members", nil)
		r.AddCookie(cookie)
		w := httptest.NewRecorder()
		guarded.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireLoginTreatsExpiredAsAbsent(t *testing.T) {
	m := session.NewManager([]byte("test-secret"), session.NewMemoryBackend(), 10*time.Millisecond)
	guarded := middleware.RequireLogin(m)(okHandler(t))
	cookie := login(t, m, models.RoleUser)

	time.Sleep(30 * time.Millisecond)

	r := httptest.NewRequest(http.MethodGet, "/members", nil)
	r.AddCookie(cookie)
	w := httptest.NewRecorder()
	guarded.ServeHTTP(w, r)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestRequireAdmin(t *testing.T) {
	m := session.NewManager([]byte("test-secret"), session.NewMemoryBackend(), time.Hour)
	guarded := middleware.RequireAdmin(m)(okHandler(t))

	t.Run("anonymous is sent to login", func(t *testing.T) {
		w := httptest.NewRecorder()
		guarded.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("valid non-admin gets a bare 403", func(t *testing.T) {
		cookie := login(t, m, models.RoleUser)
		r := httptest.NewRequest(http.MethodGet, "/admin", nil)
		r.AddCookie(cookie)
		w := httptest.NewRecorder()
		guarded.ServeHTTP(w, r)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.NotContains(t, w.Body.String(), "Ann")
	})

	t.Run("admin passes", func(t *testing.T) {
		cookie := login(t, m, models.RoleAdmin)
		r := httptest.NewRequest(http.MethodGet, "/admin", nil)
		r.AddCookie(cookie)
		w := httptest.NewRecorder()
		guarded.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireAdminTreatsExpiredAsAbsent(t *testing.T) {
	m := session.NewManager([]byte("test-secret"), session.NewMemoryBackend(), 10*time.Millisecond)
	guarded := middleware.RequireAdmin(m)(okHandler(t))
	cookie := login(t, m, models.RoleAdmin)

	time.Sleep(30 * time.Millisecond)

	r := httptest.NewRequest(http.MethodGet, "/admin", nil)
	r.AddCookie(cookie)
	w := httptest.NewRecorder()
	guarded.ServeHTTP(w, r)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}
