package session

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"

	"memberportal/internal/models"
)

// Keys used inside the gorilla session values.
const (
	keyUserID  = "user_id"
	keyName    = "name"
	keyEmail   = "email"
	keyRole    = "role"
	keyExpires = "expires_at"
)

// Store implements sessions.Store. The browser cookie holds only the
// securecookie-signed token; everything else lives in the Backend.
type Store struct {
	codecs  []securecookie.Codec
	backend Backend
	ttl     time.Duration
	opts    *sessions.Options
}

// NewStore builds a Store signing cookies with secret. The cookie is
// httpOnly and its max-age equals the server-side TTL.
func NewStore(secret []byte, backend Backend, ttl time.Duration) *Store {
	return &Store{
		codecs:  securecookie.CodecsFromPairs(secret),
		backend: backend,
		ttl:     ttl,
		opts: &sessions.Options{
			Path:     "/",
			MaxAge:   int(ttl / time.Second),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
	}
}

// Get returns the session for the request, cached per request by the
// gorilla registry.
func (s *Store) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New loads the session referenced by the request cookie, or returns a
// fresh one. A missing, tampered, or expired session yields a fresh session
// rather than an error the handler must branch on.
func (s *Store) New(r *http.Request, name string) (*sessions.Session, error) {
	sess := sessions.NewSession(s, name)
	opts := *s.opts
	sess.Options = &opts
	sess.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return sess, nil
	}
	var token string
	if err := securecookie.DecodeMulti(name, c.Value, &token, s.codecs...); err != nil {
		return sess, nil
	}
	rec, err := s.backend.Find(r.Context(), token)
	if err != nil {
		return sess, err
	}
	if rec == nil {
		return sess, nil
	}
	sess.ID = token
	sess.IsNew = false
	sess.Values[keyUserID] = rec.UserID
	sess.Values[keyName] = rec.Name
	sess.Values[keyEmail] = rec.Email
	sess.Values[keyRole] = string(rec.Role)
	sess.Values[keyExpires] = rec.ExpiresAt.Unix()
	return sess, nil
}

// Save persists the session record and writes the signed cookie. A session
// saved with MaxAge < 0 is deleted from both places.
func (s *Store) Save(r *http.Request, w http.ResponseWriter, sess *sessions.Session) error {
	if sess.Options.MaxAge < 0 {
		if sess.ID != "" {
			if err := s.backend.Delete(r.Context(), sess.ID); err != nil {
				return err
			}
		}
		http.SetCookie(w, sessions.NewCookie(sess.Name(), "", sess.Options))
		return nil
	}

	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	rec := &Record{
		Token:     sess.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	rec.UserID, _ = sess.Values[keyUserID].(string)
	rec.Name, _ = sess.Values[keyName].(string)
	rec.Email, _ = sess.Values[keyEmail].(string)
	if role, ok := sess.Values[keyRole].(string); ok {
		rec.Role = models.Role(role)
	}
	sess.Values[keyExpires] = rec.ExpiresAt.Unix()
	if err := s.backend.Save(r.Context(), rec); err != nil {
		return err
	}
	encoded, err := securecookie.EncodeMulti(sess.Name(), sess.ID, s.codecs...)
	if err != nil {
		return err
	}
	http.SetCookie(w, sessions.NewCookie(sess.Name(), encoded, sess.Options))
	return nil
}
