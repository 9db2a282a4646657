// Package session implements server-side browser sessions: the cookie
// carries only a signed opaque token, and the token references a record in a
// pluggable backend. A record past its expiry is indistinguishable from no
// record at all.
package session

import (
	"context"
	"sync"
	"time"

	"memberportal/internal/models"
)

// Record is the server-held state for one authenticated browser. Name,
// Email, and Role are snapshots taken when the session started; they are
// not re-read from the user record on later requests.
type Record struct {
	Token     string      `bson:"_id"`
	UserID    string      `bson:"user_id"`
	Name      string      `bson:"name"`
	Email     string      `bson:"email"`
	Role      models.Role `bson:"role"`
	CreatedAt time.Time   `bson:"created_at"`
	ExpiresAt time.Time   `bson:"expires_at"`
}

// Expired reports whether the record is past its expiry.
func (r *Record) Expired() bool { return time.Now().After(r.ExpiresAt) }

// IsAdmin reports whether the session was started by an admin.
func (r *Record) IsAdmin() bool { return r.Role == models.RoleAdmin }

// Backend persists session records keyed by token. Find returns (nil, nil)
// when the token matches nothing; expired records count as absent. Delete
// of an absent token is a no-op.
type Backend interface {
	Save(ctx context.Context, rec *Record) error
	Find(ctx context.Context, token string) (*Record, error)
	Delete(ctx context.Context, token string) error
}

// MemoryBackend keeps records in process memory. Expiry is lazy: an expired
// record is dropped the first time it is read.
type MemoryBackend struct {
	mu   sync.Mutex
	recs map[string]Record
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{recs: make(map[string]Record)}
}

func (b *MemoryBackend) Save(_ context.Context, rec *Record) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.recs[rec.Token] = *rec
	return nil
}

func (b *MemoryBackend) Find(_ context.Context, token string) (*Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	rec, ok := b.recs[token]
	if !ok {
		return nil, nil
	}
	if rec.Expired() {
		delete(b.recs, token)
		return nil, nil
	}
	out := rec
	return &out, nil
}

func (b *MemoryBackend) Delete(_ context.Context, token string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.recs, token)
	return nil
}
