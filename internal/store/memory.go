package store

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"memberportal/internal/models"
)

// Memory is an in-process Store used by tests and the "memory" backend.
// The mutex gives Create the same atomicity the unique index gives Mongo.
type Memory struct {
	mu    sync.RWMutex
	users map[string]*models.User // keyed by hex id
}

func NewMemory() *Memory {
	return &Memory{users: make(map[string]*models.User)}
}

func (s *Memory) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Memory) FindByName(_ context.Context, name string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Name == name {
			out := *u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Memory) Create(_ context.Context, name, email, passwordHash string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return nil, ErrDuplicateEmail
		}
	}
	u := &models.User{
		ID:           primitive.NewObjectID(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         models.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}
	s.users[u.ID.Hex()] = u
	out := *u
	return &out, nil
}

func (s *Memory) SetRole(_ context.Context, id string, role models.Role) error {
	if !role.Valid() {
		return ErrInvalidRole
	}
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	u.Role = role
	return nil
}

func (s *Memory) ListAll(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out := *u
		out.PasswordHash = ""
		users = append(users, out)
	}
	return users, nil
}
