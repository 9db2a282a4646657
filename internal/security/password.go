// Package security derives and verifies salted one-way password digests.
package security

import "golang.org/x/crypto/bcrypt"

const (
	// DefaultCost is the bcrypt work factor used when none is configured.
	DefaultCost = 10

	minCost = 10
	maxCost = 12
)

// Hasher hashes passwords with bcrypt at a fixed work factor.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with cost clamped to the supported range.
func NewHasher(cost int) *Hasher {
	if cost < minCost {
		cost = minCost
	}
	if cost > maxCost {
		cost = maxCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt digest of raw. The salt is embedded in the
// digest, so two hashes of the same password differ.
func (h *Hasher) Hash(raw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(raw), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether raw matches the stored digest. Comparison happens
// inside bcrypt, never as string equality.
func (h *Hasher) Verify(raw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}
