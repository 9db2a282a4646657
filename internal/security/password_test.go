package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashProducesBcryptDigest(t *testing.T) {
	h := NewHasher(DefaultCost)

	hash, err := h.Hash("secret")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2a$") || strings.HasPrefix(hash, "$2b$"),
		"digest should carry a bcrypt prefix, got %q", hash)
	assert.NotContains(t, hash, "secret")
}

func TestHashSaltsEveryDigest(t *testing.T) {
	h := NewHasher(DefaultCost)

	first, err := h.Hash("secret")
	require.NoError(t, err)
	second, err := h.Hash("secret")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestVerify(t *testing.T) {
	h := NewHasher(DefaultCost)
	hash, err := h.Hash("secret")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"correct password", "secret", true},
		{"wrong password", "Secret", false},
		{"empty password", "", false},
		{"prefix of password", "secre", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.Verify(tt.password, hash))
		})
	}
}

func TestNewHasherClampsCost(t *testing.T) {
	tests := []struct {
		name string
		cost int
		want int
	}{
		{"below range", 4, 10},
		{"in range", 11, 11},
		{"above range", 14, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := NewHasher(tt.cost).Hash("secret")
			require.NoError(t, err)
			got, err := bcrypt.Cost([]byte(hash))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
