package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("PORT", "")
	t.Setenv("MONGO_URI", "")
	t.Setenv("MONGO_DATABASE", "")

	path := writeConfig(t, `
port: "9090"
store_backend: memory
session_backend: memory
session_ttl: 30m
bcrypt_cost: 12
password_max_len: 64
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "memory", cfg.StoreBackend)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, 64, cfg.PasswordMaxLen)
	assert.Equal(t, "test-secret", cfg.SessionSecret)

	ttl, err := cfg.TTL()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, ttl)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("PORT", "3000")
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("MONGO_DATABASE", "portal")

	path := writeConfig(t, `
port: "9090"
mongo_uri: mongodb://localhost:27017
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "mongodb://db:27017", cfg.MongoURI)
	assert.Equal(t, "portal", cfg.MongoDatabase)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("MONGO_URI", "mongodb://db:27017")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "mongo", cfg.StoreBackend)
	assert.Equal(t, "1h", cfg.SessionTTL)
	assert.Equal(t, 20, cfg.PasswordMaxLen)
}

func TestLoadFailsWithoutSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	_, err := Load(writeConfig(t, `
store_backend: memory
session_backend: memory
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("MONGO_URI", "")

	tests := []struct {
		name string
		body string
	}{
		{"unknown store backend", "store_backend: dynamo\nsession_backend: memory\n"},
		{"unknown session backend", "store_backend: memory\nsession_backend: redis\n"},
		{"bad ttl", "store_backend: memory\nsession_backend: memory\nsession_ttl: soon\n"},
		{"mongo without uri", "store_backend: mongo\nsession_backend: memory\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}
