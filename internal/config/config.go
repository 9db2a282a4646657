package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Config is the full server configuration. The session secret comes from
// the environment only; everything else may live in the YAML file, with
// PORT, MONGO_URI, and MONGO_DATABASE overridable from the environment.
type Config struct {
	Port           string `yaml:"port"`
	StoreBackend   string `yaml:"store_backend"`   // mongo | memory
	MongoURI       string `yaml:"mongo_uri"`
	MongoDatabase  string `yaml:"mongo_database"`
	SessionBackend string `yaml:"session_backend"` // mongo | memory
	SessionTTL     string `yaml:"session_ttl"`     // Go duration
	BcryptCost     int    `yaml:"bcrypt_cost"`
	PasswordMaxLen int    `yaml:"password_max_len"`
	SessionSecret  string `yaml:"-"`
}

// Default returns the configuration used when the file omits a field.
func Default() *Config {
	return &Config{
		Port:           "8080",
		StoreBackend:   "mongo",
		MongoDatabase:  "memberportal",
		SessionBackend: "mongo",
		SessionTTL:     "1h",
		BcryptCost:     10,
		PasswordMaxLen: 20,
	}
}

// Load reads the YAML file, applies environment overrides, and validates
// the result. A missing file is fine; a missing session secret is not.
func Load(filename string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(filename)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", filename, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}
	applyEnv(cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		cfg.MongoURI = v
	}
	if v := os.Getenv("MONGO_DATABASE"); v != "" {
		cfg.MongoDatabase = v
	}
	cfg.SessionSecret = os.Getenv("SESSION_SECRET")
}

// TTL returns the parsed session lifetime.
func (c *Config) TTL() (time.Duration, error) {
	return time.ParseDuration(c.SessionTTL)
}

func (c *Config) validate() error {
	if c.SessionSecret == "" {
		return errors.New("SESSION_SECRET is not set")
	}
	if _, err := c.TTL(); err != nil {
		return fmt.Errorf("invalid session_ttl: %w", err)
	}
	switch c.StoreBackend {
	case "mongo", "memory":
	default:
		return fmt.Errorf("unknown store_backend %q", c.StoreBackend)
	}
	switch c.SessionBackend {
	case "mongo", "memory":
	default:
		return fmt.Errorf("unknown session_backend %q", c.SessionBackend)
	}
	if (c.StoreBackend == "mongo" || c.SessionBackend == "mongo") && c.MongoURI == "" {
		return errors.New("mongo_uri is required for the mongo backend")
	}
	return nil
}
