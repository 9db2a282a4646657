package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"memberportal/internal/config"
	"memberportal/internal/http/router"
	"memberportal/internal/security"
	"memberportal/internal/session"
	"memberportal/internal/store"
	"memberportal/internal/validate"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load("config/app.yaml")
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}
	ttl, err := cfg.TTL()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// An unreachable store is fatal: serving without persistence would
	// accept signups it cannot keep.
	var db *mongo.Database
	if cfg.StoreBackend == "mongo" || cfg.SessionBackend == "mongo" {
		db, err = connectMongo(ctx, cfg)
		if err != nil {
			logger.Fatal("mongo connect", zap.Error(err))
		}
	}

	var users store.Store
	switch cfg.StoreBackend {
	case "mongo":
		m := store.NewMongo(db)
		if err := m.EnsureIndexes(ctx); err != nil {
			logger.Fatal("user indexes", zap.Error(err))
		}
		users = m
	default:
		users = store.NewMemory()
	}

	var backend session.Backend
	switch cfg.SessionBackend {
	case "mongo":
		b := session.NewMongoBackend(db)
		if err := b.EnsureIndexes(ctx); err != nil {
			logger.Fatal("session indexes", zap.Error(err))
		}
		backend = b
	default:
		backend = session.NewMemoryBackend()
	}

	sessions := session.NewManager([]byte(cfg.SessionSecret), backend, ttl)
	hasher := security.NewHasher(cfg.BcryptCost)
	validator := validate.New(cfg.PasswordMaxLen)

	r := router.Setup(users, sessions, hasher, validator, logger)

	logger.Info("starting server", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}

func connectMongo(ctx context.Context, cfg *config.Config) (*mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return client.Database(cfg.MongoDatabase), nil
}
