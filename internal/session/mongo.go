package session

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const sessionsCollection = "sessions"

// MongoBackend stores session records in a TTL-indexed collection.
type MongoBackend struct {
	col *mongo.Collection
}

func NewMongoBackend(db *mongo.Database) *MongoBackend {
	return &MongoBackend{col: db.Collection(sessionsCollection)}
}

// EnsureIndexes creates the TTL index that reaps expired sessions. The TTL
// monitor runs on a delay, so Find still filters on expires_at; the index
// is cleanup, not the validity check.
func (b *MongoBackend) EnsureIndexes(ctx context.Context) error {
	_, err := b.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	return err
}

func (b *MongoBackend) Save(ctx context.Context, rec *Record) error {
	opts := options.Replace().SetUpsert(true)
	_, err := b.col.ReplaceOne(ctx, bson.M{"_id": rec.Token}, rec, opts)
	return err
}

func (b *MongoBackend) Find(ctx context.Context, token string) (*Record, error) {
	filter := bson.M{"_id": token, "expires_at": bson.M{"$gt": time.Now().UTC()}}
	var rec Record
	err := b.col.FindOne(ctx, filter).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (b *MongoBackend) Delete(ctx context.Context, token string) error {
	_, err := b.col.DeleteOne(ctx, bson.M{"_id": token})
	return err
}
