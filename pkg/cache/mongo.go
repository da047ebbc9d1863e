package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCache stores entries as documents keyed by _id. A TTL index on
// expires_at lets the server drop expired entries; Get also checks expiry
// because the TTL monitor runs only periodically.
type MongoCache struct {
	client *mongo.Client
	coll   *mongo.Collection
	owned  bool
}

type mongoEntry struct {
	Key       string     `bson:"_id"`
	Data      []byte     `bson:"data"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
}

// NewMongoCache connects to uri and uses database.collection, creating the
// TTL index if needed.
func NewMongoCache(ctx context.Context, uri, database, collection string) (*MongoCache, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	err = RetryWithBackoff(ctx, func() error {
		if err := client.Ping(ctx, nil); err != nil {
			return Retryable(fmt.Errorf("%w: mongo ping: %v", ErrNetwork, err))
		}
		return nil
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	c := &MongoCache{client: client, coll: client.Database(database).Collection(collection), owned: true}
	if err := c.ensureIndex(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return c, nil
}

// NewMongoCacheFromCollection wraps an existing collection. Close does not
// disconnect the client.
func NewMongoCacheFromCollection(coll *mongo.Collection) *MongoCache {
	return &MongoCache{client: coll.Database().Client(), coll: coll}
}

func (c *MongoCache) ensureIndex(ctx context.Context) error {
	_, err := c.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return fmt.Errorf("mongo create ttl index: %w", err)
	}
	return nil
}

// Get retrieves a value.
func (c *MongoCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var entry mongoEntry
	err := c.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("mongo find: %w", err)
	}
	if entry.ExpiresAt != nil && time.Now().After(*entry.ExpiresAt) {
		return nil, false, nil
	}
	return entry.Data, true, nil
}

// Set upserts a value.
func (c *MongoCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := mongoEntry{Key: key, Data: data}
	if ttl > 0 {
		exp := time.Now().Add(ttl).UTC()
		entry.ExpiresAt = &exp
	}
	_, err := c.coll.ReplaceOne(ctx, bson.M{"_id": key}, entry, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo upsert: %w", err)
	}
	return nil
}

// Delete removes a value.
func (c *MongoCache) Delete(ctx context.Context, key string) error {
	if _, err := c.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("mongo delete: %w", err)
	}
	return nil
}

// Close disconnects the client if the cache created it.
func (c *MongoCache) Close() error {
	if !c.owned {
		return nil
	}
	return c.client.Disconnect(context.Background())
}

// Ensure MongoCache implements Cache.
var _ Cache = (*MongoCache)(nil)
