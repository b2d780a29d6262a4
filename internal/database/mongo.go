package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"property-storefront/internal/storage"
)

type mongoEntry struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// MongoPort stores documents as {_id: key, value: json}.
type MongoPort struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// OpenMongo connects to uri and uses database.collection.
func OpenMongo(ctx context.Context, uri, database, collection string) (*MongoPort, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoPort{client: client, collection: client.Database(database).Collection(collection)}, nil
}

// Read returns the document stored under key.
func (m *MongoPort) Read(ctx context.Context, key string) ([]byte, error) {
	var entry mongoEntry
	err := m.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo read %s: %w", key, err)
	}
	return []byte(entry.Value), nil
}

// Write upserts the document under key.
func (m *MongoPort) Write(ctx context.Context, key string, data []byte) error {
	update := bson.M{"$set": bson.M{"value": string(data), "updatedAt": time.Now().UTC()}}
	_, err := m.collection.UpdateOne(ctx, bson.M{"_id": key}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo write %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (m *MongoPort) Delete(ctx context.Context, key string) error {
	if _, err := m.collection.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("mongo delete %s: %w", key, err)
	}
	return nil
}

// Close disconnects the client.
func (m *MongoPort) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}
