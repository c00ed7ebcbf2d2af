package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore is a CatalogStore over a mongo database, one mongo collection
// per catalog collection. ObjectIDs grow with insertion time, so sorting on
// _id gives store order.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func (s *MongoStore) ReadAll(ctx context.Context, collection string) ([]Document, error) {
	return s.find(ctx, collection, bson.M{})
}

func (s *MongoStore) ReadWhere(ctx context.Context, collection, field string, value any) ([]Document, error) {
	return s.find(ctx, collection, bson.M{field: value})
}

func (s *MongoStore) find(ctx context.Context, collection string, filter bson.M) ([]Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	docs := make([]Document, 0)
	for cursor.Next(ctx) {
		docs = append(docs, decodeRaw(cursor.Current))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", collection, err)
	}
	return docs, nil
}

func (s *MongoStore) Read(ctx context.Context, collection, id string) (Document, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Document{}, fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	raw, err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": oid}).Raw()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Document{}, fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	if err != nil {
		return Document{}, fmt.Errorf("failed to read %s/%s: %w", collection, id, err)
	}
	return decodeRaw(raw), nil
}

func (s *MongoStore) Create(ctx context.Context, collection string, fields map[string]any) (string, error) {
	doc := bson.M{}
	for k, v := range fields {
		doc[k] = v
	}
	oid := primitive.NewObjectID()
	doc["_id"] = oid
	if _, err := s.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("failed to create %s document: %w", collection, err)
	}
	return oid.Hex(), nil
}

func (s *MongoStore) UpdateField(ctx context.Context, collection, id, field string, value any) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	res, err := s.db.Collection(collection).UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{field: value}},
	)
	if err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", collection, id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, collection, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	res, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	return nil
}

// decodeRaw turns a raw bson document into a Document. The id survives a
// body that does not decode so the caller can log it.
func decodeRaw(raw bson.Raw) Document {
	var doc Document
	if oid, ok := raw.Lookup("_id").ObjectIDOK(); ok {
		doc.ID = oid.Hex()
	}

	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return doc
	}
	if doc.ID == "" {
		if s, ok := m["_id"].(string); ok {
			doc.ID = s
		}
	}
	delete(m, "_id")
	doc.Fields = normalizeMap(m)
	return doc
}

func normalizeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalizeBSON(v)
	}
	return out
}

// normalizeBSON converts driver types into the plain shapes the rest of the
// catalog understands.
func normalizeBSON(v any) any {
	switch val := v.(type) {
	case primitive.M:
		return normalizeMap(val)
	case map[string]any:
		return normalizeMap(val)
	case primitive.D:
		out := make(map[string]any, len(val))
		for _, e := range val {
			out[e.Key] = normalizeBSON(e.Value)
		}
		return out
	case primitive.A:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeBSON(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeBSON(item)
		}
		return out
	case primitive.DateTime:
		return val.Time().UTC()
	case primitive.ObjectID:
		return val.Hex()
	case int32:
		return float64(val)
	case int64:
		return float64(val)
	}
	return v
}
