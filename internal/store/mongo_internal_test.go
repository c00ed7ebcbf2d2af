package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNormalizeBSON(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	oid := primitive.NewObjectID()

	got := normalizeMap(bson.M{
		"title":    "Soup",
		"servings": int32(4),
		"views":    int64(10),
		"calories": bson.M{"first": 250.0, "second": "kcal"},
		"ordered":  bson.D{{Key: "a", Value: int32(1)}},
		"tags":     bson.A{"Dinner", bson.M{"nested": int64(2)}},
		"created":  primitive.NewDateTimeFromTime(ts),
		"ref":      oid,
	})

	assert.Equal(t, map[string]any{
		"title":    "Soup",
		"servings": 4.0,
		"views":    10.0,
		"calories": map[string]any{"first": 250.0, "second": "kcal"},
		"ordered":  map[string]any{"a": 1.0},
		"tags":     []any{"Dinner", map[string]any{"nested": 2.0}},
		"created":  ts,
		"ref":      oid.Hex(),
	}, got)
}

func TestDecodeRaw(t *testing.T) {
	oid := primitive.NewObjectID()
	raw, err := bson.Marshal(bson.D{
		{Key: "_id", Value: oid},
		{Key: "title", Value: "Soup"},
		{Key: "ingredients", Value: bson.A{bson.D{{Key: "name", Value: "Salt"}}}},
	})
	require.NoError(t, err)

	doc := decodeRaw(raw)

	assert.Equal(t, oid.Hex(), doc.ID)
	assert.Equal(t, map[string]any{
		"title":       "Soup",
		"ingredients": []any{map[string]any{"name": "Salt"}},
	}, doc.Fields)
}

func TestDecodeRaw_Corrupt(t *testing.T) {
	doc := decodeRaw(bson.Raw{0x05, 0x00, 0x00})
	assert.Empty(t, doc.ID)
	assert.Nil(t, doc.Fields)
}

func TestMatches(t *testing.T) {
	fields := map[string]any{
		"userId":  "u1",
		"recipe":  map[string]any{"title": "Soup", "rating": 4.0},
		"isDraft": false,
	}

	assert.True(t, matches(fields, "userId", "u1"))
	assert.True(t, matches(fields, "recipe.title", "Soup"))
	assert.True(t, matches(fields, "recipe.rating", 4))
	assert.True(t, matches(fields, "isDraft", false))
	assert.False(t, matches(fields, "recipe.title", "soup"))
	assert.False(t, matches(fields, "recipe.missing", "x"))
	assert.False(t, matches(fields, "userId.deeper", "u1"))
	assert.False(t, matches(fields, "recipe", "Soup"))
}
