// Package store holds the Catalog Store contract and its implementations.
// Stores deal in untyped field maps; internal/catalog turns them into
// entities.
package store

import (
	"context"
	"errors"
)

// Collections used by the catalog.
const (
	CollectionRecipes     = "recipes"
	CollectionIngredients = "ingredients"
	CollectionUsers       = "users"
	CollectionFavorites   = "favorites"
	CollectionCredentials = "credentials"
)

// ErrNotFound is returned when a document id does not exist in a collection.
var ErrNotFound = errors.New("document not found")

// Document is a stored body plus its store-assigned id. Fields is nil when
// the body exists but could not be decoded; readers skip such documents.
type Document struct {
	ID     string
	Fields map[string]any
}

// CatalogStore is a document database. Every read returns documents in store
// order, which callers treat as display order.
type CatalogStore interface {
	ReadAll(ctx context.Context, collection string) ([]Document, error)
	// ReadWhere returns documents whose field equals value. field may be a
	// dotted path into nested maps, e.g. "recipe.title".
	ReadWhere(ctx context.Context, collection, field string, value any) ([]Document, error)
	Read(ctx context.Context, collection, id string) (Document, error)
	Create(ctx context.Context, collection string, fields map[string]any) (string, error)
	UpdateField(ctx context.Context, collection, id, field string, value any) error
	Delete(ctx context.Context, collection, id string) error
}
