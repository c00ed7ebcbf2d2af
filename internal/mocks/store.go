package mocks

import (
	"context"

	"github.com/cookmate/cookmate/backend/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockCatalogStore is a mock implementation of store.CatalogStore, used to
// inject collaborator failures.
type MockCatalogStore struct {
	mock.Mock
}

func (m *MockCatalogStore) ReadAll(ctx context.Context, collection string) ([]store.Document, error) {
	args := m.Called(ctx, collection)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Document), args.Error(1)
}

func (m *MockCatalogStore) ReadWhere(ctx context.Context, collection, field string, value any) ([]store.Document, error) {
	args := m.Called(ctx, collection, field, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Document), args.Error(1)
}

func (m *MockCatalogStore) Read(ctx context.Context, collection, id string) (store.Document, error) {
	args := m.Called(ctx, collection, id)
	return args.Get(0).(store.Document), args.Error(1)
}

func (m *MockCatalogStore) Create(ctx context.Context, collection string, fields map[string]any) (string, error) {
	args := m.Called(ctx, collection, fields)
	return args.String(0), args.Error(1)
}

func (m *MockCatalogStore) UpdateField(ctx context.Context, collection, id, field string, value any) error {
	args := m.Called(ctx, collection, id, field, value)
	return args.Error(0)
}

func (m *MockCatalogStore) Delete(ctx context.Context, collection, id string) error {
	args := m.Called(ctx, collection, id)
	return args.Error(0)
}
