package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DocumentRecord is the row layout of the gorm store. Bodies are JSON text so
// the same table works on sqlite and postgres; Seq gives store order.
type DocumentRecord struct {
	Seq        uint64 `gorm:"primaryKey;autoIncrement"`
	DocID      string `gorm:"column:doc_id;size:36;uniqueIndex"`
	Collection string `gorm:"size:64;index;not null"`
	Body       string `gorm:"type:text;not null"`
}

func (DocumentRecord) TableName() string {
	return "catalog_documents"
}

// GormStore is a CatalogStore over a single gorm table.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) ReadAll(ctx context.Context, collection string) ([]Document, error) {
	var rows []DocumentRecord
	err := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("seq asc").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", collection, err)
	}

	docs := make([]Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, decodeRecord(row))
	}
	return docs, nil
}

// ReadWhere filters after decoding. Bodies are opaque text to the database,
// and keeping the comparison in Go gives sqlite and postgres the same
// semantics for dotted paths and numbers.
func (s *GormStore) ReadWhere(ctx context.Context, collection, field string, value any) ([]Document, error) {
	all, err := s.ReadAll(ctx, collection)
	if err != nil {
		return nil, err
	}
	out := make([]Document, 0)
	for _, d := range all {
		if d.Fields != nil && matches(d.Fields, field, value) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *GormStore) Read(ctx context.Context, collection, id string) (Document, error) {
	var row DocumentRecord
	err := s.db.WithContext(ctx).
		Where("collection = ? AND doc_id = ?", collection, id).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Document{}, fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	if err != nil {
		return Document{}, fmt.Errorf("failed to read %s/%s: %w", collection, id, err)
	}
	return decodeRecord(row), nil
}

func (s *GormStore) Create(ctx context.Context, collection string, fields map[string]any) (string, error) {
	body, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	row := DocumentRecord{
		DocID:      uuid.New().String(),
		Collection: collection,
		Body:       string(body),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", fmt.Errorf("failed to create %s document: %w", collection, err)
	}
	return row.DocID, nil
}

func (s *GormStore) UpdateField(ctx context.Context, collection, id, field string, value any) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row DocumentRecord
		err := tx.Where("collection = ? AND doc_id = ?", collection, id).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to read %s/%s: %w", collection, id, err)
		}

		doc := decodeRecord(row)
		if doc.Fields == nil {
			return fmt.Errorf("%s/%s: body is not a document", collection, id)
		}
		setPath(doc.Fields, field, value)

		body, err := json.Marshal(doc.Fields)
		if err != nil {
			return fmt.Errorf("failed to encode document: %w", err)
		}
		return tx.Model(&DocumentRecord{}).Where("seq = ?", row.Seq).Update("body", string(body)).Error
	})
}

func (s *GormStore) Delete(ctx context.Context, collection, id string) error {
	res := s.db.WithContext(ctx).
		Where("collection = ? AND doc_id = ?", collection, id).
		Delete(&DocumentRecord{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	return nil
}

func decodeRecord(row DocumentRecord) Document {
	var fields map[string]any
	if err := json.Unmarshal([]byte(row.Body), &fields); err != nil {
		fields = nil
	}
	return Document{ID: row.DocID, Fields: fields}
}
