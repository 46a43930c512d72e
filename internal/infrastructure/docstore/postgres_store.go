package docstore

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/deikotec/socialflow/internal/domain/docstore"
	"github.com/deikotec/socialflow/internal/infrastructure/database/entities"
	"github.com/deikotec/socialflow/internal/utils/idgen"
)

// PostgresStore keeps documents as JSONB rows keyed by (collection, id).
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore creates a store backed by the provided DB.
func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, collection, id string) (domain.Document, error) {
	var record entities.Document
	err := s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Document{}, domain.NotFound(ctx, collection, id)
		}
		return domain.Document{}, storeError(ctx, err, "get document")
	}
	return toDocument(record), nil
}

func (s *PostgresStore) Set(ctx context.Context, collection, id string, data map[string]any, merge bool) error {
	normalized, err := normalizeMap(data)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if merge {
			existing, found, err := lockRecord(tx, collection, id)
			if err != nil {
				return err
			}
			if found {
				merged := map[string]any(existing.Data)
				domain.Merge(merged, normalized)
				normalized = merged
			}
		}
		return upsert(tx, collection, id, normalized)
	})
	if err != nil {
		return storeError(ctx, err, "set document")
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	var missing bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, found, err := lockRecord(tx, collection, id)
		if err != nil {
			return err
		}
		if !found {
			missing = true
			return nil
		}

		data := map[string]any(existing.Data)
		if data == nil {
			data = map[string]any{}
		}
		for path, value := range fields {
			normalized, err := domain.Normalize(value)
			if err != nil {
				return err
			}
			domain.SetPath(data, path, normalized)
		}
		return upsert(tx, collection, id, data)
	})
	if err != nil {
		return storeError(ctx, err, "update document")
	}
	if missing {
		return domain.NotFound(ctx, collection, id)
	}
	return nil
}

// Query pushes equality filters into a JSONB containment predicate and
// evaluates the rest of the query in process.
func (s *PostgresStore) Query(ctx context.Context, collection string, q domain.Query) ([]domain.Document, error) {
	tx := s.db.WithContext(ctx).Where("collection = ?", collection)

	containment := map[string]any{}
	for _, f := range q.Filters {
		if f.Op != domain.OpEqual {
			continue
		}
		value, err := domain.Normalize(f.Value)
		if err != nil {
			return nil, err
		}
		domain.SetPath(containment, f.Field, value)
	}
	if len(containment) > 0 {
		raw, err := json.Marshal(containment)
		if err != nil {
			return nil, err
		}
		tx = tx.Where("data @> ?::jsonb", string(raw))
	}

	var records []entities.Document
	if err := tx.Find(&records).Error; err != nil {
		return nil, storeError(ctx, err, "query documents")
	}

	docs := make([]domain.Document, 0, len(records))
	for _, record := range records {
		docs = append(docs, toDocument(record))
	}
	return domain.Apply(docs, q)
}

func (s *PostgresStore) NewID(collection string) string {
	return idgen.New("")
}

func lockRecord(tx *gorm.DB, collection, id string) (entities.Document, bool, error) {
	var record entities.Document
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("collection = ? AND id = ?", collection, id).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Document{}, false, nil
	}
	if err != nil {
		return entities.Document{}, false, err
	}
	return record, true, nil
}

func upsert(tx *gorm.DB, collection, id string, data map[string]any) error {
	record := entities.Document{
		Collection: collection,
		ID:         id,
		Data:       datatypes.JSONMap(data),
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}, {Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&record).Error
}

func toDocument(record entities.Document) domain.Document {
	data := map[string]any(record.Data)
	if data == nil {
		data = map[string]any{}
	}
	return domain.Document{ID: record.ID, Data: data}
}
