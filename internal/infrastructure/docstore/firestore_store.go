package docstore

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	domain "github.com/deikotec/socialflow/internal/domain/docstore"
	"github.com/deikotec/socialflow/internal/utils/platformerrors"
)

// FirestoreStore persists documents in Cloud Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore wraps a Firestore client.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) Get(ctx context.Context, collection, id string) (domain.Document, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return domain.Document{}, domain.NotFound(ctx, collection, id)
		}
		return domain.Document{}, storeError(ctx, err, "get document")
	}
	return domain.Document{ID: snap.Ref.ID, Data: snap.Data()}, nil
}

func (s *FirestoreStore) Set(ctx context.Context, collection, id string, data map[string]any, merge bool) error {
	normalized, err := normalizeMap(data)
	if err != nil {
		return err
	}

	ref := s.client.Collection(collection).Doc(id)
	if merge {
		_, err = ref.Set(ctx, normalized, firestore.MergeAll)
	} else {
		_, err = ref.Set(ctx, normalized)
	}
	if err != nil {
		return storeError(ctx, err, "set document")
	}
	return nil
}

func (s *FirestoreStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		normalized, err := domain.Normalize(value)
		if err != nil {
			return err
		}
		updates = append(updates, firestore.Update{Path: path, Value: normalized})
	}

	_, err := s.client.Collection(collection).Doc(id).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return domain.NotFound(ctx, collection, id)
		}
		return storeError(ctx, err, "update document")
	}
	return nil
}

func (s *FirestoreStore) Query(ctx context.Context, collection string, q domain.Query) ([]domain.Document, error) {
	query := s.client.Collection(collection).Query
	for _, f := range q.Filters {
		query = query.Where(f.Field, f.Op, f.Value)
	}
	if q.OrderBy != "" {
		direction := firestore.Asc
		if q.Desc {
			direction = firestore.Desc
		}
		query = query.OrderBy(q.OrderBy, direction)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	snaps, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, storeError(ctx, err, "query documents")
	}

	docs := make([]domain.Document, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, domain.Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return docs, nil
}

func (s *FirestoreStore) NewID(collection string) string {
	return s.client.Collection(collection).NewDoc().ID
}

// Close releases the underlying client.
func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

func storeError(ctx context.Context, err error, message string) error {
	return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, message, err, "a3d0e7c2-8f41-4d6b-b3a9-52c7e1f40d86")
}
