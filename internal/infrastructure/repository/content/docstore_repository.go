package content

import (
	"context"

	domain "github.com/deikotec/socialflow/internal/domain/content"
	"github.com/deikotec/socialflow/internal/domain/docstore"
	"github.com/deikotec/socialflow/internal/utils/platformerrors"
)

// DocstoreRepository maps content pieces onto the company's content sub-collection.
type DocstoreRepository struct {
	store docstore.Store
}

// NewDocstoreRepository creates a repository backed by store.
func NewDocstoreRepository(store docstore.Store) *DocstoreRepository {
	return &DocstoreRepository{store: store}
}

func (r *DocstoreRepository) Get(ctx context.Context, companyID, id string) (*domain.Piece, error) {
	doc, err := r.store.Get(ctx, domain.CollectionPath(companyID), id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "content "+id)
	}
	return decode(doc)
}

func (r *DocstoreRepository) Create(ctx context.Context, companyID string, piece *domain.Piece) error {
	collection := domain.CollectionPath(companyID)
	if piece.ID == "" {
		piece.ID = r.store.NewID(collection)
	}
	data, err := docstore.Encode(piece)
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeInternal, "encode content", err, "9a1c3e5f-7b9d-4c1e-8f3a-7d9f1b3d5e68")
	}
	if err := r.store.Set(ctx, collection, piece.ID, data, false); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "create content")
	}
	return nil
}

func (r *DocstoreRepository) Update(ctx context.Context, companyID, id string, fields map[string]any) error {
	if err := r.store.Update(ctx, domain.CollectionPath(companyID), id, fields); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "update content "+id)
	}
	return nil
}

func (r *DocstoreRepository) List(ctx context.Context, companyID string, statuses ...domain.Status) ([]*domain.Piece, error) {
	q := docstore.Query{OrderBy: "createdAt", Desc: true}
	if len(statuses) > 0 {
		values := make([]string, 0, len(statuses))
		for _, s := range statuses {
			values = append(values, string(s))
		}
		q.Filters = append(q.Filters, docstore.Filter{Field: "status", Op: docstore.OpIn, Value: values})
	}

	docs, err := r.store.Query(ctx, domain.CollectionPath(companyID), q)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "list content")
	}
	pieces := make([]*domain.Piece, 0, len(docs))
	for _, doc := range docs {
		piece, err := decode(doc)
		if err != nil {
			return nil, err
		}
		pieces = append(pieces, piece)
	}
	return pieces, nil
}

func decode(doc docstore.Document) (*domain.Piece, error) {
	var piece domain.Piece
	if err := docstore.Decode(doc.Data, &piece); err != nil {
		return nil, err
	}
	piece.ID = doc.ID
	return &piece, nil
}
