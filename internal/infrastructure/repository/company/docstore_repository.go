package company

import (
	"context"

	domain "github.com/deikotec/socialflow/internal/domain/company"
	"github.com/deikotec/socialflow/internal/domain/docstore"
	"github.com/deikotec/socialflow/internal/utils/platformerrors"
)

// DocstoreRepository maps companies onto the document store.
type DocstoreRepository struct {
	store docstore.Store
}

// NewDocstoreRepository creates a repository backed by store.
func NewDocstoreRepository(store docstore.Store) *DocstoreRepository {
	return &DocstoreRepository{store: store}
}

func (r *DocstoreRepository) Get(ctx context.Context, id string) (*domain.Company, error) {
	doc, err := r.store.Get(ctx, domain.Collection, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "company "+id)
	}
	return decode(doc)
}

func (r *DocstoreRepository) Create(ctx context.Context, company *domain.Company) error {
	data, err := docstore.Encode(company)
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeInternal, "encode company", err, "5e7a9c1b-3d5f-4a7b-9c1e-3f5a7b9d1f46")
	}
	if err := r.store.Set(ctx, domain.Collection, company.ID, data, false); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "create company")
	}
	return nil
}

func (r *DocstoreRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	if err := r.store.Update(ctx, domain.Collection, id, fields); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "update company "+id)
	}
	return nil
}

func (r *DocstoreRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Company, error) {
	return r.query(ctx, docstore.Query{
		Filters: []docstore.Filter{{Field: "ownerId", Op: docstore.OpEqual, Value: ownerID}},
		OrderBy: "createdAt",
		Desc:    true,
	})
}

func (r *DocstoreRepository) FindByPortalToken(ctx context.Context, token string) (*domain.Company, error) {
	companies, err := r.query(ctx, docstore.Query{
		Filters: []docstore.Filter{{Field: "portalToken", Op: docstore.OpEqual, Value: token}},
		Limit:   1,
	})
	if err != nil {
		return nil, err
	}
	if len(companies) == 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "invalid portal token", platformerrors.ErrNotFound, "7f9b1d3e-5a7c-4b9d-8e1f-5b7d9f1a3c57")
	}
	return companies[0], nil
}

func (r *DocstoreRepository) ListWithTikTok(ctx context.Context) ([]*domain.Company, error) {
	return r.query(ctx, docstore.Query{
		Filters: []docstore.Filter{{Field: "socialConnections.tiktok.accessToken", Op: docstore.OpNotEqual, Value: ""}},
	})
}

func (r *DocstoreRepository) AddOwnedCompany(ctx context.Context, userID, companyID string) error {
	owned := []string{}
	doc, err := r.store.Get(ctx, domain.UsersCollection, userID)
	switch {
	case err == nil:
		if existing, ok := doc.Data["owned_companies"].([]any); ok {
			for _, id := range existing {
				if s, ok := id.(string); ok && s != companyID {
					owned = append(owned, s)
				}
			}
		}
	case !docstore.IsNotFound(err):
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "load user profile")
	}
	owned = append(owned, companyID)

	if err := r.store.Set(ctx, domain.UsersCollection, userID, map[string]any{"owned_companies": owned}, true); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "record owned company")
	}
	return nil
}

func (r *DocstoreRepository) query(ctx context.Context, q docstore.Query) ([]*domain.Company, error) {
	docs, err := r.store.Query(ctx, domain.Collection, q)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "query companies")
	}
	companies := make([]*domain.Company, 0, len(docs))
	for _, doc := range docs {
		company, err := decode(doc)
		if err != nil {
			return nil, err
		}
		companies = append(companies, company)
	}
	return companies, nil
}

func decode(doc docstore.Document) (*domain.Company, error) {
	var company domain.Company
	if err := docstore.Decode(doc.Data, &company); err != nil {
		return nil, err
	}
	company.ID = doc.ID
	return &company, nil
}
