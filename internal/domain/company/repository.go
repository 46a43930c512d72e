package company

import "context"

// Repository exposes data access for companies.
type Repository interface {
	Get(ctx context.Context, id string) (*Company, error)
	Create(ctx context.Context, company *Company) error
	// Update writes dot-path fields onto the company document.
	Update(ctx context.Context, id string, fields map[string]any) error
	ListByOwner(ctx context.Context, ownerID string) ([]*Company, error)
	FindByPortalToken(ctx context.Context, token string) (*Company, error)
	// ListWithTikTok returns companies holding a TikTok connection.
	ListWithTikTok(ctx context.Context) ([]*Company, error)
	AddOwnedCompany(ctx context.Context, userID, companyID string) error
}
