package content

import "context"

// Repository exposes data access for content pieces of a company.
type Repository interface {
	Get(ctx context.Context, companyID, id string) (*Piece, error)
	Create(ctx context.Context, companyID string, piece *Piece) error
	// Update writes dot-path fields onto the content document.
	Update(ctx context.Context, companyID, id string, fields map[string]any) error
	// List returns pieces newest first, optionally restricted to statuses.
	List(ctx context.Context, companyID string, statuses ...Status) ([]*Piece, error)
}
