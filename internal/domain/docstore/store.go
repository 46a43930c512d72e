package docstore

import (
	"context"
	"errors"
	"time"

	"github.com/deikotec/socialflow/internal/utils/platformerrors"
)

// Filter operators understood by every backend.
const (
	OpEqual    = "=="
	OpNotEqual = "!="
	OpIn       = "in"
)

// Document is a single record read from a collection.
type Document struct {
	ID   string
	Data map[string]any
}

// Filter restricts a query to documents whose field (dot path) matches Value.
type Filter struct {
	Field string
	Op    string
	Value any
}

// Query describes a collection scan.
type Query struct {
	Filters []Filter
	OrderBy string
	Desc    bool
	Limit   int
}

// Store is a generic key-value document store addressed by slash separated
// collection paths such as "companies/{id}/content".
type Store interface {
	// Get returns the document or an error wrapping platformerrors.ErrNotFound.
	Get(ctx context.Context, collection, id string) (Document, error)
	// Set writes data. With merge, nested maps are merged into the stored document.
	Set(ctx context.Context, collection, id string, data map[string]any, merge bool) error
	// Update writes dot-path fields of an existing document.
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	Query(ctx context.Context, collection string, q Query) ([]Document, error)
	NewID(collection string) string
}

// IsNotFound reports whether err is a missing document.
func IsNotFound(err error) bool {
	return errors.Is(err, platformerrors.ErrNotFound)
}

// NotFound builds the error backends return for a missing document.
func NotFound(ctx context.Context, collection, id string) error {
	return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
		"document not found", platformerrors.ErrNotFound, "4f6f1c1e-5b0e-4a57-9d8e-1f0a6c2d9b11",
		map[string]any{"collection": collection, "id": id})
}

// Now returns the timestamp stored on records. Second precision keeps
// RFC3339 strings ordered lexicographically.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
