package assets

import "context"

// Resolver finds or creates remote folders by name.
type Resolver struct {
	storage RemoteStorage
}

// NewResolver wraps a remote storage.
func NewResolver(storage RemoteStorage) *Resolver {
	return &Resolver{storage: storage}
}

// EnsureFolder returns the folder called name under parentID, creating it when
// no such folder exists. It performs one lookup and at most one create.
func (r *Resolver) EnsureFolder(ctx context.Context, credential, name, parentID string) (Folder, error) {
	folder, found, err := r.storage.FindFolder(ctx, credential, name, parentID)
	if err != nil {
		return Folder{}, err
	}
	if found {
		return folder, nil
	}
	return r.storage.CreateFolder(ctx, credential, name, parentID)
}
