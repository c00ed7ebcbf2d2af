package service

import (
	"errors"
	"fmt"

	"github.com/cookmate/cookmate/backend/internal/catalog"
	"github.com/cookmate/cookmate/backend/internal/store"
)

// Collaborator names used in CollaboratorError.
const (
	collabStore    = "catalog store"
	collabBlob     = "blob store"
	collabIdentity = "identity provider"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrBlobStoreDisabled  = errors.New("blob store is not configured")
)

// storeErr maps a catalog store failure into the catalog error taxonomy.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %v", catalog.ErrNotFound, err)
	}
	return catalog.Collaborator(collabStore, err)
}
