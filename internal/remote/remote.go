// Package remote is the network-backed record store that local state is
// reconciled against once a session exists.
package remote

import (
	"context"
	"errors"

	"github.com/julianstephens/dayquest/internal/models"
)

var ErrNotFound = errors.New("record not found in remote store")

// Store is the per-user record store. Create is an append that needs no prior
// existence check; pushing the same record id twice is a no-op.
type Store interface {
	// FetchProfile returns nil when the user has no stored profile.
	FetchProfile(ctx context.Context, userID string) (*models.Profile, error)
	FetchAll(ctx context.Context, userID string, kind models.EntityKind) ([]models.Record, error)
	Create(ctx context.Context, userID string, rec models.Record) error
	Update(ctx context.Context, userID string, rec models.Record) error
	Delete(ctx context.Context, userID string, kind models.EntityKind, id string) error
	SaveProfile(ctx context.Context, userID string, p models.Profile) error
	Close() error
}
