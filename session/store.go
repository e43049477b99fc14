// Package session implements server-side session state for the portal:
// an injectable Store, the Manager that is the sole mutator of session
// records, and the page guard every handler calls first.
package session

import (
	"context"
	"errors"

	"plantdesk/models"
)

// ErrNotFound is returned by Store.Get when no session exists for the id.
var ErrNotFound = errors.New("session not found")

// Store persists whole session records keyed by the opaque session id.
// Per-key operations must be atomic; multi-step sequences are serialized
// by the Manager, not the store.
type Store interface {
	Get(ctx context.Context, sessionID string) (*models.Session, error)
	Put(ctx context.Context, sess *models.Session) error
	Delete(ctx context.Context, sessionID string) error
}
