package interfaces

import (
	"context"
	"errors"

	"github.com/ternarybob/deckcheck/internal/models"
)

// ErrKeyNotFound is returned when a key is not found in the key/value store
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStorage defines operations for generic key/value storage, used for
// API key resolution and small operational settings.
type KeyValueStorage interface {
	// Get retrieves a value by key, returns ErrKeyNotFound if absent
	Get(ctx context.Context, key string) (string, error)

	// Set inserts or updates a key/value pair
	Set(ctx context.Context, key string, value string) error
}

// FeedbackStorage records user feedback on findings. Append-only; entries
// are never updated after creation.
type FeedbackStorage interface {
	// Save persists one feedback entry
	Save(ctx context.Context, entry *models.FeedbackEntry) error

	// List returns the most recent entries, newest first, up to limit
	List(ctx context.Context, limit int) ([]models.FeedbackEntry, error)

	// Count returns the total number of stored entries
	Count(ctx context.Context) (int, error)
}

// StorageManager provides access to all storage interfaces
type StorageManager interface {
	KeyValueStorage() KeyValueStorage
	FeedbackStorage() FeedbackStorage
	Close() error
}
