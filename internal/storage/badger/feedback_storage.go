package badger

import (
	"context"
	"fmt"
	"sort"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/ternarybob/deckcheck/internal/interfaces"
	"github.com/ternarybob/deckcheck/internal/models"
)

// FeedbackStorage implements interfaces.FeedbackStorage on badgerhold.
// Entries are append-only.
type FeedbackStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// Compile-time assertion
var _ interfaces.FeedbackStorage = (*FeedbackStorage)(nil)

// NewFeedbackStorage creates a new feedback storage instance
func NewFeedbackStorage(db *BadgerDB, logger arbor.ILogger) *FeedbackStorage {
	return &FeedbackStorage{db: db, logger: logger}
}

// Save persists one feedback entry
func (s *FeedbackStorage) Save(ctx context.Context, entry *models.FeedbackEntry) error {
	if err := s.db.Store().Insert(entry.ID, entry); err != nil {
		return fmt.Errorf("failed to save feedback entry %s: %w", entry.ID, err)
	}
	s.logger.Debug().
		Str("id", entry.ID).
		Str("file", entry.FileName).
		Int("slide", entry.SlideNumber).
		Msg("Feedback entry saved")
	return nil
}

// List returns the most recent entries, newest first, up to limit
func (s *FeedbackStorage) List(ctx context.Context, limit int) ([]models.FeedbackEntry, error) {
	var entries []models.FeedbackEntry
	if err := s.db.Store().Find(&entries, badgerhold.Where("ID").Ne("")); err != nil {
		return nil, fmt.Errorf("failed to list feedback entries: %w", err)
	}

	sort.Slice(entries, func(a, b int) bool {
		return entries[a].CreatedAt.After(entries[b].CreatedAt)
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Count returns the total number of stored entries
func (s *FeedbackStorage) Count(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.FeedbackEntry{}, badgerhold.Where("ID").Ne(""))
	if err != nil {
		return 0, fmt.Errorf("failed to count feedback entries: %w", err)
	}
	return int(count), nil
}
