package feedback

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/deckcheck/internal/common"
	"github.com/ternarybob/deckcheck/internal/interfaces"
	"github.com/ternarybob/deckcheck/internal/models"
)

// Service records user feedback on findings. The review pipeline never
// reads feedback back; this is a write-mostly audit trail.
type Service struct {
	store    interfaces.FeedbackStorage
	logger   arbor.ILogger
	validate *validator.Validate
}

// NewService creates a new feedback service
func NewService(store interfaces.FeedbackStorage, logger arbor.ILogger) *Service {
	return &Service{
		store:    store,
		logger:   logger,
		validate: validator.New(),
	}
}

// Record validates and persists one feedback entry. ID and CreatedAt are
// assigned here; callers never set them.
func (s *Service) Record(ctx context.Context, entry *models.FeedbackEntry) error {
	entry.ID = common.NewFeedbackID()
	entry.CreatedAt = time.Now()

	if err := s.validate.Struct(entry); err != nil {
		return fmt.Errorf("invalid feedback entry: %w", err)
	}

	if err := s.store.Save(ctx, entry); err != nil {
		return fmt.Errorf("failed to record feedback: %w", err)
	}

	s.logger.Info().
		Str("id", entry.ID).
		Str("file", entry.FileName).
		Str("category", entry.Category).
		Msg("Feedback recorded")

	return nil
}

// List returns the most recent feedback entries, newest first.
func (s *Service) List(ctx context.Context, limit int) ([]models.FeedbackEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return s.store.List(ctx, limit)
}

// Count returns the total number of recorded entries.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}
