package models

import "time"

// FeedbackEntry is a user's reaction to a finding (or a free-form comment on
// a slide). Entries are append-only; nothing in the review pipeline reads
// them back.
type FeedbackEntry struct {
	ID           string    `json:"id" badgerhold:"key"`
	SlideNumber  int       `json:"slideNumber" validate:"gte=0"`
	SlideContent string    `json:"slideContent"`
	FeedbackText string    `json:"feedbackText" validate:"required"`
	Category     string    `json:"category"`
	QAType       string    `json:"qaType"`
	FileName     string    `json:"fileName" validate:"required"`
	SessionID    string    `json:"sessionId,omitempty"`
	SuggestionID string    `json:"suggestionId,omitempty"`
	FeedbackType string    `json:"feedbackType,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
