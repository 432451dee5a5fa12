package common

import (
	"github.com/google/uuid"
)

// NewFeedbackID generates a unique feedback entry ID with the "fb_" prefix
func NewFeedbackID() string {
	return "fb_" + uuid.New().String()
}

// NewSessionID generates a unique review session ID with the "rev_" prefix
func NewSessionID() string {
	return "rev_" + uuid.New().String()
}

// ShortID returns an 8-character random suffix for finding IDs
func ShortID() string {
	return uuid.New().String()[:8]
}
