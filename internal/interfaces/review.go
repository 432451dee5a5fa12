package interfaces

import (
	"context"

	"github.com/ternarybob/deckcheck/internal/models"
)

// ReviewService drives the multi-pass analysis pipeline for one uploaded
// presentation and assembles the final report.
type ReviewService interface {
	// Run analyzes the given slides (and any rendered slide images) and
	// returns the assembled report. It fails only when there is nothing to
	// analyze; individual pass failures degrade to zero findings.
	Run(ctx context.Context, slides []models.SlideText, images map[int][]byte, fileName string) (*models.ReviewReport, error)
}
