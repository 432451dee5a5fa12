package review

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/deckcheck/internal/common"
	"github.com/ternarybob/deckcheck/internal/interfaces"
	"github.com/ternarybob/deckcheck/internal/models"
	"github.com/ternarybob/deckcheck/internal/services/spelling"
)

// Service orchestrates the three analysis passes per slide, merges results,
// and assembles the final report. The dictionary and model clients are
// constructed once per run by the caller and shared read-only across all
// concurrent slide tasks.
//
// Partial-failure policy: a nil dictionary or model disables that pass for
// the whole run (degraded mode); a per-slide pass failure contributes zero
// findings for that slide and never aborts the batch.
type Service struct {
	dict        interfaces.Dictionary
	checker     *spelling.Checker
	textual     *TextualAnalyzer
	visual      *VisualAnalyzer
	logger      arbor.ILogger
	concurrency int
	scoreWeight int
}

// Compile-time assertion
var _ interfaces.ReviewService = (*Service)(nil)

// NewService creates the analysis orchestrator. dict, textModel, and
// visionModel may each be nil, which disables the corresponding pass for
// every run (degraded mode).
func NewService(cfg *common.ReviewConfig, dict interfaces.Dictionary, textModel interfaces.TextModel, visionModel interfaces.VisionModel, logger arbor.ILogger) *Service {
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	scoreWeight := cfg.ScoreWeight
	if scoreWeight < 0 {
		scoreWeight = 5
	}

	s := &Service{
		dict:        dict,
		checker:     spelling.NewChecker(cfg.AcronymWhitelist),
		logger:      logger,
		concurrency: concurrency,
		scoreWeight: scoreWeight,
	}
	if textModel != nil {
		s.textual = NewTextualAnalyzer(textModel, cfg.MinTextLength, logger)
	}
	if visionModel != nil {
		s.visual = NewVisualAnalyzer(visionModel, logger)
	}

	if dict == nil {
		logger.Warn().Msg("No dictionary available, spelling pass disabled for all runs")
	}
	if textModel == nil {
		logger.Warn().Msg("No text model available, textual pass disabled for all runs")
	}
	if visionModel == nil {
		logger.Warn().Msg("No vision model available, visual pass disabled for all runs")
	}

	return s
}

// Run analyzes the given slides and assembles the report. Slide analysis
// tasks run concurrently up to the configured bound; results are ordered by
// ascending slide number before assembly regardless of completion order.
func (s *Service) Run(ctx context.Context, slides []models.SlideText, images map[int][]byte, fileName string) (*models.ReviewReport, error) {
	if len(slides) == 0 {
		return nil, fmt.Errorf("no slides to analyze")
	}

	startTime := time.Now()
	s.logger.Info().
		Str("file", fileName).
		Int("slides", len(slides)).
		Int("images", len(images)).
		Int("concurrency", s.concurrency).
		Msg("Starting review run")

	reviews := make([]models.SlideReview, len(slides))
	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup

	for i, slide := range slides {
		wg.Add(1)
		common.SafeGo(s.logger, fmt.Sprintf("analyzeSlide-%d", slide.SlideNumber), func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			reviews[i] = s.analyzeSlide(ctx, slide, images[slide.SlideNumber])
		})
	}
	wg.Wait()

	sort.Slice(reviews, func(a, b int) bool {
		return reviews[a].SlideNumber < reviews[b].SlideNumber
	})

	report := s.assemble(slides, reviews, fileName, startTime)

	s.logger.Info().
		Str("file", fileName).
		Int("total_findings", report.Summary.TotalFindings).
		Int("score", report.Summary.OverallScore).
		Int64("duration_ms", report.Summary.ProcessingTimeMs).
		Msg("Review run complete")

	return report, nil
}

// analyzeSlide runs the three passes for one slide. The passes are mutually
// independent; each failure is absorbed here.
func (s *Service) analyzeSlide(ctx context.Context, slide models.SlideText, image []byte) models.SlideReview {
	review := models.SlideReview{SlideNumber: slide.SlideNumber}

	if s.dict != nil {
		review.SpellingFindings = s.checker.Check(slide, s.dict)
	}

	if s.textual != nil {
		findings, err := s.textual.Analyze(ctx, slide)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Int("slide", slide.SlideNumber).
				Msg("Textual pass failed for slide, continuing with zero findings")
		} else {
			review.TextualFindings = findings
		}
	}

	if s.visual != nil && len(image) > 0 {
		findings, err := s.visual.Analyze(ctx, image, slide.SlideNumber)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Int("slide", slide.SlideNumber).
				Msg("Visual pass failed for slide, continuing with zero findings")
		} else {
			review.VisualFindings = findings
		}
	}

	return review
}

// assemble builds the report: slides with zero findings are excluded from
// the per-slide list but still count toward totalSlides.
func (s *Service) assemble(slides []models.SlideText, reviews []models.SlideReview, fileName string, startTime time.Time) *models.ReviewReport {
	var slideReviews []models.SlideReview
	summary := models.ReviewSummary{}

	for _, review := range reviews {
		if !review.HasFindings() {
			continue
		}
		slideReviews = append(slideReviews, review)
		summary.TotalSpellingFindings += len(review.SpellingFindings)
		summary.TotalTextualFindings += len(review.TextualFindings)
		summary.TotalVisualFindings += len(review.VisualFindings)
	}

	summary.TotalFindings = summary.TotalSpellingFindings + summary.TotalTextualFindings + summary.TotalVisualFindings
	summary.OverallScore = clampScore(100 - s.scoreWeight*summary.TotalFindings)
	summary.ProcessingTimeMs = time.Since(startTime).Milliseconds()

	return &models.ReviewReport{
		FileName:     fileName,
		TotalSlides:  len(slides),
		SlideReviews: slideReviews,
		Summary:      summary,
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	return score
}
