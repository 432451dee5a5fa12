package review

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/deckcheck/internal/common"
	"github.com/ternarybob/deckcheck/internal/interfaces"
	"github.com/ternarybob/deckcheck/internal/models"
)

// visualItem is one element of the JSON array shape demanded of the vision
// model. Elements without a non-empty issue are dropped silently.
type visualItem struct {
	RelatedText *string `json:"relatedText"`
	Issue       string  `json:"issue"`
	Category    string  `json:"category"`
}

// VisualAnalyzer submits a rendered slide image to the vision model and
// parses the JSON array response into typed findings.
type VisualAnalyzer struct {
	model  interfaces.VisionModel
	logger arbor.ILogger
}

// NewVisualAnalyzer creates the visual analysis pass.
func NewVisualAnalyzer(model interfaces.VisionModel, logger arbor.ILogger) *VisualAnalyzer {
	return &VisualAnalyzer{
		model:  model,
		logger: logger,
	}
}

func buildVisualPrompt(slideNumber int) string {
	return fmt.Sprintf(`You are a meticulous presentation QA reviewer.

The following image is slide %d of a corporate presentation.

Identify visual formatting defects, including:
- Misaligned text, titles, charts, or shapes
- Overlapping elements
- Inconsistent spacing between bullets or lines
- Missing logos or branding
- Cut-off or overflowing text
- Inconsistent fonts (size, weight, style)
- Uneven layout or unbalanced visual spacing

Be specific and concrete about each defect.

Respond with a JSON array only, in this exact format. If no issues are visible, return [].
[
  {
    "relatedText": "brief visible text or area with the issue, or null",
    "issue": "specific visual problem, e.g. title overlaps with logo",
    "category": "alignment | layout | font | branding | spacing | other"
  }
]`, slideNumber)
}

// Analyze runs the visual pass for one slide image. A model failure is
// returned as an error for the orchestrator to absorb; an unparseable
// response is zero findings, not an error.
func (a *VisualAnalyzer) Analyze(ctx context.Context, image []byte, slideNumber int) ([]models.VisualFinding, error) {
	response, err := a.model.AnalyzeImage(ctx, buildVisualPrompt(slideNumber), image, http.DetectContentType(image))
	if err != nil {
		return nil, fmt.Errorf("visual analysis call failed for slide %d: %w", slideNumber, err)
	}

	var parsed []visualItem
	if err := decodeLenient(response, &parsed); err != nil {
		a.logger.Warn().
			Err(err).
			Int("slide", slideNumber).
			Int("response_length", len(response)).
			Msg("Unparseable vision model response, treating as zero findings")
		return nil, nil
	}

	findings := make([]models.VisualFinding, 0, len(parsed))
	for _, item := range parsed {
		if strings.TrimSpace(item.Issue) == "" {
			a.logger.Debug().
				Int("slide", slideNumber).
				Msg("Dropping visual finding without an issue description")
			continue
		}

		relatedText := models.NoSuggestion
		if item.RelatedText != nil && strings.TrimSpace(*item.RelatedText) != "" {
			relatedText = *item.RelatedText
		}
		category := strings.ToLower(strings.TrimSpace(item.Category))
		if category == "" {
			category = "other"
		}

		findings = append(findings, models.VisualFinding{
			ID:          fmt.Sprintf("%d-vi-%s", slideNumber, common.ShortID()),
			SlideNumber: slideNumber,
			RelatedText: relatedText,
			Issue:       item.Issue,
			Category:    category,
		})
	}

	return findings, nil
}
