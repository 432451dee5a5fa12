package review

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/deckcheck/internal/common"
	"github.com/ternarybob/deckcheck/internal/interfaces"
	"github.com/ternarybob/deckcheck/internal/models"
)

const textualSystemPrompt = `You are a meticulous and rule-based senior editor reviewing presentation slides. Your only task is to identify objective errors in grammar, punctuation, capitalization, spelling, style, and clarity. Return your findings in the specified JSON format. Do not provide any commentary or text outside of the JSON object.`

// textualResponse is the JSON object shape demanded of the text model.
// Each element is validated; malformed elements are dropped silently.
type textualResponse struct {
	Findings []textualItem `json:"findings"`
}

type textualItem struct {
	Category      string  `json:"category"`
	Sentence      string  `json:"sentence" validate:"required"`
	ErrorFragment *string `json:"errorFragment"`
	ErrorName     string  `json:"errorName" validate:"required"`
	Rule          string  `json:"rule"`
	Suggestion    string  `json:"suggestion" validate:"required"`
}

// TextualAnalyzer builds a deterministic per-slide prompt, invokes the text
// model, and parses the JSON response into typed findings.
type TextualAnalyzer struct {
	model      interfaces.TextModel
	logger     arbor.ILogger
	validate   *validator.Validate
	minTextLen int
}

// NewTextualAnalyzer creates the textual analysis pass. Slides whose trimmed
// text is shorter than minTextLen characters are skipped without a model call.
func NewTextualAnalyzer(model interfaces.TextModel, minTextLen int, logger arbor.ILogger) *TextualAnalyzer {
	if minTextLen <= 0 {
		minTextLen = 5
	}
	return &TextualAnalyzer{
		model:      model,
		logger:     logger,
		validate:   validator.New(),
		minTextLen: minTextLen,
	}
}

func buildTextualPrompt(slide models.SlideText) string {
	return fmt.Sprintf(`Analyze the following slide text for objective errors: grammar, punctuation, capitalization, spelling, style, and clarity.

Slide %d:
"%s"

For each error found:
- Quote the full offending sentence.
- Quote the exact erroneous fragment, or null if the issue spans the whole sentence.
- Name the error briefly (e.g. "Subject-verb agreement").
- Explain the rule violated in one sentence.
- Provide the corrected full sentence.
- Do not invent issues; report objective errors only.

Return your response as a single JSON object in this exact format. If no errors are found, return {"findings": []}.
{
  "findings": [
    {
      "category": "Grammar",
      "sentence": "The team were ready to present their idea.",
      "errorFragment": "were",
      "errorName": "Subject-verb agreement",
      "rule": "'team' is a collective noun treated as singular in this context.",
      "suggestion": "The team was ready to present their idea."
    }
  ]
}

Valid categories: Spelling, Grammar, Style, Clarity.`, slide.SlideNumber, slide.Text)
}

// Analyze runs the textual pass for one slide. A model failure is returned
// as an error for the orchestrator to absorb; an unparseable response is
// zero findings, not an error.
func (a *TextualAnalyzer) Analyze(ctx context.Context, slide models.SlideText) ([]models.TextualFinding, error) {
	if len(strings.TrimSpace(slide.Text)) < a.minTextLen {
		a.logger.Debug().
			Int("slide", slide.SlideNumber).
			Msg("Skipping textual analysis for near-empty slide")
		return nil, nil
	}

	response, err := a.model.Chat(ctx, []interfaces.Message{
		{Role: "system", Content: textualSystemPrompt},
		{Role: "user", Content: buildTextualPrompt(slide)},
	})
	if err != nil {
		return nil, fmt.Errorf("textual analysis call failed for slide %d: %w", slide.SlideNumber, err)
	}

	var parsed textualResponse
	if err := decodeLenient(response, &parsed); err != nil {
		a.logger.Warn().
			Err(err).
			Int("slide", slide.SlideNumber).
			Int("response_length", len(response)).
			Msg("Unparseable textual model response, treating as zero findings")
		return nil, nil
	}

	findings := make([]models.TextualFinding, 0, len(parsed.Findings))
	for _, item := range parsed.Findings {
		if err := a.validate.Struct(item); err != nil {
			a.logger.Debug().
				Err(err).
				Int("slide", slide.SlideNumber).
				Msg("Dropping malformed textual finding")
			continue
		}

		fragment := ""
		if item.ErrorFragment != nil {
			fragment = *item.ErrorFragment
		}
		rule := item.Rule
		if rule == "" {
			rule = models.NoSuggestion
		}

		findings = append(findings, models.TextualFinding{
			ID:            fmt.Sprintf("%d-tx-%s", slide.SlideNumber, common.ShortID()),
			SlideNumber:   slide.SlideNumber,
			Category:      normalizeCategory(item.Category),
			Sentence:      item.Sentence,
			ErrorFragment: fragment,
			ErrorName:     item.ErrorName,
			Rule:          rule,
			Suggestion:    item.Suggestion,
		})
	}

	return findings, nil
}

func normalizeCategory(category string) models.FindingCategory {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "spelling":
		return models.CategorySpelling
	case "grammar", "punctuation", "capitalization":
		return models.CategoryGrammar
	case "style":
		return models.CategoryStyle
	default:
		return models.CategoryClarity
	}
}
