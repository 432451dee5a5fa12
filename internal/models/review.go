package models

// FindingCategory classifies a textual finding.
type FindingCategory string

const (
	CategorySpelling FindingCategory = "Spelling"
	CategoryGrammar  FindingCategory = "Grammar"
	CategoryStyle    FindingCategory = "Style"
	CategoryClarity  FindingCategory = "Clarity"
)

// NoSuggestion is the sentinel used when a pass has nothing better to offer.
const NoSuggestion = "N/A"

// SlideText is the per-slide text produced by the extraction service.
// SlideNumber is 1-based and follows extraction order; slides are not
// guaranteed to be contiguous.
type SlideText struct {
	SlideNumber int    `json:"slideNumber"`
	Text        string `json:"text"`
}

// SpellingFinding is a single flagged token from the dictionary pass.
// The same misspelling appearing multiple times on one slide is reported once.
type SpellingFinding struct {
	ID          string `json:"id"`
	SlideNumber int    `json:"slideNumber"`
	Word        string `json:"word"`
	Suggestion  string `json:"suggestion"`
}

// TextualFinding is a grammar/style/clarity issue reported by the text model.
type TextualFinding struct {
	ID            string          `json:"id"`
	SlideNumber   int             `json:"slideNumber"`
	Category      FindingCategory `json:"category"`
	Sentence      string          `json:"sentence"`
	ErrorFragment string          `json:"errorFragment,omitempty"`
	ErrorName     string          `json:"errorName"`
	Rule          string          `json:"rule"`
	Suggestion    string          `json:"suggestion"`
}

// VisualFinding is a layout/formatting defect reported by the vision model.
type VisualFinding struct {
	ID          string `json:"id"`
	SlideNumber int    `json:"slideNumber"`
	RelatedText string `json:"relatedText"`
	Issue       string `json:"issue"`
	Category    string `json:"category"`
}

// SlideReview collects all findings for one slide. Slides with zero findings
// across all passes are omitted from the report entirely.
type SlideReview struct {
	SlideNumber      int               `json:"slideNumber"`
	SpellingFindings []SpellingFinding `json:"spellingFindings"`
	TextualFindings  []TextualFinding  `json:"textualFindings"`
	VisualFindings   []VisualFinding   `json:"visualFindings"`
}

// HasFindings reports whether any pass produced a finding for this slide.
func (r *SlideReview) HasFindings() bool {
	return len(r.SpellingFindings) > 0 || len(r.TextualFindings) > 0 || len(r.VisualFindings) > 0
}

// FindingCount returns the total number of findings on this slide.
func (r *SlideReview) FindingCount() int {
	return len(r.SpellingFindings) + len(r.TextualFindings) + len(r.VisualFindings)
}

// ReviewSummary holds document-level aggregates. TotalFindings always equals
// the sum of the three per-pass totals.
type ReviewSummary struct {
	TotalFindings         int   `json:"totalFindings"`
	TotalSpellingFindings int   `json:"totalSpellingFindings"`
	TotalTextualFindings  int   `json:"totalTextualFindings"`
	TotalVisualFindings   int   `json:"totalVisualFindings"`
	OverallScore          int   `json:"overallScore"`
	ProcessingTimeMs      int64 `json:"processingTimeMs"`
}

// ReviewReport is the assembled result of one review run. SlideReviews is
// ordered by ascending slide number regardless of analysis completion order.
type ReviewReport struct {
	FileName     string        `json:"fileName"`
	TotalSlides  int           `json:"totalSlides"`
	SlideReviews []SlideReview `json:"slideReviews"`
	Summary      ReviewSummary `json:"summary"`
}
