package review

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/deckcheck/internal/common"
	"github.com/ternarybob/deckcheck/internal/interfaces"
	"github.com/ternarybob/deckcheck/internal/models"
)

// stubDict accepts a fixed word set
type stubDict struct {
	words map[string]struct{}
}

func newStubDict(words ...string) *stubDict {
	d := &stubDict{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		d.words[w] = struct{}{}
	}
	return d
}

func (d *stubDict) Check(word string) bool {
	_, ok := d.words[word]
	return ok
}

func (d *stubDict) Suggest(word string) (string, bool) { return "", false }

// fnTextModel dispatches to a per-call function, for per-slide behavior
type fnTextModel struct {
	fn func(userPrompt string) (string, error)
}

func (m *fnTextModel) Chat(ctx context.Context, messages []interfaces.Message) (string, error) {
	var user string
	for _, msg := range messages {
		if msg.Role == "user" {
			user = msg.Content
		}
	}
	return m.fn(user)
}

func (m *fnTextModel) HealthCheck(ctx context.Context) error { return nil }
func (m *fnTextModel) Close() error                          { return nil }

func testConfig() *common.ReviewConfig {
	return &common.ReviewConfig{
		Concurrency:   2,
		ScoreWeight:   5,
		MinTextLength: 5,
	}
}

func noFindings(string) (string, error) {
	return `{"findings": []}`, nil
}

func TestService_RejectsEmptySlideList(t *testing.T) {
	svc := NewService(testConfig(), nil, nil, nil, common.GetLogger())

	_, err := svc.Run(context.Background(), nil, nil, "empty.pptx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no slides")
}

func TestService_FullRun(t *testing.T) {
	// "Teh" is misspelled; the text model flags "were" on the same slide.
	dict := newStubDict("the", "team", "were", "great", "closing", "remarks")
	text := &fnTextModel{fn: func(user string) (string, error) {
		if strings.Contains(user, "Teh team were great.") {
			return `{"findings": [{
				"category": "Grammar",
				"sentence": "Teh team were great.",
				"errorFragment": "were",
				"errorName": "Subject-verb agreement",
				"rule": "Collective noun takes a singular verb.",
				"suggestion": "Teh team was great."
			}]}`, nil
		}
		return noFindings(user)
	}}

	svc := NewService(testConfig(), dict, text, nil, common.GetLogger())

	slides := []models.SlideText{
		{SlideNumber: 1, Text: "Teh team were great."},
		{SlideNumber: 2, Text: "Closing remarks"},
	}
	report, err := svc.Run(context.Background(), slides, nil, "deck.pptx")
	require.NoError(t, err)

	assert.Equal(t, "deck.pptx", report.FileName)
	assert.Equal(t, 2, report.TotalSlides)
	require.Len(t, report.SlideReviews, 1, "clean slides are excluded from the per-slide list")
	assert.Equal(t, 1, report.SlideReviews[0].SlideNumber)

	assert.Equal(t, 1, report.Summary.TotalSpellingFindings)
	assert.Equal(t, 1, report.Summary.TotalTextualFindings)
	assert.Equal(t, 0, report.Summary.TotalVisualFindings)
	assert.Equal(t, 2, report.Summary.TotalFindings)
	assert.Equal(t, 90, report.Summary.OverallScore)
	assert.GreaterOrEqual(t, report.Summary.ProcessingTimeMs, int64(0))
}

func TestService_OrdersSlidesByNumber(t *testing.T) {
	dict := newStubDict()
	svc := NewService(&common.ReviewConfig{Concurrency: 4, ScoreWeight: 5, MinTextLength: 5}, dict, nil, nil, common.GetLogger())

	// Every slide has a misspelling so every slide appears in the report
	slides := []models.SlideText{
		{SlideNumber: 9, Text: "wolrd nine"},
		{SlideNumber: 2, Text: "wolrd two"},
		{SlideNumber: 5, Text: "wolrd five"},
	}
	report, err := svc.Run(context.Background(), slides, nil, "deck.pdf")
	require.NoError(t, err)

	require.Len(t, report.SlideReviews, 3)
	assert.Equal(t, 2, report.SlideReviews[0].SlideNumber)
	assert.Equal(t, 5, report.SlideReviews[1].SlideNumber)
	assert.Equal(t, 9, report.SlideReviews[2].SlideNumber)
}

func TestService_ScoreFloorsAtZero(t *testing.T) {
	dict := newStubDict()
	cfg := &common.ReviewConfig{Concurrency: 1, ScoreWeight: 50, MinTextLength: 5}
	svc := NewService(cfg, dict, nil, nil, common.GetLogger())

	slides := []models.SlideText{
		{SlideNumber: 1, Text: "aaa bbb ccc"},
	}
	report, err := svc.Run(context.Background(), slides, nil, "deck.pdf")
	require.NoError(t, err)

	assert.Equal(t, 3, report.Summary.TotalFindings)
	assert.Equal(t, 0, report.Summary.OverallScore)
}

func TestService_SlideFailureDoesNotAbortBatch(t *testing.T) {
	text := &fnTextModel{fn: func(user string) (string, error) {
		if strings.Contains(user, "Slide 2:") {
			return "", errors.New("model exploded")
		}
		return `{"findings": [{"sentence": "a", "errorName": "n", "suggestion": "s"}]}`, nil
	}}
	svc := NewService(testConfig(), nil, text, nil, common.GetLogger())

	slides := []models.SlideText{
		{SlideNumber: 1, Text: "First slide content"},
		{SlideNumber: 2, Text: "Second slide content"},
		{SlideNumber: 3, Text: "Third slide content"},
	}
	report, err := svc.Run(context.Background(), slides, nil, "deck.pptx")
	require.NoError(t, err, "a per-slide failure must not fail the run")

	assert.Equal(t, 3, report.TotalSlides)
	assert.Equal(t, 2, report.Summary.TotalTextualFindings, "failed slide contributes zero findings")
	for _, review := range report.SlideReviews {
		assert.NotEqual(t, 2, review.SlideNumber)
	}
}

func TestService_VisionSkippedWithoutImage(t *testing.T) {
	vision := &mockVisionModel{response: `[{"relatedText": "x", "issue": "misaligned", "category": "alignment"}]`}
	svc := NewService(testConfig(), nil, nil, vision, common.GetLogger())

	slides := []models.SlideText{
		{SlideNumber: 1, Text: "Has an image"},
		{SlideNumber: 2, Text: "No image here"},
	}
	images := map[int][]byte{1: pngHeader}

	report, err := svc.Run(context.Background(), slides, images, "deck.pptx")
	require.NoError(t, err)

	assert.Equal(t, 1, vision.calls, "vision runs only for slides with an image")
	assert.Equal(t, 1, report.Summary.TotalVisualFindings)
}

func TestService_DegradedModeAllPassesDisabled(t *testing.T) {
	svc := NewService(testConfig(), nil, nil, nil, common.GetLogger())

	slides := []models.SlideText{{SlideNumber: 1, Text: "Anything at all"}}
	report, err := svc.Run(context.Background(), slides, nil, "deck.pdf")
	require.NoError(t, err)

	assert.Equal(t, 1, report.TotalSlides)
	assert.Empty(t, report.SlideReviews)
	assert.Equal(t, 0, report.Summary.TotalFindings)
	assert.Equal(t, 100, report.Summary.OverallScore)
}
