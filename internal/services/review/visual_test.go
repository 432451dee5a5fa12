package review

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/deckcheck/internal/common"
	"github.com/ternarybob/deckcheck/internal/models"
)

// pngHeader is enough for content-type sniffing
var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

// mockVisionModel returns a canned response and records the submitted MIME type
type mockVisionModel struct {
	response string
	err      error
	calls    int
	lastMIME string
}

func (m *mockVisionModel) AnalyzeImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	m.calls++
	m.lastMIME = mimeType
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockVisionModel) HealthCheck(ctx context.Context) error { return nil }
func (m *mockVisionModel) Close() error                          { return nil }

func TestVisualAnalyzer_ParsesFindings(t *testing.T) {
	model := &mockVisionModel{response: `[
		{"relatedText": "Q3 Revenue", "issue": "title overlaps with logo", "category": "Alignment"},
		{"relatedText": null, "issue": "uneven spacing between bullets", "category": "spacing"}
	]`}
	analyzer := NewVisualAnalyzer(model, common.GetLogger())

	findings, err := analyzer.Analyze(context.Background(), pngHeader, 3)
	require.NoError(t, err)
	require.Len(t, findings, 2)

	assert.Equal(t, 3, findings[0].SlideNumber)
	assert.Equal(t, "Q3 Revenue", findings[0].RelatedText)
	assert.Equal(t, "alignment", findings[0].Category)
	assert.Equal(t, models.NoSuggestion, findings[1].RelatedText, "null relatedText gets the placeholder")
	assert.Equal(t, "image/png", model.lastMIME)
}

func TestVisualAnalyzer_DropsElementsWithoutIssue(t *testing.T) {
	model := &mockVisionModel{response: `[
		{"relatedText": "x", "issue": "  ", "category": "layout"},
		{"relatedText": "y", "issue": "text is cut off", "category": ""}
	]`}
	analyzer := NewVisualAnalyzer(model, common.GetLogger())

	findings, err := analyzer.Analyze(context.Background(), pngHeader, 1)
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, "text is cut off", findings[0].Issue)
	assert.Equal(t, "other", findings[0].Category, "missing category defaults to other")
}

func TestVisualAnalyzer_UnparseableResponseIsZeroFindings(t *testing.T) {
	model := &mockVisionModel{response: "The slide looks fine to me."}
	analyzer := NewVisualAnalyzer(model, common.GetLogger())

	findings, err := analyzer.Analyze(context.Background(), pngHeader, 1)
	assert.NoError(t, err)
	assert.Empty(t, findings)
}

func TestVisualAnalyzer_ModelErrorPropagates(t *testing.T) {
	model := &mockVisionModel{err: errors.New("quota exceeded")}
	analyzer := NewVisualAnalyzer(model, common.GetLogger())

	_, err := analyzer.Analyze(context.Background(), pngHeader, 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slide 7")
}

func TestVisualAnalyzer_EmptyArray(t *testing.T) {
	model := &mockVisionModel{response: "```json\n[]\n```"}
	analyzer := NewVisualAnalyzer(model, common.GetLogger())

	findings, err := analyzer.Analyze(context.Background(), pngHeader, 1)
	require.NoError(t, err)
	assert.Empty(t, findings)
}
