package spelling

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/deckcheck/internal/models"
)

// fakeDict is a fixed word set for checker tests
type fakeDict struct {
	words       map[string]struct{}
	suggestions map[string]string
}

func newFakeDict(words ...string) *fakeDict {
	d := &fakeDict{
		words:       make(map[string]struct{}, len(words)),
		suggestions: make(map[string]string),
	}
	for _, w := range words {
		d.words[w] = struct{}{}
	}
	return d
}

func (d *fakeDict) Check(word string) bool {
	_, ok := d.words[word]
	return ok
}

func (d *fakeDict) Suggest(word string) (string, bool) {
	s, ok := d.suggestions[strings.ToLower(word)]
	return s, ok
}

func TestChecker_FlagsMisspelledWord(t *testing.T) {
	dict := newFakeDict("the", "team", "were", "great")
	dict.suggestions["teh"] = "the"

	checker := NewChecker(nil)
	findings := checker.Check(models.SlideText{SlideNumber: 1, Text: "Teh team were great."}, dict)

	require.Len(t, findings, 1)
	assert.Equal(t, "Teh", findings[0].Word)
	assert.Equal(t, "the", findings[0].Suggestion)
	assert.Equal(t, 1, findings[0].SlideNumber)
	assert.Equal(t, "1-sp-teh", findings[0].ID)
}

func TestChecker_DeduplicatesPerSlide(t *testing.T) {
	dict := newFakeDict("again")
	checker := NewChecker(nil)

	findings := checker.Check(models.SlideText{SlideNumber: 2, Text: "speling mistakes, Speling mistakes, SPELING mistakes again"}, dict)

	words := make([]string, 0, len(findings))
	for _, f := range findings {
		words = append(words, strings.ToLower(f.Word))
	}
	assert.ElementsMatch(t, []string{"speling", "mistakes"}, words)
}

func TestChecker_ToleratesCasingVariants(t *testing.T) {
	dict := newFakeDict("quarterly", "results")
	checker := NewChecker(nil)

	tests := []struct {
		name string
		text string
	}{
		{"exact lowercase", "quarterly results"},
		{"sentence initial capital", "Quarterly results"},
		{"all caps header", "QUARTERLY RESULTS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := checker.Check(models.SlideText{SlideNumber: 1, Text: tt.text}, dict)
			assert.Empty(t, findings)
		})
	}
}

func TestChecker_SkipsWhitelistedAcronyms(t *testing.T) {
	dict := newFakeDict("strategy")
	checker := NewChecker([]string{"AI", "KPI", "SaaS"})

	findings := checker.Check(models.SlideText{SlideNumber: 1, Text: "AI strategy and KPI targets for SaaS"}, dict)

	// "targets", "and", "for" are not in the tiny dictionary
	for _, f := range findings {
		assert.NotContains(t, []string{"AI", "KPI", "SaaS"}, f.Word)
	}
}

func TestChecker_SkipsNumericTokens(t *testing.T) {
	dict := newFakeDict("revenue")
	checker := NewChecker(nil)

	findings := checker.Check(models.SlideText{SlideNumber: 1, Text: "revenue 2024 12345"}, dict)
	assert.Empty(t, findings)
}

func TestChecker_NoSuggestionFallback(t *testing.T) {
	dict := newFakeDict("words")
	checker := NewChecker(nil)

	findings := checker.Check(models.SlideText{SlideNumber: 3, Text: "xqzwv words"}, dict)

	require.Len(t, findings, 1)
	assert.Equal(t, models.NoSuggestion, findings[0].Suggestion)
}

func TestChecker_KeepsIntraWordPunctuation(t *testing.T) {
	dict := newFakeDict("don't", "well-known", "facts")
	checker := NewChecker(nil)

	findings := checker.Check(models.SlideText{SlideNumber: 1, Text: "don't ignore well-known facts"}, dict)
	assert.Empty(t, findings)
}

func TestChecker_EmptySlide(t *testing.T) {
	dict := newFakeDict("anything")
	checker := NewChecker(nil)

	findings := checker.Check(models.SlideText{SlideNumber: 1, Text: "   "}, dict)
	assert.Empty(t, findings)
}
