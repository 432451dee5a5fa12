package spelling

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/ternarybob/deckcheck/internal/interfaces"
	"github.com/ternarybob/deckcheck/internal/models"
)

// tokenPattern matches words: runs of letters/digits, with apostrophes and
// hyphens treated as intra-word joiners.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’-][\p{L}\p{N}]+)*`)

// Checker is the dictionary-based spelling pass. It is pure: no I/O beyond
// the already-loaded dictionary, no side effects.
type Checker struct {
	whitelist map[string]struct{}
}

// NewChecker creates a spelling checker with the given acronym whitelist
// (matched case-insensitively).
func NewChecker(whitelist []string) *Checker {
	wl := make(map[string]struct{}, len(whitelist))
	for _, w := range whitelist {
		wl[strings.ToLower(w)] = struct{}{}
	}
	return &Checker{whitelist: wl}
}

// Check tokenizes the slide text and flags tokens the dictionary rejects.
// Each unique misspelling (case-insensitive) is reported once per slide.
// Tokens that are purely numeric or on the acronym whitelist are skipped.
func (c *Checker) Check(slide models.SlideText, dict interfaces.Dictionary) []models.SpellingFinding {
	var findings []models.SpellingFinding
	seen := make(map[string]struct{})

	for _, token := range tokenPattern.FindAllString(slide.Text, -1) {
		lower := strings.ToLower(token)

		if _, dup := seen[lower]; dup {
			continue
		}
		if isNumeric(token) {
			continue
		}
		if _, whitelisted := c.whitelist[lower]; whitelisted {
			continue
		}
		if c.accepted(token, dict) {
			continue
		}

		seen[lower] = struct{}{}

		suggestion := models.NoSuggestion
		if s, ok := dict.Suggest(token); ok {
			suggestion = s
		}

		findings = append(findings, models.SpellingFinding{
			ID:          fmt.Sprintf("%d-sp-%s", slide.SlideNumber, lower),
			SlideNumber: slide.SlideNumber,
			Word:        token,
			Suggestion:  suggestion,
		})
	}

	return findings
}

// accepted tolerates sentence-initial capitalization and ALL-CAPS headers:
// a token is correct if the dictionary accepts it as typed, lowercased, or
// in title case.
func (c *Checker) accepted(token string, dict interfaces.Dictionary) bool {
	if dict.Check(token) {
		return true
	}
	lower := strings.ToLower(token)
	if lower != token && dict.Check(lower) {
		return true
	}
	title := titleCase(token)
	if title != token && dict.Check(title) {
		return true
	}
	return false
}

func isNumeric(token string) bool {
	for _, r := range token {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(token) > 0
}

func titleCase(token string) string {
	runes := []rune(strings.ToLower(token))
	if len(runes) == 0 {
		return token
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
