package spelling

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sajari/fuzzy"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/deckcheck/internal/interfaces"
)

// WordList is a dictionary loaded from plain word-list files, with a fuzzy
// model for single best-guess corrections. Read-only after construction and
// safe to share across concurrent slide tasks.
type WordList struct {
	words map[string]struct{}
	model *fuzzy.Model
}

// Compile-time assertion
var _ interfaces.Dictionary = (*WordList)(nil)

// LoadDictionary reads every *.txt file in dir (one word per line, blank
// lines and #-comments skipped) and trains the suggestion model on the
// loaded words. A load failure disables the spelling pass for the whole
// run; callers treat the error as degraded mode, not fatal.
func LoadDictionary(dir string, logger arbor.ILogger) (*WordList, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary directory %s: %w", dir, err)
	}

	words := make(map[string]struct{})
	var trainSet []string

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		count, err := loadWordFile(path, words, &trainSet)
		if err != nil {
			logger.Warn().Err(err).Str("file", path).Msg("Skipping unreadable dictionary file")
			continue
		}
		logger.Debug().Str("file", entry.Name()).Int("words", count).Msg("Loaded dictionary file")
	}

	if len(words) == 0 {
		return nil, fmt.Errorf("no words loaded from dictionary directory %s", dir)
	}

	model := fuzzy.NewModel()
	model.SetThreshold(1)
	model.SetDepth(2)
	model.Train(trainSet)

	logger.Info().
		Str("dir", dir).
		Int("words", len(words)).
		Msg("Dictionary loaded")

	return &WordList{words: words, model: model}, nil
}

func loadWordFile(path string, words map[string]struct{}, trainSet *[]string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		if _, exists := words[word]; !exists {
			words[word] = struct{}{}
			*trainSet = append(*trainSet, strings.ToLower(word))
			count++
		}
	}
	return count, scanner.Err()
}

// Check reports whether the word (exact casing) is in the dictionary.
func (w *WordList) Check(word string) bool {
	_, ok := w.words[word]
	return ok
}

// Suggest returns the single best correction for a misspelled word, or
// false when the model has nothing useful to offer.
func (w *WordList) Suggest(word string) (string, bool) {
	lower := strings.ToLower(word)
	suggestion := w.model.SpellCheck(lower)
	if suggestion == "" || suggestion == lower {
		return "", false
	}
	return suggestion, true
}
