package interfaces

// Dictionary is the word-list capability backing the spelling pass. It is
// read-only after construction and safe to share across concurrent slide
// analysis tasks.
type Dictionary interface {
	// Check reports whether the word (exact casing) is in the dictionary.
	Check(word string) bool

	// Suggest returns the single best correction for a misspelled word.
	// The second return is false when no usable suggestion exists.
	Suggest(word string) (string, bool)
}
