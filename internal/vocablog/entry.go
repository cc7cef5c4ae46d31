package vocablog

import (
	"errors"
	"fmt"
	"strings"
)

// FieldSeparator separates the fields of a log line and of a flashcard record.
const FieldSeparator = "|"

// ErrMalformedEntry is returned for lines that are not word|sentence|translation.
var ErrMalformedEntry = errors.New("malformed vocabulary entry")

// Entry represents one vocabulary log line
type Entry struct {
	Word        string
	Sentence    string
	Translation string
}

// ParseEntry splits a log line into its word, sentence and translation.
// Any separators after the second one stay part of the translation.
func ParseEntry(line string) (Entry, error) {
	parts := strings.SplitN(line, FieldSeparator, 3)
	if len(parts) < 3 {
		return Entry{}, fmt.Errorf("%w: expected 3 fields, got %d", ErrMalformedEntry, len(parts))
	}

	entry := Entry{
		Word:        strings.TrimSpace(parts[0]),
		Sentence:    strings.TrimSpace(parts[1]),
		Translation: strings.TrimSpace(parts[2]),
	}

	if entry.Word == "" {
		return Entry{}, fmt.Errorf("%w: empty word", ErrMalformedEntry)
	}
	if entry.Sentence == "" {
		return Entry{}, fmt.Errorf("%w: empty sentence", ErrMalformedEntry)
	}

	return entry, nil
}
